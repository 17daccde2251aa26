package certificate

import (
	"github.com/shafaqzafar/demoacademia/internal/certificate/render"
	"github.com/shafaqzafar/demoacademia/internal/certificate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("certificate.service",
	fx.Provide(render.NewEngine),
	fx.Provide(service.NewService),
)
