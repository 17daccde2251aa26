package campus

import (
	"github.com/shafaqzafar/demoacademia/internal/campus/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campus.service",
	fx.Provide(service.NewService),
)
