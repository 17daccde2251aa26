package certtemplate

import (
	"github.com/shafaqzafar/demoacademia/internal/certtemplate/repository"
	"github.com/shafaqzafar/demoacademia/internal/certtemplate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("certtemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
