package assignment

import (
	"github.com/shafaqzafar/demoacademia/internal/assignment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assignment.service",
	fx.Provide(service.NewService),
)
