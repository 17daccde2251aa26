package student

import (
	"github.com/shafaqzafar/demoacademia/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(service.NewService),
)
