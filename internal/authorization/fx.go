package authorization

import "go.uber.org/fx"

// Module wires the campus-membership role enforcer behind the Service.
var Module = fx.Module("authorization.service",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
