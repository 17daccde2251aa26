package clock

import "go.uber.org/fx"

// Module provides the wall clock used everywhere outside of tests.
var Module = fx.Module("clock",
	fx.Provide(func() Clock {
		return SystemClock{}
	}),
)
