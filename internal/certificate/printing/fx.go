package printing

import (
	"context"

	"github.com/shafaqzafar/demoacademia/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("certificate.printing",
	fx.Provide(func(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) SurfaceFactory {
		factory := NewBrowserFactory(cfg.Printing.BrowserURL, log)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				factory.Shutdown()
				return nil
			},
		})
		return factory
	}),
	fx.Provide(func(surfaces SurfaceFactory, cfg config.Config, log *zap.Logger) *Dispatcher {
		return NewDispatcher(surfaces, cfg.Printing.ReleaseGrace, log)
	}),
)
