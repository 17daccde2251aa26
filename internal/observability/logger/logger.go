package logger

import (
	"context"

	obscontext "github.com/shafaqzafar/demoacademia/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the process-wide zap logger and installs it as the global.
var Module = fx.Module("logger",
	fx.Provide(New),
)

// Config selects the logging profile.
type Config struct {
	Development bool
	Level       string
}

// New builds the root logger. The global zap logger is replaced so helpers
// like FromContext work from any package.
func New(lc fx.Lifecycle, cfg Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Development {
		log, err = zap.NewDevelopment()
	} else {
		zapCfg := zap.NewProductionConfig()
		if cfg.Level != "" {
			if level, parseErr := zap.ParseAtomicLevel(cfg.Level); parseErr == nil {
				zapCfg.Level = level
			}
		}
		log, err = zapCfg.Build()
	}
	if err != nil {
		return nil, err
	}

	restore := zap.ReplaceGlobals(log)
	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				restore()
				_ = log.Sync()
				return nil
			},
		})
	}
	return log, nil
}

// FromContext returns the global logger enriched with request correlation
// fields: trace/span identifiers when a span is recording, plus request and
// campus identifiers when present on the context.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	fields := make([]zap.Field, 0, 4)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if campusID := obscontext.CampusIDFromContext(ctx); campusID != "" {
		fields = append(fields, zap.String("campus_id", campusID))
	}
	if actorType, actorID := obscontext.ActorFromContext(ctx); actorType != "" && actorID != "" {
		fields = append(fields, zap.String("actor", actorType+":"+actorID))
	}
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
