package observability

import (
	"github.com/shafaqzafar/demoacademia/internal/config"
	"github.com/shafaqzafar/demoacademia/internal/observability/logger"
	"github.com/shafaqzafar/demoacademia/internal/observability/metrics"
	"github.com/shafaqzafar/demoacademia/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module wires logging, tracing and metrics from the app configuration.
var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(
		newLoggerConfig,
		newTracingConfig,
		newMetricsConfig,
		newMeterProvider,
		tracing.NewProvider,
		metrics.NewHTTPMetrics,
		metrics.RenderWithConfig,
	),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		Development: !cfg.IsProduction(),
		Level:       "info",
	}
}

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Tracing.Enabled,
		ServiceName:      cfg.Tracing.ServiceName,
		ServiceVersion:   cfg.Tracing.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
		ExporterProtocol: cfg.Tracing.ExporterProtocol,
		SamplingRatio:    cfg.Tracing.SamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Environment,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}
