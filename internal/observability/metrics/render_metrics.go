package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics tracks certificate rendering and print dispatch.
type RenderMetrics struct {
	renderDuration  *prometheus.HistogramVec
	rendered        *prometheus.CounterVec
	printDispatched *prometheus.CounterVec
	printInFlight   prometheus.Gauge
	surfaceAcquire  *prometheus.HistogramVec
}

var (
	renderMetricsOnce sync.Once
	renderMetrics     *RenderMetrics
)

func Render() *RenderMetrics {
	return RenderWithConfig(Config{})
}

func RenderWithConfig(cfg Config) *RenderMetrics {
	renderMetricsOnce.Do(func() {
		renderMetrics = newRenderMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return renderMetrics
}

func ResetRenderMetricsForTest() {
	renderMetricsOnce = sync.Once{}
	renderMetrics = nil
}

func newRenderMetrics(registerer prometheus.Registerer, cfg Config) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "demoacademia"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "demoacademia_certificate_render_duration_seconds",
			Help:        "Time spent composing a certificate document into HTML.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	rendered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "demoacademia_certificates_rendered_total",
			Help:        "Total certificate render operations.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | template_not_found | failed
	)

	printDispatched := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "demoacademia_certificates_print_dispatched_total",
			Help:        "Total certificate print dispatch attempts.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | surface_unavailable
	)

	printInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "demoacademia_certificates_print_in_flight",
			Help:        "Print surfaces currently attached to a document.",
			ConstLabels: constLabels,
		},
	)

	surfaceAcquire := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "demoacademia_print_surface_acquire_seconds",
			Help:        "Time spent acquiring a print surface from the browser pool.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	registerer.MustRegister(
		renderDuration,
		rendered,
		printDispatched,
		printInFlight,
		surfaceAcquire,
	)

	return &RenderMetrics{
		renderDuration:  renderDuration,
		rendered:        rendered,
		printDispatched: printDispatched,
		printInFlight:   printInFlight,
		surfaceAcquire:  surfaceAcquire,
	}
}

func (m *RenderMetrics) ObserveRenderDuration(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func (m *RenderMetrics) IncRendered(result string) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(result).Inc()
}

func (m *RenderMetrics) IncPrintDispatched(result string) {
	if m == nil {
		return
	}
	m.printDispatched.WithLabelValues(result).Inc()
}

func (m *RenderMetrics) PrintStarted() {
	if m == nil {
		return
	}
	m.printInFlight.Inc()
}

func (m *RenderMetrics) PrintFinished() {
	if m == nil {
		return
	}
	m.printInFlight.Dec()
}

func (m *RenderMetrics) ObserveSurfaceAcquire(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.surfaceAcquire.WithLabelValues(result).Observe(duration.Seconds())
}
