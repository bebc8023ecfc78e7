package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	scenarioPlanner = "scenario_planner"

	// Scenario metrics
	scenarioComputationsTotal = "scenario_computations_total"
	waveCountPerScenario      = "wave_count_per_scenario"

	// Labels
	actionLabel = "action"
	statusLabel = "status"
)

var scenarioComputationLabels = []string{
	actionLabel,
	statusLabel,
}

var scenarioComputationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scenarioPlanner,
		Name:      scenarioComputationsTotal,
		Help:      "number of scenario computations partitioned by action and status",
	},
	scenarioComputationLabels,
)

var waveCountPerScenarioMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: scenarioPlanner,
		Name:      waveCountPerScenario,
		Help:      "distribution of wave counts across computed scenarios",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	},
)

func IncreaseScenarioComputationsMetric(action string, status string) {
	scenarioComputationsTotalMetric.With(prometheus.Labels{
		actionLabel: action,
		statusLabel: status,
	}).Inc()
}

func ObserveWaveCountMetric(count int) {
	waveCountPerScenarioMetric.Observe(float64(count))
}

// PrometheusMetricsHandler exposes the default registry over HTTP.
type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(scenarioComputationsTotalMetric)
	prometheus.MustRegister(waveCountPerScenarioMetric)
}
