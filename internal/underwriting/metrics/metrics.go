package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the underwriting engine.
type Metrics struct {
	DecisionsIssued   *prometheus.CounterVec
	RiskScore         prometheus.Histogram
	AnalyzeDurationMs prometheus.Histogram
}

// New registers and returns underwriting metrics collectors.
func New() *Metrics {
	return &Metrics{
		DecisionsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "creditstudio_decisions_issued_total",
			Help: "Total number of underwriting decisions issued, by recommendation",
		}, []string{"recommendation"}),
		RiskScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditstudio_risk_score",
			Help:    "Distribution of overall risk scores across applications",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 95},
		}),
		AnalyzeDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditstudio_analyze_duration_ms",
			Help:    "Duration of application analysis in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

func (m *Metrics) IncrementDecisions(recommendation string) {
	m.DecisionsIssued.WithLabelValues(recommendation).Inc()
}

func (m *Metrics) ObserveRiskScore(score int) {
	m.RiskScore.Observe(float64(score))
}

func (m *Metrics) ObserveAnalyzeDuration(durationMs float64) {
	m.AnalyzeDurationMs.Observe(durationMs)
}
