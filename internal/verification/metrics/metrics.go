package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for verifier operations.
type Metrics struct {
	AuditsPerformed *prometheus.CounterVec
	AuditFinalScore prometheus.Histogram
	ScoresCommitted prometheus.Counter
	ScoresRevealed  prometheus.Counter
}

// New registers and returns verification metrics collectors.
func New() *Metrics {
	return &Metrics{
		AuditsPerformed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "creditstudio_audits_performed_total",
			Help: "Total number of verifier audits performed, by verdict",
		}, []string{"verdict"}),
		AuditFinalScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditstudio_audit_final_score",
			Help:    "Distribution of weighted final audit scores",
			Buckets: []float64{50, 60, 70, 75, 80, 85, 90, 95, 100},
		}),
		ScoresCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditstudio_scores_committed_total",
			Help: "Total number of score commitments published",
		}),
		ScoresRevealed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditstudio_scores_revealed_total",
			Help: "Total number of score reveals published",
		}),
	}
}

func (m *Metrics) IncrementAudits(verdict string) {
	m.AuditsPerformed.WithLabelValues(verdict).Inc()
}

func (m *Metrics) ObserveFinalScore(score float64) {
	m.AuditFinalScore.Observe(score)
}

func (m *Metrics) IncrementCommitted() {
	m.ScoresCommitted.Inc()
}

func (m *Metrics) IncrementRevealed() {
	m.ScoresRevealed.Inc()
}
