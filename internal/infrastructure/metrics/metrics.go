package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// Metrics implements port.DecisionMetrics with Prometheus collectors.
type Metrics struct {
	// Automatic decisions by resulting status and risk tier
	Decisions *prometheus.CounterVec

	// Risk scores at decision time
	RiskScore prometheus.Histogram

	// Individual screening checks by list and outcome
	Screenings *prometheus.CounterVec

	// Latency of registration and rescreen flows
	EvaluateLatency *prometheus.HistogramVec

	// Current size of each reference list
	ReferenceListSize *prometheus.GaugeVec
}

// New registers the KYB metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyb_decisions_total",
			Help: "Automatic KYB decisions by status and risk tier",
		}, []string{"status", "risk_tier"}),

		RiskScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyb_risk_score",
			Help:    "Distribution of merchant risk scores at decision time",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		Screenings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyb_screenings_total",
			Help: "Screening checks by list type and outcome",
		}, []string{"list_type", "status"}),

		EvaluateLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kyb_evaluate_duration_seconds",
			Help:    "Duration of KYB evaluation flows by operation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 30},
		}, []string{"operation"}), // operation: "register", "rescreen", "rescreen_all"

		ReferenceListSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kyb_reference_list_entries",
			Help: "Number of entries in each loaded reference list",
		}, []string{"list_type"}),
	}
}

// ObserveDecision records an automatic decision and its score.
func (m *Metrics) ObserveDecision(status valueobject.MerchantStatus, tier valueobject.RiskTier, score int) {
	if m != nil {
		m.Decisions.WithLabelValues(status.String(), tier.String()).Inc()
		m.RiskScore.Observe(float64(score))
	}
}

// ObserveScreening records one screening check.
func (m *Metrics) ObserveScreening(listType valueobject.ScreeningType, status valueobject.ScreeningStatus) {
	if m != nil {
		m.Screenings.WithLabelValues(listType.String(), status.String()).Inc()
	}
}

// ObserveEvaluation records the duration of an evaluation flow.
func (m *Metrics) ObserveEvaluation(operation string, elapsed time.Duration) {
	if m != nil {
		m.EvaluateLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
	}
}

// SetReferenceListSizes matches the referencelist OnChange callback.
func (m *Metrics) SetReferenceListSizes(sanctions, pep int) {
	if m != nil {
		m.ReferenceListSize.WithLabelValues(valueobject.ScreeningTypeSanctions.String()).Set(float64(sanctions))
		m.ReferenceListSize.WithLabelValues(valueobject.ScreeningTypePEP.String()).Set(float64(pep))
	}
}
