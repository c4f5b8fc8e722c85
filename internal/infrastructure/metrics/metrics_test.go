package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
	"github.com/bibbank/kyb-service/internal/infrastructure/metrics"
)

var _ port.DecisionMetrics = (*metrics.Metrics)(nil)

func TestMetrics_ObserveDecision(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveDecision(valueobject.MerchantStatusApproved, valueobject.RiskTierLow, 7)
	m.ObserveDecision(valueobject.MerchantStatusApproved, valueobject.RiskTierLow, 22)
	m.ObserveDecision(valueobject.MerchantStatusRejected, valueobject.RiskTierMedium, 31)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decisions.WithLabelValues("APPROVED", "LOW")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("REJECTED", "MEDIUM")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RiskScore))
}

func TestMetrics_ObserveScreening(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveScreening(valueobject.ScreeningTypeSanctions, valueobject.ScreeningClear)
	m.ObserveScreening(valueobject.ScreeningTypePEP, valueobject.ScreeningMatch)
	m.ObserveScreening(valueobject.ScreeningTypePEP, valueobject.ScreeningMatch)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Screenings.WithLabelValues("SANCTIONS", "CLEAR")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Screenings.WithLabelValues("PEP", "MATCH")))
}

func TestMetrics_ObserveEvaluationAndListSizes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveEvaluation("register", 12*time.Millisecond)
	m.ObserveEvaluation("rescreen_all", 2*time.Second)
	m.SetReferenceListSizes(6, 3)

	assert.Equal(t, 2, testutil.CollectAndCount(m.EvaluateLatency))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.ReferenceListSize.WithLabelValues("SANCTIONS")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ReferenceListSize.WithLabelValues("PEP")))

	families, err := reg.Gather()
	require.NoError(t, err)
	got := make([]string, 0, len(families))
	for _, f := range families {
		got = append(got, f.GetName())
	}
	assert.Contains(t, got, "kyb_decisions_total")
	assert.Contains(t, got, "kyb_evaluate_duration_seconds")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecision(valueobject.MerchantStatusPending, valueobject.RiskTierHigh, 90)
		m.ObserveScreening(valueobject.ScreeningTypePEP, valueobject.ScreeningClear)
		m.ObserveEvaluation("register", time.Millisecond)
		m.SetReferenceListSizes(1, 1)
	})
}
