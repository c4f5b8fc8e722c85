package usecase

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

var tracer = otel.Tracer("github.com/bibbank/kyb-service/internal/application/usecase")

// spanError marks the span failed and passes err through.
func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// applyScreening screens m against the current lists and replaces its results.
func applyScreening(
	screener *service.Screener,
	metrics port.DecisionMetrics,
	m model.Merchant,
	now time.Time,
) (model.Merchant, valueobject.ScreeningStatus, error) {
	out, err := screener.ScreenMerchant(m, now)
	if err != nil {
		return model.Merchant{}, valueobject.ScreeningStatus{}, err
	}
	for _, r := range out.Results {
		metrics.ObserveScreening(r.Type(), r.Status())
	}
	return m.ReplaceScreeningResults(out.Results, out.Overall, now), out.Overall, nil
}
