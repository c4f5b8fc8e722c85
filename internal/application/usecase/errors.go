package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// ErrInvalidInput classifies request validation failures.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// validateRequest runs the struct tag rules and folds every violation into one
// ErrInvalidInput error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type noopMetrics struct{}

func (noopMetrics) ObserveDecision(valueobject.MerchantStatus, valueobject.RiskTier, int)   {}
func (noopMetrics) ObserveScreening(valueobject.ScreeningType, valueobject.ScreeningStatus) {}
func (noopMetrics) ObserveEvaluation(string, time.Duration)                                 {}

func metricsOrNoop(m port.DecisionMetrics) port.DecisionMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
