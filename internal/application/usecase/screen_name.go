package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// ScreenName checks a single name against one list without touching any
// merchant. Nothing is persisted.
type ScreenName struct {
	screener *service.Screener
	metrics  port.DecisionMetrics
}

// NewScreenName creates a new ScreenName instance.
func NewScreenName(screener *service.Screener, metrics port.DecisionMetrics) *ScreenName {
	return &ScreenName{screener: screener, metrics: metricsOrNoop(metrics)}
}

func (uc *ScreenName) Execute(_ context.Context, req dto.ScreenNameRequest) (dto.ScreenNameResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.ScreenNameResponse{}, err
	}
	listType, err := valueobject.ScreeningTypeFromString(req.ListType)
	if err != nil {
		return dto.ScreenNameResponse{}, invalid("%v", err)
	}

	match, err := uc.screener.Screen(req.Name, listType)
	if err != nil {
		return dto.ScreenNameResponse{}, fmt.Errorf("failed to screen name: %w", err)
	}
	uc.metrics.ObserveScreening(listType, match.Status)

	return dto.ScreenNameResponse{
		Name:        req.Name,
		ListType:    listType.String(),
		Status:      match.Status.String(),
		MatchedName: match.Entry.Name(),
		MatchedList: match.Entry.Source(),
		Similarity:  match.Similarity,
	}, nil
}
