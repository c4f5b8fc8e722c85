package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

const (
	reviewQueueSize    = 10
	recentActivitySize = 5
)

// GetDashboard assembles the compliance overview.
type GetDashboard struct {
	repo port.MerchantRepository
}

// NewGetDashboard creates a new GetDashboard instance.
func NewGetDashboard(repo port.MerchantRepository) *GetDashboard {
	return &GetDashboard{repo: repo}
}

func (uc *GetDashboard) Execute(ctx context.Context) (dto.DashboardResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load merchant stats: %w", err)
	}

	queue, err := uc.repo.ListByStatuses(ctx, []valueobject.MerchantStatus{
		valueobject.MerchantStatusPending,
		valueobject.MerchantStatusUnderReview,
	}, reviewQueueSize)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load review queue: %w", err)
	}

	recent, err := uc.repo.ListRecentlyUpdated(ctx, recentActivitySize)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load recent activity: %w", err)
	}

	byStatus := make(map[string]int, len(valueobject.AllMerchantStatuses))
	for _, s := range valueobject.AllMerchantStatuses {
		byStatus[s.String()] = stats.ByStatus[s]
	}
	byTier := make(map[string]int, 3)
	for _, t := range []valueobject.RiskTier{valueobject.RiskTierLow, valueobject.RiskTierMedium, valueobject.RiskTierHigh} {
		byTier[t.String()] = stats.ByTier[t]
	}

	return dto.DashboardResponse{
		TotalMerchants: stats.Total,
		ByStatus:       byStatus,
		ByRiskTier:     byTier,
		ReviewQueue:    toMerchantSummaries(queue),
		RecentActivity: toMerchantSummaries(recent),
	}, nil
}
