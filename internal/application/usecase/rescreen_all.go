package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

const defaultRescreenPageSize = 100

// RescreenAll sweeps every non-rejected merchant through RescreenMerchant.
// A failure on one merchant is logged and counted; the sweep continues.
type RescreenAll struct {
	repo     port.MerchantRepository
	rescreen *RescreenMerchant
	metrics  port.DecisionMetrics
	logger   *slog.Logger
}

// NewRescreenAll creates a new RescreenAll instance.
func NewRescreenAll(repo port.MerchantRepository, rescreen *RescreenMerchant, metrics port.DecisionMetrics, logger *slog.Logger) *RescreenAll {
	return &RescreenAll{repo: repo, rescreen: rescreen, metrics: metricsOrNoop(metrics), logger: logger}
}

func (uc *RescreenAll) Execute(ctx context.Context, req dto.RescreenAllRequest) (dto.RescreenAllResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.RescreenAllResponse{}, err
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = defaultRescreenPageSize
	}

	start := time.Now()
	var (
		resp  dto.RescreenAllResponse
		after = uuid.Nil
	)
	for {
		if err := ctx.Err(); err != nil {
			return resp, fmt.Errorf("rescreen sweep interrupted: %w", err)
		}

		page, err := uc.repo.ListForRescreen(ctx, after, pageSize)
		if err != nil {
			return resp, fmt.Errorf("failed to list merchants for rescreen: %w", err)
		}

		for _, m := range page {
			_, overall, err := uc.rescreen.rescreen(ctx, m)
			if err != nil {
				resp.Failed++
				uc.logger.ErrorContext(ctx, "rescreen failed",
					slog.String("merchant_id", m.ID().String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			resp.Processed++
			if overall.Equal(valueobject.ScreeningMatch) {
				resp.Matches++
			}
		}

		if len(page) < pageSize {
			break
		}
		after = page[len(page)-1].ID()
	}

	uc.metrics.ObserveEvaluation("rescreen_all", time.Since(start))
	uc.logger.InfoContext(ctx, "rescreen sweep completed",
		slog.Int("processed", resp.Processed),
		slog.Int("matches", resp.Matches),
		slog.Int("failed", resp.Failed),
	)
	return resp, nil
}
