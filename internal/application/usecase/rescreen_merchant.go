package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// RescreenMerchant re-runs screening against the current reference lists and
// replaces the stored results. The merchant status is left unchanged.
type RescreenMerchant struct {
	repo     port.MerchantRepository
	screener *service.Screener
	metrics  port.DecisionMetrics
	logger   *slog.Logger
}

// NewRescreenMerchant creates a new RescreenMerchant instance.
func NewRescreenMerchant(
	repo port.MerchantRepository,
	screener *service.Screener,
	metrics port.DecisionMetrics,
	logger *slog.Logger,
) *RescreenMerchant {
	return &RescreenMerchant{
		repo:     repo,
		screener: screener,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

func (uc *RescreenMerchant) Execute(ctx context.Context, req dto.RescreenMerchantRequest) (dto.MerchantResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, err
	}

	merchant, err := uc.repo.FindByID(ctx, req.MerchantID)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}

	merchant, _, err = uc.rescreen(ctx, merchant)
	if err != nil {
		return dto.MerchantResponse{}, err
	}
	return toMerchantResponse(merchant), nil
}

// rescreen screens and saves one loaded merchant.
func (uc *RescreenMerchant) rescreen(ctx context.Context, merchant model.Merchant) (model.Merchant, valueobject.ScreeningStatus, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "RescreenMerchant")
	defer span.End()
	span.SetAttributes(attribute.String("kyb.merchant_id", merchant.ID().String()))

	previous, _ := merchant.ScreeningSummary()

	merchant, overall, err := applyScreening(uc.screener, uc.metrics, merchant, start.UTC())
	if err != nil {
		return model.Merchant{}, valueobject.ScreeningStatus{}, spanError(span, fmt.Errorf("failed to screen merchant: %w", err))
	}
	if err := uc.repo.Save(ctx, merchant); err != nil {
		return model.Merchant{}, valueobject.ScreeningStatus{}, spanError(span, fmt.Errorf("failed to save merchant: %w", err))
	}

	uc.metrics.ObserveEvaluation("rescreen", time.Since(start))
	span.SetAttributes(attribute.String("kyb.screening", overall.String()))

	attrs := []any{
		slog.String("merchant_id", merchant.ID().String()),
		slog.String("status", merchant.Status().String()),
		slog.String("previous", previous.String()),
		slog.String("screening", overall.String()),
	}
	switch {
	case merchant.RaisedSanctionsAlert():
		uc.logger.WarnContext(ctx, "sanctions match raised on rescreen", attrs...)
	case overall.MoreSevereThan(previous):
		uc.logger.WarnContext(ctx, "rescreen escalated screening status", attrs...)
	default:
		uc.logger.DebugContext(ctx, "merchant rescreened", attrs...)
	}
	return merchant, overall, nil
}
