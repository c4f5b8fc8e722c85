package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// ReviewMerchant records a compliance officer's approve or reject decision.
type ReviewMerchant struct {
	repo   port.MerchantRepository
	logger *slog.Logger
}

// NewReviewMerchant creates a new ReviewMerchant instance.
func NewReviewMerchant(repo port.MerchantRepository, logger *slog.Logger) *ReviewMerchant {
	return &ReviewMerchant{repo: repo, logger: logger}
}

func (uc *ReviewMerchant) Execute(ctx context.Context, req dto.ReviewMerchantRequest) (dto.MerchantResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, err
	}
	outcome, err := valueobject.MerchantStatusFromString(req.Outcome)
	if err != nil {
		return dto.MerchantResponse{}, invalid("%v", err)
	}

	merchant, err := uc.repo.FindByID(ctx, req.MerchantID)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}

	merchant, err = merchant.Review(outcome, req.Reviewer, req.Notes, time.Now().UTC())
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to review merchant: %w", err)
	}

	if err := uc.repo.Save(ctx, merchant); err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to save merchant: %w", err)
	}

	uc.logger.InfoContext(ctx, "merchant reviewed",
		slog.String("merchant_id", merchant.ID().String()),
		slog.String("status", merchant.Status().String()),
		slog.String("reviewer", req.Reviewer),
	)
	return toMerchantResponse(merchant), nil
}
