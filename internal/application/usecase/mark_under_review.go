package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
)

// MarkUnderReview moves a PENDING merchant into the review queue.
type MarkUnderReview struct {
	repo port.MerchantRepository
}

// NewMarkUnderReview creates a new MarkUnderReview instance.
func NewMarkUnderReview(repo port.MerchantRepository) *MarkUnderReview {
	return &MarkUnderReview{repo: repo}
}

func (uc *MarkUnderReview) Execute(ctx context.Context, req dto.MarkUnderReviewRequest) (dto.MerchantResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, err
	}

	merchant, err := uc.repo.FindByID(ctx, req.MerchantID)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}

	merchant, err = merchant.MarkUnderReview(req.Actor, time.Now().UTC())
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to mark merchant under review: %w", err)
	}

	if err := uc.repo.Save(ctx, merchant); err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to save merchant: %w", err)
	}
	return toMerchantResponse(merchant), nil
}
