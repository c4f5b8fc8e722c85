package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
)

// VerifyDocument marks a merchant's supporting document as checked.
type VerifyDocument struct {
	repo port.MerchantRepository
}

// NewVerifyDocument creates a new VerifyDocument instance.
func NewVerifyDocument(repo port.MerchantRepository) *VerifyDocument {
	return &VerifyDocument{repo: repo}
}

func (uc *VerifyDocument) Execute(ctx context.Context, req dto.VerifyDocumentRequest) (dto.MerchantResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, err
	}

	merchant, err := uc.repo.FindByID(ctx, req.MerchantID)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}

	merchant, err = merchant.VerifyDocument(req.DocumentID, req.Verifier, req.Notes, time.Now().UTC())
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to verify document: %w", err)
	}

	if err := uc.repo.Save(ctx, merchant); err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to save merchant: %w", err)
	}
	return toMerchantResponse(merchant), nil
}
