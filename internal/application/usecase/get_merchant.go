package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/port"
)

// GetMerchant retrieves a single merchant by ID.
type GetMerchant struct {
	repo port.MerchantRepository
}

// NewGetMerchant creates a new GetMerchant instance.
func NewGetMerchant(repo port.MerchantRepository) *GetMerchant {
	return &GetMerchant{repo: repo}
}

func (uc *GetMerchant) Execute(ctx context.Context, req dto.GetMerchantRequest) (dto.MerchantResponse, error) {
	merchant, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}
	return toMerchantResponse(merchant), nil
}

// GetMerchantStatus is the applicant-facing status lookup by registration number.
type GetMerchantStatus struct {
	repo port.MerchantRepository
}

// NewGetMerchantStatus creates a new GetMerchantStatus instance.
func NewGetMerchantStatus(repo port.MerchantRepository) *GetMerchantStatus {
	return &GetMerchantStatus{repo: repo}
}

func (uc *GetMerchantStatus) Execute(ctx context.Context, req dto.GetMerchantStatusRequest) (dto.MerchantResponse, error) {
	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, err
	}

	merchant, err := uc.repo.FindByRegistrationNumber(ctx, req.RegistrationNumber)
	if err != nil {
		return dto.MerchantResponse{}, fmt.Errorf("failed to find merchant: %w", err)
	}
	return toMerchantResponse(merchant), nil
}
