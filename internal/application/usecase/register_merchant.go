package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// RegisterMerchant accepts a merchant application and runs automatic
// decisioning: risk scoring, screening and the disposition policy. The
// merchant and everything derived from it are persisted in one transaction.
type RegisterMerchant struct {
	repo     port.MerchantRepository
	scorer   *service.RiskScorer
	screener *service.Screener
	metrics  port.DecisionMetrics
	logger   *slog.Logger
	policy   service.DecisionPolicy
}

// NewRegisterMerchant creates a new RegisterMerchant instance.
func NewRegisterMerchant(
	repo port.MerchantRepository,
	scorer *service.RiskScorer,
	screener *service.Screener,
	policy service.DecisionPolicy,
	metrics port.DecisionMetrics,
	logger *slog.Logger,
) *RegisterMerchant {
	return &RegisterMerchant{
		repo:     repo,
		scorer:   scorer,
		screener: screener,
		policy:   policy,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

func (uc *RegisterMerchant) Execute(ctx context.Context, req dto.RegisterMerchantRequest) (dto.MerchantResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "RegisterMerchant")
	defer span.End()

	if err := validateRequest(req); err != nil {
		return dto.MerchantResponse{}, spanError(span, err)
	}

	now := start.UTC()
	profile, owners, docs, err := buildApplication(req, now)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, err)
	}
	if uc.scorer.RequiresBeneficialOwners(profile.Category, profile.Country) && len(owners) == 0 {
		return dto.MerchantResponse{}, spanError(span, invalid(
			"beneficial owners are required for %s merchants in %s",
			profile.Category.DisplayName(), profile.Country.DisplayName(),
		))
	}

	exists, err := uc.repo.ExistsByRegistrationNumber(ctx, profile.RegistrationNumber)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("failed to check registration number: %w", err))
	}
	if exists {
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("%w: %s", port.ErrDuplicateRegistration, profile.RegistrationNumber))
	}

	merchant, err := model.NewMerchant(req.TenantID, profile, owners, docs, now)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, invalid("failed to create merchant: %v", err))
	}

	// 1. Score.
	score := uc.scorer.Score(merchant)
	assessment, err := model.NewRiskAssessment(score.Score, score.Factors, valueobject.AssessorSystem, "", "", now)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("failed to record risk assessment: %w", err))
	}
	merchant = merchant.RecordRiskAssessment(assessment)

	// 2. Screen.
	merchant, overall, err := applyScreening(uc.screener, uc.metrics, merchant, now)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("failed to screen merchant: %w", err))
	}

	// 3. Decide.
	disposition := uc.policy.Decide(merchant, overall)
	merchant, err = merchant.ApplyDecision(disposition.Status, disposition.Note, now)
	if err != nil {
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("failed to apply decision: %w", err))
	}

	// 4. Persist everything, outbox included.
	if err := uc.repo.Save(ctx, merchant); err != nil {
		if errors.Is(err, port.ErrDuplicateRegistration) {
			return dto.MerchantResponse{}, spanError(span, err)
		}
		return dto.MerchantResponse{}, spanError(span, fmt.Errorf("failed to save merchant: %w", err))
	}

	uc.metrics.ObserveDecision(merchant.Status(), merchant.RiskTier(), score.Score)
	uc.metrics.ObserveEvaluation("register", time.Since(start))
	span.SetAttributes(
		attribute.String("kyb.merchant_id", merchant.ID().String()),
		attribute.String("kyb.status", merchant.Status().String()),
		attribute.String("kyb.risk_tier", merchant.RiskTier().String()),
		attribute.String("kyb.screening", overall.String()),
	)

	attrs := []any{
		slog.String("merchant_id", merchant.ID().String()),
		slog.String("registration_number", merchant.RegistrationNumber()),
		slog.String("status", merchant.Status().String()),
		slog.String("risk_tier", merchant.RiskTier().String()),
		slog.Int("risk_score", score.Score),
		slog.String("screening", overall.String()),
	}
	if overall.Equal(valueobject.ScreeningMatch) {
		uc.logger.WarnContext(ctx, "merchant auto-rejected on sanctions match", attrs...)
	} else {
		uc.logger.InfoContext(ctx, "merchant registered", attrs...)
	}

	return toMerchantResponse(merchant), nil
}

// buildApplication converts the request into domain inputs.
func buildApplication(req dto.RegisterMerchantRequest, now time.Time) (model.MerchantProfile, []model.BeneficialOwner, []model.Document, error) {
	category, err := valueobject.BusinessCategoryFromString(req.BusinessCategory)
	if err != nil {
		return model.MerchantProfile{}, nil, nil, invalid("%v", err)
	}
	country, err := valueobject.NewCountryCode(req.Country)
	if err != nil {
		return model.MerchantProfile{}, nil, nil, invalid("%v", err)
	}

	owners := make([]model.BeneficialOwner, 0, len(req.BeneficialOwners))
	for i, in := range req.BeneficialOwners {
		if in.OwnershipPercentage.IsNegative() || in.OwnershipPercentage.GreaterThan(hundred) {
			return model.MerchantProfile{}, nil, nil, invalid(
				"owner %d: ownership percentage must be between 0 and 100, got %s", i, in.OwnershipPercentage)
		}
		if !in.OwnershipPercentage.Equal(in.OwnershipPercentage.Round(2)) {
			return model.MerchantProfile{}, nil, nil, invalid(
				"owner %d: ownership percentage allows at most 2 decimal places, got %s", i, in.OwnershipPercentage)
		}
		idType, err := valueobject.IDDocumentTypeFromString(in.IDDocumentType)
		if err != nil {
			return model.MerchantProfile{}, nil, nil, invalid("owner %d: %v", i, err)
		}
		owner, err := model.NewBeneficialOwner(
			in.FullName, in.Nationality, in.OwnershipPercentage, idType, in.IDDocumentNumber, in.IsPEP)
		if err != nil {
			return model.MerchantProfile{}, nil, nil, invalid("owner %d: %v", i, err)
		}
		owners = append(owners, owner)
	}

	docs := make([]model.Document, 0, len(req.Documents))
	for i, in := range req.Documents {
		docType, err := valueobject.DocumentTypeFromString(in.DocumentType)
		if err != nil {
			return model.MerchantProfile{}, nil, nil, invalid("document %d: %v", i, err)
		}
		doc, err := model.NewDocument(docType, in.StorageRef, now)
		if err != nil {
			return model.MerchantProfile{}, nil, nil, invalid("document %d: %v", i, err)
		}
		docs = append(docs, doc)
	}

	profile := model.MerchantProfile{
		BusinessName:       req.BusinessName,
		RegistrationNumber: req.RegistrationNumber,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		Country:            country,
		Category:           category,
	}
	return profile, owners, docs, nil
}
