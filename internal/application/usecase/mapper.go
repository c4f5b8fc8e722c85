package usecase

import (
	"time"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/domain/model"
)

// toMerchantResponse maps a domain model to a response DTO.
func toMerchantResponse(m model.Merchant) dto.MerchantResponse {
	owners := make([]dto.BeneficialOwnerDTO, 0, len(m.Owners()))
	for _, o := range m.Owners() {
		owners = append(owners, dto.BeneficialOwnerDTO{
			ID:                  o.ID(),
			FullName:            o.FullName(),
			Nationality:         o.Nationality(),
			OwnershipPercentage: o.OwnershipPercentage(),
			IDDocumentType:      o.IDDocumentType().String(),
			IDDocumentNumber:    o.IDDocumentNumber(),
			IsPEP:               o.IsPEP(),
		})
	}

	docs := make([]dto.DocumentDTO, 0, len(m.Documents()))
	for _, d := range m.Documents() {
		docs = append(docs, dto.DocumentDTO{
			ID:                d.ID(),
			DocumentType:      d.Type().String(),
			StorageRef:        d.StorageRef(),
			UploadedAt:        d.UploadedAt(),
			Verified:          d.Verified(),
			VerifiedBy:        d.VerifiedBy(),
			VerifiedAt:        optionalTime(d.VerifiedAt()),
			VerificationNotes: d.VerificationNotes(),
		})
	}

	results := make([]dto.ScreeningResultDTO, 0, len(m.ScreeningResults()))
	for _, r := range m.ScreeningResults() {
		results = append(results, dto.ScreeningResultDTO{
			ID:            r.ID(),
			ScreeningType: r.Type().String(),
			Subject:       r.Subject(),
			Status:        r.Status().String(),
			MatchedName:   r.MatchedEntry().Name(),
			MatchedList:   r.MatchedList(),
			ScreenedAt:    r.ScreenedAt(),
		})
	}

	resp := dto.MerchantResponse{
		ID:                 m.ID(),
		TenantID:           m.TenantID(),
		BusinessName:       m.BusinessName(),
		RegistrationNumber: m.RegistrationNumber(),
		Country:            m.Country().String(),
		BusinessCategory:   m.Category().String(),
		Email:              m.Email(),
		Phone:              m.Phone(),
		Address:            m.Address(),
		Status:             m.Status().String(),
		RiskTier:           m.RiskTier().String(),
		DueDiligence:       m.DueDiligence().String(),
		ScreeningSummary:   dto.NotScreened,
		ReviewNotes:        m.ReviewNotes(),
		ReviewedBy:         m.ReviewedBy(),
		ReviewDate:         optionalTime(m.ReviewDate()),
		BeneficialOwners:   owners,
		Documents:          docs,
		ScreeningResults:   results,
		Version:            m.Version(),
		CreatedAt:          m.CreatedAt(),
		UpdatedAt:          m.UpdatedAt(),
	}

	if summary, ok := m.ScreeningSummary(); ok {
		resp.ScreeningSummary = summary.String()
	}
	if latest, ok := m.LatestRiskAssessment(); ok {
		a := toRiskAssessmentDTO(latest)
		resp.LatestAssessment = &a
	}
	return resp
}

func toRiskAssessmentDTO(a model.RiskAssessment) dto.RiskAssessmentDTO {
	return dto.RiskAssessmentDTO{
		ID:         a.ID(),
		Score:      a.Score(),
		RiskTier:   a.Tier().String(),
		Factors:    a.Factors(),
		AssessedBy: a.AssessedBy().String(),
		Assessor:   a.Assessor(),
		Notes:      a.Notes(),
		AssessedAt: a.AssessedAt(),
	}
}

func toMerchantSummaries(ms []model.Merchant) []dto.MerchantSummary {
	out := make([]dto.MerchantSummary, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.MerchantSummary{
			ID:                 m.ID(),
			BusinessName:       m.BusinessName(),
			RegistrationNumber: m.RegistrationNumber(),
			Country:            m.Country().String(),
			BusinessCategory:   m.Category().String(),
			Status:             m.Status().String(),
			RiskTier:           m.RiskTier().String(),
			CreatedAt:          m.CreatedAt(),
			UpdatedAt:          m.UpdatedAt(),
		})
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
