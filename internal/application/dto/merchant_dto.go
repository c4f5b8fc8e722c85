package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotScreened is reported as the screening summary of a merchant without results.
const NotScreened = "NOT_SCREENED"

// RegisterMerchantRequest is the input DTO for a merchant application.
type RegisterMerchantRequest struct {
	BusinessName       string                 `validate:"required,max=255"`
	RegistrationNumber string                 `validate:"required,max=100"`
	Country            string                 `validate:"required,len=2,alpha"`
	BusinessCategory   string                 `validate:"required"`
	Email              string                 `validate:"required,email,max=254"`
	Phone              string                 `validate:"max=20"`
	Address            string                 `validate:"max=1000"`
	BeneficialOwners   []BeneficialOwnerInput `validate:"dive"`
	Documents          []DocumentInput        `validate:"dive"`
	TenantID           uuid.UUID              `validate:"required"`
}

// BeneficialOwnerInput describes one declared owner of the applicant.
type BeneficialOwnerInput struct {
	OwnershipPercentage decimal.Decimal
	FullName            string `validate:"required,max=255"`
	Nationality         string `validate:"required,len=2,alpha"`
	IDDocumentType      string `validate:"max=20"`
	IDDocumentNumber    string `validate:"max=100"`
	IsPEP               bool
}

// DocumentInput references an uploaded supporting document.
type DocumentInput struct {
	DocumentType string `validate:"required"`
	StorageRef   string `validate:"required,max=500"`
}

// GetMerchantRequest is the input DTO for retrieving a merchant by ID.
type GetMerchantRequest struct {
	ID uuid.UUID
}

// GetMerchantStatusRequest looks a merchant up by its registration number.
type GetMerchantStatusRequest struct {
	RegistrationNumber string `validate:"required,max=100"`
}

// RescreenMerchantRequest is the input DTO for re-running screening.
type RescreenMerchantRequest struct {
	MerchantID uuid.UUID `validate:"required"`
}

// ReviewMerchantRequest carries a manual compliance decision.
type ReviewMerchantRequest struct {
	Outcome    string    `validate:"required,oneof=APPROVED REJECTED"`
	Reviewer   string    `validate:"required"`
	Notes      string    `validate:"max=2000"`
	MerchantID uuid.UUID `validate:"required"`
}

// MarkUnderReviewRequest queues a pending merchant for review.
type MarkUnderReviewRequest struct {
	Actor      string    `validate:"required"`
	MerchantID uuid.UUID `validate:"required"`
}

// VerifyDocumentRequest marks a merchant document as verified.
type VerifyDocumentRequest struct {
	Verifier   string    `validate:"required"`
	Notes      string    `validate:"max=2000"`
	MerchantID uuid.UUID `validate:"required"`
	DocumentID uuid.UUID `validate:"required"`
}

// ScreenNameRequest is an ad-hoc screening query.
type ScreenNameRequest struct {
	Name     string `validate:"required,max=255"`
	ListType string `validate:"required,oneof=SANCTIONS PEP"`
}

// RescreenAllRequest controls a full rescreening sweep.
type RescreenAllRequest struct {
	PageSize int `validate:"gte=0,lte=1000"`
}

// BeneficialOwnerDTO transfers owner data across layer boundaries.
type BeneficialOwnerDTO struct {
	OwnershipPercentage decimal.Decimal
	FullName            string
	Nationality         string
	IDDocumentType      string
	IDDocumentNumber    string
	IsPEP               bool
	ID                  uuid.UUID
}

// DocumentDTO transfers document data across layer boundaries.
type DocumentDTO struct {
	UploadedAt        time.Time
	VerifiedAt        *time.Time
	DocumentType      string
	StorageRef        string
	VerifiedBy        string
	VerificationNotes string
	Verified          bool
	ID                uuid.UUID
}

// RiskAssessmentDTO transfers a risk assessment across layer boundaries.
type RiskAssessmentDTO struct {
	AssessedAt time.Time
	RiskTier   string
	AssessedBy string
	Assessor   string
	Notes      string
	Factors    []string
	Score      int
	ID         uuid.UUID
}

// ScreeningResultDTO transfers one screening check across layer boundaries.
type ScreeningResultDTO struct {
	ScreenedAt    time.Time
	ScreeningType string
	Subject       string
	Status        string
	MatchedName   string
	MatchedList   string
	ID            uuid.UUID
}

// MerchantResponse is the full status view of a merchant.
type MerchantResponse struct {
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ReviewDate         *time.Time
	LatestAssessment   *RiskAssessmentDTO
	BusinessName       string
	RegistrationNumber string
	Country            string
	BusinessCategory   string
	Email              string
	Phone              string
	Address            string
	Status             string
	RiskTier           string
	DueDiligence       string
	ScreeningSummary   string
	ReviewNotes        string
	ReviewedBy         string
	BeneficialOwners   []BeneficialOwnerDTO
	Documents          []DocumentDTO
	ScreeningResults   []ScreeningResultDTO
	Version            int
	ID                 uuid.UUID
	TenantID           uuid.UUID
}

// MerchantSummary is the compact listing form of a merchant.
type MerchantSummary struct {
	CreatedAt          time.Time
	UpdatedAt          time.Time
	BusinessName       string
	RegistrationNumber string
	Country            string
	BusinessCategory   string
	Status             string
	RiskTier           string
	ID                 uuid.UUID
}

// DashboardResponse is the compliance overview.
type DashboardResponse struct {
	ByStatus       map[string]int
	ByRiskTier     map[string]int
	ReviewQueue    []MerchantSummary
	RecentActivity []MerchantSummary
	TotalMerchants int
}

// ScreenNameResponse is the outcome of an ad-hoc screening query.
type ScreenNameResponse struct {
	Name        string
	ListType    string
	Status      string
	MatchedName string
	MatchedList string
	Similarity  float64
}

// RescreenAllResponse summarises a rescreening sweep.
type RescreenAllResponse struct {
	Processed int
	Matches   int
	Failed    int
}
