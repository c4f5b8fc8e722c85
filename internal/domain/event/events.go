package event

import (
	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/pkg/events"
)

const AggregateTypeMerchant = "Merchant"

// Event type names as they appear on the outbox and the event topic.
const (
	TypeMerchantRegistered     = "kyb.merchant.registered"
	TypeMerchantScreened       = "kyb.merchant.screened"
	TypeMerchantDecided        = "kyb.merchant.decided"
	TypeSanctionsMatchDetected = "kyb.merchant.sanctions_match"
	TypeMerchantReviewed       = "kyb.merchant.reviewed"
	TypeMerchantUnderReview    = "kyb.merchant.under_review"
	TypeDocumentVerified       = "kyb.merchant.document_verified"
)

// MerchantRegistered is emitted when a merchant application is accepted for decisioning.
type MerchantRegistered struct {
	events.BaseEvent
	BusinessName       string    `json:"business_name"`
	RegistrationNumber string    `json:"registration_number"`
	Country            string    `json:"country"`
	BusinessCategory   string    `json:"business_category"`
	OwnerCount         int       `json:"owner_count"`
	MerchantID         uuid.UUID `json:"merchant_id"`
}

// NewMerchantRegistered creates a new MerchantRegistered event.
func NewMerchantRegistered(merchantID, tenantID uuid.UUID, businessName, registrationNumber, country, category string, ownerCount int) MerchantRegistered {
	return MerchantRegistered{
		BaseEvent:          events.NewBaseEvent(TypeMerchantRegistered, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:         merchantID,
		BusinessName:       businessName,
		RegistrationNumber: registrationNumber,
		Country:            country,
		BusinessCategory:   category,
		OwnerCount:         ownerCount,
	}
}

// MerchantScreened is emitted every time the screening results are replaced.
type MerchantScreened struct {
	events.BaseEvent
	OverallStatus string    `json:"overall_status"`
	Checks        int       `json:"checks"`
	Rescreen      bool      `json:"rescreen"`
	MerchantID    uuid.UUID `json:"merchant_id"`
}

// NewMerchantScreened creates a new MerchantScreened event.
func NewMerchantScreened(merchantID, tenantID uuid.UUID, overall string, checks int, rescreen bool) MerchantScreened {
	return MerchantScreened{
		BaseEvent:     events.NewBaseEvent(TypeMerchantScreened, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:    merchantID,
		OverallStatus: overall,
		Checks:        checks,
		Rescreen:      rescreen,
	}
}

// MerchantDecided carries the automatic disposition of a registration.
type MerchantDecided struct {
	events.BaseEvent
	Status          string    `json:"status"`
	RiskTier        string    `json:"risk_tier"`
	ScreeningStatus string    `json:"screening_status"`
	Note            string    `json:"note,omitempty"`
	RiskScore       int       `json:"risk_score"`
	MerchantID      uuid.UUID `json:"merchant_id"`
}

// NewMerchantDecided creates a new MerchantDecided event.
func NewMerchantDecided(merchantID, tenantID uuid.UUID, status, riskTier, screeningStatus, note string, riskScore int) MerchantDecided {
	return MerchantDecided{
		BaseEvent:       events.NewBaseEvent(TypeMerchantDecided, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:      merchantID,
		Status:          status,
		RiskTier:        riskTier,
		ScreeningStatus: screeningStatus,
		Note:            note,
		RiskScore:       riskScore,
	}
}

// SanctionsMatchDetected is raised for any confirmed sanctions hit, whether it
// rejected a new application or surfaced on rescreening an existing merchant.
type SanctionsMatchDetected struct {
	events.BaseEvent
	Subject        string    `json:"subject"`
	MatchedName    string    `json:"matched_name"`
	MatchedList    string    `json:"matched_list"`
	MerchantStatus string    `json:"merchant_status"`
	MerchantID     uuid.UUID `json:"merchant_id"`
}

// NewSanctionsMatchDetected creates a new SanctionsMatchDetected event.
func NewSanctionsMatchDetected(merchantID, tenantID uuid.UUID, subject, matchedName, matchedList, merchantStatus string) SanctionsMatchDetected {
	return SanctionsMatchDetected{
		BaseEvent:      events.NewBaseEvent(TypeSanctionsMatchDetected, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:     merchantID,
		Subject:        subject,
		MatchedName:    matchedName,
		MatchedList:    matchedList,
		MerchantStatus: merchantStatus,
	}
}

// MerchantReviewed is emitted when a reviewer approves or rejects an application.
type MerchantReviewed struct {
	events.BaseEvent
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Reviewer       string    `json:"reviewer"`
	Notes          string    `json:"notes,omitempty"`
	MerchantID     uuid.UUID `json:"merchant_id"`
}

// NewMerchantReviewed creates a new MerchantReviewed event.
func NewMerchantReviewed(merchantID, tenantID uuid.UUID, previous, status, reviewer, notes string) MerchantReviewed {
	return MerchantReviewed{
		BaseEvent:      events.NewBaseEvent(TypeMerchantReviewed, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:     merchantID,
		PreviousStatus: previous,
		Status:         status,
		Reviewer:       reviewer,
		Notes:          notes,
	}
}

type MerchantUnderReview struct {
	events.BaseEvent
	Actor      string    `json:"actor"`
	MerchantID uuid.UUID `json:"merchant_id"`
}

// NewMerchantUnderReview creates a new MerchantUnderReview event.
func NewMerchantUnderReview(merchantID, tenantID uuid.UUID, actor string) MerchantUnderReview {
	return MerchantUnderReview{
		BaseEvent:  events.NewBaseEvent(TypeMerchantUnderReview, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID: merchantID,
		Actor:      actor,
	}
}

type DocumentVerified struct {
	events.BaseEvent
	DocumentType string    `json:"document_type"`
	VerifiedBy   string    `json:"verified_by"`
	DocumentID   uuid.UUID `json:"document_id"`
	MerchantID   uuid.UUID `json:"merchant_id"`
}

// NewDocumentVerified creates a new DocumentVerified event.
func NewDocumentVerified(merchantID, tenantID, documentID uuid.UUID, documentType, verifiedBy string) DocumentVerified {
	return DocumentVerified{
		BaseEvent:    events.NewBaseEvent(TypeDocumentVerified, merchantID.String(), AggregateTypeMerchant, tenantID.String()),
		MerchantID:   merchantID,
		DocumentID:   documentID,
		DocumentType: documentType,
		VerifiedBy:   verifiedBy,
	}
}
