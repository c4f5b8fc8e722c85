package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/domain/event"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
	"github.com/bibbank/kyb-service/pkg/events"
)

// Merchant is the aggregate root for a KYB application. State transitions
// return a new copy; the receiver is never modified.
type Merchant struct {
	createdAt          time.Time
	updatedAt          time.Time
	decidedAt          time.Time
	reviewDate         time.Time
	country            valueobject.CountryCode
	category           valueobject.BusinessCategory
	riskTier           valueobject.RiskTier
	status             valueobject.MerchantStatus
	businessName       string
	registrationNumber string
	email              string
	phone              string
	address            string
	reviewNotes        string
	reviewedBy         string
	owners             []BeneficialOwner
	documents          []Document
	assessments        []RiskAssessment
	screeningResults   []ScreeningResult
	events             events.EventCollector
	version            int
	persistedVersion   int
	id                 uuid.UUID
	tenantID           uuid.UUID
}

// MerchantProfile is the registration data of a new merchant.
type MerchantProfile struct {
	BusinessName       string
	RegistrationNumber string
	Email              string
	Phone              string
	Address            string
	Country            valueobject.CountryCode
	Category           valueobject.BusinessCategory
}

// NewMerchant creates a PENDING merchant with a MEDIUM risk tier until it is scored.
func NewMerchant(
	tenantID uuid.UUID,
	profile MerchantProfile,
	owners []BeneficialOwner,
	documents []Document,
	now time.Time,
) (Merchant, error) {
	if tenantID == uuid.Nil {
		return Merchant{}, fmt.Errorf("tenant ID is required")
	}
	if strings.TrimSpace(profile.BusinessName) == "" {
		return Merchant{}, fmt.Errorf("business name is required")
	}
	if strings.TrimSpace(profile.RegistrationNumber) == "" {
		return Merchant{}, fmt.Errorf("registration number is required")
	}
	if profile.Country.IsZero() {
		return Merchant{}, fmt.Errorf("country is required")
	}
	if profile.Category.IsZero() {
		return Merchant{}, fmt.Errorf("business category is required")
	}
	if strings.TrimSpace(profile.Email) == "" {
		return Merchant{}, fmt.Errorf("email is required")
	}

	m := Merchant{
		id:                 uuid.New(),
		tenantID:           tenantID,
		businessName:       strings.TrimSpace(profile.BusinessName),
		registrationNumber: strings.TrimSpace(profile.RegistrationNumber),
		country:            profile.Country,
		category:           profile.Category,
		email:              strings.TrimSpace(profile.Email),
		phone:              strings.TrimSpace(profile.Phone),
		address:            strings.TrimSpace(profile.Address),
		riskTier:           valueobject.RiskTierMedium,
		status:             valueobject.MerchantStatusPending,
		owners:             append([]BeneficialOwner(nil), owners...),
		documents:          append([]Document(nil), documents...),
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	m.events.Record(event.NewMerchantRegistered(
		m.id, m.tenantID, m.businessName, m.registrationNumber,
		m.country.String(), m.category.String(), len(m.owners),
	))

	return m, nil
}

// ReconstructParams carries persisted merchant state.
type ReconstructParams struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DecidedAt        time.Time
	ReviewDate       time.Time
	Profile          MerchantProfile
	RiskTier         valueobject.RiskTier
	Status           valueobject.MerchantStatus
	ReviewNotes      string
	ReviewedBy       string
	Owners           []BeneficialOwner
	Documents        []Document
	Assessments      []RiskAssessment
	ScreeningResults []ScreeningResult
	Version          int
	ID               uuid.UUID
	TenantID         uuid.UUID
}

// Reconstruct rebuilds a Merchant from persistence (no validation, no events).
func Reconstruct(p ReconstructParams) Merchant {
	return Merchant{
		id:                 p.ID,
		tenantID:           p.TenantID,
		businessName:       p.Profile.BusinessName,
		registrationNumber: p.Profile.RegistrationNumber,
		country:            p.Profile.Country,
		category:           p.Profile.Category,
		email:              p.Profile.Email,
		phone:              p.Profile.Phone,
		address:            p.Profile.Address,
		riskTier:           p.RiskTier,
		status:             p.Status,
		reviewNotes:        p.ReviewNotes,
		reviewedBy:         p.ReviewedBy,
		reviewDate:         p.ReviewDate,
		decidedAt:          p.DecidedAt,
		owners:             p.Owners,
		documents:          p.Documents,
		assessments:        p.Assessments,
		screeningResults:   p.ScreeningResults,
		version:            p.Version,
		persistedVersion:   p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}
}

// touch returns a copy prepared for a state change.
func (m Merchant) touch(now time.Time) Merchant {
	updated := m
	updated.updatedAt = now
	updated.version++
	return updated
}

// RecordRiskAssessment appends an assessment to the history and adopts its tier.
func (m Merchant) RecordRiskAssessment(a RiskAssessment) Merchant {
	updated := m.touch(a.AssessedAt())
	updated.assessments = append(append([]RiskAssessment(nil), m.assessments...), a)
	updated.riskTier = a.Tier()
	return updated
}

// ReplaceScreeningResults swaps the current screening set for results. A
// confirmed match on an already approved merchant raises a sanctions alert,
// since rescreening never changes the status itself.
func (m Merchant) ReplaceScreeningResults(results []ScreeningResult, overall valueobject.ScreeningStatus, now time.Time) Merchant {
	rescreen := len(m.screeningResults) > 0 || !m.decidedAt.IsZero()

	updated := m.touch(now)
	updated.screeningResults = append([]ScreeningResult(nil), results...)
	updated.events.Record(event.NewMerchantScreened(m.id, m.tenantID, overall.String(), len(results), rescreen))

	if overall.Equal(valueobject.ScreeningMatch) && m.status.Equal(valueobject.MerchantStatusApproved) {
		updated.recordSanctionsMatch()
	}
	return updated
}

// ApplyDecision stores the automatic disposition. It runs once per merchant,
// while the merchant is still PENDING.
func (m Merchant) ApplyDecision(status valueobject.MerchantStatus, note string, now time.Time) (Merchant, error) {
	if !m.decidedAt.IsZero() {
		return Merchant{}, fmt.Errorf("%w: %s", ErrAlreadyDecided, m.id)
	}
	if !m.status.Equal(valueobject.MerchantStatusPending) {
		return Merchant{}, fmt.Errorf("%w: cannot decide merchant in %s status", ErrInvalidTransition, m.status)
	}

	updated := m.touch(now)
	updated.status = status
	updated.decidedAt = now
	if note != "" {
		updated.reviewNotes = note
	}

	score := 0
	if latest, ok := m.LatestRiskAssessment(); ok {
		score = latest.Score()
	}
	summary, _ := m.ScreeningSummary()
	updated.events.Record(event.NewMerchantDecided(
		m.id, m.tenantID, status.String(), m.riskTier.String(), summary.String(), note, score,
	))
	if status.Equal(valueobject.MerchantStatusRejected) && summary.Equal(valueobject.ScreeningMatch) {
		updated.recordSanctionsMatch()
	}
	return updated, nil
}

// Review records a manual approve or reject decision.
func (m Merchant) Review(outcome valueobject.MerchantStatus, reviewer, notes string, now time.Time) (Merchant, error) {
	if !outcome.IsTerminal() {
		return Merchant{}, fmt.Errorf("%w: review outcome must be APPROVED or REJECTED, got %s", ErrInvalidTransition, outcome)
	}
	if !m.status.AwaitsReview() {
		return Merchant{}, fmt.Errorf("%w: merchant %s is already %s", ErrInvalidTransition, m.id, m.status)
	}
	if strings.TrimSpace(reviewer) == "" {
		return Merchant{}, fmt.Errorf("reviewer is required")
	}

	updated := m.touch(now)
	updated.status = outcome
	updated.reviewedBy = reviewer
	updated.reviewDate = now
	updated.reviewNotes = notes
	updated.events.Record(event.NewMerchantReviewed(m.id, m.tenantID, m.status.String(), outcome.String(), reviewer, notes))
	return updated, nil
}

// MarkUnderReview queues a PENDING merchant for compliance review.
func (m Merchant) MarkUnderReview(actor string, now time.Time) (Merchant, error) {
	if !m.status.Equal(valueobject.MerchantStatusPending) {
		return Merchant{}, fmt.Errorf("%w: only PENDING merchants can be marked under review, current: %s", ErrInvalidTransition, m.status)
	}
	updated := m.touch(now)
	updated.status = valueobject.MerchantStatusUnderReview
	updated.events.Record(event.NewMerchantUnderReview(m.id, m.tenantID, actor))
	return updated, nil
}

// VerifyDocument marks one of the merchant's documents as verified.
func (m Merchant) VerifyDocument(documentID uuid.UUID, verifier, notes string, now time.Time) (Merchant, error) {
	docs := make([]Document, len(m.documents))
	copy(docs, m.documents)

	for i, d := range docs {
		if d.ID() != documentID {
			continue
		}
		verified, err := d.verify(verifier, notes, now)
		if err != nil {
			return Merchant{}, err
		}
		docs[i] = verified

		updated := m.touch(now)
		updated.documents = docs
		updated.events.Record(event.NewDocumentVerified(m.id, m.tenantID, documentID, d.Type().String(), verifier))
		return updated, nil
	}
	return Merchant{}, fmt.Errorf("%w: %s on merchant %s", ErrDocumentNotFound, documentID, m.id)
}

func (m *Merchant) recordSanctionsMatch() {
	for _, r := range m.screeningResults {
		if r.Status().Equal(valueobject.ScreeningMatch) && r.Type().Equal(valueobject.ScreeningTypeSanctions) {
			m.events.Record(event.NewSanctionsMatchDetected(
				m.id, m.tenantID, r.Subject(), r.MatchedEntry().Name(), r.MatchedList(), m.status.String(),
			))
			return
		}
	}
}

// LatestRiskAssessment returns the most recently created assessment.
func (m Merchant) LatestRiskAssessment() (RiskAssessment, bool) {
	if len(m.assessments) == 0 {
		return RiskAssessment{}, false
	}
	latest := m.assessments[0]
	for _, a := range m.assessments[1:] {
		if !a.AssessedAt().Before(latest.AssessedAt()) {
			latest = a
		}
	}
	return latest, true
}

// ScreeningSummary folds the current results into one status. A PEP result
// counts as POTENTIAL_MATCH at most. The boolean is false when the merchant
// has not been screened.
func (m Merchant) ScreeningSummary() (valueobject.ScreeningStatus, bool) {
	if len(m.screeningResults) == 0 {
		return valueobject.ScreeningStatus{}, false
	}
	summary := valueobject.ScreeningClear
	for _, r := range m.screeningResults {
		status := r.Status()
		if r.Type().Equal(valueobject.ScreeningTypePEP) {
			status = status.CapAt(valueobject.ScreeningPotentialMatch)
		}
		summary = summary.Escalate(status)
	}
	return summary, true
}

// DueDiligence returns the due diligence level for the current tier.
func (m Merchant) DueDiligence() valueobject.DueDiligenceLevel {
	return m.riskTier.DueDiligence()
}

// Accessors

func (m Merchant) ID() uuid.UUID                          { return m.id }
func (m Merchant) TenantID() uuid.UUID                    { return m.tenantID }
func (m Merchant) BusinessName() string                   { return m.businessName }
func (m Merchant) RegistrationNumber() string             { return m.registrationNumber }
func (m Merchant) Country() valueobject.CountryCode       { return m.country }
func (m Merchant) Category() valueobject.BusinessCategory { return m.category }
func (m Merchant) Email() string                          { return m.email }
func (m Merchant) Phone() string                          { return m.phone }
func (m Merchant) Address() string                        { return m.address }
func (m Merchant) RiskTier() valueobject.RiskTier         { return m.riskTier }
func (m Merchant) Status() valueobject.MerchantStatus     { return m.status }
func (m Merchant) ReviewNotes() string                    { return m.reviewNotes }
func (m Merchant) ReviewedBy() string                     { return m.reviewedBy }
func (m Merchant) ReviewDate() time.Time                  { return m.reviewDate }
func (m Merchant) DecidedAt() time.Time                   { return m.decidedAt }
func (m Merchant) Version() int                           { return m.version }

// PersistedVersion is the version the merchant was loaded at; zero for a
// merchant that has never been stored.
func (m Merchant) PersistedVersion() int { return m.persistedVersion }
func (m Merchant) CreatedAt() time.Time  { return m.createdAt }
func (m Merchant) UpdatedAt() time.Time  { return m.updatedAt }

func (m Merchant) Owners() []BeneficialOwner {
	return append([]BeneficialOwner(nil), m.owners...)
}

func (m Merchant) Documents() []Document {
	return append([]Document(nil), m.documents...)
}

func (m Merchant) RiskAssessments() []RiskAssessment {
	return append([]RiskAssessment(nil), m.assessments...)
}

func (m Merchant) ScreeningResults() []ScreeningResult {
	return append([]ScreeningResult(nil), m.screeningResults...)
}

// DomainEvents returns the events recorded since the merchant was loaded.
func (m Merchant) DomainEvents() []events.DomainEvent {
	return m.events.Events()
}

// RaisedSanctionsAlert reports whether a pending event flags a sanctions match.
func (m Merchant) RaisedSanctionsAlert() bool {
	return len(m.events.Of(event.TypeSanctionsMatchDetected)) > 0
}

// ClearDomainEvents returns a copy with no pending events.
func (m Merchant) ClearDomainEvents() Merchant {
	updated := m
	updated.events = events.EventCollector{}
	return updated
}
