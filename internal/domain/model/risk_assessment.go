package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// RiskAssessment is one scoring pass over a merchant. Assessments accumulate;
// the latest one drives auto-approval.
type RiskAssessment struct {
	assessedAt time.Time
	assessedBy valueobject.Assessor
	tier       valueobject.RiskTier
	assessor   string
	notes      string
	factors    []string
	score      int
	id         uuid.UUID
}

// NewRiskAssessment records a score. The tier is derived from the score.
func NewRiskAssessment(
	score int,
	factors []string,
	assessedBy valueobject.Assessor,
	assessor, notes string,
	now time.Time,
) (RiskAssessment, error) {
	if score < 0 || score > 100 {
		return RiskAssessment{}, fmt.Errorf("risk score must be between 0 and 100, got %d", score)
	}
	return RiskAssessment{
		id:         uuid.New(),
		score:      score,
		factors:    append([]string(nil), factors...),
		tier:       valueobject.RiskTierFromScore(score),
		assessedBy: assessedBy,
		assessor:   assessor,
		notes:      notes,
		assessedAt: now,
	}, nil
}

// ReconstructRiskAssessment rebuilds an assessment from persisted data.
func ReconstructRiskAssessment(
	id uuid.UUID,
	score int,
	factors []string,
	assessedBy valueobject.Assessor,
	assessor, notes string,
	assessedAt time.Time,
) RiskAssessment {
	return RiskAssessment{
		id:         id,
		score:      score,
		factors:    factors,
		tier:       valueobject.RiskTierFromScore(score),
		assessedBy: assessedBy,
		assessor:   assessor,
		notes:      notes,
		assessedAt: assessedAt,
	}
}

func (a RiskAssessment) ID() uuid.UUID                    { return a.id }
func (a RiskAssessment) Score() int                       { return a.score }
func (a RiskAssessment) Tier() valueobject.RiskTier       { return a.tier }
func (a RiskAssessment) AssessedBy() valueobject.Assessor { return a.assessedBy }
func (a RiskAssessment) Assessor() string                 { return a.assessor }
func (a RiskAssessment) Notes() string                    { return a.notes }
func (a RiskAssessment) AssessedAt() time.Time            { return a.assessedAt }

// Factors returns a copy of the explanatory factors in display order.
func (a RiskAssessment) Factors() []string {
	return append([]string(nil), a.factors...)
}
