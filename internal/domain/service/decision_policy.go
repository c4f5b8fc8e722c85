package service

import (
	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

const (
	AutoRejectNote  = "Auto-rejected due to sanctions match."
	AutoApproveNote = "Auto-approved: Low risk, clear screening."
)

// Disposition is the automatic outcome of a decisioning pass.
type Disposition struct {
	Status valueobject.MerchantStatus
	Note   string
}

// DecisionPolicy combines the risk tier and the aggregate screening status.
// No I/O, no side effects.
type DecisionPolicy struct{}

// NewDecisionPolicy creates a new DecisionPolicy instance.
func NewDecisionPolicy() DecisionPolicy {
	return DecisionPolicy{}
}

// CanAutoApprove requires CLEAR screening and a latest risk assessment in the
// LOW tier. A merchant without any assessment is never auto-approved.
func (DecisionPolicy) CanAutoApprove(m model.Merchant, screening valueobject.ScreeningStatus) bool {
	if !screening.Equal(valueobject.ScreeningClear) {
		return false
	}
	latest, ok := m.LatestRiskAssessment()
	if !ok {
		return false
	}
	return latest.Tier().Equal(valueobject.RiskTierLow)
}

// Decide applies, in order:
//  1. MATCH -> REJECTED
//  2. POTENTIAL_MATCH -> UNDER_REVIEW
//  3. auto-approvable -> APPROVED
//  4. otherwise PENDING
func (p DecisionPolicy) Decide(m model.Merchant, screening valueobject.ScreeningStatus) Disposition {
	switch {
	case screening.Equal(valueobject.ScreeningMatch):
		return Disposition{Status: valueobject.MerchantStatusRejected, Note: AutoRejectNote}
	case screening.Equal(valueobject.ScreeningPotentialMatch):
		return Disposition{Status: valueobject.MerchantStatusUnderReview}
	case p.CanAutoApprove(m, screening):
		return Disposition{Status: valueobject.MerchantStatusApproved, Note: AutoApproveNote}
	default:
		return Disposition{Status: valueobject.MerchantStatusPending}
	}
}
