package valueobject

import "fmt"

// MerchantStatus is the onboarding disposition of a merchant application.
type MerchantStatus struct {
	value string
}

var (
	MerchantStatusPending     = MerchantStatus{value: "PENDING"}
	MerchantStatusApproved    = MerchantStatus{value: "APPROVED"}
	MerchantStatusRejected    = MerchantStatus{value: "REJECTED"}
	MerchantStatusUnderReview = MerchantStatus{value: "UNDER_REVIEW"}
)

// AllMerchantStatuses lists every status in display order.
var AllMerchantStatuses = []MerchantStatus{
	MerchantStatusPending,
	MerchantStatusApproved,
	MerchantStatusRejected,
	MerchantStatusUnderReview,
}

// MerchantStatusFromString reconstructs a MerchantStatus from its string representation.
func MerchantStatusFromString(s string) (MerchantStatus, error) {
	for _, st := range AllMerchantStatuses {
		if st.value == s {
			return st, nil
		}
	}
	return MerchantStatus{}, fmt.Errorf("invalid merchant status: %s", s)
}

// IsTerminal reports whether no further transition is allowed.
func (s MerchantStatus) IsTerminal() bool {
	return s == MerchantStatusApproved || s == MerchantStatusRejected
}

// AwaitsReview reports whether a human reviewer may still decide the application.
func (s MerchantStatus) AwaitsReview() bool {
	return s == MerchantStatusPending || s == MerchantStatusUnderReview
}

func (s MerchantStatus) String() string {
	return s.value
}

func (s MerchantStatus) IsZero() bool {
	return s.value == ""
}

func (s MerchantStatus) Equal(other MerchantStatus) bool {
	return s.value == other.value
}
