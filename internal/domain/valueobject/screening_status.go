package valueobject

import "fmt"

// ScreeningStatus is the outcome of a watchlist check. Statuses are ranked:
// MATCH is more severe than POTENTIAL_MATCH, which is more severe than CLEAR.
type ScreeningStatus struct {
	value    string
	severity int
}

var (
	ScreeningClear          = ScreeningStatus{value: "CLEAR", severity: 0}
	ScreeningPotentialMatch = ScreeningStatus{value: "POTENTIAL_MATCH", severity: 1}
	ScreeningMatch          = ScreeningStatus{value: "MATCH", severity: 2}
)

// ScreeningStatusFromString reconstructs a ScreeningStatus from its string representation.
func ScreeningStatusFromString(s string) (ScreeningStatus, error) {
	switch s {
	case "CLEAR":
		return ScreeningClear, nil
	case "POTENTIAL_MATCH":
		return ScreeningPotentialMatch, nil
	case "MATCH":
		return ScreeningMatch, nil
	default:
		return ScreeningStatus{}, fmt.Errorf("invalid screening status: %s", s)
	}
}

// Severity returns the rank of the status; higher is more severe.
func (s ScreeningStatus) Severity() int {
	return s.severity
}

// MoreSevereThan reports whether s outranks other.
func (s ScreeningStatus) MoreSevereThan(other ScreeningStatus) bool {
	return s.severity > other.severity
}

// Escalate returns the more severe of s and other. An aggregate folded with
// Escalate never downgrades.
func (s ScreeningStatus) Escalate(other ScreeningStatus) ScreeningStatus {
	if other.MoreSevereThan(s) {
		return other
	}
	return s
}

// CapAt returns s, or limit when s is more severe than limit.
func (s ScreeningStatus) CapAt(limit ScreeningStatus) ScreeningStatus {
	if s.MoreSevereThan(limit) {
		return limit
	}
	return s
}

func (s ScreeningStatus) String() string {
	return s.value
}

func (s ScreeningStatus) IsZero() bool {
	return s.value == ""
}

func (s ScreeningStatus) Equal(other ScreeningStatus) bool {
	return s.value == other.value
}
