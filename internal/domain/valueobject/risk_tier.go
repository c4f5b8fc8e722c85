package valueobject

import "fmt"

// RiskTier is the coarse risk classification derived from a 0-100 score.
type RiskTier struct {
	value string
}

var (
	RiskTierLow    = RiskTier{value: "LOW"}
	RiskTierMedium = RiskTier{value: "MEDIUM"}
	RiskTierHigh   = RiskTier{value: "HIGH"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "LOW":
		return RiskTierLow, nil
	case "MEDIUM":
		return RiskTierMedium, nil
	case "HIGH":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// RiskTierFromScore maps a score onto a tier. 30 and 60 are inclusive upper bounds.
func RiskTierFromScore(score int) RiskTier {
	switch {
	case score <= 30:
		return RiskTierLow
	case score <= 60:
		return RiskTierMedium
	default:
		return RiskTierHigh
	}
}

// DueDiligence returns the due diligence level required for this tier.
func (r RiskTier) DueDiligence() DueDiligenceLevel {
	switch r.value {
	case "LOW":
		return DueDiligenceSimplified
	case "HIGH":
		return DueDiligenceEnhanced
	default:
		return DueDiligenceStandard
	}
}

func (r RiskTier) String() string {
	return r.value
}

func (r RiskTier) IsZero() bool {
	return r.value == ""
}

func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}

// DueDiligenceLevel is the depth of checks a merchant must pass.
type DueDiligenceLevel struct {
	value string
}

var (
	DueDiligenceSimplified = DueDiligenceLevel{value: "SIMPLIFIED"}
	DueDiligenceStandard   = DueDiligenceLevel{value: "STANDARD"}
	DueDiligenceEnhanced   = DueDiligenceLevel{value: "ENHANCED"}
)

func (d DueDiligenceLevel) String() string {
	return d.value
}

func (d DueDiligenceLevel) Equal(other DueDiligenceLevel) bool {
	return d.value == other.value
}
