package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// RiskWeights are the per-category and per-country base weights (0-100).
// Codes missing from a table fall back to its default.
type RiskWeights struct {
	Categories      map[string]int
	Countries       map[string]int
	DefaultCategory int
	DefaultCountry  int
}

// DefaultRiskWeights returns the production weight tables.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		Categories: map[string]int{
			"ECOMMERCE":        10,
			"DIGITAL_SERVICES": 15,
			"GAMING":           40,
			"REMITTANCES":      80,
			"CRYPTO":           90,
			"LUXURY":           50,
		},
		Countries: map[string]int{
			"SG": 10,
			"MY": 20,
			"TH": 25,
			"PH": 30,
			"VN": 40,
			"ID": 50,
		},
		DefaultCategory: 50,
		DefaultCountry:  30,
	}
}

func (w RiskWeights) category(c valueobject.BusinessCategory) int {
	if v, ok := w.Categories[c.String()]; ok {
		return v
	}
	return w.DefaultCategory
}

func (w RiskWeights) country(c valueobject.CountryCode) int {
	if v, ok := w.Countries[c.String()]; ok {
		return v
	}
	return w.DefaultCountry
}

var (
	categoryShare = decimal.RequireFromString("0.4")
	countryShare  = decimal.RequireFromString("0.3")
	minorityStake = decimal.NewFromInt(25)
)

const (
	highRiskCategoryWeight   = 80
	mediumRiskCategoryWeight = 40
	higherRiskCountryWeight  = 40

	complexOwnershipPoints  = 15
	minorityOwnershipPoints = 8
	pepPoints               = 15

	maxScore = 100
)

// RiskScore is the outcome of scoring one merchant.
type RiskScore struct {
	Tier    valueobject.RiskTier
	Factors []string
	Score   int
}

// RiskScorer computes a merchant's KYB risk score. It is a pure function of
// the merchant snapshot and the weight tables.
type RiskScorer struct {
	weights RiskWeights
}

// NewRiskScorer creates a new RiskScorer instance.
func NewRiskScorer(weights RiskWeights) *RiskScorer {
	return &RiskScorer{weights: weights}
}

// Score weighs category (40%) and country (30%), then adds fixed points for
// ownership complexity and PEP exposure. Factors are ordered category,
// country, ownership, PEP.
func (s *RiskScorer) Score(m model.Merchant) RiskScore {
	factors := make([]string, 0, 4)

	categoryWeight := s.weights.category(m.Category())
	total := decimal.NewFromInt(int64(categoryWeight)).Mul(categoryShare)
	switch {
	case categoryWeight >= highRiskCategoryWeight:
		factors = append(factors, "High-risk business category: "+m.Category().DisplayName())
	case categoryWeight >= mediumRiskCategoryWeight:
		factors = append(factors, "Medium-risk business category: "+m.Category().DisplayName())
	}

	countryWeight := s.weights.country(m.Country())
	total = total.Add(decimal.NewFromInt(int64(countryWeight)).Mul(countryShare))
	if countryWeight >= higherRiskCountryWeight {
		factors = append(factors, "Higher-risk jurisdiction: "+m.Country().DisplayName())
	}

	minority, peps := 0, 0
	for _, o := range m.Owners() {
		if o.OwnershipPercentage().LessThan(minorityStake) {
			minority++
		}
		if o.IsPEP() {
			peps++
		}
	}

	switch {
	case minority > 3:
		total = total.Add(decimal.NewFromInt(complexOwnershipPoints))
		factors = append(factors, fmt.Sprintf("Complex ownership structure: %d shareholders with <25%% ownership", minority))
	case minority > 1:
		total = total.Add(decimal.NewFromInt(minorityOwnershipPoints))
		factors = append(factors, fmt.Sprintf("Multiple minority shareholders: %d", minority))
	}

	if peps > 0 {
		total = total.Add(decimal.NewFromInt(pepPoints))
		factors = append(factors, fmt.Sprintf("PEP involvement: %d politically exposed person(s)", peps))
	}

	score := int(total.Truncate(0).IntPart())
	if score > maxScore {
		score = maxScore
	}

	return RiskScore{
		Score:   score,
		Factors: factors,
		Tier:    valueobject.RiskTierFromScore(score),
	}
}

// RequiresBeneficialOwners reports whether registration must declare owners.
// It depends only on the category and country weights, not on the final score.
func (s *RiskScorer) RequiresBeneficialOwners(category valueobject.BusinessCategory, country valueobject.CountryCode) bool {
	return s.weights.category(category) >= mediumRiskCategoryWeight ||
		s.weights.country(country) >= higherRiskCountryWeight
}
