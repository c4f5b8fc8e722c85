package valueobject

import (
	"fmt"
	"strings"
)

// BusinessCategory is the merchant's line of business. It drives the category
// weight in risk scoring.
type BusinessCategory struct {
	value string
}

var (
	CategoryEcommerce       = BusinessCategory{value: "ECOMMERCE"}
	CategoryDigitalServices = BusinessCategory{value: "DIGITAL_SERVICES"}
	CategoryGaming          = BusinessCategory{value: "GAMING"}
	CategoryRemittances     = BusinessCategory{value: "REMITTANCES"}
	CategoryCrypto          = BusinessCategory{value: "CRYPTO"}
	CategoryLuxury          = BusinessCategory{value: "LUXURY"}
)

var categoryDisplayNames = map[string]string{
	"ECOMMERCE":        "E-commerce (General)",
	"DIGITAL_SERVICES": "Digital Services",
	"GAMING":           "Gaming",
	"REMITTANCES":      "Remittances/Money Transfer",
	"CRYPTO":           "Crypto-adjacent",
	"LUXURY":           "High-value Luxury",
}

// BusinessCategoryFromString parses a category code. Codes are case-insensitive.
func BusinessCategoryFromString(s string) (BusinessCategory, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if _, ok := categoryDisplayNames[code]; !ok {
		return BusinessCategory{}, fmt.Errorf("invalid business category: %q", s)
	}
	return BusinessCategory{value: code}, nil
}

// String returns the category code.
func (c BusinessCategory) String() string {
	return c.value
}

// DisplayName returns the human-readable label, or the code when none is known.
func (c BusinessCategory) DisplayName() string {
	if name, ok := categoryDisplayNames[c.value]; ok {
		return name
	}
	return c.value
}

func (c BusinessCategory) IsZero() bool {
	return c.value == ""
}

func (c BusinessCategory) Equal(other BusinessCategory) bool {
	return c.value == other.value
}
