package valueobject

import (
	"fmt"
	"strings"
)

// CountryCode is an ISO 3166-1 alpha-2 code, stored upper-case.
type CountryCode struct {
	value string
}

var countryDisplayNames = map[string]string{
	"SG": "Singapore",
	"PH": "Philippines",
	"ID": "Indonesia",
	"MY": "Malaysia",
	"TH": "Thailand",
	"VN": "Vietnam",
}

// NewCountryCode validates and normalizes a two-letter country code.
func NewCountryCode(s string) (CountryCode, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 2 {
		return CountryCode{}, fmt.Errorf("invalid country code: %q", s)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return CountryCode{}, fmt.Errorf("invalid country code: %q", s)
		}
	}
	return CountryCode{value: code}, nil
}

// MustCountryCode is NewCountryCode for constants and tests.
func MustCountryCode(s string) CountryCode {
	c, err := NewCountryCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CountryCode) String() string {
	return c.value
}

// DisplayName returns the country name for onboarding jurisdictions, otherwise the code.
func (c CountryCode) DisplayName() string {
	if name, ok := countryDisplayNames[c.value]; ok {
		return name
	}
	return c.value
}

// IsSupportedJurisdiction reports whether merchants from this country can be onboarded
// without manual jurisdiction checks.
func (c CountryCode) IsSupportedJurisdiction() bool {
	_, ok := countryDisplayNames[c.value]
	return ok
}

func (c CountryCode) IsZero() bool {
	return c.value == ""
}

func (c CountryCode) Equal(other CountryCode) bool {
	return c.value == other.value
}
