package valueobject

import "fmt"

// ScreeningType identifies the reference list a check ran against.
type ScreeningType struct {
	value string
}

var (
	ScreeningTypeSanctions = ScreeningType{value: "SANCTIONS"}
	ScreeningTypePEP       = ScreeningType{value: "PEP"}
	// ScreeningTypeAdverseMedia is accepted when reading stored results only;
	// there is no adverse media list to screen against.
	ScreeningTypeAdverseMedia = ScreeningType{value: "ADVERSE_MEDIA"}
)

func ScreeningTypeFromString(s string) (ScreeningType, error) {
	switch s {
	case "SANCTIONS":
		return ScreeningTypeSanctions, nil
	case "PEP":
		return ScreeningTypePEP, nil
	case "ADVERSE_MEDIA":
		return ScreeningTypeAdverseMedia, nil
	default:
		return ScreeningType{}, fmt.Errorf("invalid screening type: %s", s)
	}
}

func (t ScreeningType) String() string {
	return t.value
}

func (t ScreeningType) IsZero() bool {
	return t.value == ""
}

func (t ScreeningType) Equal(other ScreeningType) bool {
	return t.value == other.value
}
