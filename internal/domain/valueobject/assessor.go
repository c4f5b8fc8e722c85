package valueobject

import "fmt"

// Assessor records whether a risk assessment was computed or entered by a person.
type Assessor struct {
	value string
}

var (
	AssessorSystem = Assessor{value: "SYSTEM"}
	AssessorManual = Assessor{value: "MANUAL"}
)

func AssessorFromString(s string) (Assessor, error) {
	switch s {
	case "SYSTEM":
		return AssessorSystem, nil
	case "MANUAL":
		return AssessorManual, nil
	default:
		return Assessor{}, fmt.Errorf("invalid assessor: %s", s)
	}
}

func (a Assessor) String() string {
	return a.value
}

func (a Assessor) Equal(other Assessor) bool {
	return a.value == other.value
}
