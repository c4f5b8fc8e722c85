package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// ScreeningResult is the outcome of one (subject, list) check.
type ScreeningResult struct {
	screenedAt    time.Time
	subject       string
	matchedEntry  valueobject.ReferenceEntry
	screeningType valueobject.ScreeningType
	status        valueobject.ScreeningStatus
	id            uuid.UUID
}

// NewScreeningResult records a check. matched is the zero entry for CLEAR results.
func NewScreeningResult(
	screeningType valueobject.ScreeningType,
	subject string,
	status valueobject.ScreeningStatus,
	matched valueobject.ReferenceEntry,
	now time.Time,
) ScreeningResult {
	return ScreeningResult{
		id:            uuid.New(),
		screeningType: screeningType,
		subject:       subject,
		status:        status,
		matchedEntry:  matched,
		screenedAt:    now,
	}
}

// ReconstructScreeningResult rebuilds a result from persisted data.
func ReconstructScreeningResult(
	id uuid.UUID,
	screeningType valueobject.ScreeningType,
	subject string,
	status valueobject.ScreeningStatus,
	matched valueobject.ReferenceEntry,
	screenedAt time.Time,
) ScreeningResult {
	return ScreeningResult{
		id:            id,
		screeningType: screeningType,
		subject:       subject,
		status:        status,
		matchedEntry:  matched,
		screenedAt:    screenedAt,
	}
}

func (r ScreeningResult) ID() uuid.UUID                            { return r.id }
func (r ScreeningResult) Type() valueobject.ScreeningType          { return r.screeningType }
func (r ScreeningResult) Subject() string                          { return r.subject }
func (r ScreeningResult) Status() valueobject.ScreeningStatus      { return r.status }
func (r ScreeningResult) MatchedEntry() valueobject.ReferenceEntry { return r.matchedEntry }
func (r ScreeningResult) ScreenedAt() time.Time                    { return r.screenedAt }

// MatchedList is the source of the matched entry, empty when nothing matched.
func (r ScreeningResult) MatchedList() string {
	return r.matchedEntry.Source()
}
