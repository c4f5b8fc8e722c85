package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

const (
	// MatchThreshold is the similarity at or above which a fuzzy hit is a MATCH.
	MatchThreshold = 0.8
	// PotentialMatchThreshold is the similarity at or above which a fuzzy hit needs review.
	PotentialMatchThreshold = 0.6
)

// ReferenceListSource supplies the current watchlists. Implementations may
// swap lists at runtime; the screener reads each list once per pass.
type ReferenceListSource interface {
	Entries(listType valueobject.ScreeningType) []valueobject.ReferenceEntry
}

// StaticReferenceLists is a fixed in-memory ReferenceListSource.
type StaticReferenceLists struct {
	sanctions []valueobject.ReferenceEntry
	pep       []valueobject.ReferenceEntry
}

// NewStaticReferenceLists creates a new StaticReferenceLists instance.
func NewStaticReferenceLists(sanctions, pep []valueobject.ReferenceEntry) StaticReferenceLists {
	return StaticReferenceLists{sanctions: sanctions, pep: pep}
}

func (l StaticReferenceLists) Entries(listType valueobject.ScreeningType) []valueobject.ReferenceEntry {
	switch listType {
	case valueobject.ScreeningTypeSanctions:
		return l.sanctions
	case valueobject.ScreeningTypePEP:
		return l.pep
	default:
		return nil
	}
}

// Match is the outcome of screening one name against one list.
type Match struct {
	Entry      valueobject.ReferenceEntry
	Status     valueobject.ScreeningStatus
	Similarity float64
}

// MerchantScreening holds every check of a merchant screening pass, in the
// order performed, and the aggregate status.
type MerchantScreening struct {
	Overall valueobject.ScreeningStatus
	Results []model.ScreeningResult
}

// Screener matches names against sanctions and PEP lists.
type Screener struct {
	lists ReferenceListSource
}

// NewScreener creates a new Screener instance.
func NewScreener(lists ReferenceListSource) *Screener {
	return &Screener{lists: lists}
}

// Screen checks name against one list. A substring hit in either direction
// is an immediate MATCH on the first such entry. Otherwise the most similar
// entry decides: >= 0.8 MATCH, >= 0.6 POTENTIAL_MATCH, else CLEAR.
func (s *Screener) Screen(name string, listType valueobject.ScreeningType) (Match, error) {
	if !listType.Equal(valueobject.ScreeningTypeSanctions) && !listType.Equal(valueobject.ScreeningTypePEP) {
		return Match{}, fmt.Errorf("%w: %q", ErrUnsupportedListType, listType.String())
	}
	return screen(name, s.lists.Entries(listType))
}

func screen(name string, entries []valueobject.ReferenceEntry) (Match, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Match{}, ErrEmptyName
	}

	var (
		best      valueobject.ReferenceEntry
		bestScore float64
	)
	for _, entry := range entries {
		candidate := strings.ToLower(entry.Name())
		if strings.Contains(normalized, candidate) || strings.Contains(candidate, normalized) {
			return Match{Status: valueobject.ScreeningMatch, Entry: entry, Similarity: 1.0}, nil
		}
		if score := Similarity(normalized, candidate); score > bestScore {
			best, bestScore = entry, score
		}
	}

	switch {
	case bestScore >= MatchThreshold:
		return Match{Status: valueobject.ScreeningMatch, Entry: best, Similarity: bestScore}, nil
	case bestScore >= PotentialMatchThreshold:
		return Match{Status: valueobject.ScreeningPotentialMatch, Entry: best, Similarity: bestScore}, nil
	default:
		return Match{Status: valueobject.ScreeningClear, Similarity: bestScore}, nil
	}
}

// ScreenMerchant screens the business name against sanctions, then each owner
// against sanctions and PEP, in owner order. Both lists are read once so the
// whole pass sees one snapshot. A PEP hit alone escalates the aggregate to
// POTENTIAL_MATCH at most: PEP exposure triggers review, never automatic
// rejection.
func (s *Screener) ScreenMerchant(m model.Merchant, now time.Time) (MerchantScreening, error) {
	sanctionsList := s.lists.Entries(valueobject.ScreeningTypeSanctions)
	pepList := s.lists.Entries(valueobject.ScreeningTypePEP)

	owners := m.Owners()
	results := make([]model.ScreeningResult, 0, 1+2*len(owners))

	business, err := screen(m.BusinessName(), sanctionsList)
	if err != nil {
		return MerchantScreening{}, fmt.Errorf("failed to screen business name: %w", err)
	}
	results = append(results, model.NewScreeningResult(
		valueobject.ScreeningTypeSanctions, m.BusinessName(), business.Status, business.Entry, now))
	overall := business.Status

	for _, o := range owners {
		sanctions, err := screen(o.FullName(), sanctionsList)
		if err != nil {
			return MerchantScreening{}, fmt.Errorf("failed to screen owner %s: %w", o.ID(), err)
		}
		results = append(results, model.NewScreeningResult(
			valueobject.ScreeningTypeSanctions, o.ScreeningLabel(), sanctions.Status, sanctions.Entry, now))
		overall = overall.Escalate(sanctions.Status)

		pep, err := screen(o.FullName(), pepList)
		if err != nil {
			return MerchantScreening{}, fmt.Errorf("failed to screen owner %s: %w", o.ID(), err)
		}
		results = append(results, model.NewScreeningResult(
			valueobject.ScreeningTypePEP, o.ScreeningLabel(), pep.Status, pep.Entry, now))
		overall = overall.Escalate(pep.Status.CapAt(valueobject.ScreeningPotentialMatch))
	}

	return MerchantScreening{Overall: overall, Results: results}, nil
}
