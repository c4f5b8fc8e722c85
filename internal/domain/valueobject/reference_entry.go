package valueobject

import (
	"errors"
	"strings"
)

// ReferenceEntry is one record of a sanctions or PEP list.
type ReferenceEntry struct {
	name     string
	list     string
	position string
	country  string
}

// NewReferenceEntry creates a list entry. Sanctions entries carry the source
// list; PEP entries carry the public position and country.
func NewReferenceEntry(name, list, position, country string) (ReferenceEntry, error) {
	if strings.TrimSpace(name) == "" {
		return ReferenceEntry{}, errors.New("reference entry name is required")
	}
	return ReferenceEntry{
		name:     strings.TrimSpace(name),
		list:     strings.TrimSpace(list),
		position: strings.TrimSpace(position),
		country:  strings.TrimSpace(country),
	}, nil
}

func (e ReferenceEntry) Name() string     { return e.name }
func (e ReferenceEntry) List() string     { return e.list }
func (e ReferenceEntry) Position() string { return e.position }
func (e ReferenceEntry) Country() string  { return e.country }

// Source names where the entry came from: the list for sanctions entries and
// the position for PEP entries.
func (e ReferenceEntry) Source() string {
	if e.list != "" {
		return e.list
	}
	return e.position
}

func (e ReferenceEntry) IsZero() bool {
	return e.name == ""
}

func (e ReferenceEntry) Equal(other ReferenceEntry) bool {
	return e == other
}
