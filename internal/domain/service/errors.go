package service

import "errors"

var (
	// ErrEmptyName is returned when a blank name is submitted for screening.
	ErrEmptyName = errors.New("screening name must not be empty")
	// ErrUnsupportedListType is returned for list types with no reference list.
	ErrUnsupportedListType = errors.New("unsupported screening list type")
)
