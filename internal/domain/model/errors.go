package model

import "errors"

var (
	// ErrInvalidTransition is returned when a status change is not allowed from
	// the merchant's current status.
	ErrInvalidTransition = errors.New("invalid merchant status transition")
	// ErrAlreadyDecided is returned when automatic decisioning runs twice.
	ErrAlreadyDecided   = errors.New("merchant has already been decided")
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentVerified = errors.New("document already verified")
)
