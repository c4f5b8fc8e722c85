package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// Document is a supporting KYB document. File contents live in object storage;
// the merchant only keeps a reference.
type Document struct {
	uploadedAt        time.Time
	verifiedAt        time.Time
	storageRef        string
	verifiedBy        string
	verificationNotes string
	documentType      valueobject.DocumentType
	verified          bool
	id                uuid.UUID
}

// NewDocument creates a new Document, not yet verified.
func NewDocument(documentType valueobject.DocumentType, storageRef string, now time.Time) (Document, error) {
	storageRef = strings.TrimSpace(storageRef)
	if storageRef == "" {
		return Document{}, fmt.Errorf("document storage reference is required")
	}
	return Document{
		id:           uuid.New(),
		documentType: documentType,
		storageRef:   storageRef,
		uploadedAt:   now,
	}, nil
}

// ReconstructDocument rebuilds a document from persisted data.
func ReconstructDocument(
	id uuid.UUID,
	documentType valueobject.DocumentType,
	storageRef string,
	uploadedAt time.Time,
	verified bool,
	verifiedBy string,
	verifiedAt time.Time,
	notes string,
) Document {
	return Document{
		id:                id,
		documentType:      documentType,
		storageRef:        storageRef,
		uploadedAt:        uploadedAt,
		verified:          verified,
		verifiedBy:        verifiedBy,
		verifiedAt:        verifiedAt,
		verificationNotes: notes,
	}
}

func (d Document) verify(verifier, notes string, now time.Time) (Document, error) {
	if d.verified {
		return Document{}, fmt.Errorf("%w: %s", ErrDocumentVerified, d.id)
	}
	if strings.TrimSpace(verifier) == "" {
		return Document{}, fmt.Errorf("verifier is required")
	}
	updated := d
	updated.verified = true
	updated.verifiedBy = verifier
	updated.verifiedAt = now
	updated.verificationNotes = notes
	return updated, nil
}

func (d Document) ID() uuid.UUID                  { return d.id }
func (d Document) Type() valueobject.DocumentType { return d.documentType }
func (d Document) StorageRef() string             { return d.storageRef }
func (d Document) UploadedAt() time.Time          { return d.uploadedAt }
func (d Document) Verified() bool                 { return d.verified }
func (d Document) VerifiedBy() string             { return d.verifiedBy }
func (d Document) VerifiedAt() time.Time          { return d.verifiedAt }
func (d Document) VerificationNotes() string      { return d.verificationNotes }
