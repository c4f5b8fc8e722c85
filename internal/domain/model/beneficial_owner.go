package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// BeneficialOwner is an individual with a declared stake in a merchant.
type BeneficialOwner struct {
	createdAt           time.Time
	ownershipPercentage decimal.Decimal
	fullName            string
	nationality         string
	idDocumentNumber    string
	idDocumentType      valueobject.IDDocumentType
	isPEP               bool
	id                  uuid.UUID
}

// NewBeneficialOwner creates an owner. The ownership percentage is kept as
// declared; only negative values are rejected.
func NewBeneficialOwner(
	fullName, nationality string,
	ownership decimal.Decimal,
	idType valueobject.IDDocumentType,
	idNumber string,
	isPEP bool,
) (BeneficialOwner, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return BeneficialOwner{}, fmt.Errorf("owner full name is required")
	}
	if ownership.IsNegative() {
		return BeneficialOwner{}, fmt.Errorf("ownership percentage must not be negative, got %s", ownership)
	}
	return BeneficialOwner{
		id:                  uuid.New(),
		fullName:            fullName,
		nationality:         strings.ToUpper(strings.TrimSpace(nationality)),
		ownershipPercentage: ownership,
		idDocumentType:      idType,
		idDocumentNumber:    strings.TrimSpace(idNumber),
		isPEP:               isPEP,
		createdAt:           time.Now().UTC(),
	}, nil
}

// ReconstructBeneficialOwner rebuilds an owner from persisted data.
func ReconstructBeneficialOwner(
	id uuid.UUID,
	fullName, nationality string,
	ownership decimal.Decimal,
	idType valueobject.IDDocumentType,
	idNumber string,
	isPEP bool,
	createdAt time.Time,
) BeneficialOwner {
	return BeneficialOwner{
		id:                  id,
		fullName:            fullName,
		nationality:         nationality,
		ownershipPercentage: ownership,
		idDocumentType:      idType,
		idDocumentNumber:    idNumber,
		isPEP:               isPEP,
		createdAt:           createdAt,
	}
}

func (o BeneficialOwner) ID() uuid.UUID                              { return o.id }
func (o BeneficialOwner) FullName() string                           { return o.fullName }
func (o BeneficialOwner) Nationality() string                        { return o.nationality }
func (o BeneficialOwner) OwnershipPercentage() decimal.Decimal       { return o.ownershipPercentage }
func (o BeneficialOwner) IDDocumentType() valueobject.IDDocumentType { return o.idDocumentType }
func (o BeneficialOwner) IDDocumentNumber() string                   { return o.idDocumentNumber }
func (o BeneficialOwner) IsPEP() bool                                { return o.isPEP }
func (o BeneficialOwner) CreatedAt() time.Time                       { return o.createdAt }

// ScreeningLabel is the subject label used on this owner's screening results.
func (o BeneficialOwner) ScreeningLabel() string {
	return "Owner: " + o.fullName
}
