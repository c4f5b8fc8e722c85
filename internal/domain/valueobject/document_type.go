package valueobject

import (
	"fmt"
	"strings"
)

// DocumentType classifies a KYB supporting document.
type DocumentType struct {
	value string
}

var (
	DocumentBusinessLicense    = DocumentType{value: "BUSINESS_LICENSE"}
	DocumentRegistrationCert   = DocumentType{value: "REGISTRATION_CERT"}
	DocumentIDProof            = DocumentType{value: "ID_PROOF"}
	DocumentAddressProof       = DocumentType{value: "ADDRESS_PROOF"}
	DocumentFinancialStatement = DocumentType{value: "FINANCIAL_STATEMENT"}
)

func DocumentTypeFromString(s string) (DocumentType, error) {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case "BUSINESS_LICENSE", "REGISTRATION_CERT", "ID_PROOF", "ADDRESS_PROOF", "FINANCIAL_STATEMENT":
		return DocumentType{value: v}, nil
	default:
		return DocumentType{}, fmt.Errorf("invalid document type: %q", s)
	}
}

func (d DocumentType) String() string {
	return d.value
}

func (d DocumentType) Equal(other DocumentType) bool {
	return d.value == other.value
}

// IDDocumentType is the identity document a beneficial owner declared.
type IDDocumentType struct {
	value string
}

var (
	IDDocumentPassport   = IDDocumentType{value: "PASSPORT"}
	IDDocumentNationalID = IDDocumentType{value: "NATIONAL_ID"}
)

// IDDocumentTypeFromString parses an ID document type. An empty string yields
// the zero value, since owners may register without one.
func IDDocumentTypeFromString(s string) (IDDocumentType, error) {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case "":
		return IDDocumentType{}, nil
	case "PASSPORT", "NATIONAL_ID":
		return IDDocumentType{value: v}, nil
	default:
		return IDDocumentType{}, fmt.Errorf("invalid ID document type: %q", s)
	}
}

func (d IDDocumentType) String() string {
	return d.value
}

func (d IDDocumentType) IsZero() bool {
	return d.value == ""
}
