package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

var screenedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func entry(t *testing.T, name, list, position, country string) valueobject.ReferenceEntry {
	t.Helper()
	e, err := valueobject.NewReferenceEntry(name, list, position, country)
	require.NoError(t, err)
	return e
}

func demoLists(t *testing.T) service.StaticReferenceLists {
	t.Helper()
	return service.NewStaticReferenceLists(
		[]valueobject.ReferenceEntry{
			entry(t, "Shell Corp Ltd", "OFAC SDN", "", ""),
			entry(t, "Suspicious Trading Co", "UN Sanctions", "", ""),
			entry(t, "Blacklisted Enterprises", "EU Sanctions", "", ""),
			entry(t, "Fraudulent Services Inc", "OFAC SDN", "", ""),
			entry(t, "Money Laundering Network", "FATF Blacklist", "", ""),
			entry(t, "Terrorist Funding Corp", "UN Sanctions", "", ""),
		},
		[]valueobject.ReferenceEntry{
			entry(t, "John Politician", "", "Former Minister", "PH"),
			entry(t, "Maria Governor", "", "Regional Governor", "ID"),
			entry(t, "Robert Senator", "", "Senator", "SG"),
		},
	)
}

type ownerSpec struct {
	name string
	pct  string
	pep  bool
}

func merchant(t *testing.T, name, category, country string, owners ...ownerSpec) model.Merchant {
	t.Helper()
	cat, err := valueobject.BusinessCategoryFromString(category)
	require.NoError(t, err)
	cc, err := valueobject.NewCountryCode(country)
	require.NoError(t, err)

	bos := make([]model.BeneficialOwner, 0, len(owners))
	for _, o := range owners {
		bo, err := model.NewBeneficialOwner(o.name, country, decimal.RequireFromString(o.pct), valueobject.IDDocumentPassport, "X1", o.pep)
		require.NoError(t, err)
		bos = append(bos, bo)
	}

	m, err := model.NewMerchant(uuid.New(), model.MerchantProfile{
		BusinessName:       name,
		RegistrationNumber: "REG-" + uuid.NewString()[:8],
		Email:              "kyb@example.com",
		Country:            cc,
		Category:           cat,
	}, bos, nil, screenedAt)
	require.NoError(t, err)
	return m
}
