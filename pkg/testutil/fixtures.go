package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	TestReviewerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestMerchantID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestTenantID   = uuid.MustParse("00000000-0000-0000-0000-000000000010")
)
