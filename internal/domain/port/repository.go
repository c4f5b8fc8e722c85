package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

var (
	// ErrMerchantNotFound is returned by lookups that match no merchant.
	ErrMerchantNotFound = errors.New("merchant not found")
	// ErrDuplicateRegistration is returned when a registration number is already on file.
	ErrDuplicateRegistration = errors.New("registration number already registered")
	// ErrConcurrentUpdate is returned when the stored merchant changed after it was loaded.
	ErrConcurrentUpdate = errors.New("merchant was modified concurrently")
)

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	// Save persists the merchant with its owners, documents, risk assessments,
	// current screening results and pending domain events in one transaction.
	// Updates fail with ErrConcurrentUpdate when the stored version moved on.
	Save(ctx context.Context, m model.Merchant) error
	// FindByID retrieves a merchant by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (model.Merchant, error)
	// FindByRegistrationNumber retrieves a merchant by its business registration number.
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (model.Merchant, error)
	ExistsByRegistrationNumber(ctx context.Context, registrationNumber string) (bool, error)
	// Stats counts merchants by status and by risk tier.
	Stats(ctx context.Context) (MerchantStats, error)
	// ListByStatuses returns merchants in any of statuses, newest first.
	ListByStatuses(ctx context.Context, statuses []valueobject.MerchantStatus, limit int) ([]model.Merchant, error)
	// ListRecentlyUpdated returns the most recently changed merchants.
	ListRecentlyUpdated(ctx context.Context, limit int) ([]model.Merchant, error)
	// ListForRescreen pages through non-rejected merchants ordered by ID,
	// starting after the given ID (uuid.Nil for the first page).
	ListForRescreen(ctx context.Context, after uuid.UUID, limit int) ([]model.Merchant, error)
}

// MerchantStats is the dashboard breakdown of the merchant population.
type MerchantStats struct {
	ByStatus map[valueobject.MerchantStatus]int
	ByTier   map[valueobject.RiskTier]int
	Total    int
}

// DecisionMetrics records decisioning outcomes. Implementations must be safe
// for concurrent use.
type DecisionMetrics interface {
	ObserveDecision(status valueobject.MerchantStatus, tier valueobject.RiskTier, score int)
	ObserveScreening(listType valueobject.ScreeningType, status valueobject.ScreeningStatus)
	ObserveEvaluation(operation string, elapsed time.Duration)
}
