package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

// --- Mock implementations ---

// mockMerchantRepository implements port.MerchantRepository in memory.
type mockMerchantRepository struct {
	mu        sync.Mutex
	merchants map[uuid.UUID]model.Merchant
	saved     []model.Merchant
	saveFunc  func(ctx context.Context, m model.Merchant) error
	listErr   error
}

func newMockRepo(seed ...model.Merchant) *mockMerchantRepository {
	r := &mockMerchantRepository{merchants: make(map[uuid.UUID]model.Merchant)}
	for _, m := range seed {
		r.merchants[m.ID()] = m.ClearDomainEvents()
	}
	return r
}

func (r *mockMerchantRepository) Save(ctx context.Context, m model.Merchant) error {
	if r.saveFunc != nil {
		if err := r.saveFunc(ctx, m); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, m)
	r.merchants[m.ID()] = m.ClearDomainEvents()
	return nil
}

func (r *mockMerchantRepository) FindByID(_ context.Context, id uuid.UUID) (model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return model.Merchant{}, fmt.Errorf("%w: %s", port.ErrMerchantNotFound, id)
	}
	return m, nil
}

func (r *mockMerchantRepository) FindByRegistrationNumber(_ context.Context, regNo string) (model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.merchants {
		if m.RegistrationNumber() == regNo {
			return m, nil
		}
	}
	return model.Merchant{}, fmt.Errorf("%w: %s", port.ErrMerchantNotFound, regNo)
}

func (r *mockMerchantRepository) ExistsByRegistrationNumber(ctx context.Context, regNo string) (bool, error) {
	_, err := r.FindByRegistrationNumber(ctx, regNo)
	return err == nil, nil
}

func (r *mockMerchantRepository) Stats(_ context.Context) (port.MerchantStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := port.MerchantStats{
		ByStatus: make(map[valueobject.MerchantStatus]int),
		ByTier:   make(map[valueobject.RiskTier]int),
	}
	for _, m := range r.merchants {
		stats.Total++
		stats.ByStatus[m.Status()]++
		stats.ByTier[m.RiskTier()]++
	}
	return stats, nil
}

func (r *mockMerchantRepository) sorted(less func(a, b model.Merchant) bool) []model.Merchant {
	out := make([]model.Merchant, 0, len(r.merchants))
	for _, m := range r.merchants {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *mockMerchantRepository) ListByStatuses(_ context.Context, statuses []valueobject.MerchantStatus, limit int) ([]model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Merchant
	for _, m := range r.sorted(func(a, b model.Merchant) bool { return a.CreatedAt().After(b.CreatedAt()) }) {
		for _, s := range statuses {
			if m.Status().Equal(s) {
				out = append(out, m)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mockMerchantRepository) ListRecentlyUpdated(_ context.Context, limit int) ([]model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(a, b model.Merchant) bool { return a.UpdatedAt().After(b.UpdatedAt()) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mockMerchantRepository) ListForRescreen(_ context.Context, after uuid.UUID, limit int) ([]model.Merchant, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Merchant
	for _, m := range r.sorted(func(a, b model.Merchant) bool { return a.ID().String() < b.ID().String() }) {
		if m.Status().Equal(valueobject.MerchantStatusRejected) || m.ID().String() <= after.String() {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// recordingMetrics implements port.DecisionMetrics for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	decisions  []string
	screenings []string
	operations []string
}

func (m *recordingMetrics) ObserveDecision(status valueobject.MerchantStatus, tier valueobject.RiskTier, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, status.String()+"/"+tier.String())
}

func (m *recordingMetrics) ObserveScreening(listType valueobject.ScreeningType, status valueobject.ScreeningStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screenings = append(m.screenings, listType.String()+"/"+status.String())
}

func (m *recordingMetrics) ObserveEvaluation(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations = append(m.operations, operation)
}

// --- Fixtures ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entry(t *testing.T, name, list, position string) valueobject.ReferenceEntry {
	t.Helper()
	e, err := valueobject.NewReferenceEntry(name, list, position, "")
	require.NoError(t, err)
	return e
}

func newScreener(t *testing.T) *service.Screener {
	t.Helper()
	return service.NewScreener(service.NewStaticReferenceLists(
		[]valueobject.ReferenceEntry{
			entry(t, "Shell Corp Ltd", "OFAC SDN", ""),
			entry(t, "Suspicious Trading Co", "UN Sanctions", ""),
			entry(t, "Blacklisted Enterprises", "EU Sanctions", ""),
		},
		[]valueobject.ReferenceEntry{
			entry(t, "John Politician", "", "Former Minister"),
			entry(t, "Robert Senator", "", "Senator"),
		},
	))
}
