package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/kyb-service/internal/application/usecase"
	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
	"github.com/bibbank/kyb-service/pkg/auth"
	"github.com/bibbank/kyb-service/pkg/testutil"
)

// --- Mock implementations ---

type memRepo struct {
	mu        sync.Mutex
	merchants map[uuid.UUID]model.Merchant
	saveErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{merchants: make(map[uuid.UUID]model.Merchant)}
}

func (r *memRepo) Save(_ context.Context, m model.Merchant) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merchants[m.ID()] = m.ClearDomainEvents()
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.merchants[id]
	if !ok {
		return model.Merchant{}, fmt.Errorf("%w: %s", port.ErrMerchantNotFound, id)
	}
	return m, nil
}

func (r *memRepo) FindByRegistrationNumber(_ context.Context, regNo string) (model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.merchants {
		if m.RegistrationNumber() == regNo {
			return m, nil
		}
	}
	return model.Merchant{}, fmt.Errorf("%w: %s", port.ErrMerchantNotFound, regNo)
}

func (r *memRepo) ExistsByRegistrationNumber(ctx context.Context, regNo string) (bool, error) {
	_, err := r.FindByRegistrationNumber(ctx, regNo)
	return err == nil, nil
}

func (r *memRepo) Stats(_ context.Context) (port.MerchantStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := port.MerchantStats{
		ByStatus: make(map[valueobject.MerchantStatus]int),
		ByTier:   make(map[valueobject.RiskTier]int),
	}
	for _, m := range r.merchants {
		stats.ByStatus[m.Status()]++
		stats.ByTier[m.RiskTier()]++
		stats.Total++
	}
	return stats, nil
}

func (r *memRepo) ListByStatuses(_ context.Context, statuses []valueobject.MerchantStatus, _ int) ([]model.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Merchant
	for _, m := range r.merchants {
		for _, s := range statuses {
			if m.Status().Equal(s) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (r *memRepo) ListRecentlyUpdated(_ context.Context, _ int) ([]model.Merchant, error) {
	return nil, nil
}

func (r *memRepo) ListForRescreen(_ context.Context, _ uuid.UUID, _ int) ([]model.Merchant, error) {
	return nil, nil
}

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func contextWithRoles(tenantID uuid.UUID, roles ...string) context.Context {
	claims := &auth.Claims{
		UserID:   testutil.TestReviewerID,
		TenantID: tenantID,
		Name:     "Ana Reyes",
		Roles:    roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func adminContext() context.Context {
	return contextWithRoles(uuid.New(), auth.RoleAdmin)
}

func buildHandler(t *testing.T, repo *memRepo) *KYBServiceHandler {
	t.Helper()
	entry := func(name, list, position string) valueobject.ReferenceEntry {
		e, err := valueobject.NewReferenceEntry(name, list, position, "")
		require.NoError(t, err)
		return e
	}
	screener := service.NewScreener(service.NewStaticReferenceLists(
		[]valueobject.ReferenceEntry{entry("Shell Corp Ltd", "OFAC SDN", "")},
		[]valueobject.ReferenceEntry{entry("Robert Senator", "", "Senator")},
	))
	scorer := service.NewRiskScorer(service.DefaultRiskWeights())
	logger := testLogger()
	rescreen := usecase.NewRescreenMerchant(repo, screener, nil, logger)

	return NewKYBServiceHandler(UseCases{
		Register:          usecase.NewRegisterMerchant(repo, scorer, screener, service.NewDecisionPolicy(), nil, logger),
		GetMerchant:       usecase.NewGetMerchant(repo),
		GetMerchantStatus: usecase.NewGetMerchantStatus(repo),
		Review:            usecase.NewReviewMerchant(repo, logger),
		MarkUnderReview:   usecase.NewMarkUnderReview(repo),
		VerifyDocument:    usecase.NewVerifyDocument(repo),
		Rescreen:          rescreen,
		ScreenName:        usecase.NewScreenName(screener, nil),
		Dashboard:         usecase.NewGetDashboard(repo),
	}, logger)
}

func bakeryRequest(regNo string) *RegisterMerchantRequest {
	return &RegisterMerchantRequest{
		BusinessName:       "Good Morning Bakery",
		RegistrationNumber: regNo,
		Country:            "SG",
		BusinessCategory:   "ECOMMERCE",
		Email:              "owner@goodmorning.sg",
		Documents: []*DocumentMsg{
			{DocumentType: "BUSINESS_LICENSE", StorageRef: "s3://kyb-docs/bakery/license.pdf"},
		},
	}
}

func requireGRPCCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %v", err)
	assert.Equal(t, want, st.Code(), st.Message())
}

// --- Tests ---

func TestRegisterMerchant(t *testing.T) {
	t.Run("low risk clear merchant is approved", func(t *testing.T) {
		h := buildHandler(t, newMemRepo())
		resp, err := h.RegisterMerchant(adminContext(), bakeryRequest("201900001A"))
		require.NoError(t, err)

		m := resp.Merchant
		assert.Equal(t, "APPROVED", m.Status)
		assert.Equal(t, "LOW", m.RiskTier)
		assert.Equal(t, "SIMPLIFIED", m.DueDiligence)
		assert.Equal(t, "CLEAR", m.ScreeningSummary)
		require.NotNil(t, m.LatestAssessment)
		assert.Equal(t, int32(7), m.LatestAssessment.Score)
		require.Len(t, m.Documents, 1)
		assert.False(t, m.Documents[0].Verified)
	})

	t.Run("tenant comes from the token", func(t *testing.T) {
		tenant := uuid.New()
		h := buildHandler(t, newMemRepo())
		resp, err := h.RegisterMerchant(contextWithRoles(tenant, auth.RoleMerchant), bakeryRequest("201900002A"))
		require.NoError(t, err)
		assert.Equal(t, tenant.String(), resp.Merchant.TenantID)
	})

	t.Run("sanctioned business is rejected", func(t *testing.T) {
		h := buildHandler(t, newMemRepo())
		req := bakeryRequest("201900003A")
		req.BusinessName = "Shell Corp Ltd"
		resp, err := h.RegisterMerchant(adminContext(), req)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Merchant.Status)
		assert.Equal(t, "Auto-rejected due to sanctions match.", resp.Merchant.ReviewNotes)
	})

	t.Run("owner percentage is formatted with two decimals", func(t *testing.T) {
		h := buildHandler(t, newMemRepo())
		req := bakeryRequest("201900004A")
		req.BeneficialOwners = []*BeneficialOwnerMsg{
			{FullName: "Tan Wei Ming", Nationality: "SG", OwnershipPercentage: "60.5"},
		}
		resp, err := h.RegisterMerchant(adminContext(), req)
		require.NoError(t, err)
		require.Len(t, resp.Merchant.BeneficialOwners, 1)
		assert.Equal(t, "60.50", resp.Merchant.BeneficialOwners[0].OwnershipPercentage)
	})

	tests := []struct {
		name   string
		ctx    context.Context
		req    *RegisterMerchantRequest
		mutate func(*RegisterMerchantRequest)
		code   codes.Code
	}{
		{name: "unauthenticated", ctx: context.Background(), req: bakeryRequest("X1"), code: codes.Unauthenticated},
		{name: "auditor cannot register", ctx: contextWithRoles(uuid.New(), auth.RoleAuditor), req: bakeryRequest("X2"), code: codes.PermissionDenied},
		{name: "nil request", ctx: adminContext(), code: codes.InvalidArgument},
		{name: "unknown category", ctx: adminContext(), req: bakeryRequest("X3"), mutate: func(r *RegisterMerchantRequest) {
			r.BusinessCategory = "WEAPONS"
		}, code: codes.InvalidArgument},
		{name: "bad ownership percentage", ctx: adminContext(), req: bakeryRequest("X4"), mutate: func(r *RegisterMerchantRequest) {
			r.BeneficialOwners = []*BeneficialOwnerMsg{{FullName: "Lim Siew Ling", Nationality: "SG", OwnershipPercentage: "lots"}}
		}, code: codes.InvalidArgument},
		{name: "high risk without owners", ctx: adminContext(), req: bakeryRequest("X5"), mutate: func(r *RegisterMerchantRequest) {
			r.BusinessCategory = "CRYPTO"
		}, code: codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := buildHandler(t, newMemRepo())
			if tt.mutate != nil {
				tt.mutate(tt.req)
			}
			_, err := h.RegisterMerchant(tt.ctx, tt.req)
			requireGRPCCode(t, err, tt.code)
		})
	}

	t.Run("duplicate registration number", func(t *testing.T) {
		h := buildHandler(t, newMemRepo())
		_, err := h.RegisterMerchant(adminContext(), bakeryRequest("DUP"))
		require.NoError(t, err)
		_, err = h.RegisterMerchant(adminContext(), bakeryRequest("DUP"))
		requireGRPCCode(t, err, codes.AlreadyExists)
	})

	t.Run("repository failure is hidden", func(t *testing.T) {
		repo := newMemRepo()
		repo.saveErr = fmt.Errorf("connection reset")
		h := buildHandler(t, repo)
		_, err := h.RegisterMerchant(adminContext(), bakeryRequest("ERR"))
		requireGRPCCode(t, err, codes.Internal)
		assert.NotContains(t, err.Error(), "connection reset")
	})
}

func TestGetMerchant(t *testing.T) {
	tenant := uuid.New()
	h := buildHandler(t, newMemRepo())
	created, err := h.RegisterMerchant(contextWithRoles(tenant, auth.RoleMerchant), bakeryRequest("201900010A"))
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		resp, err := h.GetMerchant(contextWithRoles(uuid.New(), auth.RoleAuditor), &GetMerchantRequest{ID: created.Merchant.ID})
		require.NoError(t, err)
		assert.Equal(t, "Good Morning Bakery", resp.Merchant.BusinessName)
	})

	t.Run("by registration number", func(t *testing.T) {
		resp, err := h.GetMerchantStatus(contextWithRoles(tenant, auth.RoleMerchant), &GetMerchantStatusRequest{RegistrationNumber: "201900010A"})
		require.NoError(t, err)
		assert.Equal(t, created.Merchant.ID, resp.Merchant.ID)
	})

	t.Run("other tenant sees not found", func(t *testing.T) {
		_, err := h.GetMerchant(contextWithRoles(uuid.New(), auth.RoleMerchant), &GetMerchantRequest{ID: created.Merchant.ID})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := h.GetMerchant(adminContext(), &GetMerchantRequest{ID: "not-a-uuid"})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := h.GetMerchant(adminContext(), &GetMerchantRequest{ID: uuid.NewString()})
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestReviewFlow(t *testing.T) {
	h := buildHandler(t, newMemRepo())
	officer := contextWithRoles(uuid.New(), auth.RoleComplianceOfficer)

	req := bakeryRequest("201900020A")
	req.BeneficialOwners = []*BeneficialOwnerMsg{
		{FullName: "Robert Senator", Nationality: "SG", OwnershipPercentage: "100", IsPEP: true},
	}
	created, err := h.RegisterMerchant(adminContext(), req)
	require.NoError(t, err)
	require.Equal(t, "UNDER_REVIEW", created.Merchant.Status)
	id := created.Merchant.ID

	_, err = h.ReviewMerchant(contextWithRoles(uuid.New(), auth.RoleAuditor), &ReviewMerchantRequest{MerchantID: id, Outcome: "APPROVED"})
	requireGRPCCode(t, err, codes.PermissionDenied)

	_, err = h.ReviewMerchant(officer, &ReviewMerchantRequest{MerchantID: id, Outcome: "PENDING"})
	requireGRPCCode(t, err, codes.InvalidArgument)

	docID := created.Merchant.Documents[0].ID
	verified, err := h.VerifyDocument(officer, &VerifyDocumentRequest{MerchantID: id, DocumentID: docID, Notes: "license checked"})
	require.NoError(t, err)
	assert.True(t, verified.Merchant.Documents[0].Verified)
	assert.Equal(t, "Ana Reyes", verified.Merchant.Documents[0].VerifiedBy)

	_, err = h.VerifyDocument(officer, &VerifyDocumentRequest{MerchantID: id, DocumentID: docID})
	requireGRPCCode(t, err, codes.FailedPrecondition)

	_, err = h.VerifyDocument(officer, &VerifyDocumentRequest{MerchantID: id, DocumentID: uuid.NewString()})
	requireGRPCCode(t, err, codes.NotFound)

	reviewed, err := h.ReviewMerchant(officer, &ReviewMerchantRequest{MerchantID: id, Outcome: "APPROVED", Notes: "PEP cleared by EDD"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", reviewed.Merchant.Status)
	assert.Equal(t, "Ana Reyes", reviewed.Merchant.ReviewedBy)
	assert.NotEmpty(t, reviewed.Merchant.ReviewDate)

	_, err = h.ReviewMerchant(officer, &ReviewMerchantRequest{MerchantID: id, Outcome: "REJECTED"})
	requireGRPCCode(t, err, codes.FailedPrecondition)

	_, err = h.MarkUnderReview(officer, &MarkUnderReviewRequest{MerchantID: id})
	requireGRPCCode(t, err, codes.FailedPrecondition)

	rescreened, err := h.RescreenMerchant(officer, &RescreenMerchantRequest{MerchantID: id})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", rescreened.Merchant.Status, "rescreening never changes status")
}

func TestScreenName(t *testing.T) {
	h := buildHandler(t, newMemRepo())
	officer := contextWithRoles(uuid.New(), auth.RoleComplianceOfficer)

	resp, err := h.ScreenName(officer, &ScreenNameRequest{Name: "The Shell Corp Ltd Holdings", ListType: "SANCTIONS"})
	require.NoError(t, err)
	assert.Equal(t, "MATCH", resp.Status)
	assert.Equal(t, "Shell Corp Ltd", resp.MatchedName)
	assert.Equal(t, "OFAC SDN", resp.MatchedList)

	resp, err = h.ScreenName(officer, &ScreenNameRequest{Name: "Nguyen Van An", ListType: "PEP"})
	require.NoError(t, err)
	assert.Equal(t, "CLEAR", resp.Status)

	_, err = h.ScreenName(officer, &ScreenNameRequest{Name: "Budi Santoso", ListType: "ADVERSE_MEDIA"})
	requireGRPCCode(t, err, codes.InvalidArgument)

	_, err = h.ScreenName(contextWithRoles(uuid.New(), auth.RoleMerchant), &ScreenNameRequest{Name: "x", ListType: "PEP"})
	requireGRPCCode(t, err, codes.PermissionDenied)
}

func TestGetDashboard(t *testing.T) {
	h := buildHandler(t, newMemRepo())
	_, err := h.RegisterMerchant(adminContext(), bakeryRequest("201900030A"))
	require.NoError(t, err)

	resp, err := h.GetDashboard(contextWithRoles(uuid.New(), auth.RoleAuditor), &GetDashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), resp.TotalMerchants)
	assert.Equal(t, int32(1), resp.ByStatus["APPROVED"])
	assert.Equal(t, int32(0), resp.ByStatus["REJECTED"])
	assert.Equal(t, int32(1), resp.ByRiskTier["LOW"])
	assert.Empty(t, resp.ReviewQueue)

	_, err = h.GetDashboard(contextWithRoles(uuid.New(), auth.RoleMerchant), &GetDashboardRequest{})
	requireGRPCCode(t, err, codes.PermissionDenied)
}

func TestServiceDescRunsInterceptor(t *testing.T) {
	h := buildHandler(t, newMemRepo())
	called := false
	interceptor := func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		called = true
		assert.Equal(t, "/bib.kyb.v1.KYBService/GetDashboard", info.FullMethod)
		return handler(auth.ContextWithClaims(ctx, &auth.Claims{Roles: []string{auth.RoleAdmin}}), req)
	}
	dec := func(v interface{}) error { return nil }

	out, err := _KYBService_GetDashboard_Handler(h, context.Background(), dec, interceptor)
	require.NoError(t, err)
	assert.True(t, called)
	assert.IsType(t, &DashboardResponse{}, out)
}

func TestNewServer(t *testing.T) {
	h := buildHandler(t, newMemRepo())
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret-at-least-32-bytes-long!!", Issuer: "bib-identity"})
	require.NoError(t, err)

	srv, err := NewServer(h, ServerConfig{Address: "127.0.0.1:0"}, testLogger(), jwtSvc, noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, srv)

	_, err = NewServer(h, ServerConfig{Address: ":0", CertFile: "missing.pem", KeyFile: "missing.key"}, testLogger(), jwtSvc, noop.NewMeterProvider())
	assert.Error(t, err)
}
