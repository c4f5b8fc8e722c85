package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/application/usecase"
	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/pkg/auth"
)

var (
	registerRoles = []string{auth.RoleAdmin, auth.RoleAPIClient, auth.RoleMerchant}
	readRoles     = []string{auth.RoleAdmin, auth.RoleComplianceOfficer, auth.RoleAuditor, auth.RoleMerchant, auth.RoleAPIClient}
	reviewRoles   = []string{auth.RoleAdmin, auth.RoleComplianceOfficer}
	overviewRoles = []string{auth.RoleAdmin, auth.RoleComplianceOfficer, auth.RoleAuditor}
)

// Compile-time assertion that KYBServiceHandler implements KYBServiceServer.
var _ KYBServiceServer = (*KYBServiceHandler)(nil)

// KYBServiceHandler implements the gRPC KYBServiceServer interface.
type KYBServiceHandler struct {
	UnimplementedKYBServiceServer
	register          *usecase.RegisterMerchant
	getMerchant       *usecase.GetMerchant
	getMerchantStatus *usecase.GetMerchantStatus
	review            *usecase.ReviewMerchant
	markUnderReview   *usecase.MarkUnderReview
	verifyDocument    *usecase.VerifyDocument
	rescreen          *usecase.RescreenMerchant
	screenName        *usecase.ScreenName
	dashboard         *usecase.GetDashboard
	logger            *slog.Logger
}

// UseCases groups the application services behind the handler.
type UseCases struct {
	Register          *usecase.RegisterMerchant
	GetMerchant       *usecase.GetMerchant
	GetMerchantStatus *usecase.GetMerchantStatus
	Review            *usecase.ReviewMerchant
	MarkUnderReview   *usecase.MarkUnderReview
	VerifyDocument    *usecase.VerifyDocument
	Rescreen          *usecase.RescreenMerchant
	ScreenName        *usecase.ScreenName
	Dashboard         *usecase.GetDashboard
}

// NewKYBServiceHandler creates a new gRPC handler.
func NewKYBServiceHandler(uc UseCases, logger *slog.Logger) *KYBServiceHandler {
	return &KYBServiceHandler{
		register:          uc.Register,
		getMerchant:       uc.GetMerchant,
		getMerchantStatus: uc.GetMerchantStatus,
		review:            uc.Review,
		markUnderReview:   uc.MarkUnderReview,
		verifyDocument:    uc.VerifyDocument,
		rescreen:          uc.Rescreen,
		screenName:        uc.ScreenName,
		dashboard:         uc.Dashboard,
		logger:            logger,
	}
}

// toStatus maps application errors to gRPC status codes. Unclassified errors
// are logged and hidden behind Internal.
func (h *KYBServiceHandler) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrUnsupportedListType):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrDuplicateRegistration):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, port.ErrMerchantNotFound), errors.Is(err, model.ErrDocumentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrAlreadyDecided),
		errors.Is(err, model.ErrDocumentVerified):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, port.ErrConcurrentUpdate):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

// RegisterMerchant submits a new merchant application.
func (h *KYBServiceHandler) RegisterMerchant(ctx context.Context, req *RegisterMerchantRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, registerRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	owners := make([]dto.BeneficialOwnerInput, 0, len(req.BeneficialOwners))
	for i, o := range req.BeneficialOwners {
		if o == nil {
			return nil, status.Errorf(codes.InvalidArgument, "beneficial_owners[%d] is required", i)
		}
		pct, err := decimal.NewFromString(o.OwnershipPercentage)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid beneficial_owners[%d].ownership_percentage: %v", i, err)
		}
		owners = append(owners, dto.BeneficialOwnerInput{
			FullName:            o.FullName,
			Nationality:         o.Nationality,
			OwnershipPercentage: pct,
			IDDocumentType:      o.IDDocumentType,
			IDDocumentNumber:    o.IDDocumentNumber,
			IsPEP:               o.IsPEP,
		})
	}

	docs := make([]dto.DocumentInput, 0, len(req.Documents))
	for i, d := range req.Documents {
		if d == nil {
			return nil, status.Errorf(codes.InvalidArgument, "documents[%d] is required", i)
		}
		docs = append(docs, dto.DocumentInput{DocumentType: d.DocumentType, StorageRef: d.StorageRef})
	}

	h.logger.InfoContext(ctx, "registering merchant",
		slog.String("tenant_id", claims.TenantID.String()),
		slog.String("registration_number", req.RegistrationNumber),
	)

	result, err := h.register.Execute(ctx, dto.RegisterMerchantRequest{
		TenantID:           claims.TenantID,
		BusinessName:       req.BusinessName,
		RegistrationNumber: req.RegistrationNumber,
		Country:            req.Country,
		BusinessCategory:   req.BusinessCategory,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		BeneficialOwners:   owners,
		Documents:          docs,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "RegisterMerchant", err)
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// GetMerchant returns the status view of one merchant.
func (h *KYBServiceHandler) GetMerchant(ctx context.Context, req *GetMerchantRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	result, err := h.getMerchant.Execute(ctx, dto.GetMerchantRequest{ID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "GetMerchant", err)
	}
	return h.scoped(claims, result)
}

// GetMerchantStatus looks a merchant up by registration number.
func (h *KYBServiceHandler) GetMerchantStatus(ctx context.Context, req *GetMerchantStatusRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getMerchantStatus.Execute(ctx, dto.GetMerchantStatusRequest{RegistrationNumber: req.RegistrationNumber})
	if err != nil {
		return nil, h.toStatus(ctx, "GetMerchantStatus", err)
	}
	return h.scoped(claims, result)
}

// scoped hides merchants of other tenants from tenant-scoped callers.
func (h *KYBServiceHandler) scoped(claims *auth.Claims, result dto.MerchantResponse) (*MerchantResponse, error) {
	if !claims.CanAccessTenant(result.TenantID) {
		return nil, status.Error(codes.NotFound, "merchant not found")
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// ReviewMerchant records a manual compliance decision.
func (h *KYBServiceHandler) ReviewMerchant(ctx context.Context, req *ReviewMerchantRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("merchant_id", req.MerchantID)
	if err != nil {
		return nil, err
	}

	result, err := h.review.Execute(ctx, dto.ReviewMerchantRequest{
		MerchantID: id,
		Outcome:    req.Outcome,
		Reviewer:   claims.Actor(),
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ReviewMerchant", err)
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// MarkUnderReview queues a pending merchant for manual review.
func (h *KYBServiceHandler) MarkUnderReview(ctx context.Context, req *MarkUnderReviewRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("merchant_id", req.MerchantID)
	if err != nil {
		return nil, err
	}

	result, err := h.markUnderReview.Execute(ctx, dto.MarkUnderReviewRequest{MerchantID: id, Actor: claims.Actor()})
	if err != nil {
		return nil, h.toStatus(ctx, "MarkUnderReview", err)
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// VerifyDocument marks a supporting document as verified.
func (h *KYBServiceHandler) VerifyDocument(ctx context.Context, req *VerifyDocumentRequest) (*MerchantResponse, error) {
	claims, err := auth.Authorize(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	merchantID, err := parseID("merchant_id", req.MerchantID)
	if err != nil {
		return nil, err
	}
	documentID, err := parseID("document_id", req.DocumentID)
	if err != nil {
		return nil, err
	}

	result, err := h.verifyDocument.Execute(ctx, dto.VerifyDocumentRequest{
		MerchantID: merchantID,
		DocumentID: documentID,
		Verifier:   claims.Actor(),
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "VerifyDocument", err)
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// RescreenMerchant re-runs screening against the current reference lists.
func (h *KYBServiceHandler) RescreenMerchant(ctx context.Context, req *RescreenMerchantRequest) (*MerchantResponse, error) {
	if _, err := auth.Authorize(ctx, reviewRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("merchant_id", req.MerchantID)
	if err != nil {
		return nil, err
	}

	result, err := h.rescreen.Execute(ctx, dto.RescreenMerchantRequest{MerchantID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "RescreenMerchant", err)
	}
	return &MerchantResponse{Merchant: toMerchantMsg(result)}, nil
}

// ScreenName screens a single name against one list.
func (h *KYBServiceHandler) ScreenName(ctx context.Context, req *ScreenNameRequest) (*ScreenNameResponse, error) {
	if _, err := auth.Authorize(ctx, reviewRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.screenName.Execute(ctx, dto.ScreenNameRequest{Name: req.Name, ListType: req.ListType})
	if err != nil {
		return nil, h.toStatus(ctx, "ScreenName", err)
	}
	return &ScreenNameResponse{
		Name:        result.Name,
		ListType:    result.ListType,
		Status:      result.Status,
		MatchedName: result.MatchedName,
		MatchedList: result.MatchedList,
		Similarity:  result.Similarity,
	}, nil
}

// GetDashboard returns the compliance overview.
func (h *KYBServiceHandler) GetDashboard(ctx context.Context, _ *GetDashboardRequest) (*DashboardResponse, error) {
	if _, err := auth.Authorize(ctx, overviewRoles...); err != nil {
		return nil, err
	}

	result, err := h.dashboard.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "GetDashboard", err)
	}
	return &DashboardResponse{
		ByStatus:       toCounts(result.ByStatus),
		ByRiskTier:     toCounts(result.ByRiskTier),
		ReviewQueue:    toSummaryMsgs(result.ReviewQueue),
		RecentActivity: toSummaryMsgs(result.RecentActivity),
		TotalMerchants: int32(result.TotalMerchants),
	}, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func toMerchantMsg(r dto.MerchantResponse) *MerchantMsg {
	msg := &MerchantMsg{
		ID:                 r.ID.String(),
		TenantID:           r.TenantID.String(),
		BusinessName:       r.BusinessName,
		RegistrationNumber: r.RegistrationNumber,
		Country:            r.Country,
		BusinessCategory:   r.BusinessCategory,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		Status:             r.Status,
		RiskTier:           r.RiskTier,
		DueDiligence:       r.DueDiligence,
		ScreeningSummary:   r.ScreeningSummary,
		ReviewNotes:        r.ReviewNotes,
		ReviewedBy:         r.ReviewedBy,
		ReviewDate:         formatOptional(r.ReviewDate),
		CreatedAt:          formatTime(r.CreatedAt),
		UpdatedAt:          formatTime(r.UpdatedAt),
		Version:            int32(r.Version),
		BeneficialOwners:   make([]*BeneficialOwnerMsg, 0, len(r.BeneficialOwners)),
		Documents:          make([]*DocumentMsg, 0, len(r.Documents)),
		ScreeningResults:   make([]*ScreeningResultMsg, 0, len(r.ScreeningResults)),
	}

	if a := r.LatestAssessment; a != nil {
		msg.LatestAssessment = &RiskAssessmentMsg{
			ID:         a.ID.String(),
			Score:      int32(a.Score),
			RiskTier:   a.RiskTier,
			Factors:    a.Factors,
			AssessedBy: a.AssessedBy,
			Assessor:   a.Assessor,
			Notes:      a.Notes,
			AssessedAt: formatTime(a.AssessedAt),
		}
	}
	for _, o := range r.BeneficialOwners {
		msg.BeneficialOwners = append(msg.BeneficialOwners, &BeneficialOwnerMsg{
			ID:                  o.ID.String(),
			FullName:            o.FullName,
			Nationality:         o.Nationality,
			OwnershipPercentage: o.OwnershipPercentage.StringFixed(2),
			IDDocumentType:      o.IDDocumentType,
			IDDocumentNumber:    o.IDDocumentNumber,
			IsPEP:               o.IsPEP,
		})
	}
	for _, d := range r.Documents {
		msg.Documents = append(msg.Documents, &DocumentMsg{
			ID:                d.ID.String(),
			DocumentType:      d.DocumentType,
			StorageRef:        d.StorageRef,
			UploadedAt:        formatTime(d.UploadedAt),
			Verified:          d.Verified,
			VerifiedBy:        d.VerifiedBy,
			VerifiedAt:        formatOptional(d.VerifiedAt),
			VerificationNotes: d.VerificationNotes,
		})
	}
	for _, s := range r.ScreeningResults {
		msg.ScreeningResults = append(msg.ScreeningResults, &ScreeningResultMsg{
			ID:            s.ID.String(),
			ScreeningType: s.ScreeningType,
			Subject:       s.Subject,
			Status:        s.Status,
			MatchedName:   s.MatchedName,
			MatchedList:   s.MatchedList,
			ScreenedAt:    formatTime(s.ScreenedAt),
		})
	}
	return msg
}

func toSummaryMsgs(in []dto.MerchantSummary) []*MerchantSummaryMsg {
	out := make([]*MerchantSummaryMsg, 0, len(in))
	for _, s := range in {
		out = append(out, &MerchantSummaryMsg{
			ID:                 s.ID.String(),
			BusinessName:       s.BusinessName,
			RegistrationNumber: s.RegistrationNumber,
			Country:            s.Country,
			BusinessCategory:   s.BusinessCategory,
			Status:             s.Status,
			RiskTier:           s.RiskTier,
			UpdatedAt:          formatTime(s.UpdatedAt),
		})
	}
	return out
}

func toCounts(in map[string]int) map[string]int32 {
	out := make(map[string]int32, len(in))
	for k, v := range in {
		out[k] = int32(v)
	}
	return out
}
