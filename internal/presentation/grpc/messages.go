package grpc

// Proto-aligned request/response message types.

// BeneficialOwnerMsg represents the proto BeneficialOwner message.
type BeneficialOwnerMsg struct {
	ID                  string `json:"id,omitempty"`
	FullName            string `json:"full_name"`
	Nationality         string `json:"nationality"`
	OwnershipPercentage string `json:"ownership_percentage"`
	IDDocumentType      string `json:"id_document_type,omitempty"`
	IDDocumentNumber    string `json:"id_document_number,omitempty"`
	IsPEP               bool   `json:"is_pep"`
}

// DocumentMsg represents the proto Document message.
type DocumentMsg struct {
	ID                string `json:"id,omitempty"`
	DocumentType      string `json:"document_type"`
	StorageRef        string `json:"storage_ref"`
	UploadedAt        string `json:"uploaded_at,omitempty"`
	VerifiedBy        string `json:"verified_by,omitempty"`
	VerifiedAt        string `json:"verified_at,omitempty"`
	VerificationNotes string `json:"verification_notes,omitempty"`
	Verified          bool   `json:"verified"`
}

// RiskAssessmentMsg represents the proto RiskAssessment message.
type RiskAssessmentMsg struct {
	ID         string   `json:"id"`
	RiskTier   string   `json:"risk_tier"`
	AssessedBy string   `json:"assessed_by"`
	Assessor   string   `json:"assessor,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	AssessedAt string   `json:"assessed_at"`
	Factors    []string `json:"factors"`
	Score      int32    `json:"score"`
}

// ScreeningResultMsg represents the proto ScreeningResult message.
type ScreeningResultMsg struct {
	ID            string `json:"id"`
	ScreeningType string `json:"screening_type"`
	Subject       string `json:"subject"`
	Status        string `json:"status"`
	MatchedName   string `json:"matched_name,omitempty"`
	MatchedList   string `json:"matched_list,omitempty"`
	ScreenedAt    string `json:"screened_at"`
}

// MerchantMsg represents the proto Merchant message.
type MerchantMsg struct {
	ID                 string                `json:"id"`
	TenantID           string                `json:"tenant_id"`
	BusinessName       string                `json:"business_name"`
	RegistrationNumber string                `json:"registration_number"`
	Country            string                `json:"country"`
	BusinessCategory   string                `json:"business_category"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone,omitempty"`
	Address            string                `json:"address,omitempty"`
	Status             string                `json:"status"`
	RiskTier           string                `json:"risk_tier"`
	DueDiligence       string                `json:"due_diligence"`
	ScreeningSummary   string                `json:"screening_summary"`
	ReviewNotes        string                `json:"review_notes,omitempty"`
	ReviewedBy         string                `json:"reviewed_by,omitempty"`
	ReviewDate         string                `json:"review_date,omitempty"`
	CreatedAt          string                `json:"created_at"`
	UpdatedAt          string                `json:"updated_at"`
	LatestAssessment   *RiskAssessmentMsg    `json:"latest_assessment,omitempty"`
	BeneficialOwners   []*BeneficialOwnerMsg `json:"beneficial_owners"`
	Documents          []*DocumentMsg        `json:"documents"`
	ScreeningResults   []*ScreeningResultMsg `json:"screening_results"`
	Version            int32                 `json:"version"`
}

// MerchantSummaryMsg represents the proto MerchantSummary message.
type MerchantSummaryMsg struct {
	ID                 string `json:"id"`
	BusinessName       string `json:"business_name"`
	RegistrationNumber string `json:"registration_number"`
	Country            string `json:"country"`
	BusinessCategory   string `json:"business_category"`
	Status             string `json:"status"`
	RiskTier           string `json:"risk_tier"`
	UpdatedAt          string `json:"updated_at"`
}

// MerchantResponse wraps a merchant for every merchant-returning RPC.
type MerchantResponse struct {
	Merchant *MerchantMsg `json:"merchant"`
}

// RegisterMerchantRequest represents the proto RegisterMerchantRequest message.
// The tenant comes from the caller's token.
type RegisterMerchantRequest struct {
	BusinessName       string                `json:"business_name"`
	RegistrationNumber string                `json:"registration_number"`
	Country            string                `json:"country"`
	BusinessCategory   string                `json:"business_category"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone"`
	Address            string                `json:"address"`
	BeneficialOwners   []*BeneficialOwnerMsg `json:"beneficial_owners"`
	Documents          []*DocumentMsg        `json:"documents"`
}

type GetMerchantRequest struct {
	ID string `json:"id"`
}

type GetMerchantStatusRequest struct {
	RegistrationNumber string `json:"registration_number"`
}

// ReviewMerchantRequest represents the proto ReviewMerchantRequest message.
// The reviewer is taken from the caller's token.
type ReviewMerchantRequest struct {
	MerchantID string `json:"merchant_id"`
	Outcome    string `json:"outcome"`
	Notes      string `json:"notes"`
}

type MarkUnderReviewRequest struct {
	MerchantID string `json:"merchant_id"`
}

type VerifyDocumentRequest struct {
	MerchantID string `json:"merchant_id"`
	DocumentID string `json:"document_id"`
	Notes      string `json:"notes"`
}

type RescreenMerchantRequest struct {
	MerchantID string `json:"merchant_id"`
}

type ScreenNameRequest struct {
	Name     string `json:"name"`
	ListType string `json:"list_type"`
}

type ScreenNameResponse struct {
	Name        string  `json:"name"`
	ListType    string  `json:"list_type"`
	Status      string  `json:"status"`
	MatchedName string  `json:"matched_name,omitempty"`
	MatchedList string  `json:"matched_list,omitempty"`
	Similarity  float64 `json:"similarity"`
}

type GetDashboardRequest struct{}

// DashboardResponse represents the proto DashboardResponse message.
type DashboardResponse struct {
	ByStatus       map[string]int32      `json:"by_status"`
	ByRiskTier     map[string]int32      `json:"by_risk_tier"`
	ReviewQueue    []*MerchantSummaryMsg `json:"review_queue"`
	RecentActivity []*MerchantSummaryMsg `json:"recent_activity"`
	TotalMerchants int32                 `json:"total_merchants"`
}
