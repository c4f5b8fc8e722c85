package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/kyb-service/internal/domain/model"
	"github.com/bibbank/kyb-service/internal/domain/port"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
	"github.com/bibbank/kyb-service/pkg/events"
	pgpkg "github.com/bibbank/kyb-service/pkg/postgres"
)

const (
	uniqueViolation          = "23505"
	registrationNumberUnique = "merchants_registration_number_key"
)

// Compile-time interface check
var _ port.MerchantRepository = (*MerchantRepository)(nil)

// MerchantRepository implements port.MerchantRepository using PostgreSQL.
type MerchantRepository struct {
	pool *pgxpool.Pool
}

// NewMerchantRepository creates a new PostgreSQL-backed merchant repository.
func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{pool: pool}
}

// matchDetails is the stored form of the matched reference entry.
type matchDetails struct {
	Name     string `json:"name,omitempty"`
	List     string `json:"list,omitempty"`
	Position string `json:"position,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Save writes the merchant aggregate and its pending events in one transaction.
func (r *MerchantRepository) Save(ctx context.Context, m model.Merchant) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveMerchantRow(ctx, tx, m); err != nil {
			return err
		}
		if err := replaceOwners(ctx, tx, m); err != nil {
			return err
		}
		if err := replaceDocuments(ctx, tx, m); err != nil {
			return err
		}
		if err := insertAssessments(ctx, tx, m); err != nil {
			return err
		}
		if err := replaceScreeningResults(ctx, tx, m); err != nil {
			return err
		}
		return writeOutbox(ctx, tx, m.DomainEvents())
	})
}

func saveMerchantRow(ctx context.Context, tx pgx.Tx, m model.Merchant) error {
	if m.PersistedVersion() == 0 {
		_, err := tx.Exec(ctx, `
			INSERT INTO merchants (id, tenant_id, business_name, registration_number, country,
				business_category, email, phone, address, risk_level, status, review_notes,
				reviewed_by, review_date, decided_at, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		`, m.ID(), m.TenantID(), m.BusinessName(), m.RegistrationNumber(), m.Country().String(),
			m.Category().String(), m.Email(), m.Phone(), m.Address(), m.RiskTier().String(),
			m.Status().String(), m.ReviewNotes(), m.ReviewedBy(), nullableTime(m.ReviewDate()),
			nullableTime(m.DecidedAt()), m.Version(), m.CreatedAt(), m.UpdatedAt())
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == registrationNumberUnique {
				return fmt.Errorf("%w: %s", port.ErrDuplicateRegistration, m.RegistrationNumber())
			}
			return fmt.Errorf("insert merchant: %w", err)
		}
		return nil
	}

	tag, err := tx.Exec(ctx, `
		UPDATE merchants SET
			business_name = $3, email = $4, phone = $5, address = $6,
			risk_level = $7, status = $8, review_notes = $9, reviewed_by = $10,
			review_date = $11, decided_at = $12, version = $13, updated_at = $14
		WHERE id = $1 AND version = $2
	`, m.ID(), m.PersistedVersion(), m.BusinessName(), m.Email(), m.Phone(), m.Address(),
		m.RiskTier().String(), m.Status().String(), m.ReviewNotes(), m.ReviewedBy(),
		nullableTime(m.ReviewDate()), nullableTime(m.DecidedAt()), m.Version(), m.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update merchant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s at version %d", port.ErrConcurrentUpdate, m.ID(), m.PersistedVersion())
	}
	return nil
}

func replaceOwners(ctx context.Context, tx pgx.Tx, m model.Merchant) error {
	if _, err := tx.Exec(ctx, `DELETE FROM beneficial_owners WHERE merchant_id = $1`, m.ID()); err != nil {
		return fmt.Errorf("delete existing owners: %w", err)
	}
	for i, o := range m.Owners() {
		_, err := tx.Exec(ctx, `
			INSERT INTO beneficial_owners (id, merchant_id, full_name, nationality, ownership_percentage,
				id_document_type, id_document_number, is_pep, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, o.ID(), m.ID(), o.FullName(), o.Nationality(), o.OwnershipPercentage().StringFixed(2),
			o.IDDocumentType().String(), o.IDDocumentNumber(), o.IsPEP(), i, o.CreatedAt())
		if err != nil {
			return fmt.Errorf("insert owner %s: %w", o.ID(), err)
		}
	}
	return nil
}

func replaceDocuments(ctx context.Context, tx pgx.Tx, m model.Merchant) error {
	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE merchant_id = $1`, m.ID()); err != nil {
		return fmt.Errorf("delete existing documents: %w", err)
	}
	for _, d := range m.Documents() {
		_, err := tx.Exec(ctx, `
			INSERT INTO documents (id, merchant_id, document_type, storage_ref, uploaded_at,
				verified, verified_by, verification_date, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, d.ID(), m.ID(), d.Type().String(), d.StorageRef(), d.UploadedAt(),
			d.Verified(), d.VerifiedBy(), nullableTime(d.VerifiedAt()), d.VerificationNotes())
		if err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID(), err)
		}
	}
	return nil
}

// insertAssessments appends new history entries; stored ones are immutable.
func insertAssessments(ctx context.Context, tx pgx.Tx, m model.Merchant) error {
	for _, a := range m.RiskAssessments() {
		factors, err := json.Marshal(a.Factors())
		if err != nil {
			return fmt.Errorf("marshal risk factors: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO risk_assessments (id, merchant_id, risk_score, risk_level, risk_factors,
				assessed_by, assessor, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, a.ID(), m.ID(), a.Score(), a.Tier().String(), factors,
			a.AssessedBy().String(), a.Assessor(), a.Notes(), a.AssessedAt())
		if err != nil {
			return fmt.Errorf("insert risk assessment %s: %w", a.ID(), err)
		}
	}
	return nil
}

// replaceScreeningResults swaps the current result set inside the caller's
// transaction, so readers see either the old or the new set.
func replaceScreeningResults(ctx context.Context, tx pgx.Tx, m model.Merchant) error {
	if _, err := tx.Exec(ctx, `DELETE FROM screening_results WHERE merchant_id = $1`, m.ID()); err != nil {
		return fmt.Errorf("delete existing screening results: %w", err)
	}
	for i, res := range m.ScreeningResults() {
		entry := res.MatchedEntry()
		details, err := json.Marshal(matchDetails{
			Name:     entry.Name(),
			List:     entry.List(),
			Position: entry.Position(),
			Country:  entry.Country(),
		})
		if err != nil {
			return fmt.Errorf("marshal match details: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO screening_results (id, merchant_id, screening_type, screened_entity, status,
				matched_list, match_details, position, screened_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, res.ID(), m.ID(), res.Type().String(), res.Subject(), res.Status().String(),
			res.MatchedList(), details, i, res.ScreenedAt())
		if err != nil {
			return fmt.Errorf("insert screening result %s: %w", res.ID(), err)
		}
	}
	return nil
}

func writeOutbox(ctx context.Context, tx pgx.Tx, evts []events.DomainEvent) error {
	entries, err := events.OutboxEntries(evts)
	if err != nil {
		return err
	}
	return pgpkg.InsertOutbox(ctx, tx, entries)
}

const merchantColumns = `
	id, tenant_id, business_name, registration_number, country, business_category,
	email, phone, address, risk_level, status, review_notes, reviewed_by,
	review_date, decided_at, version, created_at, updated_at`

func (r *MerchantRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Merchant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id)
	return r.load(ctx, row, id.String())
}

func (r *MerchantRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (model.Merchant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE registration_number = $1`, registrationNumber)
	return r.load(ctx, row, registrationNumber)
}

func (r *MerchantRepository) ExistsByRegistrationNumber(ctx context.Context, registrationNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM merchants WHERE registration_number = $1)`, registrationNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query registration number: %w", err)
	}
	return exists, nil
}

func (r *MerchantRepository) Stats(ctx context.Context) (port.MerchantStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, risk_level, COUNT(*) FROM merchants GROUP BY status, risk_level`)
	if err != nil {
		return port.MerchantStats{}, fmt.Errorf("query merchant stats: %w", err)
	}
	defer rows.Close()

	stats := port.MerchantStats{
		ByStatus: make(map[valueobject.MerchantStatus]int),
		ByTier:   make(map[valueobject.RiskTier]int),
	}
	for rows.Next() {
		var (
			statusStr, tierStr string
			count              int
		)
		if err := rows.Scan(&statusStr, &tierStr, &count); err != nil {
			return port.MerchantStats{}, fmt.Errorf("scan merchant stats: %w", err)
		}
		status, err := valueobject.MerchantStatusFromString(statusStr)
		if err != nil {
			return port.MerchantStats{}, fmt.Errorf("invalid merchant status in DB: %w", err)
		}
		tier, err := valueobject.RiskTierFromString(tierStr)
		if err != nil {
			return port.MerchantStats{}, fmt.Errorf("invalid risk level in DB: %w", err)
		}
		stats.ByStatus[status] += count
		stats.ByTier[tier] += count
		stats.Total += count
	}
	return stats, rows.Err()
}

func (r *MerchantRepository) ListByStatuses(ctx context.Context, statuses []valueobject.MerchantStatus, limit int) ([]model.Merchant, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}
	return r.listIDs(ctx, `
		SELECT id FROM merchants
		WHERE status = ANY($1)
		ORDER BY created_at DESC, id
		LIMIT $2
	`, values, limit)
}

func (r *MerchantRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]model.Merchant, error) {
	return r.listIDs(ctx, `
		SELECT id FROM merchants
		ORDER BY updated_at DESC, id
		LIMIT $1
	`, limit)
}

func (r *MerchantRepository) ListForRescreen(ctx context.Context, after uuid.UUID, limit int) ([]model.Merchant, error) {
	return r.listIDs(ctx, `
		SELECT id FROM merchants
		WHERE status <> 'REJECTED' AND id > $1
		ORDER BY id
		LIMIT $2
	`, after, limit)
}

// listIDs runs an ID query and loads each merchant.
func (r *MerchantRepository) listIDs(ctx context.Context, query string, args ...any) ([]model.Merchant, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query merchants: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan merchant id: %w", err)
	}

	merchants := make([]model.Merchant, 0, len(ids))
	for _, id := range ids {
		m, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, m)
	}
	return merchants, nil
}

func (r *MerchantRepository) load(ctx context.Context, row pgx.Row, key string) (model.Merchant, error) {
	var (
		p                               model.ReconstructParams
		country, category, tier, status string
		reviewDate, decidedAt           *time.Time
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.Profile.BusinessName, &p.Profile.RegistrationNumber,
		&country, &category, &p.Profile.Email, &p.Profile.Phone, &p.Profile.Address,
		&tier, &status, &p.ReviewNotes, &p.ReviewedBy, &reviewDate, &decidedAt,
		&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Merchant{}, fmt.Errorf("%w: %s", port.ErrMerchantNotFound, key)
		}
		return model.Merchant{}, fmt.Errorf("query merchant: %w", err)
	}

	if p.Profile.Country, err = valueobject.NewCountryCode(country); err != nil {
		return model.Merchant{}, fmt.Errorf("invalid country in DB: %w", err)
	}
	if p.Profile.Category, err = valueobject.BusinessCategoryFromString(category); err != nil {
		return model.Merchant{}, fmt.Errorf("invalid business category in DB: %w", err)
	}
	if p.RiskTier, err = valueobject.RiskTierFromString(tier); err != nil {
		return model.Merchant{}, fmt.Errorf("invalid risk level in DB: %w", err)
	}
	if p.Status, err = valueobject.MerchantStatusFromString(status); err != nil {
		return model.Merchant{}, fmt.Errorf("invalid merchant status in DB: %w", err)
	}
	p.ReviewDate = derefTime(reviewDate)
	p.DecidedAt = derefTime(decidedAt)

	if p.Owners, err = r.findOwners(ctx, p.ID); err != nil {
		return model.Merchant{}, err
	}
	if p.Documents, err = r.findDocuments(ctx, p.ID); err != nil {
		return model.Merchant{}, err
	}
	if p.Assessments, err = r.findAssessments(ctx, p.ID); err != nil {
		return model.Merchant{}, err
	}
	if p.ScreeningResults, err = r.findScreeningResults(ctx, p.ID); err != nil {
		return model.Merchant{}, err
	}
	return model.Reconstruct(p), nil
}

func (r *MerchantRepository) findOwners(ctx context.Context, merchantID uuid.UUID) ([]model.BeneficialOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, nationality, ownership_percentage, id_document_type,
			id_document_number, is_pep, created_at
		FROM beneficial_owners WHERE merchant_id = $1
		ORDER BY position
	`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	var owners []model.BeneficialOwner
	for rows.Next() {
		var (
			id                    uuid.UUID
			fullName, nationality string
			pct                   decimal.Decimal
			idTypeStr, idNumber   string
			isPEP                 bool
			createdAt             time.Time
		)
		if err := rows.Scan(&id, &fullName, &nationality, &pct, &idTypeStr, &idNumber, &isPEP, &createdAt); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		idType, err := valueobject.IDDocumentTypeFromString(idTypeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ID document type in DB: %w", err)
		}
		owners = append(owners, model.ReconstructBeneficialOwner(id, fullName, nationality, pct, idType, idNumber, isPEP, createdAt))
	}
	return owners, rows.Err()
}

func (r *MerchantRepository) findDocuments(ctx context.Context, merchantID uuid.UUID) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, document_type, storage_ref, uploaded_at, verified, verified_by, verification_date, notes
		FROM documents WHERE merchant_id = $1
		ORDER BY uploaded_at, id
	`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var (
			id                uuid.UUID
			docTypeStr, ref   string
			uploadedAt        time.Time
			verified          bool
			verifiedBy, notes string
			verifiedAt        *time.Time
		)
		if err := rows.Scan(&id, &docTypeStr, &ref, &uploadedAt, &verified, &verifiedBy, &verifiedAt, &notes); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docType, err := valueobject.DocumentTypeFromString(docTypeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid document type in DB: %w", err)
		}
		docs = append(docs, model.ReconstructDocument(id, docType, ref, uploadedAt, verified, verifiedBy, derefTime(verifiedAt), notes))
	}
	return docs, rows.Err()
}

func (r *MerchantRepository) findAssessments(ctx context.Context, merchantID uuid.UUID) ([]model.RiskAssessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, risk_score, risk_factors, assessed_by, assessor, notes, created_at
		FROM risk_assessments WHERE merchant_id = $1
		ORDER BY created_at, id
	`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query risk assessments: %w", err)
	}
	defer rows.Close()

	var assessments []model.RiskAssessment
	for rows.Next() {
		var (
			id              uuid.UUID
			score           int
			factorsJSON     []byte
			assessedByStr   string
			assessor, notes string
			createdAt       time.Time
		)
		if err := rows.Scan(&id, &score, &factorsJSON, &assessedByStr, &assessor, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan risk assessment: %w", err)
		}
		var factors []string
		if err := json.Unmarshal(factorsJSON, &factors); err != nil {
			return nil, fmt.Errorf("decode risk factors: %w", err)
		}
		assessedBy, err := valueobject.AssessorFromString(assessedByStr)
		if err != nil {
			return nil, fmt.Errorf("invalid assessor in DB: %w", err)
		}
		assessments = append(assessments, model.ReconstructRiskAssessment(id, score, factors, assessedBy, assessor, notes, createdAt))
	}
	return assessments, rows.Err()
}

func (r *MerchantRepository) findScreeningResults(ctx context.Context, merchantID uuid.UUID) ([]model.ScreeningResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, screening_type, screened_entity, status, match_details, screened_at
		FROM screening_results WHERE merchant_id = $1
		ORDER BY position
	`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query screening results: %w", err)
	}
	defer rows.Close()

	var results []model.ScreeningResult
	for rows.Next() {
		var (
			id                          uuid.UUID
			typeStr, subject, statusStr string
			detailsJSON                 []byte
			screenedAt                  time.Time
		)
		if err := rows.Scan(&id, &typeStr, &subject, &statusStr, &detailsJSON, &screenedAt); err != nil {
			return nil, fmt.Errorf("scan screening result: %w", err)
		}
		screeningType, err := valueobject.ScreeningTypeFromString(typeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid screening type in DB: %w", err)
		}
		status, err := valueobject.ScreeningStatusFromString(statusStr)
		if err != nil {
			return nil, fmt.Errorf("invalid screening status in DB: %w", err)
		}
		entry, err := decodeMatchDetails(detailsJSON)
		if err != nil {
			return nil, err
		}
		results = append(results, model.ReconstructScreeningResult(id, screeningType, subject, status, entry, screenedAt))
	}
	return results, rows.Err()
}

func decodeMatchDetails(raw []byte) (valueobject.ReferenceEntry, error) {
	var d matchDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return valueobject.ReferenceEntry{}, fmt.Errorf("decode match details: %w", err)
	}
	if d.Name == "" {
		return valueobject.ReferenceEntry{}, nil
	}
	entry, err := valueobject.NewReferenceEntry(d.Name, d.List, d.Position, d.Country)
	if err != nil {
		return valueobject.ReferenceEntry{}, fmt.Errorf("invalid match details in DB: %w", err)
	}
	return entry, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
