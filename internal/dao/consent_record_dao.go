package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/psicare/clinical-records-api/internal/database"
	"github.com/psicare/clinical-records-api/internal/models"
)

// consent record queries join the medical record and template so listings can
// embed their compact projections in a single round trip
const consentRecordSelect = `
	SELECT c.RECORD_ID, c.MEDICAL_RECORD_ID, c.TEMPLATE_ID, c.SIGNED_BY_NAME,
	       c.SIGNED_BY_DOCUMENT, c.DOCUMENT_SNAPSHOT, c.SIGNATURE_IMAGE,
	       c.IP_ADDRESS, c.USER_AGENT, c.DOCUMENT_HASH, c.SIGNED_TIME,
	       m.PATIENT_NAME, m.IDENTIFICATION_NUMBER, m.RECORD_NUMBER,
	       t.TITLE AS TEMPLATE_TITLE, t.VERSION AS TEMPLATE_VERSION
	FROM HC_CONSENT_RECORD c
	INNER JOIN HC_MEDICAL_RECORD m ON c.MEDICAL_RECORD_ID = m.ID
	INNER JOIN HC_CONSENT_TEMPLATE t ON c.TEMPLATE_ID = t.TEMPLATE_ID`

// ConsentRecordDAO handles database operations for consent records.
// Records are immutable: there are no update or delete methods.
type ConsentRecordDAO struct {
	db *database.DB
}

// NewConsentRecordDAO creates a new ConsentRecordDAO instance
func NewConsentRecordDAO(db *database.DB) *ConsentRecordDAO {
	return &ConsentRecordDAO{db: db}
}

// Create inserts a new consent record into the database
func (dao *ConsentRecordDAO) Create(ctx context.Context, record *models.ConsentRecord) error {
	query := `
		INSERT INTO HC_CONSENT_RECORD (
			RECORD_ID, MEDICAL_RECORD_ID, TEMPLATE_ID, SIGNED_BY_NAME,
			SIGNED_BY_DOCUMENT, DOCUMENT_SNAPSHOT, SIGNATURE_IMAGE,
			IP_ADDRESS, USER_AGENT, DOCUMENT_HASH, SIGNED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		record.RecordID,
		record.MedicalRecordID,
		record.TemplateID,
		record.SignedByName,
		record.SignedByDocument,
		record.DocumentSnapshot,
		record.SignatureImage,
		record.IPAddress,
		record.UserAgent,
		record.DocumentHash,
		record.SignedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create consent record: %w", err)
	}

	return nil
}

// GetRowByID retrieves a consent record by ID with its joined projections
func (dao *ConsentRecordDAO) GetRowByID(ctx context.Context, recordID string) (*models.ConsentRecordRow, error) {
	query := consentRecordSelect + `
	WHERE c.RECORD_ID = ?`

	var row models.ConsentRecordRow
	err := dao.db.GetContext(ctx, &row, query, recordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("consent record not found: %s", recordID)
		}
		return nil, fmt.Errorf("failed to get consent record: %w", err)
	}

	return &row, nil
}

// Search retrieves consent records matching the filter, most recent first.
// The free-text term matches case-insensitively against signer name, signer
// document number, or the associated patient name.
func (dao *ConsentRecordDAO) Search(ctx context.Context, filter *models.ConsentSearchFilter) ([]models.ConsentRecordRow, error) {
	var conditions []string
	var args []interface{}

	if filter.MedicalRecordID != nil {
		conditions = append(conditions, "c.MEDICAL_RECORD_ID = ?")
		args = append(args, *filter.MedicalRecordID)
	}

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions,
			"(LOWER(c.SIGNED_BY_NAME) LIKE ? OR LOWER(c.SIGNED_BY_DOCUMENT) LIKE ? OR LOWER(m.PATIENT_NAME) LIKE ?)")
		args = append(args, term, term, term)
	}

	query := consentRecordSelect
	if len(conditions) > 0 {
		query += "\n	WHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n	ORDER BY c.SIGNED_TIME DESC"

	var rows []models.ConsentRecordRow
	err := dao.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search consent records: %w", err)
	}

	return rows, nil
}

// Exists checks if a consent record exists
func (dao *ConsentRecordDAO) Exists(ctx context.Context, recordID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM HC_CONSENT_RECORD WHERE RECORD_ID = ?)`

	var exists bool
	err := dao.db.GetContext(ctx, &exists, query, recordID)
	if err != nil {
		return false, fmt.Errorf("failed to check consent record existence: %w", err)
	}

	return exists, nil
}
