package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/psicare/clinical-records-api/internal/database"
	"github.com/psicare/clinical-records-api/internal/models"
)

// MedicalRecordDAO reads the medical record table owned by the broader
// application. This subsystem only consumes the identity projection.
type MedicalRecordDAO struct {
	db *database.DB
}

// NewMedicalRecordDAO creates a new MedicalRecordDAO instance
func NewMedicalRecordDAO(db *database.DB) *MedicalRecordDAO {
	return &MedicalRecordDAO{db: db}
}

// GetSummaryByID retrieves the identity projection of a medical record
func (dao *MedicalRecordDAO) GetSummaryByID(ctx context.Context, id int64) (*models.MedicalRecordSummary, error) {
	query := `
		SELECT ID, RECORD_NUMBER, PATIENT_NAME, IDENTIFICATION_NUMBER
		FROM HC_MEDICAL_RECORD
		WHERE ID = ?
	`

	var summary models.MedicalRecordSummary
	err := dao.db.GetContext(ctx, &summary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("medical record not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}

	return &summary, nil
}

// Exists checks if a medical record exists
func (dao *MedicalRecordDAO) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM HC_MEDICAL_RECORD WHERE ID = ?)`

	var exists bool
	err := dao.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check medical record existence: %w", err)
	}

	return exists, nil
}
