package dao

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/psicare/clinical-records-api/internal/database"
)

// newMockDB wraps a sqlmock connection in the sqlx layer the DAOs expect
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return &database.DB{DB: sqlx.NewDb(mockDB, "mysql")}, mock
}

var consentRecordColumns = []string{
	"RECORD_ID", "MEDICAL_RECORD_ID", "TEMPLATE_ID", "SIGNED_BY_NAME",
	"SIGNED_BY_DOCUMENT", "DOCUMENT_SNAPSHOT", "SIGNATURE_IMAGE",
	"IP_ADDRESS", "USER_AGENT", "DOCUMENT_HASH", "SIGNED_TIME",
	"PATIENT_NAME", "IDENTIFICATION_NUMBER", "RECORD_NUMBER",
	"TEMPLATE_TITLE", "TEMPLATE_VERSION",
}

var consentTemplateColumns = []string{
	"TEMPLATE_ID", "TEMPLATE_TYPE", "VERSION", "TITLE", "CONTENT",
	"ACTIVE_FLAG", "CREATED_TIME",
}
