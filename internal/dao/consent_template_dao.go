package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/psicare/clinical-records-api/internal/database"
	"github.com/psicare/clinical-records-api/internal/models"
)

// ConsentTemplateDAO handles database operations for consent templates
type ConsentTemplateDAO struct {
	db *database.DB
}

// NewConsentTemplateDAO creates a new ConsentTemplateDAO instance
func NewConsentTemplateDAO(db *database.DB) *ConsentTemplateDAO {
	return &ConsentTemplateDAO{db: db}
}

// GetActiveByTitle retrieves the active template for a title.
// Returns (nil, nil) when no active template exists.
func (dao *ConsentTemplateDAO) GetActiveByTitle(ctx context.Context, title string) (*models.ConsentTemplate, error) {
	query := `
		SELECT TEMPLATE_ID, TEMPLATE_TYPE, VERSION, TITLE, CONTENT, ACTIVE_FLAG, CREATED_TIME
		FROM HC_CONSENT_TEMPLATE
		WHERE TITLE = ? AND ACTIVE_FLAG = 1
	`

	var template models.ConsentTemplate
	err := dao.db.GetContext(ctx, &template, query, title)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active template: %w", err)
	}

	return &template, nil
}

// GetByID retrieves a template by ID
func (dao *ConsentTemplateDAO) GetByID(ctx context.Context, templateID string) (*models.ConsentTemplate, error) {
	query := `
		SELECT TEMPLATE_ID, TEMPLATE_TYPE, VERSION, TITLE, CONTENT, ACTIVE_FLAG, CREATED_TIME
		FROM HC_CONSENT_TEMPLATE
		WHERE TEMPLATE_ID = ?
	`

	var template models.ConsentTemplate
	err := dao.db.GetContext(ctx, &template, query, templateID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template not found: %s", templateID)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// Create inserts a new template.
// The UQ_TEMPLATE_ACTIVE_TITLE unique index on (TITLE, ACTIVE_FLAG) rejects a
// second active row for the same title; callers detect that case with
// IsDuplicateEntry and re-read the winning row.
func (dao *ConsentTemplateDAO) Create(ctx context.Context, template *models.ConsentTemplate) error {
	query := `
		INSERT INTO HC_CONSENT_TEMPLATE (
			TEMPLATE_ID, TEMPLATE_TYPE, VERSION, TITLE, CONTENT, ACTIVE_FLAG, CREATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		template.TemplateID,
		template.TemplateType,
		template.Version,
		template.Title,
		template.Content,
		template.ActiveFlag,
		template.CreatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// IsDuplicateEntry reports whether err is a MySQL duplicate-key violation
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
