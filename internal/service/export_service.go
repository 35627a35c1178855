package service

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/psicare/clinical-records-api/internal/config"
	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/pkg/utils"
)

// ConsentDocumentRenderer composes a stored consent record into a PDF.
// Kept narrow so the export flow is testable without a real PDF backend.
type ConsentDocumentRenderer interface {
	Render(doc *models.ConsentExportDocument) ([]byte, error)
}

// MedicalRecordStamper stamps a medical-record payload onto the fixed
// multi-page clinical history template.
type MedicalRecordStamper interface {
	Stamp(doc *models.MedicalRecordDocument) ([]byte, error)
}

// ExportService drives the document export pipeline
type ExportService struct {
	recordDAO ConsentRecordStore
	renderer  ConsentDocumentRenderer
	stamper   MedicalRecordStamper
	clinicCfg config.ClinicConfig
	assetsCfg config.AssetsConfig
	logger    *logrus.Logger
}

// NewExportService creates a new export service instance
func NewExportService(
	recordDAO ConsentRecordStore,
	renderer ConsentDocumentRenderer,
	stamper MedicalRecordStamper,
	clinicCfg config.ClinicConfig,
	assetsCfg config.AssetsConfig,
	logger *logrus.Logger,
) *ExportService {
	return &ExportService{
		recordDAO: recordDAO,
		renderer:  renderer,
		stamper:   stamper,
		clinicCfg: clinicCfg,
		assetsCfg: assetsCfg,
		logger:    logger,
	}
}

// RenderConsentPDF loads a persisted consent record and composes it into a
// downloadable PDF. Returns the document bytes and the attachment filename.
func (s *ExportService) RenderConsentPDF(ctx context.Context, recordID string) ([]byte, string, error) {
	if err := utils.ValidateRecordID(recordID); err != nil {
		return nil, "", err
	}

	row, err := s.recordDAO.GetRowByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}

	doc := &models.ConsentExportDocument{
		ClinicName:           s.clinicCfg.Name,
		ClinicTaxID:          s.clinicCfg.TaxID,
		ClinicAddress:        s.clinicCfg.Address,
		ClinicPhone:          s.clinicCfg.Phone,
		LogoPath:             s.assetsCfg.LogoPath,
		PractitionerName:     s.clinicCfg.PractitionerName,
		PractitionerLicense:  s.clinicCfg.PractitionerLicense,
		Title:                row.TemplateTitle,
		PatientName:          row.PatientName,
		IdentificationNumber: row.IdentificationNumber,
		SignerName:           row.SignedByName,
		SignerDocument:       row.SignedByDocument,
		SigningDate:          utils.FormatSigningDate(utils.MillisToTime(row.SignedTime)),
		SnapshotHTML:         row.DocumentSnapshot,
	}
	if row.SignatureImage != nil {
		doc.SignatureDataURI = *row.SignatureImage
	}

	data, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.WithError(err).WithField("record_id", recordID).Error("Consent PDF rendering failed")
		return nil, "", fmt.Errorf("failed to render consent PDF: %w", err)
	}

	if len(data) == 0 {
		return nil, "", fmt.Errorf("failed to render consent PDF: empty output buffer")
	}

	filename := fmt.Sprintf("consentimiento_%s.pdf", recordID)
	return data, filename, nil
}

// StampMedicalRecordPDF stamps a full medical-record payload onto the
// clinical history template. Template and font files must exist before any
// rendering work begins.
func (s *ExportService) StampMedicalRecordPDF(ctx context.Context, doc *models.MedicalRecordDocument) ([]byte, string, error) {
	if err := utils.ValidateRequired("identificationNumber", doc.IdentificationNumber); err != nil {
		return nil, "", err
	}

	if _, err := os.Stat(s.assetsCfg.RecordTemplatePath); err != nil {
		return nil, "", fmt.Errorf("record template not available: %w", err)
	}
	if _, err := os.Stat(s.assetsCfg.FontPath); err != nil {
		return nil, "", fmt.Errorf("record font not available: %w", err)
	}

	data, err := s.stamper.Stamp(doc)
	if err != nil {
		s.logger.WithError(err).WithField("identification_number", doc.IdentificationNumber).Error("Medical record stamping failed")
		return nil, "", fmt.Errorf("failed to stamp medical record PDF: %w", err)
	}

	if len(data) == 0 {
		return nil, "", fmt.Errorf("failed to stamp medical record PDF: empty output buffer")
	}

	filename := fmt.Sprintf("Historia_Clinica_%s.pdf", doc.IdentificationNumber)
	return data, filename, nil
}
