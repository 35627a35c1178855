package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/psicare/clinical-records-api/internal/config"
	"github.com/psicare/clinical-records-api/internal/dao"
	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/pkg/doctemplate"
	"github.com/psicare/clinical-records-api/pkg/utils"
)

// TemplateTypeInformedConsent is the enumerated category of the template
// family managed by this service.
const TemplateTypeInformedConsent = "INFORMED_CONSENT"

// defaultTemplateContent is the canonical informed-consent document created
// lazily on first submission when no active template exists for the
// configured title. Each placeholder token appears exactly once.
const defaultTemplateContent = `<h2>Consentimiento Informado para Atención Psicológica</h2>
<p>Fecha: __FECHA__</p>
<p>Yo, __PACIENTE__, identificado(a) con documento número __DOCUMENTO__,
declaro que he sido informado(a) de manera clara y comprensible sobre la
naturaleza, los objetivos y el alcance del proceso de evaluación y atención
psicológica que se me ofrece.</p>
<p>Entiendo que la información que comparta durante las sesiones será tratada
con estricta confidencialidad, salvo las excepciones contempladas por la ley:
riesgo inminente para mi integridad o la de terceros, o requerimiento expreso
de autoridad judicial competente.</p>
<p>Autorizo el registro de la información clínica derivada de las sesiones en
mi historia clínica, la cual será custodiada conforme a la normativa vigente
sobre protección de datos personales y manejo de registros clínicos.</p>
<p>Declaro que mi participación es voluntaria, que he podido formular todas
las preguntas que consideré necesarias y que puedo revocar este
consentimiento en cualquier momento sin que ello afecte mi derecho a recibir
atención.</p>
<p>En constancia de lo anterior, firmo el presente consentimiento.</p>`

// ConsentTemplateStore is the persistence contract for consent templates
type ConsentTemplateStore interface {
	GetActiveByTitle(ctx context.Context, title string) (*models.ConsentTemplate, error)
	Create(ctx context.Context, template *models.ConsentTemplate) error
}

// ConsentRecordStore is the persistence contract for consent records
type ConsentRecordStore interface {
	Create(ctx context.Context, record *models.ConsentRecord) error
	GetRowByID(ctx context.Context, recordID string) (*models.ConsentRecordRow, error)
	Search(ctx context.Context, filter *models.ConsentSearchFilter) ([]models.ConsentRecordRow, error)
}

// MedicalRecordStore is the read-only contract for medical record lookups
type MedicalRecordStore interface {
	GetSummaryByID(ctx context.Context, id int64) (*models.MedicalRecordSummary, error)
}

// ConsentService handles business logic for the consent record lifecycle
type ConsentService struct {
	templateDAO      ConsentTemplateStore
	recordDAO        ConsentRecordStore
	medicalRecordDAO MedicalRecordStore
	consentCfg       config.ConsentConfig
	logger           *logrus.Logger
	now              func() time.Time
}

// NewConsentService creates a new consent service instance
func NewConsentService(
	templateDAO ConsentTemplateStore,
	recordDAO ConsentRecordStore,
	medicalRecordDAO MedicalRecordStore,
	consentCfg config.ConsentConfig,
	logger *logrus.Logger,
) *ConsentService {
	return &ConsentService{
		templateDAO:      templateDAO,
		recordDAO:        recordDAO,
		medicalRecordDAO: medicalRecordDAO,
		consentCfg:       consentCfg,
		logger:           logger,
		now:              time.Now,
	}
}

// ResolveActiveTemplate returns the active informed-consent template for the
// configured title, creating the canonical default on first use. Two
// concurrent first submissions can both attempt the insert; the unique index
// on (TITLE, ACTIVE_FLAG) rejects the loser, which then re-reads the winning
// row, so exactly one active template ever exists per title.
func (s *ConsentService) ResolveActiveTemplate(ctx context.Context) (*models.ConsentTemplate, error) {
	title := s.consentCfg.TemplateTitle

	template, err := s.templateDAO.GetActiveByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template: %w", err)
	}
	if template != nil {
		return template, nil
	}

	version := s.consentCfg.DefaultVersion
	if version == "" {
		version = "1.0"
	}

	active := 1
	template = &models.ConsentTemplate{
		TemplateID:   utils.GenerateTemplateID(),
		TemplateType: TemplateTypeInformedConsent,
		Version:      version,
		Title:        title,
		Content:      defaultTemplateContent,
		ActiveFlag:   &active,
		CreatedTime:  utils.TimeToMillis(s.now()),
	}

	if err := s.templateDAO.Create(ctx, template); err != nil {
		if dao.IsDuplicateEntry(err) {
			// A concurrent submission created the template first.
			winner, lookupErr := s.templateDAO.GetActiveByTitle(ctx, title)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to resolve template after duplicate: %w", lookupErr)
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, fmt.Errorf("failed to create consent template: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"template_id": template.TemplateID,
		"title":       title,
		"version":     version,
	}).Info("Created default consent template")

	return template, nil
}

// SubmitConsent validates a submission, renders the immutable document
// snapshot from the active template, seals it with a hash over
// snapshot + signature, and persists the consent record.
func (s *ConsentService) SubmitConsent(ctx context.Context, request *models.ConsentSubmitRequest, provenance *models.SubmissionProvenance) (*models.ConsentSubmitResponse, error) {
	if err := s.validateSubmitRequest(request); err != nil {
		return nil, err
	}

	if _, err := s.medicalRecordDAO.GetSummaryByID(ctx, request.MedicalRecordID); err != nil {
		return nil, err
	}

	template, err := s.ResolveActiveTemplate(ctx)
	if err != nil {
		return nil, err
	}

	signedAt := s.now()
	snapshot, err := doctemplate.Fill(template.Content, []doctemplate.Replacement{
		{Token: doctemplate.TokenDate, Value: utils.FormatSigningDate(signedAt)},
		{Token: doctemplate.TokenPatient, Value: request.SignedByName},
		{Token: doctemplate.TokenDocument, Value: request.SignedByDocument},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render consent document: %w", err)
	}

	var signature *string
	if request.SignatureBase64 != "" {
		sig := request.SignatureBase64
		signature = &sig
	}

	record := &models.ConsentRecord{
		RecordID:         utils.GenerateConsentID(),
		MedicalRecordID:  request.MedicalRecordID,
		TemplateID:       template.TemplateID,
		SignedByName:     request.SignedByName,
		SignedByDocument: request.SignedByDocument,
		DocumentSnapshot: snapshot,
		SignatureImage:   signature,
		IPAddress:        provenance.IPAddress,
		UserAgent:        provenance.UserAgent,
		DocumentHash:     utils.HashDocument(snapshot + request.SignatureBase64),
		SignedTime:       utils.TimeToMillis(signedAt),
	}

	if err := s.recordDAO.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist consent record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"record_id":         record.RecordID,
		"medical_record_id": record.MedicalRecordID,
		"template_id":       record.TemplateID,
		"has_signature":     signature != nil,
	}).Info("Consent record created")

	return &models.ConsentSubmitResponse{
		Success:   true,
		ConsentID: record.RecordID,
		Message:   "Consentimiento registrado correctamente",
	}, nil
}

// validateSubmitRequest checks required fields and the optional signature.
// Fails before any storage work so a rejected submission has no side effects.
func (s *ConsentService) validateSubmitRequest(request *models.ConsentSubmitRequest) error {
	if request.MedicalRecordID <= 0 {
		return fmt.Errorf("medicalRecordId is required")
	}
	if err := utils.ValidateRequired("signedByName", request.SignedByName); err != nil {
		return err
	}
	if err := utils.ValidateRequired("signedByDocument", request.SignedByDocument); err != nil {
		return err
	}
	if err := utils.ValidateMaxLength("signedByName", request.SignedByName, 255); err != nil {
		return err
	}
	if err := utils.ValidateMaxLength("signedByDocument", request.SignedByDocument, 64); err != nil {
		return err
	}
	return utils.ValidateSignatureDataURI(request.SignatureBase64)
}

// ListConsents retrieves consent records matching the filter, most recent
// first, with embedded medical record and template projections.
func (s *ConsentService) ListConsents(ctx context.Context, filter *models.ConsentSearchFilter) (*models.ConsentListResponse, error) {
	if err := utils.ValidateMaxLength("search", filter.Search, 255); err != nil {
		return nil, err
	}

	rows, err := s.recordDAO.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list consent records: %w", err)
	}

	responses := make([]models.ConsentRecordResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].ToResponse())
	}

	return &models.ConsentListResponse{Data: responses}, nil
}

// GetConsent retrieves a single consent record with its projections
func (s *ConsentService) GetConsent(ctx context.Context, recordID string) (*models.ConsentRecordResponse, error) {
	if err := utils.ValidateRecordID(recordID); err != nil {
		return nil, err
	}

	row, err := s.recordDAO.GetRowByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	response := row.ToResponse()
	return &response, nil
}
