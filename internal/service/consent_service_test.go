package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/psicare/clinical-records-api/internal/config"
	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/internal/service/mocks"
	"github.com/psicare/clinical-records-api/pkg/doctemplate"
)

const testTemplateTitle = "Consentimiento Informado para Atención Psicológica"

func newTestConsentService(
	templateDAO *mocks.MockConsentTemplateStore,
	recordDAO *mocks.MockConsentRecordStore,
	medicalRecordDAO *mocks.MockMedicalRecordStore,
) *ConsentService {
	logger := logrus.New()
	logger.SetOutput(testWriter{})

	svc := NewConsentService(templateDAO, recordDAO, medicalRecordDAO, config.ConsentConfig{
		TemplateTitle:  testTemplateTitle,
		DefaultVersion: "1.0",
	}, logger)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func activeTemplate() *models.ConsentTemplate {
	active := 1
	return &models.ConsentTemplate{
		TemplateID:   "TEMPLATE-11111111-1111-1111-1111-111111111111",
		TemplateType: TemplateTypeInformedConsent,
		Version:      "1.0",
		Title:        testTemplateTitle,
		Content:      "<p>Fecha: __FECHA__</p><p>Yo, __PACIENTE__, documento __DOCUMENTO__, firmo.</p>",
		ActiveFlag:   &active,
		CreatedTime:  1700000000000,
	}
}

func validSubmitRequest() *models.ConsentSubmitRequest {
	return &models.ConsentSubmitRequest{
		MedicalRecordID:  42,
		SignedByName:     "Ana María Torres",
		SignedByDocument: "52841963",
		SignatureBase64:  "data:image/png;base64,aVZCT1J3MEtHZ28=",
	}
}

func TestSubmitConsentCreatesSealedRecord(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	recordDAO := new(mocks.MockConsentRecordStore)
	medicalRecordDAO := new(mocks.MockMedicalRecordStore)
	service := newTestConsentService(templateDAO, recordDAO, medicalRecordDAO)

	request := validSubmitRequest()
	template := activeTemplate()

	medicalRecordDAO.On("GetSummaryByID", mock.Anything, int64(42)).Return(&models.MedicalRecordSummary{
		ID:           42,
		RecordNumber: "HC-0042",
		PatientName:  "Ana María Torres",
	}, nil)
	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(template, nil)

	var created *models.ConsentRecord
	recordDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsentRecord")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.ConsentRecord)
		}).
		Return(nil)

	response, err := service.SubmitConsent(context.Background(), request, &models.SubmissionProvenance{
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	})

	assert.NoError(t, err)
	assert.NotNil(t, response)
	assert.True(t, response.Success)
	assert.Equal(t, created.RecordID, response.ConsentID)
	assert.True(t, strings.HasPrefix(response.ConsentID, "CONSENT-"))

	// Snapshot carries the subject values and no leftover placeholders.
	assert.Contains(t, created.DocumentSnapshot, "Ana María Torres")
	assert.Contains(t, created.DocumentSnapshot, "52841963")
	assert.Contains(t, created.DocumentSnapshot, "15 / 03 / 2025")
	assert.NotContains(t, created.DocumentSnapshot, doctemplate.TokenDate)
	assert.NotContains(t, created.DocumentSnapshot, doctemplate.TokenPatient)
	assert.NotContains(t, created.DocumentSnapshot, doctemplate.TokenDocument)

	// Hash seals snapshot plus signature.
	sum := sha256.Sum256([]byte(created.DocumentSnapshot + request.SignatureBase64))
	assert.Equal(t, hex.EncodeToString(sum[:]), created.DocumentHash)

	assert.Equal(t, template.TemplateID, created.TemplateID)
	assert.Equal(t, "203.0.113.7", created.IPAddress)
	assert.Equal(t, "test-agent", created.UserAgent)
	assert.NotNil(t, created.SignatureImage)

	templateDAO.AssertExpectations(t)
	recordDAO.AssertExpectations(t)
	medicalRecordDAO.AssertExpectations(t)
}

func TestSubmitConsentWithoutSignature(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	recordDAO := new(mocks.MockConsentRecordStore)
	medicalRecordDAO := new(mocks.MockMedicalRecordStore)
	service := newTestConsentService(templateDAO, recordDAO, medicalRecordDAO)

	request := validSubmitRequest()
	request.SignatureBase64 = ""

	medicalRecordDAO.On("GetSummaryByID", mock.Anything, int64(42)).Return(&models.MedicalRecordSummary{ID: 42}, nil)
	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(activeTemplate(), nil)

	var created *models.ConsentRecord
	recordDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsentRecord")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.ConsentRecord)
		}).
		Return(nil)

	_, err := service.SubmitConsent(context.Background(), request, &models.SubmissionProvenance{})

	assert.NoError(t, err)
	assert.Nil(t, created.SignatureImage)

	sum := sha256.Sum256([]byte(created.DocumentSnapshot))
	assert.Equal(t, hex.EncodeToString(sum[:]), created.DocumentHash)
}

func TestSubmitConsentValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.ConsentSubmitRequest)
		errContains string
	}{
		{
			name:        "missing medical record id",
			mutate:      func(r *models.ConsentSubmitRequest) { r.MedicalRecordID = 0 },
			errContains: "medicalRecordId is required",
		},
		{
			name:        "missing signer name",
			mutate:      func(r *models.ConsentSubmitRequest) { r.SignedByName = "  " },
			errContains: "signedByName is required",
		},
		{
			name:        "missing signer document",
			mutate:      func(r *models.ConsentSubmitRequest) { r.SignedByDocument = "" },
			errContains: "signedByDocument is required",
		},
		{
			name:        "signer name too long",
			mutate:      func(r *models.ConsentSubmitRequest) { r.SignedByName = strings.Repeat("a", 256) },
			errContains: "exceeds maximum length",
		},
		{
			name:        "malformed signature",
			mutate:      func(r *models.ConsentSubmitRequest) { r.SignatureBase64 = "not-a-data-uri" },
			errContains: "signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templateDAO := new(mocks.MockConsentTemplateStore)
			recordDAO := new(mocks.MockConsentRecordStore)
			medicalRecordDAO := new(mocks.MockMedicalRecordStore)
			service := newTestConsentService(templateDAO, recordDAO, medicalRecordDAO)

			request := validSubmitRequest()
			tt.mutate(request)

			response, err := service.SubmitConsent(context.Background(), request, &models.SubmissionProvenance{})

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Nil(t, response)

			// A rejected submission never touches storage.
			templateDAO.AssertNotCalled(t, "GetActiveByTitle", mock.Anything, mock.Anything)
			recordDAO.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			medicalRecordDAO.AssertNotCalled(t, "GetSummaryByID", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitConsentMedicalRecordNotFound(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	recordDAO := new(mocks.MockConsentRecordStore)
	medicalRecordDAO := new(mocks.MockMedicalRecordStore)
	service := newTestConsentService(templateDAO, recordDAO, medicalRecordDAO)

	medicalRecordDAO.On("GetSummaryByID", mock.Anything, int64(42)).
		Return(nil, errors.New("medical record not found: 42"))

	response, err := service.SubmitConsent(context.Background(), validSubmitRequest(), &models.SubmissionProvenance{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, response)
	recordDAO.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolveActiveTemplateReturnsExisting(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	service := newTestConsentService(templateDAO, new(mocks.MockConsentRecordStore), new(mocks.MockMedicalRecordStore))

	existing := activeTemplate()
	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(existing, nil)

	template, err := service.ResolveActiveTemplate(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, existing.TemplateID, template.TemplateID)
	templateDAO.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolveActiveTemplateCreatesDefault(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	service := newTestConsentService(templateDAO, new(mocks.MockConsentRecordStore), new(mocks.MockMedicalRecordStore))

	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(nil, nil)
	templateDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsentTemplate")).Return(nil)

	template, err := service.ResolveActiveTemplate(context.Background())

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(template.TemplateID, "TEMPLATE-"))
	assert.Equal(t, TemplateTypeInformedConsent, template.TemplateType)
	assert.Equal(t, "1.0", template.Version)
	assert.Equal(t, testTemplateTitle, template.Title)
	assert.True(t, template.IsActive())

	// The canonical default carries every placeholder.
	assert.Contains(t, template.Content, doctemplate.TokenDate)
	assert.Contains(t, template.Content, doctemplate.TokenPatient)
	assert.Contains(t, template.Content, doctemplate.TokenDocument)

	templateDAO.AssertExpectations(t)
}

func TestResolveActiveTemplateLosesInsertRace(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	service := newTestConsentService(templateDAO, new(mocks.MockConsentRecordStore), new(mocks.MockMedicalRecordStore))

	winner := activeTemplate()
	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(nil, nil).Once()
	templateDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsentTemplate")).Return(duplicate).Once()
	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(winner, nil).Once()

	template, err := service.ResolveActiveTemplate(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, winner.TemplateID, template.TemplateID)
	templateDAO.AssertExpectations(t)
}

func TestResolveActiveTemplateCreateFailure(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	service := newTestConsentService(templateDAO, new(mocks.MockConsentRecordStore), new(mocks.MockMedicalRecordStore))

	templateDAO.On("GetActiveByTitle", mock.Anything, testTemplateTitle).Return(nil, nil)
	templateDAO.On("Create", mock.Anything, mock.AnythingOfType("*models.ConsentTemplate")).
		Return(errors.New("connection refused"))

	template, err := service.ResolveActiveTemplate(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create consent template")
	assert.Nil(t, template)
}

func TestListConsents(t *testing.T) {
	templateDAO := new(mocks.MockConsentTemplateStore)
	recordDAO := new(mocks.MockConsentRecordStore)
	service := newTestConsentService(templateDAO, recordDAO, new(mocks.MockMedicalRecordStore))

	signature := "data:image/png;base64,aVZCT1J3MEtHZ28="
	rows := []models.ConsentRecordRow{
		{
			ConsentRecord: models.ConsentRecord{
				RecordID:         "CONSENT-aaa",
				MedicalRecordID:  42,
				SignedByName:     "Ana María Torres",
				SignedByDocument: "52841963",
				SignatureImage:   &signature,
				DocumentHash:     "deadbeef",
				SignedTime:       1742034600000,
			},
			PatientName:     "Ana María Torres",
			RecordNumber:    "HC-0042",
			TemplateTitle:   testTemplateTitle,
			TemplateVersion: "1.0",
		},
		{
			ConsentRecord: models.ConsentRecord{
				RecordID:        "CONSENT-bbb",
				MedicalRecordID: 43,
				SignedByName:    "Carlos Ruiz",
				SignedTime:      1742034500000,
			},
		},
	}

	filter := &models.ConsentSearchFilter{Search: "ana"}
	recordDAO.On("Search", mock.Anything, filter).Return(rows, nil)

	response, err := service.ListConsents(context.Background(), filter)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, "CONSENT-aaa", response.Data[0].RecordID)
	assert.True(t, response.Data[0].HasSignature)
	assert.Equal(t, "HC-0042", response.Data[0].MedicalRecord.RecordNumber)
	assert.Equal(t, "1.0", response.Data[0].Template.Version)
	assert.False(t, response.Data[1].HasSignature)
}

func TestListConsentsSearchTooLong(t *testing.T) {
	recordDAO := new(mocks.MockConsentRecordStore)
	service := newTestConsentService(new(mocks.MockConsentTemplateStore), recordDAO, new(mocks.MockMedicalRecordStore))

	_, err := service.ListConsents(context.Background(), &models.ConsentSearchFilter{
		Search: strings.Repeat("a", 256),
	})

	assert.Error(t, err)
	recordDAO.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestGetConsent(t *testing.T) {
	recordDAO := new(mocks.MockConsentRecordStore)
	service := newTestConsentService(new(mocks.MockConsentTemplateStore), recordDAO, new(mocks.MockMedicalRecordStore))

	row := &models.ConsentRecordRow{
		ConsentRecord: models.ConsentRecord{RecordID: "CONSENT-aaa", MedicalRecordID: 42},
		PatientName:   "Ana María Torres",
	}
	recordDAO.On("GetRowByID", mock.Anything, "CONSENT-aaa").Return(row, nil)

	response, err := service.GetConsent(context.Background(), "CONSENT-aaa")

	assert.NoError(t, err)
	assert.Equal(t, "CONSENT-aaa", response.RecordID)
	assert.Equal(t, "Ana María Torres", response.MedicalRecord.PatientName)
}

func TestGetConsentEmptyID(t *testing.T) {
	recordDAO := new(mocks.MockConsentRecordStore)
	service := newTestConsentService(new(mocks.MockConsentTemplateStore), recordDAO, new(mocks.MockMedicalRecordStore))

	_, err := service.GetConsent(context.Background(), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
	recordDAO.AssertNotCalled(t, "GetRowByID", mock.Anything, mock.Anything)
}

func TestGetConsentNotFound(t *testing.T) {
	recordDAO := new(mocks.MockConsentRecordStore)
	service := newTestConsentService(new(mocks.MockConsentTemplateStore), recordDAO, new(mocks.MockMedicalRecordStore))

	recordDAO.On("GetRowByID", mock.Anything, "CONSENT-missing").
		Return(nil, errors.New("consent record not found: CONSENT-missing"))

	response, err := service.GetConsent(context.Background(), "CONSENT-missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, response)
}
