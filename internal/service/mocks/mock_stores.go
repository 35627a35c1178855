package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/psicare/clinical-records-api/internal/models"
)

// MockConsentTemplateStore is a mock implementation of service.ConsentTemplateStore
type MockConsentTemplateStore struct {
	mock.Mock
}

func (m *MockConsentTemplateStore) GetActiveByTitle(ctx context.Context, title string) (*models.ConsentTemplate, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsentTemplate), args.Error(1)
}

func (m *MockConsentTemplateStore) Create(ctx context.Context, template *models.ConsentTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

// MockConsentRecordStore is a mock implementation of service.ConsentRecordStore
type MockConsentRecordStore struct {
	mock.Mock
}

func (m *MockConsentRecordStore) Create(ctx context.Context, record *models.ConsentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConsentRecordStore) GetRowByID(ctx context.Context, recordID string) (*models.ConsentRecordRow, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsentRecordRow), args.Error(1)
}

func (m *MockConsentRecordStore) Search(ctx context.Context, filter *models.ConsentSearchFilter) ([]models.ConsentRecordRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsentRecordRow), args.Error(1)
}

// MockMedicalRecordStore is a mock implementation of service.MedicalRecordStore
type MockMedicalRecordStore struct {
	mock.Mock
}

func (m *MockMedicalRecordStore) GetSummaryByID(ctx context.Context, id int64) (*models.MedicalRecordSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MedicalRecordSummary), args.Error(1)
}
