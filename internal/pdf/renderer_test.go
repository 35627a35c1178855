package pdf

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/psicare/clinical-records-api/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(nullWriter{})
	return logger
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestConsentRendererMissingFont(t *testing.T) {
	renderer := NewConsentRenderer(filepath.Join(t.TempDir(), "missing.ttf"), quietLogger())

	data, err := renderer.Render(&models.ConsentExportDocument{
		PatientName: "Ana María Torres",
	})

	// Engine failures surface as errors, never panics.
	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestRecordStamperMissingTemplate(t *testing.T) {
	stamper := NewRecordStamper(
		filepath.Join(t.TempDir(), "missing.pdf"),
		filepath.Join(t.TempDir(), "missing.ttf"),
		quietLogger(),
	)

	data, err := stamper.Stamp(&models.MedicalRecordDocument{
		IdentificationNumber: "52841963",
	})

	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestRecordFieldMapPages(t *testing.T) {
	for _, field := range recordTextFields {
		assert.GreaterOrEqual(t, field.page, 1, "field %s", field.name)
		assert.LessOrEqual(t, field.page, minTemplatePages, "field %s", field.name)
		assert.NotNil(t, field.value, "field %s", field.name)
	}
	for _, field := range recordCheckFields {
		assert.GreaterOrEqual(t, field.page, 1, "checkbox %s", field.name)
		assert.LessOrEqual(t, field.page, minTemplatePages, "checkbox %s", field.name)
		assert.NotNil(t, field.set, "checkbox %s", field.name)
	}
}

func TestRecordFieldValuesReadDocument(t *testing.T) {
	doc := &models.MedicalRecordDocument{
		PatientName:           "Ana María Torres",
		IdentificationNumber:  "52841963",
		CompanionName:         "Luis Torres",
		CompanionRelationship: "Hermano",
		NextAppointment:       "22 / 03 / 2025",
		ClosureDate:           "30 / 06 / 2025",
		FirstConsultation:     true,
	}

	values := make(map[string]string, len(recordTextFields))
	for _, field := range recordTextFields {
		values[field.name] = field.value(doc)
	}

	assert.Equal(t, "Ana María Torres", values["patientName"])
	assert.Equal(t, "Luis Torres", values["companionName"])
	assert.Equal(t, "Hermano", values["companionRelationship"])
	assert.Equal(t, "22 / 03 / 2025", values["nextAppointment"])
	assert.Equal(t, "30 / 06 / 2025", values["closureDate"])

	checked := false
	for _, field := range recordCheckFields {
		if field.set(doc) {
			checked = true
			break
		}
	}
	assert.True(t, checked, "first consultation flag must map to a checkbox")
}

func TestRecordFieldNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, field := range recordTextFields {
		assert.False(t, seen[field.name], "duplicate field %s", field.name)
		seen[field.name] = true
	}
	for _, field := range recordCheckFields {
		assert.False(t, seen[field.name], "duplicate checkbox %s", field.name)
		seen[field.name] = true
	}
	assert.GreaterOrEqual(t, len(seen), 60)
}
