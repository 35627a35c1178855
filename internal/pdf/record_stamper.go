package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdi"
	"github.com/signintech/gopdf"
	"github.com/sirupsen/logrus"

	"github.com/psicare/clinical-records-api/internal/models"
)

// minTemplatePages is the number of pages the clinical history template
// must carry; the field map addresses coordinates on the first three.
const minTemplatePages = 3

// RecordStamper stamps medical-record values onto the fixed clinical
// history PDF template at absolute page coordinates.
type RecordStamper struct {
	templatePath string
	fontPath     string
	logger       *logrus.Logger
}

// NewRecordStamper creates a new record stamper
func NewRecordStamper(templatePath, fontPath string, logger *logrus.Logger) *RecordStamper {
	return &RecordStamper{
		templatePath: templatePath,
		fontPath:     fontPath,
		logger:       logger,
	}
}

// Stamp imports every page of the template and processes the field map:
// each text draw and checkbox mark is independently guarded so one bad
// field is logged and skipped while the rest of the document completes.
// The PDF engine panics on malformed template files; the recover boundary
// converts that into an error.
func (s *RecordStamper) Stamp(doc *models.MedicalRecordDocument) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("record stamping failed: %v", rec)
		}
	}()

	pages, err := templatePageCount(s.templatePath)
	if err != nil {
		return nil, err
	}
	if pages < minTemplatePages {
		return nil, fmt.Errorf("record template must have at least %d pages, got %d", minTemplatePages, pages)
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(fontName, s.fontPath); err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", s.fontPath, err)
	}

	for page := 1; page <= pages; page++ {
		tpl := pdf.ImportPage(s.templatePath, page, "/MediaBox")
		pdf.AddPage()
		pdf.UseImportedTemplate(tpl, 0, 0, pageWidth, pageHeight)
		s.stampPage(pdf, page, doc)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *RecordStamper) stampPage(pdf *gopdf.GoPdf, page int, doc *models.MedicalRecordDocument) {
	for _, field := range recordTextFields {
		if field.page != page {
			continue
		}
		if err := s.drawTextField(pdf, field, doc); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"field": field.name,
				"page":  field.page,
			}).Warn("Skipping record field")
		}
	}

	for _, field := range recordCheckFields {
		if field.page != page {
			continue
		}
		if err := s.drawCheckField(pdf, field, doc); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"field": field.name,
				"page":  field.page,
			}).Warn("Skipping record checkbox")
		}
	}
}

func (s *RecordStamper) drawTextField(pdf *gopdf.GoPdf, field textField, doc *models.MedicalRecordDocument) error {
	value := field.value(doc)
	if value == "" {
		return nil
	}

	size := field.size
	if size == 0 {
		size = 9
	}
	if err := pdf.SetFont(fontName, "", size); err != nil {
		return err
	}

	if field.width <= 0 {
		pdf.SetXY(field.x, field.y)
		return pdf.Cell(nil, value)
	}

	lines, err := pdf.SplitText(value, field.width)
	if err != nil {
		return fmt.Errorf("failed to wrap field text: %w", err)
	}

	y := field.y
	for _, line := range lines {
		pdf.SetXY(field.x, y)
		if err := pdf.Cell(nil, line); err != nil {
			return err
		}
		y += size + 3
	}

	return nil
}

func (s *RecordStamper) drawCheckField(pdf *gopdf.GoPdf, field checkField, doc *models.MedicalRecordDocument) error {
	if !field.set(doc) {
		return nil
	}

	if err := pdf.SetFont(fontName, "", 10); err != nil {
		return err
	}
	pdf.SetXY(field.x, field.y)
	return pdf.Cell(nil, "X")
}

// templatePageCount reads the page count of the template PDF. gofpdi panics
// on unreadable files, so the probe carries its own recover boundary.
func templatePageCount(path string) (pages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to read record template %s: %v", path, rec)
		}
	}()

	importer := gofpdi.NewImporter()
	importer.SetSourceFile(path)
	return importer.GetNumPages(), nil
}
