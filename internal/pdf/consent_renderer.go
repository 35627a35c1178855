package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/signintech/gopdf"
	"github.com/sirupsen/logrus"

	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/pkg/utils"
)

const (
	fontName = "clinic"

	pageWidth  = 595.28 // A4 portrait, points
	pageHeight = 841.89

	marginLeft  = 48.0
	marginRight = 48.0
	marginTop   = 48.0
	textWidth   = pageWidth - marginLeft - marginRight

	bodyLineHeight = 14.0
	footerY        = 790.0
	pageBreakY     = 760.0
)

// ConsentRenderer composes a consent record into a formatted PDF document
type ConsentRenderer struct {
	fontPath string
	logger   *logrus.Logger
}

// NewConsentRenderer creates a new consent document renderer
func NewConsentRenderer(fontPath string, logger *logrus.Logger) *ConsentRenderer {
	return &ConsentRenderer{
		fontPath: fontPath,
		logger:   logger,
	}
}

// Render lays out the consent document: clinic header, title, summary block,
// the stored snapshot as wrapped plain text, the optional signature image,
// and a fixed practitioner footer. The underlying PDF engine panics on
// malformed input; the recover boundary converts that into an error so one
// bad document never takes the process down.
func (r *ConsentRenderer) Render(doc *models.ConsentExportDocument) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("consent rendering failed: %v", rec)
		}
	}()

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(fontName, r.fontPath); err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", r.fontPath, err)
	}

	pdf.AddPage()

	if err := r.drawHeader(pdf, doc); err != nil {
		return nil, err
	}
	if err := r.drawTitle(pdf, doc.Title); err != nil {
		return nil, err
	}
	if err := r.drawSummary(pdf, doc); err != nil {
		return nil, err
	}
	if err := r.drawBody(pdf, doc.SnapshotHTML); err != nil {
		return nil, err
	}
	if err := r.drawSignature(pdf, doc.SignatureDataURI); err != nil {
		return nil, err
	}
	r.drawFooter(pdf, doc)

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *ConsentRenderer) drawHeader(pdf *gopdf.GoPdf, doc *models.ConsentExportDocument) error {
	identityX := marginLeft

	// Logo is cosmetic: a missing asset is logged and skipped
	if doc.LogoPath != "" {
		if _, statErr := os.Stat(doc.LogoPath); statErr == nil {
			if imgErr := pdf.Image(doc.LogoPath, marginLeft, marginTop, &gopdf.Rect{W: 64, H: 64}); imgErr != nil {
				r.logger.WithError(imgErr).Warn("Skipping logo image")
			} else {
				identityX = marginLeft + 80
			}
		} else {
			r.logger.WithField("path", doc.LogoPath).Warn("Logo asset not found, skipping")
		}
	}

	if err := pdf.SetFont(fontName, "", 13); err != nil {
		return err
	}
	pdf.SetXY(identityX, marginTop)
	pdf.Cell(nil, doc.ClinicName)

	if err := pdf.SetFont(fontName, "", 9); err != nil {
		return err
	}
	identity := []string{}
	if doc.ClinicTaxID != "" {
		identity = append(identity, "NIT: "+doc.ClinicTaxID)
	}
	if doc.ClinicAddress != "" {
		identity = append(identity, doc.ClinicAddress)
	}
	if doc.ClinicPhone != "" {
		identity = append(identity, "Tel: "+doc.ClinicPhone)
	}
	y := marginTop + 18
	for _, line := range identity {
		pdf.SetXY(identityX, y)
		pdf.Cell(nil, line)
		y += 12
	}

	pdf.SetY(marginTop + 76)
	return nil
}

func (r *ConsentRenderer) drawTitle(pdf *gopdf.GoPdf, title string) error {
	if err := pdf.SetFont(fontName, "", 14); err != nil {
		return err
	}
	if title == "" {
		title = "Consentimiento Informado"
	}
	pdf.SetX(marginLeft)
	pdf.Cell(nil, title)
	pdf.Br(24)
	return nil
}

func (r *ConsentRenderer) drawSummary(pdf *gopdf.GoPdf, doc *models.ConsentExportDocument) error {
	entries := []struct {
		label string
		value string
	}{
		{"Paciente", doc.PatientName},
		{"Identificación", doc.IdentificationNumber},
		{"Firmante", doc.SignerName},
		{"Documento del firmante", doc.SignerDocument},
		{"Fecha de firma", doc.SigningDate},
	}

	for _, e := range entries {
		if err := pdf.SetFont(fontName, "", 10); err != nil {
			return err
		}
		pdf.SetX(marginLeft)
		pdf.Cell(nil, fmt.Sprintf("%s: %s", e.label, e.value))
		pdf.Br(14)
	}

	pdf.Br(10)
	return nil
}

func (r *ConsentRenderer) drawBody(pdf *gopdf.GoPdf, snapshotHTML string) error {
	if err := pdf.SetFont(fontName, "", 10); err != nil {
		return err
	}

	body := PlainText(snapshotHTML)
	for _, paragraph := range strings.Split(body, "\n") {
		if paragraph == "" {
			pdf.Br(bodyLineHeight / 2)
			continue
		}

		lines, err := pdf.SplitText(paragraph, textWidth)
		if err != nil {
			return fmt.Errorf("failed to wrap body text: %w", err)
		}
		for _, line := range lines {
			if pdf.GetY() > pageBreakY {
				pdf.AddPage()
				pdf.SetY(marginTop)
			}
			pdf.SetX(marginLeft)
			pdf.Cell(nil, line)
			pdf.Br(bodyLineHeight)
		}
	}

	return nil
}

func (r *ConsentRenderer) drawSignature(pdf *gopdf.GoPdf, signatureDataURI string) error {
	if signatureDataURI == "" {
		return nil
	}

	_, imgData, err := utils.DecodeSignatureDataURI(signatureDataURI)
	if err != nil {
		return fmt.Errorf("invalid signature image: %w", err)
	}

	holder, err := gopdf.ImageHolderByBytes(imgData)
	if err != nil {
		return fmt.Errorf("failed to load signature image: %w", err)
	}

	if pdf.GetY() > pageBreakY-90 {
		pdf.AddPage()
		pdf.SetY(marginTop)
	}

	pdf.Br(16)
	if err := pdf.SetFont(fontName, "", 10); err != nil {
		return err
	}
	pdf.SetX(marginLeft)
	pdf.Cell(nil, "Firma:")
	pdf.Br(14)

	y := pdf.GetY()
	if err := pdf.ImageByHolder(holder, marginLeft, y, &gopdf.Rect{W: 160, H: 60}); err != nil {
		return fmt.Errorf("failed to draw signature image: %w", err)
	}
	pdf.SetY(y + 70)

	return nil
}

func (r *ConsentRenderer) drawFooter(pdf *gopdf.GoPdf, doc *models.ConsentExportDocument) {
	if err := pdf.SetFont(fontName, "", 9); err != nil {
		return
	}
	pdf.SetXY(marginLeft, footerY)
	pdf.Cell(nil, doc.PractitionerName)
	pdf.SetXY(marginLeft, footerY+12)
	pdf.Cell(nil, "Tarjeta profesional: "+doc.PractitionerLicense)
}
