package models

// ConsentExportDocument is the structured document handed to the PDF
// composition renderer for a consent download.
type ConsentExportDocument struct {
	// Clinic identity block
	ClinicName          string
	ClinicTaxID         string
	ClinicAddress       string
	ClinicPhone         string
	LogoPath            string
	PractitionerName    string
	PractitionerLicense string

	// Document content
	Title                string
	PatientName          string
	IdentificationNumber string
	SignerName           string
	SignerDocument       string
	SigningDate          string
	SnapshotHTML         string
	SignatureDataURI     string
}
