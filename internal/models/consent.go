package models

// ConsentTemplate represents the HC_CONSENT_TEMPLATE table.
// ActiveFlag is 1 for the single active version of a title and NULL for
// retired versions; the UQ_TEMPLATE_ACTIVE_TITLE unique index on
// (TITLE, ACTIVE_FLAG) enforces at most one active row per title while
// permitting any number of inactive ones.
type ConsentTemplate struct {
	TemplateID   string `db:"TEMPLATE_ID" json:"templateId"`
	TemplateType string `db:"TEMPLATE_TYPE" json:"templateType"`
	Version      string `db:"VERSION" json:"version"`
	Title        string `db:"TITLE" json:"title"`
	Content      string `db:"CONTENT" json:"content"`
	ActiveFlag   *int   `db:"ACTIVE_FLAG" json:"-"`
	CreatedTime  int64  `db:"CREATED_TIME" json:"createdTime"`
}

// IsActive reports whether this template is the active version of its title
func (t *ConsentTemplate) IsActive() bool {
	return t.ActiveFlag != nil && *t.ActiveFlag == 1
}

// ConsentRecord represents the HC_CONSENT_RECORD table.
// Records are immutable once created; there are no update or delete paths.
type ConsentRecord struct {
	RecordID         string  `db:"RECORD_ID" json:"recordId"`
	MedicalRecordID  int64   `db:"MEDICAL_RECORD_ID" json:"medicalRecordId"`
	TemplateID       string  `db:"TEMPLATE_ID" json:"templateId"`
	SignedByName     string  `db:"SIGNED_BY_NAME" json:"signedByName"`
	SignedByDocument string  `db:"SIGNED_BY_DOCUMENT" json:"signedByDocument"`
	DocumentSnapshot string  `db:"DOCUMENT_SNAPSHOT" json:"documentSnapshot"`
	SignatureImage   *string `db:"SIGNATURE_IMAGE" json:"signatureImage,omitempty"`
	IPAddress        string  `db:"IP_ADDRESS" json:"ipAddress"`
	UserAgent        string  `db:"USER_AGENT" json:"userAgent"`
	DocumentHash     string  `db:"DOCUMENT_HASH" json:"documentHash"`
	SignedTime       int64   `db:"SIGNED_TIME" json:"signedTime"`
}

// ConsentRecordRow is the flat row shape returned by the search and
// single-record queries, joining the record with its medical record and
// template projections.
type ConsentRecordRow struct {
	ConsentRecord
	PatientName          string `db:"PATIENT_NAME"`
	IdentificationNumber string `db:"IDENTIFICATION_NUMBER"`
	RecordNumber         string `db:"RECORD_NUMBER"`
	TemplateTitle        string `db:"TEMPLATE_TITLE"`
	TemplateVersion      string `db:"TEMPLATE_VERSION"`
}

// ConsentSearchFilter holds the optional listing filters
type ConsentSearchFilter struct {
	MedicalRecordID *int64
	Search          string
}

// ConsentSubmitRequest is the POST /consent request body
type ConsentSubmitRequest struct {
	MedicalRecordID  int64  `json:"medicalRecordId"`
	SignedByName     string `json:"signedByName"`
	SignedByDocument string `json:"signedByDocument"`
	SignatureBase64  string `json:"signatureBase64,omitempty"`
}

// SubmissionProvenance carries request metadata persisted with the record
type SubmissionProvenance struct {
	IPAddress string
	UserAgent string
}

// ConsentSubmitResponse is the POST /consent success body
type ConsentSubmitResponse struct {
	Success   bool   `json:"success"`
	ConsentID string `json:"consentId"`
	Message   string `json:"message"`
}

// MedicalRecordProjection is the compact medical-record view embedded in
// listing responses. Never the full medical record.
type MedicalRecordProjection struct {
	ID                   int64  `json:"id"`
	PatientName          string `json:"patientName"`
	IdentificationNumber string `json:"identificationNumber"`
	RecordNumber         string `json:"recordNumber"`
}

// TemplateProjection is the compact template view embedded in listing responses
type TemplateProjection struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// ConsentRecordResponse is a single listing entry
type ConsentRecordResponse struct {
	RecordID         string                  `json:"recordId"`
	SignedByName     string                  `json:"signedByName"`
	SignedByDocument string                  `json:"signedByDocument"`
	DocumentHash     string                  `json:"documentHash"`
	HasSignature     bool                    `json:"hasSignature"`
	SignedTime       int64                   `json:"signedTime"`
	MedicalRecord    MedicalRecordProjection `json:"medicalRecord"`
	Template         TemplateProjection      `json:"template"`
}

// ConsentListResponse is the GET /consent response body
type ConsentListResponse struct {
	Data []ConsentRecordResponse `json:"data"`
}

// ToResponse converts a joined row into its API projection
func (r *ConsentRecordRow) ToResponse() ConsentRecordResponse {
	return ConsentRecordResponse{
		RecordID:         r.RecordID,
		SignedByName:     r.SignedByName,
		SignedByDocument: r.SignedByDocument,
		DocumentHash:     r.DocumentHash,
		HasSignature:     r.SignatureImage != nil && *r.SignatureImage != "",
		SignedTime:       r.SignedTime,
		MedicalRecord: MedicalRecordProjection{
			ID:                   r.MedicalRecordID,
			PatientName:          r.PatientName,
			IdentificationNumber: r.IdentificationNumber,
			RecordNumber:         r.RecordNumber,
		},
		Template: TemplateProjection{
			Title:   r.TemplateTitle,
			Version: r.TemplateVersion,
		},
	}
}
