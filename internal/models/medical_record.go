package models

// MedicalRecordSummary is the projection of the externally owned
// HC_MEDICAL_RECORD table consumed by this subsystem.
type MedicalRecordSummary struct {
	ID                   int64  `db:"ID" json:"id"`
	RecordNumber         string `db:"RECORD_NUMBER" json:"recordNumber"`
	PatientName          string `db:"PATIENT_NAME" json:"patientName"`
	IdentificationNumber string `db:"IDENTIFICATION_NUMBER" json:"identificationNumber"`
}

// GuardianInfo holds one guardian block of the clinical history form
type GuardianInfo struct {
	FullName             string `json:"fullName"`
	IdentificationNumber string `json:"identificationNumber"`
	Occupation           string `json:"occupation"`
	Phone                string `json:"phone"`
	Relationship         string `json:"relationship"`
}

// MedicalRecordDocument is the full medical-record payload accepted by
// POST /generate-pdf and stamped onto the clinical history template.
type MedicalRecordDocument struct {
	// Demographics
	RecordNumber         string `json:"recordNumber"`
	PatientName          string `json:"patientName"`
	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`
	BirthDate            string `json:"birthDate"`
	BirthPlace           string `json:"birthPlace"`
	Age                  string `json:"age"`
	Gender               string `json:"gender"`
	CivilStatus          string `json:"civilStatus"`
	Address              string `json:"address"`
	Neighborhood         string `json:"neighborhood"`
	City                 string `json:"city"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Occupation           string `json:"occupation"`
	EducationLevel       string `json:"educationLevel"`
	EPS                  string `json:"eps"`
	AdmissionDate        string `json:"admissionDate"`

	// Companion at admission
	CompanionName         string `json:"companionName"`
	CompanionPhone        string `json:"companionPhone"`
	CompanionRelationship string `json:"companionRelationship"`

	// Guardians
	Father GuardianInfo `json:"father"`
	Mother GuardianInfo `json:"mother"`

	// Referral
	ReferredBy     string `json:"referredBy"`
	ReferralReason string `json:"referralReason"`

	// Clinical history sections
	ConsultationReason   string `json:"consultationReason"`
	CurrentIllness       string `json:"currentIllness"`
	PersonalHistory      string `json:"personalHistory"`
	FamilyHistory        string `json:"familyHistory"`
	MedicalHistory       string `json:"medicalHistory"`
	PsychologicalHistory string `json:"psychologicalHistory"`
	AcademicHistory      string `json:"academicHistory"`
	SocialHistory        string `json:"socialHistory"`
	FamilyDynamics       string `json:"familyDynamics"`
	MentalExam           string `json:"mentalExam"`

	// Assessment
	Diagnosis           string `json:"diagnosis"`
	DiagnosisCode       string `json:"diagnosisCode"`
	TreatmentPlan       string `json:"treatmentPlan"`
	TreatmentObjectives string `json:"treatmentObjectives"`
	EvolutionNotes      string `json:"evolutionNotes"`
	Recommendations     string `json:"recommendations"`
	ProfessionalConcept string `json:"professionalConcept"`
	SessionFrequency    string `json:"sessionFrequency"`
	EstimatedSessions   string `json:"estimatedSessions"`
	NextAppointment     string `json:"nextAppointment"`
	ClosureDate         string `json:"closureDate"`

	// Checkbox flags
	FirstConsultation    bool `json:"firstConsultation"`
	InformedConsent      bool `json:"informedConsent"`
	DataAuthorization    bool `json:"dataAuthorization"`
	MinorPatient         bool `json:"minorPatient"`
	PharmacologicalTx    bool `json:"pharmacologicalTreatment"`
	PreviousTreatment    bool `json:"previousTreatment"`
	RiskOfHarm           bool `json:"riskOfHarm"`
	RequiresInterconsult bool `json:"requiresInterconsultation"`
}
