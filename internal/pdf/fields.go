package pdf

import (
	"github.com/psicare/clinical-records-api/internal/models"
)

// textField places one medical-record value at an absolute position on the
// clinical history template. A width > 0 wraps the value across lines.
type textField struct {
	name  string
	page  int
	x, y  float64
	size  float64
	width float64
	value func(d *models.MedicalRecordDocument) string
}

// checkField marks one boolean flag with an "X" over the template's printed
// checkbox. The template is a flattened PDF, so the mark is drawn rather
// than toggled as a form field.
type checkField struct {
	name string
	page int
	x, y float64
	set  func(d *models.MedicalRecordDocument) bool
}

// recordTextFields maps the clinical history form onto template coordinates.
// Order follows the printed form, top to bottom per page.
var recordTextFields = []textField{
	// Page 1: demographics
	{name: "recordNumber", page: 1, x: 460, y: 72, value: func(d *models.MedicalRecordDocument) string { return d.RecordNumber }},
	{name: "admissionDate", page: 1, x: 460, y: 88, value: func(d *models.MedicalRecordDocument) string { return d.AdmissionDate }},
	{name: "patientName", page: 1, x: 140, y: 122, value: func(d *models.MedicalRecordDocument) string { return d.PatientName }},
	{name: "identificationType", page: 1, x: 420, y: 122, value: func(d *models.MedicalRecordDocument) string { return d.IdentificationType }},
	{name: "identificationNumber", page: 1, x: 470, y: 122, value: func(d *models.MedicalRecordDocument) string { return d.IdentificationNumber }},
	{name: "birthDate", page: 1, x: 140, y: 140, value: func(d *models.MedicalRecordDocument) string { return d.BirthDate }},
	{name: "birthPlace", page: 1, x: 300, y: 140, value: func(d *models.MedicalRecordDocument) string { return d.BirthPlace }},
	{name: "age", page: 1, x: 470, y: 140, value: func(d *models.MedicalRecordDocument) string { return d.Age }},
	{name: "gender", page: 1, x: 140, y: 158, value: func(d *models.MedicalRecordDocument) string { return d.Gender }},
	{name: "civilStatus", page: 1, x: 300, y: 158, value: func(d *models.MedicalRecordDocument) string { return d.CivilStatus }},
	{name: "educationLevel", page: 1, x: 470, y: 158, value: func(d *models.MedicalRecordDocument) string { return d.EducationLevel }},
	{name: "address", page: 1, x: 140, y: 176, value: func(d *models.MedicalRecordDocument) string { return d.Address }},
	{name: "neighborhood", page: 1, x: 340, y: 176, value: func(d *models.MedicalRecordDocument) string { return d.Neighborhood }},
	{name: "city", page: 1, x: 470, y: 176, value: func(d *models.MedicalRecordDocument) string { return d.City }},
	{name: "phone", page: 1, x: 140, y: 194, value: func(d *models.MedicalRecordDocument) string { return d.Phone }},
	{name: "email", page: 1, x: 340, y: 194, value: func(d *models.MedicalRecordDocument) string { return d.Email }},
	{name: "occupation", page: 1, x: 140, y: 212, value: func(d *models.MedicalRecordDocument) string { return d.Occupation }},
	{name: "eps", page: 1, x: 340, y: 212, value: func(d *models.MedicalRecordDocument) string { return d.EPS }},

	// Page 1: guardians
	{name: "father.fullName", page: 1, x: 140, y: 248, value: func(d *models.MedicalRecordDocument) string { return d.Father.FullName }},
	{name: "father.identificationNumber", page: 1, x: 420, y: 248, value: func(d *models.MedicalRecordDocument) string { return d.Father.IdentificationNumber }},
	{name: "father.occupation", page: 1, x: 140, y: 266, value: func(d *models.MedicalRecordDocument) string { return d.Father.Occupation }},
	{name: "father.phone", page: 1, x: 340, y: 266, value: func(d *models.MedicalRecordDocument) string { return d.Father.Phone }},
	{name: "father.relationship", page: 1, x: 470, y: 266, value: func(d *models.MedicalRecordDocument) string { return d.Father.Relationship }},
	{name: "mother.fullName", page: 1, x: 140, y: 284, value: func(d *models.MedicalRecordDocument) string { return d.Mother.FullName }},
	{name: "mother.identificationNumber", page: 1, x: 420, y: 284, value: func(d *models.MedicalRecordDocument) string { return d.Mother.IdentificationNumber }},
	{name: "mother.occupation", page: 1, x: 140, y: 302, value: func(d *models.MedicalRecordDocument) string { return d.Mother.Occupation }},
	{name: "mother.phone", page: 1, x: 340, y: 302, value: func(d *models.MedicalRecordDocument) string { return d.Mother.Phone }},
	{name: "mother.relationship", page: 1, x: 470, y: 302, value: func(d *models.MedicalRecordDocument) string { return d.Mother.Relationship }},
	{name: "companionName", page: 1, x: 140, y: 320, value: func(d *models.MedicalRecordDocument) string { return d.CompanionName }},
	{name: "companionPhone", page: 1, x: 340, y: 320, value: func(d *models.MedicalRecordDocument) string { return d.CompanionPhone }},
	{name: "companionRelationship", page: 1, x: 470, y: 320, value: func(d *models.MedicalRecordDocument) string { return d.CompanionRelationship }},

	// Page 1: referral and consultation
	{name: "referredBy", page: 1, x: 140, y: 338, value: func(d *models.MedicalRecordDocument) string { return d.ReferredBy }},
	{name: "referralReason", page: 1, x: 72, y: 366, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.ReferralReason }},
	{name: "consultationReason", page: 1, x: 72, y: 430, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.ConsultationReason }},
	{name: "currentIllness", page: 1, x: 72, y: 530, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.CurrentIllness }},
	{name: "personalHistory", page: 1, x: 72, y: 650, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.PersonalHistory }},

	// Page 2: history sections
	{name: "familyHistory", page: 2, x: 72, y: 90, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.FamilyHistory }},
	{name: "medicalHistory", page: 2, x: 72, y: 190, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.MedicalHistory }},
	{name: "psychologicalHistory", page: 2, x: 72, y: 290, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.PsychologicalHistory }},
	{name: "academicHistory", page: 2, x: 72, y: 390, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.AcademicHistory }},
	{name: "socialHistory", page: 2, x: 72, y: 470, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.SocialHistory }},
	{name: "familyDynamics", page: 2, x: 72, y: 550, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.FamilyDynamics }},
	{name: "mentalExam", page: 2, x: 72, y: 650, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.MentalExam }},

	// Page 3: assessment and plan
	{name: "diagnosis", page: 3, x: 72, y: 90, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.Diagnosis }},
	{name: "diagnosisCode", page: 3, x: 470, y: 72, value: func(d *models.MedicalRecordDocument) string { return d.DiagnosisCode }},
	{name: "treatmentPlan", page: 3, x: 72, y: 190, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.TreatmentPlan }},
	{name: "treatmentObjectives", page: 3, x: 72, y: 290, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.TreatmentObjectives }},
	{name: "sessionFrequency", page: 3, x: 180, y: 370, value: func(d *models.MedicalRecordDocument) string { return d.SessionFrequency }},
	{name: "estimatedSessions", page: 3, x: 440, y: 370, value: func(d *models.MedicalRecordDocument) string { return d.EstimatedSessions }},
	{name: "nextAppointment", page: 3, x: 180, y: 388, value: func(d *models.MedicalRecordDocument) string { return d.NextAppointment }},
	{name: "closureDate", page: 3, x: 440, y: 388, value: func(d *models.MedicalRecordDocument) string { return d.ClosureDate }},
	{name: "evolutionNotes", page: 3, x: 72, y: 410, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.EvolutionNotes }},
	{name: "recommendations", page: 3, x: 72, y: 530, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.Recommendations }},
	{name: "professionalConcept", page: 3, x: 72, y: 630, width: 460, value: func(d *models.MedicalRecordDocument) string { return d.ProfessionalConcept }},
}

// recordCheckFields maps the form's checkbox flags onto template coordinates
var recordCheckFields = []checkField{
	{name: "firstConsultation", page: 1, x: 527, y: 104, set: func(d *models.MedicalRecordDocument) bool { return d.FirstConsultation }},
	{name: "minorPatient", page: 1, x: 527, y: 230, set: func(d *models.MedicalRecordDocument) bool { return d.MinorPatient }},
	{name: "previousTreatment", page: 2, x: 527, y: 272, set: func(d *models.MedicalRecordDocument) bool { return d.PreviousTreatment }},
	{name: "pharmacologicalTreatment", page: 2, x: 527, y: 172, set: func(d *models.MedicalRecordDocument) bool { return d.PharmacologicalTx }},
	{name: "riskOfHarm", page: 2, x: 527, y: 632, set: func(d *models.MedicalRecordDocument) bool { return d.RiskOfHarm }},
	{name: "requiresInterconsultation", page: 3, x: 527, y: 172, set: func(d *models.MedicalRecordDocument) bool { return d.RequiresInterconsult }},
	{name: "informedConsent", page: 3, x: 527, y: 690, set: func(d *models.MedicalRecordDocument) bool { return d.InformedConsent }},
	{name: "dataAuthorization", page: 3, x: 527, y: 708, set: func(d *models.MedicalRecordDocument) bool { return d.DataAuthorization }},
}
