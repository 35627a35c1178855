package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/internal/service"
	"github.com/psicare/clinical-records-api/internal/utils"
)

// ConsentHandler handles consent-related HTTP requests
type ConsentHandler struct {
	consentService *service.ConsentService
}

// NewConsentHandler creates a new consent handler instance
func NewConsentHandler(consentService *service.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentService: consentService}
}

// SubmitConsent handles POST /consent
func (h *ConsentHandler) SubmitConsent(c *gin.Context) {
	var request models.ConsentSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	provenance := &models.SubmissionProvenance{
		IPAddress: utils.ExtractClientIP(c.Request),
		UserAgent: c.Request.UserAgent(),
	}

	response, err := h.consentService.SubmitConsent(c.Request.Context(), &request, provenance)
	if err != nil {
		if isValidationError(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.SendNotFoundError(c, "Medical record not found")
			return
		}
		utils.SendInternalServerError(c, "Failed to register consent", err.Error())
		return
	}

	utils.SendCreatedResponse(c, response)
}

// ListConsents handles GET /consent
func (h *ConsentHandler) ListConsents(c *gin.Context) {
	filter := &models.ConsentSearchFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := c.Query("medicalRecordId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			utils.SendBadRequestError(c, "Invalid medicalRecordId", "medicalRecordId must be a positive integer")
			return
		}
		filter.MedicalRecordID = &id
	}

	response, err := h.consentService.ListConsents(c.Request.Context(), filter)
	if err != nil {
		if isValidationError(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, "Failed to list consents", err.Error())
		return
	}

	utils.SendOKResponse(c, response)
}

// GetConsent handles GET /consent/:id
func (h *ConsentHandler) GetConsent(c *gin.Context) {
	recordID := c.Param("id")

	response, err := h.consentService.GetConsent(c.Request.Context(), recordID)
	if err != nil {
		if isValidationError(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.SendNotFoundError(c, "Consent record not found")
			return
		}
		utils.SendInternalServerError(c, "Failed to retrieve consent", err.Error())
		return
	}

	utils.SendOKResponse(c, response)
}

// isValidationError classifies service errors raised before any storage work
func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "required") ||
		strings.Contains(msg, "cannot be empty") ||
		strings.Contains(msg, "too long") ||
		strings.Contains(msg, "exceeds maximum length") ||
		strings.Contains(msg, "signature")
}
