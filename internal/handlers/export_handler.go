package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/psicare/clinical-records-api/internal/models"
	"github.com/psicare/clinical-records-api/internal/service"
	"github.com/psicare/clinical-records-api/internal/utils"
)

// ExportHandler handles PDF export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler instance
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// DownloadConsent handles GET /consent/:id/download.
// Responds with the PDF attachment, or a JSON error body on failure;
// never a 200 with an empty or partial binary.
func (h *ExportHandler) DownloadConsent(c *gin.Context) {
	recordID := c.Param("id")

	data, filename, err := h.exportService.RenderConsentPDF(c.Request.Context(), recordID)
	if err != nil {
		if isValidationError(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.SendNotFoundError(c, "Consent record not found")
			return
		}
		utils.SendRenderingError(c, "Failed to generate consent PDF", err.Error())
		return
	}

	utils.SendPDFAttachment(c, filename, data)
}

// GenerateMedicalRecordPDF handles POST /generate-pdf
func (h *ExportHandler) GenerateMedicalRecordPDF(c *gin.Context) {
	var doc models.MedicalRecordDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid medical record payload: " + err.Error(),
		})
		return
	}

	data, filename, err := h.exportService.StampMedicalRecordPDF(c.Request.Context(), &doc)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	utils.SendPDFAttachment(c, filename, data)
}
