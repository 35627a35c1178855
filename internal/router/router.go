package router

import (
	"github.com/gin-gonic/gin"

	"github.com/psicare/clinical-records-api/internal/config"
	"github.com/psicare/clinical-records-api/internal/handlers"
	"github.com/psicare/clinical-records-api/internal/middleware"
	"github.com/psicare/clinical-records-api/internal/service"
)

// SetupRouter configures all API routes
func SetupRouter(
	cfg *config.Config,
	consentService *service.ConsentService,
	exportService *service.ExportService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())

	if cfg.CORS.Enabled {
		router.Use(middleware.CORSMiddleware(cfg.CORS))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	consentHandler := handlers.NewConsentHandler(consentService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Consent routes
	consent := router.Group("/consent")
	{
		consent.POST("", consentHandler.SubmitConsent)
		consent.GET("", consentHandler.ListConsents)
		consent.GET("/:id", consentHandler.GetConsent)
		consent.GET("/:id/download", exportHandler.DownloadConsent)
	}

	// Full medical-record export
	router.POST("/generate-pdf", exportHandler.GenerateMedicalRecordPDF)

	return router
}
