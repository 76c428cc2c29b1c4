// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/aajarad/mistral-ocr/internal/handlers"
	"github.com/aajarad/mistral-ocr/internal/middleware"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
	"github.com/aajarad/mistral-ocr/internal/store"
)

// Setup creates and configures the Gin router with all routes.
func Setup(ocrService *ocr.Service, st *store.Store, version string, rateLimit int, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	h := handlers.NewHandler(ocrService, st, version)
	rateLimiter := middleware.NewRateLimiter(rateLimit)

	// --- Public routes ---
	r.GET("/", h.ServeUploadPage)
	r.GET("/api/v1/health", h.HealthCheck)

	// --- Conversion routes ---
	api := r.Group("/api/v1")
	api.Use(rateLimiter.RateLimit())
	{
		api.POST("/ocr/convert", h.ConvertPDF)
		api.GET("/ocr/conversions", h.ListConversions)
		api.GET("/ocr/conversions/:id", h.GetConversion)
		api.GET("/ocr/conversions/:id/export", h.ExportConversion)
		api.GET("/ocr/conversions/:id/preview", h.PreviewConversion)
	}

	return r
}
