// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Data)
//
// We group related handlers into a struct (Handler) that holds shared
// dependencies — dependency injection via struct fields, no globals.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aajarad/mistral-ocr/internal/models"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
	"github.com/aajarad/mistral-ocr/internal/store"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	OCR     *ocr.Service
	Store   *store.Store
	Version string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(ocrService *ocr.Service, st *store.Store, version string) *Handler {
	return &Handler{
		OCR:     ocrService,
		Store:   st,
		Version: version,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:        "ok",
		Version:       h.Version,
		Model:         h.OCR.Model(),
		KeyConfigured: h.OCR.IsConfigured(),
		Conversions:   h.Store.Len(),
	})
}
