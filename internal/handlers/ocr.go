// ocr.go handles PDF-to-Markdown conversion HTTP endpoints.
//
// POST /api/v1/ocr/convert — Upload a PDF and run it through Mistral OCR
// GET  /api/v1/ocr/conversions/:id — Get a conversion result by ID
// GET  /api/v1/ocr/conversions — List recent conversions
package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aajarad/mistral-ocr/internal/models"
	"github.com/aajarad/mistral-ocr/internal/pages"
	"github.com/aajarad/mistral-ocr/internal/services/export"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
)

// maxPDFSize is the max upload size for PDF files (50MB).
const maxPDFSize = 50 << 20 // 50MB

// listLimit caps how many conversions the list endpoint returns.
const listLimit = 50

// ConvertPDF handles PDF upload and remote OCR conversion.
// POST /api/v1/ocr/convert
//
// Accepts a multipart upload with field name "file", plus optional form
// fields:
//   - pages:          1-based page selection string, e.g. "1,3-5"
//   - include_images: return embedded images as base64
//   - api_key:        per-request Mistral key (overrides the server's)
//
// Processing is synchronous — the handler blocks on the remote OCR call.
func (h *Handler) ConvertPDF(c *gin.Context) {
	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No PDF file provided. Upload a file with the field name 'file'. Max size: 50MB.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Validate PDF magic bytes
	if !validPDF(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "The uploaded file does not appear to be a valid PDF",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// The Mistral key can come per request or from server config. Check it
	// up front so the user gets an actionable message instead of a remote
	// auth failure.
	apiKey := c.PostForm("api_key")
	if apiKey == "" && !h.OCR.IsConfigured() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_api_key",
			Message: "Mistral API key is missing. Provide the 'api_key' form field or set MISTRAL_API_KEY on the server.",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sel := pages.Parse(c.PostForm("pages"))
	includeImages := parseCheckbox(c.PostForm("include_images"))

	resp, err := h.OCR.Process(c.Request.Context(), data, ocr.Options{
		IncludeImages: includeImages,
		APIKey:        apiKey,
	})
	if err != nil {
		log.Printf("OCR conversion failed for %s: %v", header.Filename, err)

		// Record the failure so it shows up in the recent list
		failed := &models.Conversion{
			ID:            uuid.New().String(),
			OriginalName:  header.Filename,
			Model:         h.OCR.Model(),
			IncludeImages: includeImages,
			Status:        models.StatusFailed,
			ErrorMessage:  err.Error(),
			CreatedAt:     time.Now(),
		}
		h.Store.Put(failed)

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "conversion_failed",
			Message: "Failed to process the PDF: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	conv := buildConversion(header.Filename, resp, sel, includeImages, h.OCR.Model())
	h.Store.Put(conv)

	c.JSON(http.StatusOK, conv)
}

// buildConversion filters the OCR pages through the selection and assembles
// the stored conversion record. fallbackModel is recorded when the API
// response doesn't echo the model back.
func buildConversion(originalName string, resp *ocr.Response, sel pages.Selection, includeImages bool, fallbackModel string) *models.Conversion {
	kept := make([]models.PageResult, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		if !sel.Includes(p.Index + 1) {
			continue
		}
		kept = append(kept, models.PageResult{Index: p.Index, Markdown: p.Markdown})
	}

	model := resp.Model
	if model == "" {
		model = fallbackModel
	}

	return &models.Conversion{
		ID:            uuid.New().String(),
		OriginalName:  originalName,
		Model:         model,
		PageCount:     len(resp.Pages),
		SelectedCount: len(kept),
		IncludeImages: includeImages,
		Pages:         kept,
		Markdown:      export.Aggregate(resp.Pages, sel),
		Status:        models.StatusCompleted,
		CreatedAt:     time.Now(),
	}
}

// GetConversion retrieves a single conversion by ID.
// GET /api/v1/ocr/conversions/:id
func (h *Handler) GetConversion(c *gin.Context) {
	id := c.Param("id")

	conv, ok := h.Store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Conversion not found (results expire after a while)",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListConversions returns recent conversions, newest first, without the
// Markdown bodies (those can be large — fetch a single conversion for them).
// GET /api/v1/ocr/conversions
func (h *Handler) ListConversions(c *gin.Context) {
	conversions := h.Store.List(listLimit)

	summaries := make([]models.Conversion, 0, len(conversions))
	for _, conv := range conversions {
		summary := *conv
		summary.Pages = nil
		summary.Markdown = ""
		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, summaries)
}

// validPDF checks the PDF magic bytes ("%PDF-"). Real validation happens on
// Mistral's side; this just rejects obvious junk before spending API credits.
func validPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// parseCheckbox interprets the truthy values an HTML form or API client
// might send for a boolean field.
func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
