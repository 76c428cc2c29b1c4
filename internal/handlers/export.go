// export.go handles conversion downloads and the HTML preview.
//
// Supported download formats:
//   - md   — the aggregated Markdown document
//   - docx — best-effort Word conversion (headings only; see services/export)
//
// Go Pattern: Each export format is its own function. Adding a format later
// is just a new case in the switch and a new formatter function.
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/aajarad/mistral-ocr/internal/models"
	"github.com/aajarad/mistral-ocr/internal/services/export"
)

// ExportConversion downloads a conversion in the requested format.
// GET /api/v1/ocr/conversions/:id/export?format=md|docx
//
// Response headers are set for file download:
//   - Content-Type: appropriate MIME type
//   - Content-Disposition: attachment with filename
func (h *Handler) ExportConversion(c *gin.Context) {
	format := c.DefaultQuery("format", "md")

	// Validate format before doing any other work
	validFormats := map[string]bool{"md": true, "docx": true}
	if !validFormats[format] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_format",
			Message: "Supported formats: md, docx",
			Code:    http.StatusBadRequest,
		})
		return
	}

	conv, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Conversion not found (results expire after a while)",
			Code:    http.StatusNotFound,
		})
		return
	}

	if conv.Status != models.StatusCompleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_ready",
			Message: "Conversion did not complete (status: " + string(conv.Status) + ")",
			Code:    http.StatusNotFound,
		})
		return
	}

	filename := sanitizeFilename(export.BaseName(conv.OriginalName))
	if filename == "" {
		filename = "output"
	}

	switch format {
	case "md":
		exportMarkdown(c, conv, filename)
	case "docx":
		exportDocx(c, conv, filename)
	}
}

// exportMarkdown returns the aggregated Markdown as a .md download.
func exportMarkdown(c *gin.Context, conv *models.Conversion, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(conv.Markdown))
}

// exportDocx converts the aggregated Markdown to a Word document and
// returns it as a .docx download.
func exportDocx(c *gin.Context, conv *models.Conversion, filename string) {
	out, err := export.Docx(conv.Markdown)
	if err != nil {
		log.Printf("docx export failed for conversion %s: %v", conv.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_failed",
			Message: "Failed to generate the Word document: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, filename))
	c.Data(http.StatusOK, export.WordMIME, out)
}

// PreviewConversion renders the aggregated Markdown as an HTML page.
// GET /api/v1/ocr/conversions/:id/preview
func (h *Handler) PreviewConversion(c *gin.Context) {
	conv, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Conversion not found (results expire after a while)",
			Code:    http.StatusNotFound,
		})
		return
	}

	if conv.Status != models.StatusCompleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_ready",
			Message: "Conversion did not complete (status: " + string(conv.Status) + ")",
			Code:    http.StatusNotFound,
		})
		return
	}

	html, err := export.PreviewHTML(conv.OriginalName, conv.Markdown)
	if err != nil {
		log.Printf("preview failed for conversion %s: %v", conv.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "preview_failed",
			Message: "Failed to render the Markdown preview: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// sanitizeFilename removes characters that aren't safe for filenames.
// Go Pattern: Keep it simple — replace unsafe characters with hyphens
// and trim the result. This is just for the Content-Disposition header.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	// Collapse multiple hyphens/spaces
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)

	// Limit length, backing up to a rune boundary so a multi-byte
	// character is never split into invalid UTF-8.
	if len(name) > 100 {
		cut := 100
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}

	return name
}
