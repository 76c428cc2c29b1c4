// ui.go serves a minimal browser UI for the conversion flow.
//
// Go Pattern: For simple HTML responses, a raw string is fine.
// For complex templates, use Go's html/template package.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeUploadPage returns a single-page upload form that posts to the
// convert endpoint. It keeps the server usable from a plain browser
// without any separate frontend.
// GET /
func (h *Handler) ServeUploadPage(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Mistral OCR — PDF to Markdown</title>
  <style>
    body { max-width: 40rem; margin: 3rem auto; padding: 0 1rem;
           font-family: -apple-system, "Segoe UI", sans-serif; line-height: 1.6; }
    label { display: block; margin-top: 1rem; font-weight: 600; }
    input[type=text], input[type=password] { width: 100%; padding: 0.4rem; }
    button { margin-top: 1.5rem; padding: 0.5rem 1.5rem; }
    small { color: #666; font-weight: normal; }
  </style>
</head>
<body>
  <h1>📖 Mistral OCR</h1>
  <p>Convert a PDF to Markdown using the Mistral OCR API.</p>
  <form action="/api/v1/ocr/convert" method="post" enctype="multipart/form-data">
    <label>PDF file
      <input type="file" name="file" accept=".pdf" required>
    </label>
    <label>Pages to include <small>(optional — examples: 2 | 1,4 | 3-6 | 1,3-5,8; empty = all pages)</small>
      <input type="text" name="pages" placeholder="1,3-5,8">
    </label>
    <label>Mistral API key <small>(optional if the server has one configured)</small>
      <input type="password" name="api_key">
    </label>
    <label>
      <input type="checkbox" name="include_images" value="on">
      Include image base64 in response
    </label>
    <button type="submit">Convert to Markdown</button>
  </form>
  <p><small>The response is JSON. Use
  <code>/api/v1/ocr/conversions/&lt;id&gt;/preview</code> for a rendered view and
  <code>/api/v1/ocr/conversions/&lt;id&gt;/export?format=md|docx</code> for downloads.</small></p>
</body>
</html>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
