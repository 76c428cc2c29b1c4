// ocr_test.go exercises the conversion endpoints end to end against a fake
// OCR backend, so no real API credits are spent.
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aajarad/mistral-ocr/internal/models"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
	"github.com/aajarad/mistral-ocr/internal/store"
)

// fakeOCRBody is what the fake Mistral backend returns: three pages.
const fakeOCRBody = `{
	"model": "mistral-ocr-latest",
	"pages": [
		{"index": 0, "markdown": "# Intro\n\nfirst body"},
		{"index": 1, "markdown": "second body"},
		{"index": 2, "markdown": "third body"}
	]
}`

// newTestRouter wires a Handler against a fake OCR server and returns a
// gin engine plus the backing store.
func newTestRouter(t *testing.T, backend http.HandlerFunc) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	svc := ocr.New("test-key", "")
	svc.SetBaseURL(ts.URL)

	st := store.New(time.Hour, 10)
	h := NewHandler(svc, st, "test")

	r := gin.New()
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/ocr/convert", h.ConvertPDF)
	r.GET("/api/v1/ocr/conversions", h.ListConversions)
	r.GET("/api/v1/ocr/conversions/:id", h.GetConversion)
	r.GET("/api/v1/ocr/conversions/:id/export", h.ExportConversion)
	r.GET("/api/v1/ocr/conversions/:id/preview", h.PreviewConversion)
	return r, st
}

// uploadRequest builds a multipart POST to the convert endpoint.
func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/ocr/convert", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func fakeBackend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fakeOCRBody))
	}
}

func TestConvertPDF(t *testing.T) {
	r, _ := newTestRouter(t, fakeBackend(t))

	req := uploadRequest(t, "report.pdf", []byte("%PDF-1.4 body"), map[string]string{
		"pages": "1,3",
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var conv models.Conversion
	if err := json.Unmarshal(rec.Body.Bytes(), &conv); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if conv.ID == "" {
		t.Error("conversion ID is empty")
	}
	if conv.OriginalName != "report.pdf" {
		t.Errorf("original_name = %q", conv.OriginalName)
	}
	if conv.PageCount != 3 {
		t.Errorf("page_count = %d, want 3", conv.PageCount)
	}
	if conv.SelectedCount != 2 {
		t.Errorf("selected_count = %d, want 2", conv.SelectedCount)
	}
	if conv.Status != models.StatusCompleted {
		t.Errorf("status = %q", conv.Status)
	}
	if len(conv.Pages) != 2 || conv.Pages[0].Index != 0 || conv.Pages[1].Index != 2 {
		t.Errorf("pages = %+v, want indexes 0 and 2", conv.Pages)
	}
	if !strings.Contains(conv.Markdown, "## Page 1") || !strings.Contains(conv.Markdown, "## Page 3") {
		t.Errorf("markdown missing synthesized headings: %q", conv.Markdown)
	}
	if strings.Contains(conv.Markdown, "second body") {
		t.Error("markdown contains an unselected page")
	}
}

func TestConvertPDFValidation(t *testing.T) {
	r, _ := newTestRouter(t, fakeBackend(t))

	tests := []struct {
		name      string
		req       *http.Request
		wantCode  int
		wantError string
	}{
		{
			name: "missing file field",
			req: func() *http.Request {
				var buf bytes.Buffer
				w := multipart.NewWriter(&buf)
				w.WriteField("pages", "1")
				w.Close()
				req := httptest.NewRequest("POST", "/api/v1/ocr/convert", &buf)
				req.Header.Set("Content-Type", w.FormDataContentType())
				return req
			}(),
			wantCode:  http.StatusBadRequest,
			wantError: "invalid_request",
		},
		{
			name:      "wrong extension",
			req:       uploadRequest(t, "notes.txt", []byte("%PDF-1.4"), nil),
			wantCode:  http.StatusBadRequest,
			wantError: "invalid_file_type",
		},
		{
			name:      "bad magic bytes",
			req:       uploadRequest(t, "fake.pdf", []byte("hello world"), nil),
			wantCode:  http.StatusBadRequest,
			wantError: "invalid_pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, tt.req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			var er models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if er.Error != tt.wantError {
				t.Errorf("error = %q, want %q", er.Error, tt.wantError)
			}
		})
	}
}

func TestConvertPDFMissingAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Service with no default key and no per-request key.
	svc := ocr.New("", "")
	st := store.New(time.Hour, 10)
	h := NewHandler(svc, st, "test")

	r := gin.New()
	r.POST("/api/v1/ocr/convert", h.ConvertPDF)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "a.pdf", []byte("%PDF-1.4"), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er models.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "missing_api_key" {
		t.Errorf("error = %q, want missing_api_key", er.Error)
	}
}

// TestConvertPDFRecordsConfiguredModel covers responses that omit the
// model field: the record must fall back to the model the server is
// actually configured with, not the package default.
func TestConvertPDFRecordsConfiguredModel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pages": [{"index": 0, "markdown": "body"}]}`))
	}))
	t.Cleanup(ts.Close)

	svc := ocr.New("test-key", "mistral-ocr-2505")
	svc.SetBaseURL(ts.URL)
	h := NewHandler(svc, store.New(time.Hour, 10), "test")

	r := gin.New()
	r.POST("/api/v1/ocr/convert", h.ConvertPDF)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "a.pdf", []byte("%PDF-1.4"), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var conv models.Conversion
	if err := json.Unmarshal(rec.Body.Bytes(), &conv); err != nil {
		t.Fatal(err)
	}
	if conv.Model != "mistral-ocr-2505" {
		t.Errorf("model = %q, want the configured mistral-ocr-2505", conv.Model)
	}
}

func TestConvertPDFRemoteFailure(t *testing.T) {
	r, st := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Unauthorized"}`))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "a.pdf", []byte("%PDF-1.4"), nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	// The failure should still be recorded for the recent list.
	failed := st.List(10)
	if len(failed) != 1 {
		t.Fatalf("store has %d conversions, want 1", len(failed))
	}
	if failed[0].Status != models.StatusFailed {
		t.Errorf("stored status = %q, want failed", failed[0].Status)
	}
	if !strings.Contains(failed[0].ErrorMessage, "Unauthorized") {
		t.Errorf("stored error = %q, want upstream message attached", failed[0].ErrorMessage)
	}
}

func TestGetAndListConversions(t *testing.T) {
	r, _ := newTestRouter(t, fakeBackend(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "report.pdf", []byte("%PDF-1.4"), nil))
	var conv models.Conversion
	json.Unmarshal(rec.Body.Bytes(), &conv)

	t.Run("get by id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/ocr/conversions/"+conv.ID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got models.Conversion
		json.Unmarshal(rec.Body.Bytes(), &got)
		if got.ID != conv.ID || got.Markdown == "" {
			t.Errorf("got = %+v", got)
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/ocr/conversions/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("list strips bodies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/ocr/conversions", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var list []models.Conversion
		json.Unmarshal(rec.Body.Bytes(), &list)
		if len(list) != 1 {
			t.Fatalf("list has %d items, want 1", len(list))
		}
		if list[0].Markdown != "" || list[0].Pages != nil {
			t.Error("list entries should not carry markdown bodies")
		}
	})
}
