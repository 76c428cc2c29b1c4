// Package ocr calls the hosted Mistral document-OCR API.
//
// The API accepts a document as a base64 data URL and returns one Markdown
// body per page. All recognition happens on Mistral's side — this package
// is purely the HTTP client.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultModel is the OCR model used when none is configured.
const DefaultModel = "mistral-ocr-latest"

const defaultBaseURL = "https://api.mistral.ai"

// Service is the Mistral OCR API client.
type Service struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a new OCR service. The apiKey may be empty if callers supply
// a per-request key via Options.
func New(apiKey, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		// Go Pattern: Always configure timeouts on HTTP clients.
		// The default http.Client has NO timeout — requests can hang forever!
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // OCR on large PDFs can be slow
		},
	}
}

// SetBaseURL overrides the API endpoint. Used for tests and self-hosted
// gateways; the path suffix "/v1/ocr" is appended to it.
func (s *Service) SetBaseURL(u string) {
	s.baseURL = strings.TrimRight(u, "/")
}

// IsConfigured reports whether a default API key is set.
func (s *Service) IsConfigured() bool {
	return s.apiKey != ""
}

// Model returns the configured OCR model identifier.
func (s *Service) Model() string {
	return s.model
}

// Options configures a single OCR request.
type Options struct {
	IncludeImages bool   // Return embedded images as base64 in the response
	APIKey        string // Per-request key override; empty = use the default
}

// --- Mistral OCR API types ---
// These match the Mistral /v1/ocr request and response shapes.

type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// Response is the ordered list of page results from one OCR call.
type Response struct {
	Model     string     `json:"model"`
	Pages     []Page     `json:"pages"`
	UsageInfo *UsageInfo `json:"usage_info,omitempty"`
}

// Page is one recognized page: a 0-based index and its Markdown body.
type Page struct {
	Index      int         `json:"index"`
	Markdown   string      `json:"markdown"`
	Images     []Image     `json:"images,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// Image is an embedded image extracted from a page. ImageBase64 is only
// populated when the request asked for it.
type Image struct {
	ID          string `json:"id"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// Dimensions describe the source page geometry.
type Dimensions struct {
	DPI    int `json:"dpi"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// UsageInfo reports what the API charged for.
type UsageInfo struct {
	PagesProcessed int `json:"pages_processed"`
	DocSizeBytes   int `json:"doc_size_bytes"`
}

// apiError is the error envelope Mistral returns on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
}

// Process submits a PDF to the OCR API and returns the per-page results.
//
// The PDF travels inline as a base64 data URL, so no separate upload step
// is needed. There is no retry or backoff — any failure (network, auth,
// quota, malformed document) surfaces as a single wrapped error.
func (s *Service) Process(ctx context.Context, pdf []byte, opts Options) (*Response, error) {
	key := s.apiKey
	if opts.APIKey != "" {
		key = opts.APIKey
	}
	if key == "" {
		return nil, fmt.Errorf("mistral API key not configured; set MISTRAL_API_KEY")
	}

	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)

	reqBody := ocrRequest{
		Model: s.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: dataURL,
		},
		IncludeImageBase64: opts.IncludeImages,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		s.baseURL+"/v1/ocr",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mistral OCR request failed: %w", err)
	}
	defer resp.Body.Close() // Go Pattern: ALWAYS close response bodies!

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Pull out the structured message when the body carries one;
		// otherwise attach the raw body so the user sees something useful.
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("mistral OCR returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("mistral OCR returned %d: %s", resp.StatusCode, string(body))
	}

	var ocrResp Response
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &ocrResp, nil
}
