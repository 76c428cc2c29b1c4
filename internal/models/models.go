// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// There is no ORM here — conversion results live in an in-memory store for
// the lifetime of the process, so the structs are just data containers.
package models

import "time"

// ConversionStatus represents the processing state of a conversion.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type ConversionStatus string

const (
	StatusCompleted ConversionStatus = "completed"
	StatusFailed    ConversionStatus = "failed"
)

// PageResult is one page of OCR output: a 0-based index and its Markdown body.
type PageResult struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// Conversion represents one PDF-to-Markdown conversion.
//
// Pages holds the per-page results that survived the page selection;
// Markdown is the aggregated document with synthesized "Page N" headings.
type Conversion struct {
	ID            string           `json:"id"`
	OriginalName  string           `json:"original_name"`
	Model         string           `json:"model"`
	PageCount     int              `json:"page_count"`     // Total pages the OCR API returned
	SelectedCount int              `json:"selected_count"` // Pages kept after selection filtering
	IncludeImages bool             `json:"include_images"`
	Pages         []PageResult     `json:"pages,omitempty"`
	Markdown      string           `json:"markdown,omitempty"`
	Status        ConversionStatus `json:"status"`
	ErrorMessage  string           `json:"error_message,omitempty"` // omitempty = skip if empty
	CreatedAt     time.Time        `json:"created_at"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Model         string `json:"model"`
	KeyConfigured bool   `json:"key_configured"`
	Conversions   int    `json:"conversions"`
}
