package export

import (
	"strings"
	"testing"

	"github.com/aajarad/mistral-ocr/internal/pages"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
)

// TestAggregate verifies page-order preservation, heading synthesis, and
// selection filtering (including silently dropped out-of-range pages).
func TestAggregate(t *testing.T) {
	ocrPages := []ocr.Page{
		{Index: 0, Markdown: "first body"},
		{Index: 1, Markdown: "second body"},
		{Index: 2, Markdown: "third body"},
	}

	tests := []struct {
		name      string
		selection string
		want      string
	}{
		{
			name:      "all pages in order",
			selection: "",
			want:      "## Page 1\n\nfirst body\n\n## Page 2\n\nsecond body\n\n## Page 3\n\nthird body",
		},
		{
			name:      "subset keeps original order",
			selection: "3,1",
			want:      "## Page 1\n\nfirst body\n\n## Page 3\n\nthird body",
		},
		{
			name:      "out-of-range pages dropped silently",
			selection: "2,50",
			want:      "## Page 2\n\nsecond body",
		},
		{
			name:      "nothing in range yields empty document",
			selection: "50-60",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(ocrPages, pages.Parse(tt.selection))
			if got != tt.want {
				t.Errorf("Aggregate(%q) = %q, want %q", tt.selection, got, tt.want)
			}
		})
	}
}

// TestAggregateOrder checks the ordering property directly: page K's
// content must never appear before page J's content when J < K.
func TestAggregateOrder(t *testing.T) {
	ocrPages := []ocr.Page{
		{Index: 0, Markdown: "alpha"},
		{Index: 3, Markdown: "delta"},
		{Index: 7, Markdown: "hotel"},
	}

	got := Aggregate(ocrPages, pages.Parse("1-100"))
	iAlpha := strings.Index(got, "alpha")
	iDelta := strings.Index(got, "delta")
	iHotel := strings.Index(got, "hotel")
	if iAlpha < 0 || iDelta < 0 || iHotel < 0 {
		t.Fatalf("missing page bodies in %q", got)
	}
	if !(iAlpha < iDelta && iDelta < iHotel) {
		t.Errorf("page order not preserved: alpha@%d delta@%d hotel@%d", iAlpha, iDelta, iHotel)
	}
}

// TestBaseName verifies the output filename stem derivation.
func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain pdf", "report.pdf", "report"},
		{"no extension", "report", "report"},
		{"multiple dots", "scan.v2.pdf", "scan.v2"},
		{"path stripped", "uploads/billing/invoice.pdf", "invoice"},
		{"empty falls back", "", "output"},
		{"bare extension falls back", ".pdf", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.input); got != tt.expected {
				t.Errorf("BaseName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
