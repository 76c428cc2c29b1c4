// Package export turns OCR page results into downloadable artifacts:
// an aggregated Markdown document, a rendered HTML preview, and a
// best-effort Word (.docx) conversion.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aajarad/mistral-ocr/internal/pages"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
)

// Aggregate concatenates the selected pages' Markdown bodies in their
// original order, each prefixed with a synthesized "Page N" heading
// (N is the 1-based page number).
//
// Pages outside the selection — including out-of-range selected numbers —
// are simply skipped.
func Aggregate(ocrPages []ocr.Page, sel pages.Selection) string {
	parts := make([]string, 0, len(ocrPages))
	for _, p := range ocrPages {
		if !sel.Includes(p.Index + 1) {
			continue
		}
		parts = append(parts, fmt.Sprintf("## Page %d\n\n%s", p.Index+1, p.Markdown))
	}
	return strings.Join(parts, "\n\n")
}

// BaseName derives the output filename stem from an uploaded filename:
// the base name minus its extension, falling back to "output".
func BaseName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "output"
	}
	return base
}
