package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// WordMIME is the MIME type for Office Open XML word-processing documents.
const WordMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Docx renders aggregated Markdown as a Word document.
//
// The conversion is deliberately lossy: only leading "#" runs (1-6 hashes
// followed by a space) are interpreted, mapping to Word heading levels 1-6.
// Every other line — blank lines included — becomes a plain paragraph.
// Lists, emphasis, tables and images are not translated.
func Docx(markdown string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, line := range strings.Split(markdown, "\n") {
		para := doc.AddParagraph()
		if level, text := headingLevel(line); level > 0 {
			para.Style(fmt.Sprintf("Heading%d", level))
			para.AddText(text)
		} else {
			para.AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// headingLevel classifies one Markdown line. It returns the heading level
// (1-6) and the heading text when the line starts with 1-6 '#' characters
// followed by a space, and (0, line) for everything else — including lines
// with seven or more hashes or no space after the hashes.
func headingLevel(line string) (int, string) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n >= 1 && n <= 6 && n < len(line) && line[n] == ' ' {
		return n, line[n+1:]
	}
	return 0, line
}
