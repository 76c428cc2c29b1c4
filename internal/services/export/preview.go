package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PreviewHTML renders aggregated Markdown as a standalone HTML page.
// Tables and other GFM constructs show up properly in the preview even
// though the Word conversion ignores them.
func PreviewHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { max-width: 52rem; margin: 2rem auto; padding: 0 1rem;
           font-family: -apple-system, "Segoe UI", sans-serif; line-height: 1.6; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
    img { max-width: 100%%; }
  </style>
</head>
<body>
`, html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("\n</body>\n</html>\n")

	return page.Bytes(), nil
}
