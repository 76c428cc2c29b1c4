package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aajarad/mistral-ocr/internal/pages"
	"github.com/aajarad/mistral-ocr/internal/services/export"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Convert a PDF file to Markdown or Word",
	Long: `Convert uploads a PDF to the Mistral OCR API and emits the result.

With no --output, the per-page Markdown is printed to stdout. With
--output, an aggregated document (each page under a "Page N" heading) is
written to the given file; --format docx writes a Word document instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageSpec, _ := cmd.Flags().GetString("pages")
		includeImages, _ := cmd.Flags().GetBool("include-images")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		if format != "md" && format != "docx" {
			return fmt.Errorf("unsupported format %q: use md or docx", format)
		}
		if format == "docx" && output == "" {
			return fmt.Errorf("--format docx requires --output")
		}

		key := viper.GetString("api_key")
		if key == "" {
			return fmt.Errorf("mistral API key is missing: pass --api-key or set MISTRAL_API_KEY")
		}

		pdf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		svc := ocr.New(key, viper.GetString("model"))
		if baseURL := os.Getenv("MISTRAL_API_URL"); baseURL != "" {
			svc.SetBaseURL(baseURL)
		}

		fmt.Fprintf(os.Stderr, "Processing %s with Mistral OCR...\n", args[0])
		resp, err := svc.Process(cmd.Context(), pdf, ocr.Options{IncludeImages: includeImages})
		if err != nil {
			return err
		}

		sel := pages.Parse(pageSpec)
		fmt.Fprintf(os.Stderr, "Got %d page(s), keeping %d\n", len(resp.Pages), sel.Count(len(resp.Pages)))

		// No output file: print raw page bodies to stdout, script-style.
		if output == "" {
			for _, page := range resp.Pages {
				if !sel.Includes(page.Index + 1) {
					continue
				}
				fmt.Println(page.Markdown)
			}
			return nil
		}

		markdown := export.Aggregate(resp.Pages, sel)

		var data []byte
		switch format {
		case "md":
			data = []byte(markdown)
		case "docx":
			data, err = export.Docx(markdown)
			if err != nil {
				return err
			}
		}

		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
		return nil
	},
}

func init() {
	convertCmd.Flags().String("pages", "", `pages to include, e.g. "2", "1,4", "3-6", "1,3-5,8" (empty = all)`)
	convertCmd.Flags().Bool("include-images", false, "include image base64 in the OCR response")
	convertCmd.Flags().String("format", "md", "output format: md or docx")
	convertCmd.Flags().StringP("output", "o", "", "output file (default: print Markdown to stdout)")

	rootCmd.AddCommand(convertCmd)
}
