// Package main is the entry point for the mistralocr CLI — the scriptable
// counterpart to the HTTP server: read a local PDF, run it through the
// Mistral OCR API, and print or save the resulting Markdown.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mistralocr CLI.
var rootCmd = &cobra.Command{
	Use:   "mistralocr",
	Short: "Convert PDFs to Markdown with the Mistral OCR API",
	Long: `mistralocr sends a PDF to the hosted Mistral OCR API and emits the
recognized per-page Markdown. No OCR happens locally — the tool is a thin
client over the remote service.

The API key is resolved from --api-key, then the MISTRAL_API_KEY
environment variable.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("api-key", "", "Mistral API key (default: MISTRAL_API_KEY env)")
	rootCmd.PersistentFlags().String("model", "", "OCR model identifier (default: mistral-ocr-latest)")

	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindEnv("api_key", "MISTRAL_API_KEY")
	viper.BindEnv("model", "MISTRAL_OCR_MODEL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
