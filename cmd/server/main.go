// Package main is the entry point for the Mistral OCR API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aajarad/mistral-ocr/internal/config"
	"github.com/aajarad/mistral-ocr/internal/router"
	"github.com/aajarad/mistral-ocr/internal/services/ocr"
	"github.com/aajarad/mistral-ocr/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("📖 Mistral OCR API %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, model=%s, gin_mode=%s", cfg.Port, cfg.OCRModel, cfg.GinMode)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Create the OCR client
	ocrService := ocr.New(cfg.MistralAPIKey, cfg.OCRModel)
	if cfg.MistralBaseURL != "" {
		ocrService.SetBaseURL(cfg.MistralBaseURL)
		log.Printf("🔧 Using OCR endpoint override: %s", cfg.MistralBaseURL)
	}
	if ocrService.IsConfigured() {
		log.Println("✅ Mistral API key configured")
	} else {
		log.Println("⚠️  No Mistral API key set (clients must send 'api_key' per request, or set MISTRAL_API_KEY)")
	}

	// Step 3: Create the in-memory conversion store
	st := store.New(time.Duration(cfg.StoreTTLMinutes)*time.Minute, cfg.StoreLimit)
	log.Printf("✅ Conversion store ready (ttl=%dm, limit=%d)", cfg.StoreTTLMinutes, cfg.StoreLimit)

	// Step 4: Setup HTTP Router
	r := router.Setup(ocrService, st, Version, cfg.DefaultRateLimit, cfg.AllowedOrigins)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// The OCR call itself can take minutes on big documents, so the
		// write timeout has to cover it.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
