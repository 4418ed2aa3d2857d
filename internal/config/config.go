package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/parafind/internal/layout"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Rendered exports
	ExportTTL             time.Duration
	ExportCleanupInterval time.Duration
	ExportPrefix          string

	// Page geometry for the PDF sink, in points
	PageWidth   float64
	PageHeight  float64
	PageMargin  float64
	FontSize    float64
	LineSpacing float64

	// Search latency window for the stats endpoint
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	def := layout.DefaultPageConfig()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PARAFIND_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ExportTTL:             envDuration("EXPORT_TTL", 1*time.Hour),
		ExportCleanupInterval: envDuration("EXPORT_CLEANUP_INTERVAL", 5*time.Minute),
		ExportPrefix:          envOr("EXPORT_PREFIX", "search_results"),

		PageWidth:   envFloat("PAGE_WIDTH", def.Width),
		PageHeight:  envFloat("PAGE_HEIGHT", def.Height),
		PageMargin:  envFloat("PAGE_MARGIN", def.MarginLeft),
		FontSize:    envFloat("FONT_SIZE", def.FontSize),
		LineSpacing: envFloat("LINE_SPACING", def.LineSpacing),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ExportTTL <= 0 {
		cfg.ExportTTL = 1 * time.Hour
	}
	if cfg.ExportCleanupInterval <= 0 {
		cfg.ExportCleanupInterval = 5 * time.Minute
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}
	if cfg.PageWidth <= 0 {
		cfg.PageWidth = def.Width
	}
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = def.Height
	}
	if cfg.PageMargin < 0 {
		cfg.PageMargin = def.MarginLeft
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}
	if cfg.LineSpacing <= 0 {
		cfg.LineSpacing = def.LineSpacing
	}

	return cfg
}

// Page returns the layout configuration described by the page settings.
func (c Config) Page() layout.PageConfig {
	p := layout.DefaultPageConfig()
	p.Width = c.PageWidth
	p.Height = c.PageHeight
	p.FontSize = c.FontSize
	p.LineSpacing = c.LineSpacing
	return p.UniformMargins(c.PageMargin)
}

// Validate checks settings shared by the server and the CLI.
func (c Config) Validate() error {
	if err := c.Page().Validate(); err != nil {
		return fmt.Errorf("page settings: %w", err)
	}
	return nil
}

// ValidateServer additionally requires what the HTTP server needs.
func (c Config) ValidateServer() error {
	if c.APIKey == "" {
		return errors.New("PARAFIND_API_KEY is required")
	}
	return c.Validate()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
