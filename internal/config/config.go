// Package config provides configuration loading and validation for the
// job board service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Resume file types accepted for upload.
var allowedUploadTypes = []string{"pdf", "docx", "doc"}

// AppConfig holds the service configuration read from environment variables.
type AppConfig struct {
	Port        string
	DatabaseURL string
	GeminiKey   string

	UploadDir    string
	MaxUploadMB  int
	AllowedTypes []string

	RateLimitPerMinute int
}

// NewAppConfig creates the service configuration from environment variables.
// It reads PORT (default: 8080), DATABASE_URL (required), GEMINI_API_KEY,
// UPLOAD_DIR (default: ./uploads), MAX_UPLOAD_MB (default: 5), and
// RATE_LIMIT_PER_MINUTE (default: 60).
func NewAppConfig() (*AppConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	maxUploadMB, err := intFromEnv("MAX_UPLOAD_MB", 5)
	if err != nil {
		return nil, err
	}

	rateLimit, err := intFromEnv("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               port,
		DatabaseURL:        databaseURL,
		GeminiKey:          os.Getenv("GEMINI_API_KEY"),
		UploadDir:          uploadDir,
		MaxUploadMB:        maxUploadMB,
		AllowedTypes:       allowedUploadTypes,
		RateLimitPerMinute: rateLimit,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be at least 1, got: %d", c.MaxUploadMB)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got: %d", c.RateLimitPerMinute)
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// IsAllowedType reports whether the given file extension may be uploaded.
func (c *AppConfig) IsAllowedType(fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, t := range c.AllowedTypes {
		if t == fileType {
			return true
		}
	}
	return false
}

func intFromEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return value, nil
}
