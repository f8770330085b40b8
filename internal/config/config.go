package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	DocumentTimeout    time.Duration
	ExtractionTimeout  time.Duration
	MaxRequestBodySize int64

	// OCRLanguage is the Tesseract trained-data language used for the MRZ.
	// The default "eng" covers the OCR-B glyph set well enough; installations
	// with the dedicated "ocrb" traineddata can point at it here.
	OCRLanguage string

	// StorageBackend selects the document fetcher: "http" or "azure".
	StorageBackend   string
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		DocumentTimeout:    parseDurationOrDefault("DOCUMENT_FETCH_TIMEOUT", 15*time.Second),
		ExtractionTimeout:  parseDurationOrDefault("EXTRACTION_TIMEOUT", 45*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		OCRLanguage:        getEnvOrDefault("OCR_LANGUAGE", "eng"),
		StorageBackend:     getEnvOrDefault("STORAGE_BACKEND", "http"),
		AzureAccountName:   os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:    os.Getenv("AZURE_STORAGE_KEY"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.DocumentTimeout <= 0 || cfg.ExtractionTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, extraction=%s)",
			cfg.RequestTimeout, cfg.DocumentTimeout, cfg.ExtractionTimeout)
	}
	switch cfg.StorageBackend {
	case "http", "azure":
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q (want http or azure)", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "azure" && (cfg.AzureAccountName == "" || cfg.AzureAccountKey == "") {
		return nil, fmt.Errorf("STORAGE_BACKEND=azure requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
