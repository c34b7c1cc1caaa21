package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP API.
	PagemarkAPIKey string

	// Layout reconstruction options.
	TitleRecognize bool
	ColorRecognize bool
	HeaderPattern  string
	FooterPattern  string
	ContiguousRuns bool

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	PageWorkers  int // per-document page parallelism

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Output
	OutputDir string

	// OCR backends
	OCRService    string
	GoogleAPIKey  string
	AzureEndpoint string
	AzureKey      string
	AWSRegion     string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		PagemarkAPIKey: os.Getenv("PAGEMARK_API_KEY"),

		TitleRecognize: envBool("TITLE_RECOGNIZE", true),
		ColorRecognize: envBool("COLOR_RECOGNIZE", true),
		HeaderPattern:  os.Getenv("HEADER_PATTERN"),
		FooterPattern:  os.Getenv("FOOTER_PATTERN"),
		ContiguousRuns: envBool("CONTIGUOUS_RUNS", false),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		PageWorkers:  envInt("PAGE_WORKERS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		OutputDir: os.Getenv("OUTPUT_DIR"),

		OCRService:    os.Getenv("OCR_SERVICE"),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		AzureEndpoint: os.Getenv("AZURE_VISION_ENDPOINT"),
		AzureKey:      os.Getenv("AZURE_VISION_KEY"),
		AWSRegion:     os.Getenv("AWS_REGION"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings required to run the HTTP service. OCR
// credentials are validated by the OCR factory itself so a missing OCR
// setup never blocks glyph-based conversion.
func (c Config) Validate() error {
	if c.PagemarkAPIKey == "" {
		return fmt.Errorf("PAGEMARK_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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
