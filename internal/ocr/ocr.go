// Package ocr provides cloud OCR backends behind a single capability
// interface. Backend selection is a pure mapping from a service name to a
// constructed client; construction failures stay local to this package
// and never block glyph-based conversion.
package ocr

import (
	"context"
	"fmt"
)

// Service performs OCR on one image.
type Service interface {
	// Ocr extracts text from image bytes (PNG, JPEG, TIFF).
	Ocr(ctx context.Context, image []byte) (string, error)
}

// Config holds the per-vendor settings recognized by the factory.
type Config struct {
	GoogleAPIKey  string
	AzureEndpoint string
	AzureKey      string
	AWSRegion     string // empty uses the ambient AWS configuration
}

// ConfigError reports missing required configuration for a backend.
type ConfigError struct {
	Service string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ocr service %s: missing configuration: %v", e.Service, e.Missing)
}

// UnavailableError reports that a backend's client could not be
// initialized even though its configuration was present.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("ocr service %s unavailable: %v", e.Service, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ServiceNames lists the supported backend names.
var ServiceNames = []string{"google", "azure", "aws"}

// New constructs the named OCR backend. All backends record call
// latencies into stats when it is non-nil.
func New(ctx context.Context, name string, cfg Config, stats *Stats) (Service, error) {
	switch name {
	case "google":
		return NewGoogle(cfg, stats)
	case "azure":
		return NewAzure(cfg, stats)
	case "aws":
		return NewAWS(ctx, cfg, stats)
	default:
		return nil, fmt.Errorf("unsupported ocr service: %s", name)
	}
}
