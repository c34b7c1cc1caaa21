package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const googleVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// Google performs OCR via the Google Cloud Vision images:annotate API.
type Google struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	stats      *Stats
}

// NewGoogle constructs the Google Vision backend.
func NewGoogle(cfg Config, stats *Stats) (*Google, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, &ConfigError{Service: "google", Missing: []string{"google_api_key"}}
	}
	return &Google{
		apiKey:   cfg.GoogleAPIKey,
		endpoint: googleVisionEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		stats: stats,
	}, nil
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"` // base64
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Ocr sends the image for TEXT_DETECTION and returns the detected text.
func (g *Google) Ocr(ctx context.Context, image []byte) (string, error) {
	start := time.Now()
	defer g.stats.Record(time.Since(start).Milliseconds())

	reqBody := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "TEXT_DETECTION"}},
		}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("vision api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp visionResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Responses) == 0 {
		return "", nil
	}
	r := apiResp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision error %d: %s", r.Error.Code, r.Error.Message)
	}
	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}
