package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const azureAnalyzePath = "/computervision/imageanalysis:analyze?api-version=2023-10-01&features=read"

// Azure performs OCR via the Azure AI Vision Image Analysis read feature.
type Azure struct {
	endpoint   string
	key        string
	httpClient *http.Client
	stats      *Stats
}

// NewAzure constructs the Azure AI Vision backend.
func NewAzure(cfg Config, stats *Stats) (*Azure, error) {
	var missing []string
	if cfg.AzureEndpoint == "" {
		missing = append(missing, "azure_endpoint")
	}
	if cfg.AzureKey == "" {
		missing = append(missing, "azure_key")
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Service: "azure", Missing: missing}
	}
	return &Azure{
		endpoint: strings.TrimSuffix(cfg.AzureEndpoint, "/"),
		key:      cfg.AzureKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		stats: stats,
	}, nil
}

type azureResponse struct {
	ReadResult *struct {
		Blocks []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"blocks"`
	} `json:"readResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Ocr analyzes the image with the read feature and joins line texts.
func (a *Azure) Ocr(ctx context.Context, image []byte) (string, error) {
	start := time.Now()
	defer a.stats.Record(time.Since(start).Milliseconds())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+azureAnalyzePath, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", a.key)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("azure vision api: %w", err)
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
		return "", fmt.Errorf("azure vision api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp azureResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("azure vision error %s: %s", apiResp.Error.Code, apiResp.Error.Message)
	}
	if apiResp.ReadResult == nil {
		return "", nil
	}

	var lines []string
	for _, block := range apiResp.ReadResult.Blocks {
		for _, line := range block.Lines {
			lines = append(lines, line.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}
