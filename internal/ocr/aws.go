package ocr

import (
	"context"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// AWS performs OCR via Amazon Textract. Credentials and region come from
// the ambient AWS configuration chain; request signing makes a plain REST
// client impractical, so this backend uses the official SDK.
type AWS struct {
	client *textract.Client
	stats  *Stats
}

// NewAWS constructs the Textract backend.
func NewAWS(ctx context.Context, cfg Config, stats *Stats) (*AWS, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &UnavailableError{Service: "aws", Err: err}
	}
	if awsCfg.Region == "" {
		return nil, &ConfigError{Service: "aws", Missing: []string{"aws_region"}}
	}
	return &AWS{
		client: textract.NewFromConfig(awsCfg),
		stats:  stats,
	}, nil
}

// Ocr runs synchronous text detection and joins LINE blocks.
func (a *AWS) Ocr(ctx context.Context, image []byte) (string, error) {
	start := time.Now()
	defer a.stats.Record(time.Since(start).Milliseconds())

	out, err := a.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return "", err
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			lines = append(lines, *block.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}
