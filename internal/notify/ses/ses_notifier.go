package ses

import (
	"context"
	"fmt"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/In-dig0/vat-controller/internal/config"
	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESNotifier creates a new SES-backed Notifier.
func NewSESNotifier(cfg *config.NotifyConfig) (port.Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		toAddress:   cfg.ToAddress,
	}, nil
}

func (n *sesNotifier) NotifyBatchComplete(ctx context.Context, summary *domain.BatchSummary) error {
	subject := fmt.Sprintf("VAT check complete: %s", filepath.Base(summary.SourceFile))
	textBody := fmt.Sprintf(
		"Batch %s finished at %s.\n\nSource file: %s\nRecords checked: %d\nValid: %d\nInvalid: %d\nService errors: %d\nSkipped input lines: %d\nStore failures: %d\n",
		summary.BatchID, summary.FinishedAt.Format("2006-01-02 15:04:05"),
		summary.SourceFile, summary.Total, summary.ValidCount, summary.InvalidCount,
		summary.ErrorCount, summary.SkippedLines, summary.StoreFailures)

	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromAddress)

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{n.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
