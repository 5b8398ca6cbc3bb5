package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/hardrock-co/agency-platform/internal/clickup"
	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/notify"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

// BuildProcessor wires the notification unit: the resolved email sender and,
// when ClickUp is configured, the task client.
func BuildProcessor(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, m *metrics.ContactMetrics, logger *logging.Logger) (*notify.Processor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var sesClient notify.SESAPI
	provider := notify.ResolveEmailProvider(cfg)
	if provider == notify.ProviderSES && loadAWS != nil {
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		sesClient = sesv2.NewFromConfig(awsCfg)
	}
	email := notify.NewEmailSender(cfg, sesClient, logger)
	logger.Info("notification email provider selected", "provider", provider, "to", cfg.NotifyEmailTo)

	clickupCfg := cfg.ClickUp()
	var tasks notify.TaskCreator
	if clickupCfg.Enabled() {
		client, err := clickup.New(clickup.Config{
			BaseURL:    clickupCfg.BaseURL,
			APIKey:     clickupCfg.APIKey,
			Timeout:    clickupCfg.Timeout,
			MaxRetries: clickupCfg.MaxRetries,
			Logger:     logger.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: clickup client: %w", err)
		}
		tasks = client
	}

	return notify.NewProcessor(email, tasks, notify.ProcessorConfig{
		Recipient: cfg.NotifyEmailTo,
		ClickUp:   clickupCfg,
	}, m, logger), nil
}
