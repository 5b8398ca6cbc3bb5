package notify

import (
	"strings"

	"github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

// Email providers.
const (
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
)

// ResolveEmailProvider picks the delivery provider. "auto" prefers SendGrid
// when a key is present, then SES when a sender address is set.
func ResolveEmailProvider(cfg *config.Config) string {
	switch strings.ToLower(strings.TrimSpace(cfg.EmailProvider)) {
	case ProviderSendGrid:
		return ProviderSendGrid
	case ProviderSES:
		return ProviderSES
	case ProviderStub:
		return ProviderStub
	}
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" {
		return ProviderSendGrid
	}
	if strings.TrimSpace(cfg.SESFromEmail) != "" {
		return ProviderSES
	}
	return ProviderStub
}

// NewEmailSender builds the sender for the resolved provider. ses is only
// consulted for the SES provider and may be nil otherwise. A misconfigured
// provider falls back to the stub sender.
func NewEmailSender(cfg *config.Config, ses SESAPI, logger *logging.Logger) EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	switch ResolveEmailProvider(cfg) {
	case ProviderSendGrid:
		if sender := NewSendGridSender(SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("notify: sendgrid selected without API key, using stub sender")
	case ProviderSES:
		if sender := NewSESSender(ses, SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("notify: ses selected without client, using stub sender")
	}
	return NewStubEmailSender(logger)
}
