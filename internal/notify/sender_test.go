package notify

import (
	"testing"

	"github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func TestResolveEmailProvider(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"explicit stub", config.Config{EmailProvider: "stub", SendGridAPIKey: "k"}, ProviderStub},
		{"explicit ses", config.Config{EmailProvider: "SES"}, ProviderSES},
		{"auto sendgrid", config.Config{EmailProvider: "auto", SendGridAPIKey: "k", SESFromEmail: "a@b.co"}, ProviderSendGrid},
		{"auto ses", config.Config{EmailProvider: "auto", SESFromEmail: "a@b.co"}, ProviderSES},
		{"auto stub", config.Config{EmailProvider: "auto"}, ProviderStub},
		{"unknown falls to auto", config.Config{EmailProvider: "smtp"}, ProviderStub},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveEmailProvider(&tc.cfg); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestNewEmailSenderFallsBackToStub(t *testing.T) {
	logger := logging.Discard()

	sender := NewEmailSender(&config.Config{EmailProvider: "ses", SESFromEmail: "noreply@hardrock-co.com"}, nil, logger)
	if _, ok := sender.(*StubEmailSender); !ok {
		t.Fatalf("expected stub sender without SES client, got %T", sender)
	}

	sender = NewEmailSender(&config.Config{EmailProvider: "sendgrid"}, nil, logger)
	if _, ok := sender.(*StubEmailSender); !ok {
		t.Fatalf("expected stub sender without SendGrid key, got %T", sender)
	}
}

func TestNewEmailSenderBuildsProviders(t *testing.T) {
	logger := logging.Discard()

	sender := NewEmailSender(&config.Config{EmailProvider: "sendgrid", SendGridAPIKey: "k"}, nil, logger)
	if _, ok := sender.(*SendGridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", sender)
	}

	sender = NewEmailSender(&config.Config{EmailProvider: "ses", SESFromEmail: "noreply@hardrock-co.com"}, &fakeSES{}, logger)
	if _, ok := sender.(*SESSender); !ok {
		t.Fatalf("expected ses sender, got %T", sender)
	}
}
