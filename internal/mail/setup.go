package mail

import (
	"context"

	"posgrad/internal/config"
)

// Setup resolves the Resend API key and builds the composer and sender.
// The Secret Manager client is only opened when the key lives there.
func Setup(ctx context.Context, cfg *config.MailerConfig) (*Composer, *ResendSender, error) {
	var accessor SecretAccessor
	if cfg.ResendAPIKey == "" && cfg.ResendAPIKeySecret != "" {
		client, err := NewSecretClient(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer client.Close()
		accessor = client
	}
	apiKey, err := ResolveAPIKey(ctx, cfg, accessor)
	if err != nil {
		return nil, nil, err
	}

	composer, err := NewComposer(cfg.MailTimezone)
	if err != nil {
		return nil, nil, err
	}
	sender, err := NewResendSender(apiKey, cfg.MailFrom, cfg.Recipients())
	if err != nil {
		return nil, nil, err
	}
	return composer, sender, nil
}
