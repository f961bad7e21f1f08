package mail

import (
	"context"
	"fmt"
	"strings"

	"posgrad/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// SecretAccessor is the part of the Secret Manager client used here.
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// SecretResourceName expands a bare secret name into its latest-version
// resource path. Full paths are returned unchanged.
func SecretResourceName(projectID, secret string) string {
	if strings.HasPrefix(secret, "projects/") {
		if strings.Contains(secret, "/versions/") {
			return secret
		}
		return secret + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secret)
}

// ResolveAPIKey returns RESEND_API_KEY when set, otherwise reads the
// secret named by RESEND_API_KEY_SECRET. accessor is only used in the
// second case.
func ResolveAPIKey(ctx context.Context, cfg *config.MailerConfig, accessor SecretAccessor) (string, error) {
	if cfg.ResendAPIKey != "" {
		return cfg.ResendAPIKey, nil
	}
	if cfg.ResendAPIKeySecret == "" {
		return "", fmt.Errorf("RESEND_API_KEY not configured")
	}
	if accessor == nil {
		return "", fmt.Errorf("no Secret Manager client to read %s", cfg.ResendAPIKeySecret)
	}
	if !strings.HasPrefix(cfg.ResendAPIKeySecret, "projects/") && cfg.GCPProjectID == "" {
		return "", fmt.Errorf("GCP Project ID is not set for secret %s", cfg.ResendAPIKeySecret)
	}

	result, err := accessor.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: SecretResourceName(cfg.GCPProjectID, cfg.ResendAPIKeySecret),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

// NewSecretClient creates a Secret Manager client with default credentials.
func NewSecretClient(ctx context.Context) (*secretmanager.Client, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return client, nil
}
