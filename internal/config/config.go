package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Notification modes understood by NOTIFY_MODE.
const (
	NotifyModeFunction = "function"
	NotifyModePubSub   = "pubsub"
	NotifyModeQueue    = "queue"
	NotifyModeNone     = "none"
)

type Config struct {
	// Local & deploy secrets (fill up for local development)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true" validate:"required"`
	DBMigrate          bool   `envconfig:"DB_MIGRATE" default:"true"`
	SupabaseURL        string `envconfig:"SUPABASE_URL" required:"true" validate:"required,http_url"`
	SupabaseAnonKey    string `envconfig:"SUPABASE_ANON_KEY" required:"true" validate:"required"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true" validate:"required"`
	S3URL              string `envconfig:"SUPABASE_S3_URL" required:"true" validate:"required,http_url"`
	S3Bucket           string `envconfig:"SUPABASE_S3_BUCKET" default:"images"`
	S3Region           string `envconfig:"SUPABASE_S3_REGION" required:"true" validate:"required"`
	S3AccessKey        string `envconfig:"SUPABASE_S3_ACCESS_KEY" required:"true" validate:"required"`
	S3SecretKey        string `envconfig:"SUPABASE_S3_SECRET_KEY" required:"true" validate:"required"`
	Environment        string `envconfig:"ENV" default:"development"`
	LogLevel           string `envconfig:"LOG_LEVEL"`

	// Site
	Port               string `envconfig:"PORT" default:"8080"`
	SiteURL            string `envconfig:"SITE_URL" default:"http://localhost:8080"`
	StaticDir          string `envconfig:"STATIC_DIR" default:"./public"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Storage
	StoragePublicURL string `envconfig:"STORAGE_PUBLIC_URL"`
	ImageMaxBytes    int64  `envconfig:"IMAGE_MAX_BYTES" default:"5242880"`
	ImagePrefix      string `envconfig:"IMAGE_PREFIX" default:"course-images"`

	// Slugs
	SlugMaxAttempts int `envconfig:"SLUG_MAX_ATTEMPTS" default:"100" validate:"min=1"`

	// Contact notification
	NotifyMode         string `envconfig:"NOTIFY_MODE" default:"function" validate:"oneof=function pubsub queue none"`
	NotifyFunctionURL  string `envconfig:"NOTIFY_FUNCTION_URL"`
	NotifyTimeoutSec   int    `envconfig:"NOTIFY_TIMEOUT_SEC" default:"10"`
	NotifyQueue        string `envconfig:"NOTIFY_QUEUE" default:"contact_emails"`
	PubSubContactTopic string `envconfig:"PUBSUB_CONTACT_TOPIC" default:"contact-submissions"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	GCPProjectIDLocal  string `envconfig:"GCP_PROJECT_ID_LOCAL" default:"local-project"`

	// Admin access. A signed-in user is an admin when listed in ADMIN_EMAILS
	// or when their app_metadata role is "admin".
	AdminEmails       string `envconfig:"ADMIN_EMAILS"`
	AdminSetupEnabled bool   `envconfig:"ADMIN_SETUP_ENABLED" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := check(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// check rejects values envconfig lets through, such as a required variable
// that is set but blank.
func check(cfg any) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("invalid configuration: %s failed %q", f.StructField(), f.Tag())
	}
	return err
}

// IsDevelopment reports whether the app runs in a local development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// GetGCPProjectID returns the project used for Pub/Sub. The local project wins
// when the emulator host is set.
func (c *Config) GetGCPProjectID() string {
	if c.PubSubEmulatorHost != "" {
		return c.GCPProjectIDLocal
	}
	return c.GCPProjectID
}

// FunctionURL returns the notification endpoint, defaulting to the hosted
// functions path on the Supabase project.
func (c *Config) FunctionURL() string {
	if c.NotifyFunctionURL != "" {
		return c.NotifyFunctionURL
	}
	return strings.TrimRight(c.SupabaseURL, "/") + "/functions/v1/send-contact-email"
}

// PublicStorageURL returns the base URL used to build public object links.
func (c *Config) PublicStorageURL() string {
	if c.StoragePublicURL != "" {
		return strings.TrimRight(c.StoragePublicURL, "/")
	}
	return strings.TrimRight(c.SupabaseURL, "/") + "/storage/v1/object/public/" + c.S3Bucket
}

// AdminEmailList splits ADMIN_EMAILS on commas.
func (c *Config) AdminEmailList() []string {
	return splitList(c.AdminEmails)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// MailerConfig is loaded by the mailer binary.
type MailerConfig struct {
	Port               string `envconfig:"PORT" default:"8081"`
	Environment        string `envconfig:"ENV" default:"development"`
	LogLevel           string `envconfig:"LOG_LEVEL"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true" validate:"required"`

	ResendAPIKey       string `envconfig:"RESEND_API_KEY"`
	ResendAPIKeySecret string `envconfig:"RESEND_API_KEY_SECRET"`
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	MailFrom           string `envconfig:"MAIL_FROM" default:"onboarding@resend.dev"`
	MailTo             string `envconfig:"MAIL_TO" required:"true" validate:"required"`
	MailTimezone       string `envconfig:"MAIL_TIMEZONE" default:"America/Manaus"`

	SharedSecret                  string `envconfig:"MAILER_SHARED_SECRET"`
	PubSubEmulatorHost            string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubPushAudience            string `envconfig:"PUBSUB_PUSH_AUDIENCE"`
	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`

	// Queue worker (cmd/orchestrator)
	QueueName              string `envconfig:"QUEUE_NAME" default:"contact_emails"`
	QueueDeadLetterName    string `envconfig:"QUEUE_DEAD_LETTER_NAME" default:"contact_emails_dlq"`
	QueueVisibilitySec     int    `envconfig:"QUEUE_VISIBILITY_SEC" default:"60"`
	QueuePollTimeoutSec    int    `envconfig:"QUEUE_POLL_TIMEOUT_SEC" default:"30"`
	QueueMaxRetries        int    `envconfig:"QUEUE_MAX_RETRIES" default:"3"`
	QueueBackoffInitialSec int    `envconfig:"QUEUE_BACKOFF_INITIAL_SEC" default:"2"`
	QueueBackoffMaxSec     int    `envconfig:"QUEUE_BACKOFF_MAX_SEC" default:"30"`
}

func LoadMailer() (*MailerConfig, error) {
	var cfg MailerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := check(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Recipients splits MAIL_TO on commas.
func (c *MailerConfig) Recipients() []string {
	return splitList(c.MailTo)
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
