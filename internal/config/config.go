package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Identity provider
	ClerkJWTKey        string `envconfig:"CLERK_JWT_KEY" required:"true"`
	ClerkWebhookSecret string `envconfig:"CLERK_WEBHOOK_SECRET"`
	AdminRole          string `envconfig:"ADMIN_ROLE" default:"admin"`

	// Object storage (any S3-compatible endpoint)
	S3Endpoint   string        `envconfig:"S3_ENDPOINT"`
	S3Region     string        `envconfig:"S3_REGION" default:"auto"`
	S3Bucket     string        `envconfig:"S3_BUCKET"`
	S3AccessKey  string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey  string        `envconfig:"S3_SECRET_KEY"`
	S3PublicURL  string        `envconfig:"S3_PUBLIC_URL"`
	UploadURLTTL time.Duration `envconfig:"UPLOAD_URL_TTL" default:"5m"`

	// fal.ai
	FalKey           string        `envconfig:"FAL_KEY"`
	FalQueueURL      string        `envconfig:"FAL_QUEUE_URL" default:"https://queue.fal.run"`
	FalRunURL        string        `envconfig:"FAL_RUN_URL" default:"https://fal.run"`
	FalTrainingApp   string        `envconfig:"FAL_TRAINING_APP" default:"fal-ai/flux-lora-fast-training"`
	FalGenerationApp string        `envconfig:"FAL_GENERATION_APP" default:"fal-ai/flux-lora"`
	FalWebhookToken  string        `envconfig:"FAL_WEBHOOK_TOKEN"`
	FalTimeout       time.Duration `envconfig:"FAL_TIMEOUT" default:"30s"`
	WebhookBaseURL   string        `envconfig:"WEBHOOK_BASE_URL"`

	// Credits
	ImageGenCredits       int `envconfig:"IMAGE_GEN_CREDITS" default:"1"`
	TrainModelCredits     int `envconfig:"TRAIN_MODEL_CREDITS" default:"20"`
	MaxImagesPerRequest   int `envconfig:"MAX_IMAGES_PER_REQUEST" default:"4"`
	PackSubmitConcurrency int `envconfig:"PACK_SUBMIT_CONCURRENCY" default:"4"`

	// Payments
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	RazorpayKeyID       string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret   string `envconfig:"RAZORPAY_KEY_SECRET"`
	FrontendURL         string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Google Cloud
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	PubSubProjectID    string `envconfig:"PUBSUB_PROJECT_ID"`
	PubSubEventsTopic  string `envconfig:"PUBSUB_EVENTS_TOPIC"`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ImageGenCredits < 0 || cfg.TrainModelCredits < 0 {
		return nil, fmt.Errorf("credit costs must not be negative: IMAGE_GEN_CREDITS=%d TRAIN_MODEL_CREDITS=%d",
			cfg.ImageGenCredits, cfg.TrainModelCredits)
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.WebhookBaseURL = strings.TrimRight(cfg.WebhookBaseURL, "/")
	return &cfg, nil
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// GetPubSubProjectID falls back to the main GCP project.
func (c *Config) GetPubSubProjectID() string {
	if c.PubSubProjectID != "" {
		return c.PubSubProjectID
	}
	return c.GCPProjectID
}

// SecretFields maps Secret Manager secret names to the config fields they fill.
func (c *Config) SecretFields() map[string]*string {
	return map[string]*string{
		"FAL_KEY":               &c.FalKey,
		"STRIPE_SECRET_KEY":     &c.StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET": &c.StripeWebhookSecret,
		"RAZORPAY_KEY_SECRET":   &c.RazorpayKeySecret,
		"CLERK_WEBHOOK_SECRET":  &c.ClerkWebhookSecret,
		"S3_SECRET_KEY":         &c.S3SecretKey,
	}
}
