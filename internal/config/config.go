package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
// Every external dependency is optional: without DATABASE_URL registrations
// live in process memory, without SMTP credentials a disposable Ethereal
// account is provisioned, and without GEMINI_API_KEY the chat endpoint
// answers from the scripted fallback.
type Config struct {
	Port        int    `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	RecaptchaSecretKey string `envconfig:"RECAPTCHA_SECRET_KEY" default:""`

	SMTPHost string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"SMTP_USER" default:""`
	SMTPPass string `envconfig:"SMTP_PASS" default:""`
	SMTPFrom string `envconfig:"SMTP_FROM" default:"noreply@teamreg.com"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in development mode, where
// internal error messages may be exposed in responses.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
