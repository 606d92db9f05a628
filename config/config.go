package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DefaultBrevoBaseURL is the public Brevo API host
	DefaultBrevoBaseURL = "https://api.brevo.com"
	// DefaultBetaConfirmDelay mirrors the pause shown after the beta survey confirmation
	DefaultBetaConfirmDelay = 2 * time.Second
)

type Config struct {
	ServerPort     string
	Environment    string
	AppURL         string
	AllowedOrigins []string
	LogLevel       string
	// Brevo (contact lists)
	BrevoAPIKey  string
	BrevoListID  int64
	BrevoBaseURL string
	// Email (Resend) for internal new-lead notifications
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged instead of sent
	LeadNotifyTo  string
	// Landing page
	ContentPath       string
	SurveyResetOnOpen bool
	BetaConfirmDelay  time.Duration

	// notes collects what happened while loading so it can be logged
	// once the logger exists.
	notes []string
}

// Load resolves the configuration once from the environment (and an optional .env file).
// The result is meant to be injected; nothing else in the app reads the environment.
func Load() *Config {
	cfg := &Config{}

	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		cfg.note("No .env file found, using system environment variables")
	}

	cfg.ServerPort = cfg.getEnv("SERVER_PORT", "8080")
	cfg.Environment = cfg.getEnv("ENVIRONMENT", "development")
	cfg.AppURL = cfg.getEnv("APP_URL", "http://localhost:8080")
	cfg.AllowedOrigins = strings.Split(cfg.getEnv("ALLOWED_ORIGINS", "*"), ",")
	cfg.LogLevel = cfg.getEnv("LOG_LEVEL", "info")

	cfg.BrevoAPIKey = os.Getenv("BREVO_API_KEY")
	if cfg.BrevoAPIKey == "" {
		cfg.note("[WARNING] BREVO_API_KEY is not set; subscriptions will be rejected by the provider")
	}
	cfg.BrevoListID = cfg.parseListID(os.Getenv("BREVO_LIST_ID"))
	cfg.BrevoBaseURL = strings.TrimRight(cfg.getEnv("BREVO_BASE_URL", DefaultBrevoBaseURL), "/")

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.EmailFrom = cfg.getEnv("EMAIL_FROM", "noreply@proply.ai")
	cfg.EmailFromName = cfg.getEnv("EMAIL_FROM_NAME", "Proply")
	cfg.EmailTestMode = getEnvBool("EMAIL_TEST_MODE", true) // Default true for safety
	cfg.LeadNotifyTo = os.Getenv("LEAD_NOTIFY_TO")

	cfg.ContentPath = os.Getenv("CONTENT_PATH")
	cfg.SurveyResetOnOpen = getEnvBool("SURVEY_RESET_ON_OPEN", false)
	cfg.BetaConfirmDelay = cfg.getEnvDuration("BETA_CONFIRM_DELAY", DefaultBetaConfirmDelay)

	return cfg
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LogNotes writes the messages gathered during Load to the given logger
func (c *Config) LogNotes(logger *zap.Logger) {
	for _, n := range c.notes {
		if strings.HasPrefix(n, "[WARNING]") {
			logger.Warn(strings.TrimSpace(strings.TrimPrefix(n, "[WARNING]")))
			continue
		}
		logger.Info(n)
	}
}

func (c *Config) note(format string, args ...any) {
	c.notes = append(c.notes, fmt.Sprintf(format, args...))
}

func (c *Config) getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		c.note("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// parseListID converts BREVO_LIST_ID once at startup. A missing or non-numeric
// value is not fatal: the provider will reject the request instead.
func (c *Config) parseListID(raw string) int64 {
	if raw == "" {
		c.note("[WARNING] BREVO_LIST_ID is not set; contacts will be sent with list id 0")
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		c.note("[WARNING] BREVO_LIST_ID %q is not numeric; contacts will be sent with list id 0", raw)
		return 0
	}
	return id
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		c.note("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
