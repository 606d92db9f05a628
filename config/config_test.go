package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var configKeys = []string{
	"SERVER_PORT", "ENVIRONMENT", "APP_URL", "ALLOWED_ORIGINS", "LOG_LEVEL",
	"BREVO_API_KEY", "BREVO_LIST_ID", "BREVO_BASE_URL",
	"RESEND_API_KEY", "EMAIL_FROM", "EMAIL_FROM_NAME", "EMAIL_TEST_MODE", "LEAD_NOTIFY_TO",
	"CONTENT_PATH", "SURVEY_RESET_ON_OPEN", "BETA_CONFIRM_DELAY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(0), cfg.BrevoListID)
	assert.Equal(t, DefaultBrevoBaseURL, cfg.BrevoBaseURL)
	assert.True(t, cfg.EmailTestMode)
	assert.False(t, cfg.SurveyResetOnOpen)
	assert.Equal(t, DefaultBetaConfirmDelay, cfg.BetaConfirmDelay)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://proply.ai,https://www.proply.ai")
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("BREVO_LIST_ID", " 7 ")
	t.Setenv("BREVO_BASE_URL", "http://localhost:9999/")
	t.Setenv("EMAIL_TEST_MODE", "off")
	t.Setenv("SURVEY_RESET_ON_OPEN", "yes")
	t.Setenv("BETA_CONFIRM_DELAY", "500ms")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://proply.ai", "https://www.proply.ai"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(7), cfg.BrevoListID)
	assert.Equal(t, "http://localhost:9999", cfg.BrevoBaseURL)
	assert.False(t, cfg.EmailTestMode)
	assert.True(t, cfg.SurveyResetOnOpen)
	assert.Equal(t, 500*time.Millisecond, cfg.BetaConfirmDelay)
}

func TestNonNumericListIDIsAWarning(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("BREVO_LIST_ID", "newsletter")
	t.Setenv("BETA_CONFIRM_DELAY", "-1s")

	cfg := Load()
	assert.Equal(t, int64(0), cfg.BrevoListID)
	assert.Equal(t, DefaultBetaConfirmDelay, cfg.BetaConfirmDelay)

	core, logs := observer.New(zapcore.InfoLevel)
	cfg.LogNotes(zap.New(core))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, `BREVO_LIST_ID "newsletter" is not numeric`)
	assert.Contains(t, warnings[1].Message, "Invalid duration for BETA_CONFIRM_DELAY")
}

func TestDefaultContent(t *testing.T) {
	c := DefaultContent()

	assert.Equal(t, "Proply", c.Brand)
	assert.Equal(t, "Automate your books, save time, and cut costs.", c.TypedSentence)
	assert.Equal(t, "https://form.typeform.com/to/EMKcyYDX", c.SurveyURL)
	assert.Len(t, c.Palette, 5)
	assert.Len(t, c.BetaBenefits, 4)
}

func TestLoadContent(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		c, err := LoadContent("")
		require.NoError(t, err)
		assert.Equal(t, DefaultContent(), c)
	})

	t.Run("Overrides keep defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brand: Acme\ntyped_sentence: Hello.\n"), 0644))

		c, err := LoadContent(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Brand)
		assert.Equal(t, "Hello.", c.TypedSentence)
		assert.Equal(t, DefaultContent().SurveyURL, c.SurveyURL)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read content file")
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brand: [unclosed"), 0644))

		_, err := LoadContent(path)
		assert.ErrorContains(t, err, "failed to parse content file")
	})
}
