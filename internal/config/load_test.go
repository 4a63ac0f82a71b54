package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("FAQREATOR_DATABASE_URL", "postgres://localhost:5432/faqreator")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, DefaultModel, cfg.OpenAI.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.OpenAI.MaxTokens)
	assert.Equal(t, DefaultTemperature, cfg.OpenAI.Temperature)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.OpenAI.TimeoutSeconds)
	assert.Equal(t, DefaultCheckType, cfg.Content.CheckType)
	assert.Equal(t, DefaultQuestionType, cfg.Content.QuestionType)
	assert.Equal(t, DefaultLinkKey, cfg.Content.LinkKey)
	assert.Equal(t, DefaultMaxItems, cfg.Content.DefaultMaxItems)
	assert.Equal(t, DefaultIntervalSeconds, cfg.Content.ScheduleIntervalSeconds)
	assert.Equal(t, DefaultMsgInvalidCheck, cfg.Messages.InvalidCheck)
	assert.Equal(t, DefaultMsgAPIError, cfg.Messages.APIError)
	assert.Equal(t, DefaultMsgJSONError, cfg.Messages.JSONError)
	assert.Empty(t, cfg.Auth.Token)
	assert.Empty(t, cfg.OpenAI.APIKey)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("FAQREATOR_DATABASE_URL", "postgres://localhost:5432/faqreator")
	t.Setenv("FAQREATOR_OPENAI_API_KEY", "sk-test")
	t.Setenv("FAQREATOR_OPENAI_MODEL", "gpt-4o")
	t.Setenv("FAQREATOR_AUTH_TOKEN", "secret-token")
	t.Setenv("FAQREATOR_CONTENT_CHECK_TYPE", "artigo")
	t.Setenv("FAQREATOR_MESSAGES_INVALID_CHECK", "check_id inválido")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "secret-token", cfg.Auth.Token)
	assert.Equal(t, "artigo", cfg.Content.CheckType)
	assert.Equal(t, "check_id inválido", cfg.Messages.InvalidCheck)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultQuestionType, cfg.Content.QuestionType)
}

func TestLoadFailsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("FAQREATOR_DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMalformedNumericsFallBackToDefaults(t *testing.T) {
	t.Setenv("FAQREATOR_DATABASE_URL", "postgres://localhost:5432/faqreator")
	t.Setenv("FAQREATOR_SERVER_PORT", "banana")
	t.Setenv("FAQREATOR_OPENAI_MAX_TOKENS", "abc")
	t.Setenv("FAQREATOR_OPENAI_TEMPERATURE", "hot")
	t.Setenv("FAQREATOR_CONTENT_SCHEDULE_INTERVAL_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err, "malformed numerics must fall back, not fail")

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxTokens, cfg.OpenAI.MaxTokens)
	assert.Equal(t, DefaultTemperature, cfg.OpenAI.Temperature)
	assert.Equal(t, DefaultIntervalSeconds, cfg.Content.ScheduleIntervalSeconds)
}

func TestLoadMalformedNumericKeepsValidSiblings(t *testing.T) {
	t.Setenv("FAQREATOR_DATABASE_URL", "postgres://localhost:5432/faqreator")
	t.Setenv("FAQREATOR_OPENAI_MAX_TOKENS", "abc")
	t.Setenv("FAQREATOR_OPENAI_TIMEOUT_SECONDS", "45")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxTokens, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 45, cfg.OpenAI.TimeoutSeconds)
}

func TestApplyFallbacksResetsOutOfRangeNumerics(t *testing.T) {
	cfg := &Config{}
	cfg.OpenAI.MaxTokens = -3
	cfg.OpenAI.Temperature = 9.5
	cfg.OpenAI.TimeoutSeconds = 0
	cfg.Content.DefaultMaxItems = 0
	cfg.Content.ScheduleIntervalSeconds = -1

	applyFallbacks(cfg)

	assert.Equal(t, DefaultMaxTokens, cfg.OpenAI.MaxTokens)
	assert.Equal(t, DefaultTemperature, cfg.OpenAI.Temperature)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.OpenAI.TimeoutSeconds)
	assert.Equal(t, DefaultMaxItems, cfg.Content.DefaultMaxItems)
	assert.Equal(t, DefaultIntervalSeconds, cfg.Content.ScheduleIntervalSeconds)
}
