package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default values applied when a setting is absent or unparsable. These mirror
// the documented fallbacks in the settings contract: a missing or malformed
// value never fails loading, it falls back.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultBaseURL         = "https://api.openai.com"
	DefaultModel           = "gpt-4o-mini"
	DefaultMaxTokens       = 1000
	DefaultTemperature     = 0.7
	DefaultTimeoutSeconds  = 30
	DefaultCheckType       = "check"
	DefaultQuestionType    = "question"
	DefaultLinkKey         = "faq_check"
	DefaultMaxItems        = 5
	DefaultIntervalSeconds = 60
	DefaultWorkerCount     = 1
	DefaultQueueSize       = 100
	DefaultStuckTaskAge    = 30
)

// Default user-facing message templates, matching the upstream plugin.
const (
	DefaultMsgNoAPIKey     = "API key not set."
	DefaultMsgInvalidCheck = "Invalid check_id."
	DefaultMsgAPIError     = "API request failed."
	DefaultMsgJSONError    = "Invalid JSON response."
	DefaultMsgNoFAQsFound  = "Nenhuma pergunta frequente encontrada."
	DefaultMsgNoPostsFound = "No posts found."
)

// Load reads configuration from environment variables and an optional
// faqreator.yaml config file in the working directory. Environment variables
// use the FAQREATOR_ prefix with underscores (e.g. FAQREATOR_OPENAI_API_KEY)
// and take precedence over file values.
//
// Every optional field has a default; numeric fields that fail to parse are
// silently reset to their defaults rather than aborting. Returns a populated
// Config or an error only when required settings (database URL) are missing
// or structurally invalid.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("faqreator")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FAQREATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		lenientNumberHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyFallbacks(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)

	// Registered empty so AutomaticEnv can bind FAQREATOR_DATABASE_URL;
	// validation still rejects an empty URL.
	v.SetDefault("database.url", "")

	v.SetDefault("auth.token", "")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", DefaultBaseURL)
	v.SetDefault("openai.model", DefaultModel)
	v.SetDefault("openai.max_tokens", DefaultMaxTokens)
	v.SetDefault("openai.temperature", DefaultTemperature)
	v.SetDefault("openai.timeout_seconds", DefaultTimeoutSeconds)

	v.SetDefault("content.check_type", DefaultCheckType)
	v.SetDefault("content.question_type", DefaultQuestionType)
	v.SetDefault("content.link_key", DefaultLinkKey)
	v.SetDefault("content.default_max_items", DefaultMaxItems)
	v.SetDefault("content.schedule_interval_seconds", DefaultIntervalSeconds)

	v.SetDefault("messages.no_api_key", DefaultMsgNoAPIKey)
	v.SetDefault("messages.invalid_check", DefaultMsgInvalidCheck)
	v.SetDefault("messages.api_error", DefaultMsgAPIError)
	v.SetDefault("messages.json_error", DefaultMsgJSONError)
	v.SetDefault("messages.no_faqs_found", DefaultMsgNoFAQsFound)
	v.SetDefault("messages.no_posts_found", DefaultMsgNoPostsFound)

	v.SetDefault("task.worker_count", DefaultWorkerCount)
	v.SetDefault("task.queue_size", DefaultQueueSize)
	v.SetDefault("task.stuck_task_age_minutes", DefaultStuckTaskAge)
}

// lenientNumberHook maps string values that fail numeric parsing to zero, so
// a malformed number degrades through applyFallbacks to its default instead
// of failing the whole load.
func lenientNumberHook() mapstructure.DecodeHookFuncValue {
	return func(from, to reflect.Value) (interface{}, error) {
		if from.Kind() != reflect.String {
			return from.Interface(), nil
		}

		raw := strings.TrimSpace(from.String())

		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
				return 0, nil
			}
		case reflect.Float32, reflect.Float64:
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return float64(0), nil
			}
		}

		return from.Interface(), nil
	}
}

// applyFallbacks resets out-of-range numeric settings to their defaults.
// The settings contract treats malformed numbers as absent, so a bad value
// must degrade to the default instead of failing validation.
func applyFallbacks(cfg *Config) {
	if cfg.Server.Port <= 0 || cfg.Server.Port >= 65536 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = DefaultLogLevel
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = DefaultBaseURL
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = DefaultModel
	}
	if cfg.OpenAI.MaxTokens <= 0 {
		cfg.OpenAI.MaxTokens = DefaultMaxTokens
	}
	if cfg.OpenAI.Temperature < 0 || cfg.OpenAI.Temperature > 2 {
		cfg.OpenAI.Temperature = DefaultTemperature
	}
	if cfg.OpenAI.TimeoutSeconds <= 0 {
		cfg.OpenAI.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Content.CheckType == "" {
		cfg.Content.CheckType = DefaultCheckType
	}
	if cfg.Content.QuestionType == "" {
		cfg.Content.QuestionType = DefaultQuestionType
	}
	if cfg.Content.LinkKey == "" {
		cfg.Content.LinkKey = DefaultLinkKey
	}
	if cfg.Content.DefaultMaxItems <= 0 {
		cfg.Content.DefaultMaxItems = DefaultMaxItems
	}
	if cfg.Content.ScheduleIntervalSeconds <= 0 {
		cfg.Content.ScheduleIntervalSeconds = DefaultIntervalSeconds
	}
	if cfg.Messages.NoAPIKey == "" {
		cfg.Messages.NoAPIKey = DefaultMsgNoAPIKey
	}
	if cfg.Messages.InvalidCheck == "" {
		cfg.Messages.InvalidCheck = DefaultMsgInvalidCheck
	}
	if cfg.Messages.APIError == "" {
		cfg.Messages.APIError = DefaultMsgAPIError
	}
	if cfg.Messages.JSONError == "" {
		cfg.Messages.JSONError = DefaultMsgJSONError
	}
	if cfg.Messages.NoFAQsFound == "" {
		cfg.Messages.NoFAQsFound = DefaultMsgNoFAQsFound
	}
	if cfg.Messages.NoPostsFound == "" {
		cfg.Messages.NoPostsFound = DefaultMsgNoPostsFound
	}
	if cfg.Task.WorkerCount <= 0 {
		cfg.Task.WorkerCount = DefaultWorkerCount
	}
	if cfg.Task.QueueSize <= 0 {
		cfg.Task.QueueSize = DefaultQueueSize
	}
	if cfg.Task.StuckTaskAgeMinutes <= 0 {
		cfg.Task.StuckTaskAgeMinutes = DefaultStuckTaskAge
	}
}
