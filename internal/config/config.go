package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"   validate:"required"`
	Content  ContentConfig  `mapstructure:"content"  validate:"required"`
	Messages MessageConfig  `mapstructure:"messages"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the shared token that protects the generation endpoint.
// An empty token means every request carrying an empty token parameter is
// accepted, mirroring the upstream plugin's behavior.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// OpenAIConfig contains all settings for the chat completions integration.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`

	// BaseURL points at the OpenAI-compatible API root. Overridable so tests
	// and self-hosted gateways can intercept calls.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	Model          string  `mapstructure:"model"           validate:"required"`
	MaxTokens      int     `mapstructure:"max_tokens"      validate:"gt=0"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// ContentConfig describes how source and generated records are typed and linked.
type ContentConfig struct {
	// CheckType is the post type tag of source items eligible for generation.
	CheckType string `mapstructure:"check_type" validate:"required"`

	// QuestionType is the post type tag assigned to generated FAQ items.
	QuestionType string `mapstructure:"question_type" validate:"required"`

	// LinkKey names the attribute connecting a FAQ item back to its sources.
	LinkKey string `mapstructure:"link_key" validate:"required"`

	// DefaultMaxItems is the number of question/answer pairs requested per post.
	DefaultMaxItems int `mapstructure:"default_max_items" validate:"gt=0"`

	// ScheduleIntervalSeconds spaces consecutive generation jobs in one batch.
	ScheduleIntervalSeconds int `mapstructure:"schedule_interval_seconds" validate:"gt=0"`
}

// MessageConfig holds the user-facing error and status message templates.
// Each is independently overridable; defaults match the upstream plugin.
type MessageConfig struct {
	NoAPIKey     string `mapstructure:"no_api_key"`
	InvalidCheck string `mapstructure:"invalid_check"`
	APIError     string `mapstructure:"api_error"`
	JSONError    string `mapstructure:"json_error"`
	NoFAQsFound  string `mapstructure:"no_faqs_found"`
	NoPostsFound string `mapstructure:"no_posts_found"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gt=0"`

	// StuckTaskAgeMinutes defines how long a task can stay in processing
	// state before it's considered stuck and reset.
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"gt=0"`
}
