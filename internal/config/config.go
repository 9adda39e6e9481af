package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Oracle   OracleConfig   `mapstructure:"oracle" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// OracleConfig contains the intelligence oracle integration settings.
type OracleConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// TimeoutSeconds bounds every oracle call. On expiry the scorer
	// degrades to the deterministic local fallback; there is no retry.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=30"`
}

// CacheConfig contains the optional Redis score cache settings.
// When RedisURL is empty the cache is disabled and every oracle score is
// computed fresh.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url" validate:"omitempty,uri"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
}

// TaskConfig contains the background learning pipeline settings.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"omitempty,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
}
