package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains token verification settings. Token issuance belongs
// to the external identity collaborator; this service only needs the shared
// secret to validate bearer tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
}

// PracticeConfig tunes the practice session pipeline.
type PracticeConfig struct {
	// DistractorCount is how many wrong answers accompany a multiple-choice
	// exercise when enough eligible items exist.
	DistractorCount int `mapstructure:"distractor_count" validate:"gte=0,lte=8"`

	// MaxSessionItems caps how many due items a single session snapshots.
	// Zero means no cap.
	MaxSessionItems int `mapstructure:"max_session_items" validate:"gte=0"`
}
