package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL selects the driver by scheme: postgres:// or postgresql:// use pgx,
	// sqlite://, sqlite: and file: use the embedded SQLite driver.
	URL                    string `mapstructure:"url"                       validate:"required"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=43200"` // 30 days max
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}
