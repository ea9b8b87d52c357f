package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	Vision VisionConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for card image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds scan queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// VisionProviderConfig holds settings for a single vision-model provider.
type VisionProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// VisionConfig holds vision-model describer settings with multi-provider
// fallback support. Primary is required; secondary and tertiary are optional
// fallbacks tried in order.
type VisionConfig struct {
	Primary   VisionProviderConfig `mapstructure:"primary"`
	Secondary VisionProviderConfig `mapstructure:"secondary"`
	Tertiary  VisionProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured providers in fallback order.
func (v *VisionConfig) Providers() []VisionProviderConfig {
	var out []VisionProviderConfig
	for _, p := range []VisionProviderConfig{v.Primary, v.Secondary, v.Tertiary} {
		if p.Provider != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads configuration from environment variables with the CARDINTAKE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARDINTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cardintake")
	v.SetDefault("db.password", "cardintake_secret")
	v.SetDefault("db.name", "cardintake_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "cardintake")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "cardintake-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 4)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@cardintake.app")
	v.SetDefault("email.from_name", "CardIntake")

	// Vision describer defaults
	v.SetDefault("vision.primary.provider", "claude")
	v.SetDefault("vision.primary.api_key", "")
	v.SetDefault("vision.primary.default_model", "")
	v.SetDefault("vision.primary.timeout_secs", 120)
	v.SetDefault("vision.secondary.provider", "")
	v.SetDefault("vision.secondary.api_key", "")
	v.SetDefault("vision.secondary.default_model", "")
	v.SetDefault("vision.secondary.timeout_secs", 120)
	v.SetDefault("vision.tertiary.provider", "")
	v.SetDefault("vision.tertiary.api_key", "")
	v.SetDefault("vision.tertiary.default_model", "")
	v.SetDefault("vision.tertiary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "CARDINTAKE_SERVER_PORT",
		"server.read_timeout":            "CARDINTAKE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "CARDINTAKE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "CARDINTAKE_SERVER_ENVIRONMENT",
		"db.host":                        "CARDINTAKE_DB_HOST",
		"db.port":                        "CARDINTAKE_DB_PORT",
		"db.user":                        "CARDINTAKE_DB_USER",
		"db.password":                    "CARDINTAKE_DB_PASSWORD",
		"db.name":                        "CARDINTAKE_DB_NAME",
		"db.sslmode":                     "CARDINTAKE_DB_SSLMODE",
		"db.max_open":                    "CARDINTAKE_DB_MAX_OPEN",
		"db.max_idle":                    "CARDINTAKE_DB_MAX_IDLE",
		"jwt.secret":                     "CARDINTAKE_JWT_SECRET",
		"jwt.access_expiry":              "CARDINTAKE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "CARDINTAKE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "CARDINTAKE_JWT_ISSUER",
		"s3.region":                      "CARDINTAKE_S3_REGION",
		"s3.bucket":                      "CARDINTAKE_S3_BUCKET",
		"s3.endpoint":                    "CARDINTAKE_S3_ENDPOINT",
		"s3.access_key":                  "CARDINTAKE_S3_ACCESS_KEY",
		"s3.secret_key":                  "CARDINTAKE_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "CARDINTAKE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "CARDINTAKE_S3_PRESIGN_EXPIRY",
		"log.level":                      "CARDINTAKE_LOG_LEVEL",
		"log.format":                     "CARDINTAKE_LOG_FORMAT",
		"cors.allowed_origins":           "CARDINTAKE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":       "CARDINTAKE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":              "CARDINTAKE_QUEUE_MAX_RETRIES",
		"queue.concurrency":              "CARDINTAKE_QUEUE_CONCURRENCY",
		"email.provider":                 "CARDINTAKE_EMAIL_PROVIDER",
		"email.region":                   "CARDINTAKE_EMAIL_REGION",
		"email.from_address":             "CARDINTAKE_EMAIL_FROM_ADDRESS",
		"email.from_name":                "CARDINTAKE_EMAIL_FROM_NAME",
		"vision.primary.provider":        "CARDINTAKE_VISION_PRIMARY_PROVIDER",
		"vision.primary.api_key":         "CARDINTAKE_VISION_PRIMARY_API_KEY",
		"vision.primary.default_model":   "CARDINTAKE_VISION_PRIMARY_DEFAULT_MODEL",
		"vision.primary.timeout_secs":    "CARDINTAKE_VISION_PRIMARY_TIMEOUT_SECS",
		"vision.secondary.provider":      "CARDINTAKE_VISION_SECONDARY_PROVIDER",
		"vision.secondary.api_key":       "CARDINTAKE_VISION_SECONDARY_API_KEY",
		"vision.secondary.default_model": "CARDINTAKE_VISION_SECONDARY_DEFAULT_MODEL",
		"vision.secondary.timeout_secs":  "CARDINTAKE_VISION_SECONDARY_TIMEOUT_SECS",
		"vision.tertiary.provider":       "CARDINTAKE_VISION_TERTIARY_PROVIDER",
		"vision.tertiary.api_key":        "CARDINTAKE_VISION_TERTIARY_API_KEY",
		"vision.tertiary.default_model":  "CARDINTAKE_VISION_TERTIARY_DEFAULT_MODEL",
		"vision.tertiary.timeout_secs":   "CARDINTAKE_VISION_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CARDINTAKE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARDINTAKE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Vision = VisionConfig{
		Primary: VisionProviderConfig{
			Provider:     v.GetString("vision.primary.provider"),
			APIKey:       v.GetString("vision.primary.api_key"),
			DefaultModel: v.GetString("vision.primary.default_model"),
			TimeoutSecs:  v.GetInt("vision.primary.timeout_secs"),
		},
		Secondary: VisionProviderConfig{
			Provider:     v.GetString("vision.secondary.provider"),
			APIKey:       v.GetString("vision.secondary.api_key"),
			DefaultModel: v.GetString("vision.secondary.default_model"),
			TimeoutSecs:  v.GetInt("vision.secondary.timeout_secs"),
		},
		Tertiary: VisionProviderConfig{
			Provider:     v.GetString("vision.tertiary.provider"),
			APIKey:       v.GetString("vision.tertiary.api_key"),
			DefaultModel: v.GetString("vision.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("vision.tertiary.timeout_secs"),
		},
	}

	return cfg, nil
}
