package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"cardlink/internal/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // zap level name; empty uses the environment default

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	RedisURL      string // Session storage; empty keeps sessions in memory

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Object storage for avatars
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	MinIOPublicURL string

	// Operator console
	Operators         []Operator
	ConsoleSessionTTL time.Duration

	// Card theme presets offered in the editor
	Themes []models.Theme

	// Retention of card view events in days; 0 keeps them forever
	ViewRetentionDays int

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "CardLink"
	SiteTagline string // env: SITE_TAGLINE, default: "Digital business cards"
	SiteFooter  string // env: SITE_FOOTER, default: "CardLink - Digital business cards"
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Operator is a console login. PasswordHash is a bcrypt hash.
type Operator struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/cardlink?sslmode=disable"),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:         getEnv("REDIS_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "avatars"),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "") != "",
		MinIOPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		ConsoleSessionTTL: getDuration("CONSOLE_SESSION_TTL", models.DefaultOperatorSessionTTL),
		ViewRetentionDays: getInt("VIEW_RETENTION_DAYS", 365),

		SiteTitle:   getEnv("SITE_TITLE", "CardLink"),
		SiteTagline: getEnv("SITE_TAGLINE", "Digital business cards"),
		SiteFooter:  getEnv("SITE_FOOTER", "CardLink - Digital business cards"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}

	if user, hash := getEnv("CONSOLE_USERNAME", ""), getEnv("CONSOLE_PASSWORD_HASH", ""); user != "" && hash != "" {
		cfg.Operators = append(cfg.Operators, Operator{Username: user, PasswordHash: hash})
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsStorageEnabled returns true if avatar object storage is configured.
func (c *Config) IsStorageEnabled() bool {
	return c.MinIOEndpoint != ""
}

// IsConsoleEnabled returns true if at least one operator can log in.
func (c *Config) IsConsoleEnabled() bool {
	return len(c.Operators) > 0
}

// FindOperator returns the operator with username, or nil.
func (c *Config) FindOperator(username string) *Operator {
	for i := range c.Operators {
		if c.Operators[i].Username == username {
			return &c.Operators[i]
		}
	}
	return nil
}

// ThemePresets returns the configured presets, or the built-in ones.
func (c *Config) ThemePresets() []models.Theme {
	if len(c.Themes) > 0 {
		return c.Themes
	}
	return DefaultThemes
}

// ApplyYAML merges file-based settings into c. Env operators take
// precedence over file operators with the same username.
func (c *Config) ApplyYAML(y *YAMLConfig) {
	if y == nil {
		return
	}
	for _, op := range y.Console.Operators {
		if op.Username == "" || op.PasswordHash == "" || c.FindOperator(op.Username) != nil {
			continue
		}
		c.Operators = append(c.Operators, op)
	}
	if os.Getenv("CONSOLE_SESSION_TTL") == "" && y.Console.SessionTTL > 0 {
		c.ConsoleSessionTTL = y.Console.SessionTTL
	}
	if len(y.Themes) > 0 {
		c.Themes = y.Themes
	}
}
