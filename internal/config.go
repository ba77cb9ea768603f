package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Email         EmailConfig         `mapstructure:"email"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// SecurityConfig holds the lifetimes of the three credential tiers. Zero
// values fall back to the defaults the kiosk flow was designed around.
type SecurityConfig struct {
	MagicLinkTTL     time.Duration `mapstructure:"magic_link_ttl"`
	DeviceSessionTTL time.Duration `mapstructure:"device_session_ttl"`
	AdminSessionTTL  time.Duration `mapstructure:"admin_session_ttl"`
}

type EmailConfig struct {
	PostmarkToken string `mapstructure:"postmark_token"`
	FromEmail     string `mapstructure:"from_email"`
	// FrontendRedirectURL is where magic-link emails point; the token is
	// appended as a query parameter.
	FrontendRedirectURL string `mapstructure:"frontend_redirect_url"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config entirely from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("HTTP_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DATABASE_URL", ""),
		},
		Security: SecurityConfig{
			MagicLinkTTL:     getEnvAsDuration("MAGIC_LINK_TTL", 15*time.Minute),
			DeviceSessionTTL: getEnvAsDuration("DEVICE_SESSION_TTL", 30*24*time.Hour),
			AdminSessionTTL:  getEnvAsDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		},
		Email: EmailConfig{
			PostmarkToken:       getEnv("POSTMARK_TOKEN", ""),
			FromEmail:           getEnv("EMAIL_FROM", ""),
			FrontendRedirectURL: getEnv("FRONTEND_REDIRECT_URL", "http://localhost:3000/verify"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Email.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("email config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if c.MagicLinkTTL < 0 || c.DeviceSessionTTL < 0 || c.AdminSessionTTL < 0 {
		return errors.New("session lifetimes cannot be negative")
	}
	if c.AdminSessionTTL > c.DeviceSessionTTL && c.DeviceSessionTTL != 0 {
		return errors.New("admin_session_ttl must not exceed device_session_ttl")
	}
	return nil
}

// MagicLinkLifetime applies the default when unset.
func (c *SecurityConfig) MagicLinkLifetime() time.Duration {
	if c.MagicLinkTTL == 0 {
		return 15 * time.Minute
	}
	return c.MagicLinkTTL
}

func (c *SecurityConfig) DeviceSessionLifetime() time.Duration {
	if c.DeviceSessionTTL == 0 {
		return 30 * 24 * time.Hour
	}
	return c.DeviceSessionTTL
}

func (c *SecurityConfig) AdminSessionLifetime() time.Duration {
	if c.AdminSessionTTL == 0 {
		return 12 * time.Hour
	}
	return c.AdminSessionTTL
}

func (c *EmailConfig) Validate() error {
	if c.FrontendRedirectURL == "" {
		return errors.New("frontend_redirect_url is required")
	}
	if _, err := url.Parse(c.FrontendRedirectURL); err != nil {
		return fmt.Errorf("invalid frontend_redirect_url: %w", err)
	}
	return nil
}
