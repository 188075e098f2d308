package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Redis        RedisConfig
	SMTP         SMTPConfig
	OAuth2Google OAuth2GoogleConfig
	DayClose     DayCloseConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration time.Duration
	AccessExpiration  time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	Location    *time.Location
	FrontendURL string
	BaseURL     string
	CORSOrigins []string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// RedisConfig is optional; an empty Addr selects in-process fallbacks.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (o OAuth2GoogleConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

type DayCloseConfig struct {
	RRule   string
	Workers int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   getEnv("STORE_DRIVER", StoreDriverPostgres),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dayflow"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timezone := getEnv("APP_TIMEZONE", "Asia/Kolkata")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    timezone,
		Location:    location,
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		BaseURL:     strings.TrimRight(getEnv("APP_BASE_URL", fmt.Sprintf("http://localhost:%d", appPort)), "/"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	refreshExpiration, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: refreshExpiration,
		AccessExpiration:  accessExpiration,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@dayflow.local"),
		FromName: getEnv("SMTP_FROM_NAME", "Dayflow"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}
	if len(config.OAuth2Google.Scopes) == 0 {
		config.OAuth2Google.Scopes = []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}
	}

	// Day-close job
	workers, err := strconv.Atoi(getEnv("DAY_CLOSE_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_CLOSE_WORKERS: %w", err)
	}

	config.DayClose = DayCloseConfig{
		RRule:   getEnv("DAY_CLOSE_RRULE", "FREQ=DAILY;BYHOUR=23;BYMINUTE=59;BYSECOND=0"),
		Workers: workers,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("JWT expiration times must be positive")
	}
	if c.DayClose.Workers < 1 {
		return fmt.Errorf("DAY_CLOSE_WORKERS must be at least 1")
	}
	if _, err := rrule.StrToROption(c.DayClose.RRule); err != nil {
		return fmt.Errorf("invalid DAY_CLOSE_RRULE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
