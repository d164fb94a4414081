package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	JWTSecret  string `validate:"required"`
	ServerPort string `validate:"required,numeric"`

	LogLevel     string `validate:"oneof=trace debug info warn error"`
	LogFormat    string `validate:"oneof=console json"`
	AllowOrigins string
	AdminRoles   []string `validate:"min=1,dive,required"`

	// Timezone is the IANA name used to cut calendar weeks.
	Timezone            string        `validate:"required"`
	RecentMeetingsLimit int           `validate:"gt=0"`
	EndedProjectsLimit  int           `validate:"gt=0"`
	RequestTimeout      time.Duration `validate:"gt=0"`
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("no .env file, using environment variables")
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "classroom_dashboard"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		AdminRoles:   splitList(getEnv("ADMIN_ROLES", "admin")),

		Timezone:            getEnv("TIMEZONE", "UTC"),
		RecentMeetingsLimit: getEnvInt("RECENT_MEETINGS_LIMIT", 10),
		EndedProjectsLimit:  getEnvInt("ENDED_PROJECTS_LIMIT", 10),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and that Timezone names a known location.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	_, err := c.Location()
	return err
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Str("value", value).Int("default", defaultValue).Msg("invalid integer")
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Str("value", value).Dur("default", defaultValue).Msg("invalid duration")
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
