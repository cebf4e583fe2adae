package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

const (
	MailConsole  = "console"
	MailSMTP     = "smtp"
	MailSendGrid = "sendgrid"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	// All variables
	GO_ENV       string
	PORT         int
	APP_TIMEZONE string
	// Database Configuration
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	SQLITE_PATH  string
	// MongoDB Configuration
	MONGODB_URI      string
	MONGODB_DATABASE string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Reminder Configuration
	REMINDER_SECRET   string
	REMINDER_WINDOW   time.Duration
	REMINDER_SCHEDULE string
	CRON_ENABLED      bool
	// External scheduler (cmd/scheduler)
	SCHEDULER_URL  string
	SCHEDULER_CRON string
	// Mail Configuration
	MAIL_PROVIDER    string
	MAIL_FROM        string
	SMTP_HOST        string
	SMTP_PORT        int
	SMTP_USERNAME    string
	SMTP_PASSWORD    string
	SENDGRID_API_KEY string
	// Error reporting and HTTP
	ROLLBAR_TOKEN   string
	ALLOWED_ORIGINS string
	// Seeding
	ADMIN_EMAIL string
	ADMIN_NAME  string

	// Location is APP_TIMEZONE resolved
	Location *time.Location
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER_NAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "studyflow")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "studyflow.db")

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "studyflow")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "studyflow")
	v.SetDefault("REDIS_URL", "")

	v.SetDefault("REMINDER_SECRET", "")
	v.SetDefault("REMINDER_WINDOW", "10m")
	v.SetDefault("REMINDER_SCHEDULE", "@every 1m")
	v.SetDefault("CRON_ENABLED", true)
	v.SetDefault("SCHEDULER_URL", "")
	v.SetDefault("SCHEDULER_CRON", "*/10 * * * *")

	v.SetDefault("MAIL_PROVIDER", MailConsole)
	v.SetDefault("MAIL_FROM", "StudyFlow <noreply@studyflow.local>")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SENDGRID_API_KEY", "")

	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_NAME", "System Administrator")

	v.AutomaticEnv()
	return v
}

func Get() (*EnvironmentVariable, error) {
	v := newViper()

	window, err := time.ParseDuration(v.GetString("REMINDER_WINDOW"))
	if err != nil || window <= 0 {
		return nil, fmt.Errorf("invalid REMINDER_WINDOW %q", v.GetString("REMINDER_WINDOW"))
	}

	location, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", v.GetString("APP_TIMEZONE"), err)
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	switch driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	mailProvider := strings.ToLower(v.GetString("MAIL_PROVIDER"))
	switch mailProvider {
	case MailConsole, MailSMTP, MailSendGrid:
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", mailProvider)
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       v.GetString("GO_ENV"),
		PORT:         v.GetInt("PORT"),
		APP_TIMEZONE: v.GetString("APP_TIMEZONE"),
		// Database
		DB_DRIVER:    driver,
		DB_USER_NAME: v.GetString("DB_USER_NAME"),
		DB_PASSWORD:  v.GetString("DB_PASSWORD"),
		DB_NAME:      v.GetString("DB_NAME"),
		DB_HOST:      v.GetString("DB_HOST"),
		DB_PORT:      v.GetString("DB_PORT"),
		DB_SSL_MODE:  v.GetString("DB_SSL_MODE"),
		SQLITE_PATH:  v.GetString("SQLITE_PATH"),
		// MongoDB
		MONGODB_URI:      v.GetString("MONGODB_URI"),
		MONGODB_DATABASE: v.GetString("MONGODB_DATABASE"),
		// JWT
		JWT_SECRET: v.GetString("JWT_SECRET"),
		JWT_ISSUER: v.GetString("JWT_ISSUER"),
		// Redis
		REDIS_URL: v.GetString("REDIS_URL"),
		// Reminders
		REMINDER_SECRET:   v.GetString("REMINDER_SECRET"),
		REMINDER_WINDOW:   window,
		REMINDER_SCHEDULE: v.GetString("REMINDER_SCHEDULE"),
		CRON_ENABLED:      v.GetBool("CRON_ENABLED"),
		SCHEDULER_URL:     v.GetString("SCHEDULER_URL"),
		SCHEDULER_CRON:    v.GetString("SCHEDULER_CRON"),
		// Mail
		MAIL_PROVIDER:    mailProvider,
		MAIL_FROM:        v.GetString("MAIL_FROM"),
		SMTP_HOST:        v.GetString("SMTP_HOST"),
		SMTP_PORT:        v.GetInt("SMTP_PORT"),
		SMTP_USERNAME:    v.GetString("SMTP_USERNAME"),
		SMTP_PASSWORD:    v.GetString("SMTP_PASSWORD"),
		SENDGRID_API_KEY: v.GetString("SENDGRID_API_KEY"),
		// Error reporting and HTTP
		ROLLBAR_TOKEN:   v.GetString("ROLLBAR_TOKEN"),
		ALLOWED_ORIGINS: v.GetString("ALLOWED_ORIGINS"),
		// Seeding
		ADMIN_EMAIL: v.GetString("ADMIN_EMAIL"),
		ADMIN_NAME:  v.GetString("ADMIN_NAME"),

		Location: location,
	}

	if envVariables.SCHEDULER_URL == "" {
		envVariables.SCHEDULER_URL = fmt.Sprintf("http://localhost:%d/api/v1/tasks/reminders", envVariables.PORT)
	}

	return envVariables, nil
}

// IsProduction reports whether the service runs with production settings
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}
