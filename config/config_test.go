package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("REMINDER_WINDOW", "")
	t.Setenv("SCHEDULER_URL", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("MAIL_PROVIDER", "")

	cfg, err := Get()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB_DRIVER)
	assert.Equal(t, 8080, cfg.PORT)
	assert.Equal(t, 10*time.Minute, cfg.REMINDER_WINDOW)
	assert.Equal(t, MailConsole, cfg.MAIL_PROVIDER)
	assert.Equal(t, "http://localhost:8080/api/v1/tasks/reminders", cfg.SCHEDULER_URL)
	assert.Equal(t, "*/10 * * * *", cfg.SCHEDULER_CRON)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestGetReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("PORT", "9090")
	t.Setenv("REMINDER_WINDOW", "15m")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CRON_ENABLED", "false")

	cfg, err := Get()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DB_DRIVER)
	assert.Equal(t, 9090, cfg.PORT)
	assert.Equal(t, 15*time.Minute, cfg.REMINDER_WINDOW)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.False(t, cfg.CRON_ENABLED)
}

func TestGetRejectsInvalidValues(t *testing.T) {
	for name, env := range map[string][2]string{
		"driver":   {"DB_DRIVER", "mysql"},
		"window":   {"REMINDER_WINDOW", "soon"},
		"timezone": {"APP_TIMEZONE", "Mars/Olympus"},
		"mail":     {"MAIL_PROVIDER", "carrier-pigeon"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Get()
			assert.Error(t, err)
		})
	}
}
