package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://localhost/lunar?sslmode=disable")
	t.Setenv("ADMIN_TELEGRAM_ID", "4242")
	for _, key := range []string{"LOG_LEVEL", "ENVIRONMENT", "TIMEZONE", "CRON_SPEC_DAILY_ALERT", "ALERT_LEAD_DAYS"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(4242), cfg.AdminTelegramID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "0 9 * * *", cfg.CronSpecDailyAlert)
	assert.Equal(t, 0, cfg.AlertLeadDays)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("CRON_SPEC_DAILY_ALERT", "30 7 * * *")
	t.Setenv("ALERT_LEAD_DAYS", "1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, "30 7 * * *", cfg.CronSpecDailyAlert)
	assert.Equal(t, 1, cfg.AlertLeadDays)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{"missing token", "TELEGRAM_TOKEN", "", "TELEGRAM_TOKEN"},
		{"missing database", "DATABASE_URL", "", "DATABASE_URL"},
		{"non-numeric admin", "ADMIN_TELEGRAM_ID", "admin", "ADMIN_TELEGRAM_ID"},
		{"unknown timezone", "TIMEZONE", "Mars/Olympus_Mons", "TIMEZONE"},
		{"bad lead days", "ALERT_LEAD_DAYS", "soon", "ALERT_LEAD_DAYS"},
		{"negative lead days", "ALERT_LEAD_DAYS", "-2", "ALERT_LEAD_DAYS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			cfg, err := FromEnv()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
