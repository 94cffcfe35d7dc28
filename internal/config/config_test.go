package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
[ticket]
secret = "s3cret"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Booking.Retries())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.RateLimit.TrustProxyHeader)

	slots, rules, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)
	assert.Len(t, slots, 5)
	require.Len(t, rules, 1)
	assert.Equal(t, time.Saturday, rules[0].Weekday)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "from-file"

[ticket]
secret = "from-file"
`)
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvTicketSecret, "env-secret")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Ticket.Secret)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_RateLimitTrustProxyHeader(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+`
[rate_limit]
rps = 5
burst = 10
trust_proxy_header = true
`))
	require.NoError(t, err)
	assert.True(t, cfg.RateLimit.TrustProxyHeader)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_Schedule(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+`
[booking]
max_create_retries = 0

[[schedule.slots]]
start = "07:00"
end = "08:00"
capacity = 2
queue_start = 1

[[schedule.slots]]
label = "late"
start = "08:00"
end = "09:00"

[[schedule.rules]]
weekday = "sun"
offered = ["07:00-08:00"]

[[schedule.rules.windows]]
slot = "07:00-08:00"
queue_start = 5
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Booking.Retries())

	slots, rules, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "07:00-08:00", slots[0].Label)
	assert.Equal(t, 2, *slots[0].BaseCapacity)
	assert.Nil(t, slots[1].BaseCapacity)

	require.Len(t, rules, 1)
	assert.Equal(t, time.Sunday, rules[0].Weekday)
	window := rules[0].Windows["07:00-08:00"]
	assert.Equal(t, 5, window.Start)
	assert.Nil(t, window.Limit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing secret", content: ``},
		{name: "bad driver", content: minimal + "[storage]\ndriver = \"mongo\"\n"},
		{name: "negative retries", content: minimal + "[booking]\nmax_create_retries = -1\n"},
		{name: "masterdata without url", content: minimal + "[masterdata]\nenabled = true\n"},
		{name: "bad slot time", content: minimal + "[[schedule.slots]]\nstart = \"25:00\"\nend = \"26:00\"\n"},
		{name: "bad weekday", content: minimal + "[[schedule.slots]]\nstart = \"07:00\"\nend = \"08:00\"\n[[schedule.rules]]\nweekday = \"funday\"\n"},
		{name: "bad timezone", content: minimal + "[server]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "malformed", content: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
