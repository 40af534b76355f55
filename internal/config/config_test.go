package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Realtime.ReconnectDelay)
	assert.Equal(t, 10*time.Second, cfg.Realtime.HeartbeatOutgoing)
	assert.Equal(t, 10*time.Second, cfg.Realtime.HeartbeatIncoming)
	assert.Equal(t, 89, cfg.Offer.Countdown)
	assert.False(t, cfg.Offer.DeclineOnExpiry)
	assert.False(t, cfg.Offer.LateAccept)
	assert.Equal(t, 60*time.Second, cfg.Heartbeat.Interval)
	assert.Nil(t, cfg.Heartbeat.Latitude)
	assert.Empty(t, cfg.Events.Brokers())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DRIVER_API_URL", "https://api.example.com")
	t.Setenv("OFFER_LATE_ACCEPT", "true")
	t.Setenv("DRIVER_LATITUDE", "47.1")
	t.Setenv("DRIVER_LONGITUDE", "19.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.True(t, cfg.Offer.LateAccept)
	require.NotNil(t, cfg.Heartbeat.Latitude)
	assert.InDelta(t, 47.1, *cfg.Heartbeat.Latitude, 1e-9)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
api:
  base_url: "${TEST_API:-http://backend:8080}"
  timeout: 3s
realtime:
  url: ws://backend:8080/ws
  reconnect_delay: 1s
offer:
  countdown: 30
heartbeat:
  interval: 10s
events:
  workers: 1
  batch_size: 5
  flush_interval: 1s
control:
  addr: 127.0.0.1:9100
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8080", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30, cfg.Offer.Countdown)
	assert.Equal(t, "127.0.0.1:9100", cfg.Control.Addr)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "zero countdown", env: map[string]string{"OFFER_COUNTDOWN": "0"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "store without passphrase", env: map[string]string{"DRIVER_STORE_PATH": "/tmp/store"}},
		{name: "email without password", env: map[string]string{"DRIVER_EMAIL": "driver@example.com"}},
		{name: "latitude only", env: map[string]string{"DRIVER_LATITUDE": "10"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Parse(defaultTemplate)
			assert.Error(t, err)
		})
	}
}
