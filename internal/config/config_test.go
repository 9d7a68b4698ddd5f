package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearPortEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TUBEINSIGHT_PORT", "")
	t.Setenv("RENDER", "")
	os.Unsetenv("RENDER")
}

func TestLoad(t *testing.T) {
	clearPortEnv(t)

	// Create temporary config file
	content := `
server:
  port: 9090
  host: "127.0.0.1"

upstream:
  captionsURL: "http://captions.local/get"
  timeout: 5s

logging:
  level: debug
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}

	if cfg.Upstream.CaptionsURL != "http://captions.local/get" {
		t.Errorf("Expected captions URL from file, got %s", cfg.Upstream.CaptionsURL)
	}

	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("Expected upstream timeout 5s, got %v", cfg.Upstream.Timeout)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearPortEnv(t)

	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "0.0.0.0:5123", cfg.Server.Addr())
	assert.False(t, cfg.Server.Production)
	assert.NotEmpty(t, cfg.Upstream.CaptionsURL)
}

func TestLoadPortPrecedence(t *testing.T) {
	clearPortEnv(t)

	t.Setenv("TUBEINSIGHT_PORT", "7000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)

	t.Setenv("PORT", "8000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadInvalidPort(t *testing.T) {
	clearPortEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadProductionFlag(t *testing.T) {
	clearPortEnv(t)
	t.Setenv("RENDER", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Server.Production)
}

func TestLoadEnvOverride(t *testing.T) {
	clearPortEnv(t)
	t.Setenv("TUBEINSIGHT_RATELIMIT_RPS", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.RateLimit.RPS)
}

func TestLoadMalformedFile(t *testing.T) {
	clearPortEnv(t)

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("server: [unclosed")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err)
}
