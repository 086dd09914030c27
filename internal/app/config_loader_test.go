package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "http://localhost:5000", config.Endpoint.BaseURL)
	assert.Zero(t, config.Endpoint.Timeout)
	assert.True(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: 0.0.0.0
  port: 9090
endpoint:
  base_url: http://backend:5000
  timeout: 30s
save:
  dir: /tmp/mediafetch
  ledger_path: /tmp/mediafetch/ledger.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "http://backend:5000", config.Endpoint.BaseURL)
	assert.Equal(t, "30s", config.Endpoint.Timeout.String())
	assert.Equal(t, "/tmp/mediafetch", config.Save.Dir)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "downloads"), expandPath("~/downloads"))
	assert.Equal(t, home+"/downloads", expandPath("$HOME/downloads"))
	assert.Equal(t, "/var/lib/mediafetch", expandPath("/var/lib/mediafetch"))
}
