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
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "write test config")
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 8080
log_level = "debug"

[database]
path = "/var/lib/massflix/catalog.db"

[media]
root = "/srv/media"
mount_prefix = "/files"

[scanner]
strategy = "recursive"
probe = true
ffprobe_path = "/usr/bin/ffprobe"
probe_timeout = "45s"
api_url = "http://massflixd:8080/api"
api_token = "secret"
http_timeout = "5s"
interval = "6h"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/var/lib/massflix/catalog.db", cfg.Database.Path)
	assert.Equal(t, "/srv/media", cfg.Media.Root)
	assert.Equal(t, "/files", cfg.Media.MountPrefix)
	assert.Equal(t, "recursive", cfg.Scanner.Strategy)
	assert.True(t, cfg.Scanner.Probe)
	assert.Equal(t, "/usr/bin/ffprobe", cfg.Scanner.FFprobePath)
	assert.Equal(t, 45*time.Second, cfg.Scanner.ProbeTimeout)
	assert.Equal(t, "http://massflixd:8080/api", cfg.Scanner.APIURL)
	assert.Equal(t, "secret", cfg.Scanner.APIToken)
	assert.Equal(t, 5*time.Second, cfg.Scanner.HTTPTimeout)
	assert.Equal(t, 6*time.Hour, cfg.Scanner.Interval)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[media]
root = "/media"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/massflix.db", cfg.Database.Path)
	assert.Equal(t, "/media", cfg.Media.MountPrefix)
	assert.Equal(t, "shallow", cfg.Scanner.Strategy)
	assert.False(t, cfg.Scanner.Probe)
	assert.Equal(t, "ffprobe", cfg.Scanner.FFprobePath)
	assert.Equal(t, 30*time.Second, cfg.Scanner.ProbeTimeout)
	assert.Equal(t, 15*time.Second, cfg.Scanner.HTTPTimeout)
	assert.Equal(t, "http://localhost:3001/api", cfg.Scanner.APIURL)
	assert.Equal(t, time.Duration(0), cfg.Scanner.Interval)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("MASSFLIX_TEST_TOKEN", "from-env")

	path := writeConfig(t, `
[media]
root = "/media"

[scanner]
api_token = "${MASSFLIX_TEST_TOKEN}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Scanner.APIToken)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[media]
root = "/media"

[scanner]
api_token = "${MASSFLIX_DOES_NOT_EXIST}"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASSFLIX_DOES_NOT_EXIST")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"MASSFLIX_DOES_NOT_EXIST"}, cfgErr.Missing)
}

func TestLoadWithoutValidation_UnsetEnvVarLeftVerbatim(t *testing.T) {
	path := writeConfig(t, `
[media]
root = "/media"

[scanner]
api_token = "${MASSFLIX_DOES_NOT_EXIST}"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "${MASSFLIX_DOES_NOT_EXIST}", cfg.Scanner.APIToken)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	require.Error(t, err)
}
