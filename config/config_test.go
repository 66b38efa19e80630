package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir moves into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "UltiStudent", cfg.App.Name)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data/ultistudent.json", cfg.Storage.Path)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.LogFormat())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "ultistudent.yaml", `
app:
  environment: development
storage:
  backend: sqlite
  path: from-file.db
  redis:
    key: custom
log:
  level: info
`)
	t.Setenv("ULTISTUDENT_LOG_LEVEL", "error")
	t.Setenv("ULTISTUDENT_STORAGE_FALLBACK_EMPTY", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--data", "from-flag.db"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "from-flag.db", cfg.Storage.Path)
	assert.True(t, cfg.Storage.FallbackEmpty)
	assert.Equal(t, "custom", cfg.Storage.Redis.Key)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "console", cfg.LogFormat())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "storage: [unclosed")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{
		App:     AppConfig{Environment: "staging"},
		Storage: StorageConfig{Backend: BackendPostgres},
		Log:     LogConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"app.environment",
		"storage.database_url",
		"storage.max_conns",
		"storage.timeout",
		"log.level",
		"log.format",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Config{
		App:     AppConfig{Environment: EnvProduction},
		Storage: StorageConfig{Backend: "s3", Timeout: time.Second},
		Log:     LogConfig{Level: "info"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}
