package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"PORT", "ENVIRONMENT", "POSTGRES_DSN", "STORAGE_BACKEND", "SHUTDOWN_TIMEOUT", "SMTP_HOST", "SMTP_PORT", "S3_BUCKET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Equal(t, "local", cfg.Environment)
}

func TestLoadConfig_DSNSelectsPostgres(t *testing.T) {
	isolateEnv(t)
	t.Setenv("POSTGRES_DSN", " postgres://app@localhost/adocao ")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, "postgres://app@localhost/adocao", cfg.PostgresDSN)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nS3_BUCKET=docs\nS3_FORCE_PATH_STYLE=true\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Cleanup(func() {
		_ = os.Unsetenv("S3_BUCKET")
		_ = os.Unsetenv("S3_FORCE_PATH_STYLE")
	})

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "docs", cfg.S3.Bucket)
	assert.True(t, cfg.S3.ForcePathStyle)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":       {"STORAGE_BACKEND": "redis"},
		"postgres without dsn":  {"STORAGE_BACKEND": "postgres"},
		"non numeric smtp port": {"SMTP_PORT": "abc"},
		"bad shutdown timeout":  {"SHUTDOWN_TIMEOUT": "soon"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
