package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/staffdesk/internal/config"
)

// isolate moves the test into an empty directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Cleanup(func() { filet.CleanUp(t) })

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HOME", dir)

	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, config.DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, filepath.Join(dir, ".staffdesk", "session.json"), cfg.Session.Path)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce)
	assert.Equal(t, 0, cfg.Monitoring.Port)
	assert.Equal(t, 4000, cfg.MockAPI.Port)
	assert.Equal(t, config.StorageMemory, cfg.MockAPI.Storage)
	assert.Equal(t, "5432", cfg.Postgres.Port)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("STAFFDESK_ENV", "production")
	t.Setenv("STAFFDESK_API_URL", "http://api.internal:8080/")
	t.Setenv("STAFFDESK_UI_DEBOUNCE", "1s")
	t.Setenv("STAFFDESK_POSTGRES_HOST", "testHost")
	t.Setenv("STAFFDESK_POSTGRES_PASSWORD", "adminpass")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "http://api.internal:8080", cfg.API.URL)
	assert.Equal(t, time.Second, cfg.UI.Debounce)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
}

func TestLoad_APIURLAlias(t *testing.T) {
	isolate(t)
	t.Setenv("API_URL", "http://alias:4000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://alias:4000", cfg.API.URL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	filet.File(t, filepath.Join(dir, ".env"), "STAFFDESK_MOCKAPI_PORT=4100\n")
	t.Cleanup(func() { _ = os.Unsetenv("STAFFDESK_MOCKAPI_PORT") })

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.MockAPI.Port)
}

func TestLoad_FromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	filet.File(t, path, `env: development
api:
  url: http://file:4000
mockapi:
  storage: postgres
postgres:
  host: db
  port: "6543"
  user: admin
  db_name: testName
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://file:4000", cfg.API.URL)
	assert.Equal(t, config.StoragePostgres, cfg.MockAPI.Storage)
	assert.Equal(t, "postgres://admin:@db:6543/testName?sslmode=disable", cfg.Postgres.DSN())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing config file",
			env:     map[string]string{"CONFIG_PATH": "/nonexistent/config.yaml"},
			wantErr: "config file does not exist",
		},
		{
			name:    "bad api url",
			env:     map[string]string{"STAFFDESK_API_URL": "not a url"},
			wantErr: "invalid api url",
		},
		{
			name:    "unknown storage",
			env:     map[string]string{"STAFFDESK_MOCKAPI_STORAGE": "redis"},
			wantErr: "unknown mockapi storage 'redis'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMustLoad_Panics(t *testing.T) {
	isolate(t)
	t.Setenv("STAFFDESK_MOCKAPI_STORAGE", "redis")

	assert.PanicsWithValue(t, "unknown mockapi storage 'redis'", func() {
		config.MustLoad()
	})
}
