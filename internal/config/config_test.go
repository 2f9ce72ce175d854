package config_test

import (
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/validation"
)

const sampleConfig = `
env: development
api:
  url: http://employees.internal:8080/api/employees
web:
  address: ":4000"
ui:
  variant: basic
monitoring:
  port: 9100
apiserver:
  address: ":8088"
  allowed_origins:
    - http://localhost:5173
postgres:
  host: db.internal
  port: 6432
  user: staff
  password: secret
  db_name: staff
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(filet.TmpDir(t, ""), "config.yaml")
	filet.File(t, path, content)

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:8080/api/employees", cfg.API.URL)
	assert.Equal(t, ":3000", cfg.Web.Address)
	assert.Equal(t, validation.VariantRefined, cfg.Variant())
	assert.Equal(t, 8081, cfg.Monitoring.Port)
	assert.Equal(t, ":8080", cfg.APIServer.Address)
	assert.Contains(t, cfg.APIServer.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, "5432", cfg.Postgres.Port)
}

func TestLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	cfg, err := config.Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://employees.internal:8080/api/employees", cfg.API.URL)
	assert.Equal(t, ":4000", cfg.Web.Address)
	assert.Equal(t, validation.VariantBasic, cfg.Variant())
	assert.Equal(t, 9100, cfg.Monitoring.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.APIServer.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "6432", cfg.Postgres.Port)
	assert.Equal(t, "staff", cfg.Postgres.Dbname)
}

func TestLoad_EnvOverrides(t *testing.T) {
	defer filet.CleanUp(t)

	t.Setenv("STAFF_ENV", "production")
	t.Setenv("STAFF_UI_VARIANT", "refined")
	t.Setenv("STAFF_MONITORING_PORT", "9200")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg, err := config.Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, validation.VariantRefined, cfg.Variant())
	assert.Equal(t, 9200, cfg.Monitoring.Port)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "12345", cfg.Postgres.Port)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
	assert.Equal(t, "testName", cfg.Postgres.Dbname)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.ErrorContains(t, err, "config file does not exist")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown variant", env: map[string]string{"STAFF_UI_VARIANT": "fancy"}, wantErr: "invalid ui.variant"},
		{name: "relative api url", env: map[string]string{"STAFF_API_URL": "/api/employees"}, wantErr: "invalid api.url"},
		{name: "monitoring port", env: map[string]string{"STAFF_MONITORING_PORT": "70000"}, wantErr: "invalid monitoring.port"},
		{name: "postgres port", env: map[string]string{"DB_PORT": "abc"}, wantErr: "invalid postgres.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load("")

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Panics(t, func() {
		config.MustLoad()
	})
}

func TestMustLoad_WithoutConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STAFF_WEB_ADDRESS", ":5000")

	cfg := config.MustLoad()

	assert.Equal(t, ":5000", cfg.Web.Address)
}
