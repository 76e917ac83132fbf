package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Database struct {
		URL string `koanf:"url"`
	} `koanf:"database"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	err error
}

func (c *testConfig) Validate() error {
	return c.err
}

type failingConfig struct {
	Name string `koanf:"name"`
}

func (c *failingConfig) Validate() error {
	return errors.New("name is required")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_Layering(t *testing.T) {
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "database:\n  url: postgres://yaml\nlog:\n  level: info\n")
	envFile := writeFile(t, dir, ".env", "CATALOGTEST_LOG_LEVEL=warn\nOTHER_LOG_LEVEL=error\n")

	testCases := []struct {
		name          string
		env           map[string]string
		expectedURL   string
		expectedLevel string
	}{
		{
			name:          "yaml overridden by .env",
			expectedURL:   "postgres://yaml",
			expectedLevel: "warn",
		},
		{
			name:          "system env has the highest priority",
			env:           map[string]string{"CATALOGTEST_DATABASE_URL": "postgres://env", "CATALOGTEST_LOG_LEVEL": "debug"},
			expectedURL:   "postgres://env",
			expectedLevel: "debug",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			// when
			cfg, err := Load[*testConfig]("catalogtest", WithConfigFile(yamlFile), WithEnvFile(envFile))
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedURL, cfg.Database.URL)
			assert.Equal(t, tc.expectedLevel, cfg.Log.Level)
		})
	}
}

func Test_Load_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CATALOGTEST_DATABASE_URL", "postgres://only-env")

	cfg, err := Load[*testConfig]("catalogtest",
		WithConfigFile(filepath.Join(dir, "missing.yaml")),
		WithEnvFile(filepath.Join(dir, "missing.env")))

	require.NoError(t, err)
	assert.Equal(t, "postgres://only-env", cfg.Database.URL)
}

func Test_Load_ValidationError(t *testing.T) {
	dir := t.TempDir()

	_, err := Load[*failingConfig]("catalogtest",
		WithConfigFile(filepath.Join(dir, "missing.yaml")),
		WithEnvFile(filepath.Join(dir, "missing.env")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
