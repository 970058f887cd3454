package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/mealwiz/internal/fsops"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func testPaths(t *testing.T) *Paths {
	t.Helper()
	unsetEnv(t, EnvBackend)
	unsetEnv(t, EnvProfile)
	paths := PathsAt(t.TempDir())
	require.NoError(t, paths.EnsureDirectories(fsops.NewRealFS()))
	return paths
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	paths := testPaths(t)

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, DefaultProfile, cfg.Profile)
	assert.Equal(t, DefaultQuotaBytes, cfg.QuotaBytes)
}

func TestLoad_ConfigFile(t *testing.T) {
	paths := testPaths(t)
	writeFile(t, paths.Config, "backend: sqlite\nprofile: client-7\nverbosity: 2\n")

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Backend:    BackendSQLite,
		Profile:    "client-7",
		QuotaBytes: DefaultQuotaBytes,
		Verbosity:  2,
	}, cfg)
}

func TestLoad_ExplicitZeroQuota(t *testing.T) {
	paths := testPaths(t)
	writeFile(t, paths.Config, "quotaBytes: 0\n")

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Zero(t, cfg.QuotaBytes)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	paths := testPaths(t)
	writeFile(t, paths.Config, "backend: sqlite\nprofile: from-file\n")
	t.Setenv(EnvBackend, BackendMemory)
	t.Setenv(EnvProfile, "from-env")

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "from-env", cfg.Profile)
}

func TestLoad_DotEnv(t *testing.T) {
	paths := testPaths(t)
	writeFile(t, paths.EnvFile, "MEALWIZ_PROFILE=dotenv-profile\n")

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-profile", cfg.Profile)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestLoad_ProcessEnvWinsOverDotEnv(t *testing.T) {
	paths := testPaths(t)
	writeFile(t, paths.EnvFile, "MEALWIZ_BACKEND=sqlite\n")
	t.Setenv(EnvBackend, BackendMemory)

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{name: "unknown backend", config: "backend: redis\n"},
		{name: "profile with slash", config: "profile: a/b\n"},
		{name: "negative quota", config: "quotaBytes: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testPaths(t)
			writeFile(t, paths.Config, tt.config)

			cfg, err := Load(paths)
			require.NoError(t, err)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("unknown backend from environment", func(t *testing.T) {
		paths := testPaths(t)
		t.Setenv(EnvBackend, "bogus")

		cfg, err := Load(paths)
		require.NoError(t, err)
		assert.Equal(t, "bogus", cfg.Backend)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		paths := testPaths(t)
		writeFile(t, paths.Config, "backend: [file\n")

		_, err := Load(paths)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
