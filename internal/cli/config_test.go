package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, backendFile, cfg.Cache.Backend)
	assert.Equal(t, 25.0, cfg.Filter.Cutoff)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[palette]
colors = ["#112233", "#445566"]

[filter]
cutoff = 50
show_inconsistent = false

[render]
formats = ["svg", "png"]
row_height = 90

[cache]
backend = "none"

[store]
backend = "memory"

[server]
addr = ":9090"
timeout = "2m"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"#112233", "#445566"}, cfg.Palette.Colors)
	assert.Equal(t, 50.0, cfg.Filter.Cutoff)
	assert.False(t, cfg.Filter.ShowInconsistent)
	assert.True(t, cfg.Filter.ShowReciprocal, "unset filter toggles keep their defaults")
	assert.Equal(t, []string{"svg", "png"}, cfg.Render.Formats)
	assert.Equal(t, 90.0, cfg.Render.RowHeight)
	assert.Equal(t, backendNone, cfg.Cache.Backend)
	assert.Equal(t, backendMemory, cfg.Store.Backend)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "file"
[server]
addr = ":9090"
`)
	t.Setenv("SYNTOWER_ADDR", ":7070")
	t.Setenv("SYNTOWER_CACHE_BACKEND", "redis")
	t.Setenv("SYNTOWER_REDIS_ADDR", "localhost:6379")
	t.Setenv("SYNTOWER_REDIS_DB", "3")
	t.Setenv("SYNTOWER_CUTOFF", "10")
	t.Setenv("SYNTOWER_COLORS", "#000000,#ffffff")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, backendRedis, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, 10.0, cfg.Filter.Cutoff)
	assert.Equal(t, []string{"#000000", "#ffffff"}, cfg.Palette.Colors)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"unknown cache backend", "[cache]\nbackend = \"memcached\"\n", nil, "cache.backend"},
		{"unknown store backend", "[store]\nbackend = \"sqlite\"\n", nil, "store.backend"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", nil, "redis_addr"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n", nil, "mongo_uri"},
		{"bad palette", "[palette]\ncolors = [\"red\"]\n", nil, "palette"},
		{"cutoff out of range", "[filter]\ncutoff = 120\n", nil, "filter"},
		{"malformed toml", "[cache\n", nil, "read config"},
		{"bad env number", "", map[string]string{"SYNTOWER_REDIS_DB": "x"}, "SYNTOWER_REDIS_DB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestExampleConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "examples", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Filter, cfg.Filter)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
}
