package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a fresh temp dir and
// clears cached config
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	Reset()
	t.Cleanup(func() { SetConfigFile("") })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func validConfig() Config {
	return Config{
		Reference: ReferenceConfig{Timezone: "UTC"},
		Output:    OutputConfig{Format: FormatRFC3339},
		Watch:     WatchConfig{IntervalSeconds: 1, Burst: 1},
	}
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "Local", cfg.Reference.Timezone)
	assert.Empty(t, cfg.Reference.Fixed)
	assert.Equal(t, FormatRFC3339, cfg.Output.Format)
	assert.Equal(t, time.RFC1123Z, cfg.Output.Layout)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 1, cfg.Watch.IntervalSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Cascade(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, ".gnudate", "am.toml"), `
[reference]
timezone = "Europe/Berlin"

[output]
format = "unix"
`)
	writeFile(t, filepath.Join(home, "proj", "am.toml"), `
[output]
format = "json"
`)
	sub := filepath.Join(home, "proj", "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format, "project config overrides user config")
	assert.Equal(t, "Europe/Berlin", cfg.Reference.Timezone)
	assert.Equal(t, time.RFC1123Z, cfg.Output.Layout)

	assert.Equal(t, SourceProject, ConfigSources["output.format"].Source)
	assert.Equal(t, filepath.Join(home, "proj", "am.toml"), ConfigSources["output.format"].Path)
	assert.Equal(t, SourceUser, ConfigSources["reference.timezone"].Source)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "Load caches until Reset")
}

func TestLoad_EnvironmentWins(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "am.toml"), `
[output]
format = "json"
`)
	t.Setenv("GNUDATE_OUTPUT_FORMAT", "yaml")
	t.Setenv("GNUDATE_LOG_VERBOSITY", "2")
	t.Setenv("GNUDATE_TZ", "Asia/Tokyo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "Asia/Tokyo", cfg.Reference.Timezone)
}

func TestLoad_ExplicitFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "am.toml"), `
[output]
format = "json"
`)
	explicit := filepath.Join(home, "other.toml")
	writeFile(t, explicit, `
[output]
format = "toml"
`)

	SetConfigFile(explicit)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Output.Format, "--config replaces the cascade")
	assert.Equal(t, []ConfigFile{{Source: SourceFlag, Path: explicit}}, ConfigFiles())

	SetConfigFile(filepath.Join(home, "missing.toml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "am.toml"), "[output\nformat = ")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	writeFile(t, path, `
[watch]
interval_seconds = 5
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Watch.IntervalSeconds)
	assert.Equal(t, 5*time.Second, cfg.WatchInterval())
	assert.Equal(t, FormatRFC3339, cfg.Output.Format)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"local timezone", func(c *Config) { c.Reference.Timezone = "Local" }, false},
		{"abbreviated timezone", func(c *Config) { c.Reference.Timezone = "pst" }, false},
		{"unknown timezone", func(c *Config) { c.Reference.Timezone = "Mars/Base" }, true},
		{"fixed reference", func(c *Config) { c.Reference.Fixed = "2021-02-14T15:04:05Z" }, false},
		{"fixed reference with offset", func(c *Config) { c.Reference.Fixed = "2021-02-14T15:04:05.5+05:30" }, false},
		{"fixed reference not rfc3339", func(c *Config) { c.Reference.Fixed = "yesterday" }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"layout format with layout", func(c *Config) { c.Output.Format = FormatLayout; c.Output.Layout = time.Kitchen }, false},
		{"layout format without layout", func(c *Config) { c.Output.Format = FormatLayout; c.Output.Layout = " " }, true},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }, true},
		{"zero watch interval", func(c *Config) { c.Watch.IntervalSeconds = 0 }, true},
		{"zero burst", func(c *Config) { c.Watch.Burst = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReferenceInstant(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	cfg := validConfig()
	cfg.Reference.Timezone = "Asia/Kolkata"
	ref, err := cfg.ReferenceInstant(now)
	require.NoError(t, err)
	assert.True(t, ref.Equal(now))
	assert.Equal(t, "Asia/Kolkata", ref.Location().String())
	assert.Equal(t, 20, ref.Hour())

	cfg.Reference.Fixed = "2021-02-14T15:04:05Z"
	ref, err = cfg.ReferenceInstant(now)
	require.NoError(t, err)
	assert.True(t, ref.Equal(time.Date(2021, 2, 14, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "Asia/Kolkata", ref.Location().String())

	cfg.Reference.Fixed = "soon"
	_, err = cfg.ReferenceInstant(now)
	assert.Error(t, err)

	cfg.Reference.Fixed = ""
	cfg.Reference.Timezone = "Mars/Base"
	_, err = cfg.ReferenceInstant(now)
	assert.Error(t, err)
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	assert.ElementsMatch(t, []string{
		"reference.timezone", "reference.fixed",
		"output.format", "output.layout",
		"log.json", "log.verbosity",
		"watch.interval_seconds", "watch.burst",
	}, keys)
	assert.True(t, IsKnownKey("output.format"))
	assert.False(t, IsKnownKey("output"))
	assert.False(t, IsKnownKey("database.path"))
}
