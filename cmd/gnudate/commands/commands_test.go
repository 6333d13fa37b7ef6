package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/errors"
)

// refArgs pins the reference to Sunday 2021-02-14 15:04:05 UTC
var refArgs = []string{"--ref", "2021-02-14T15:04:05Z", "--tz", "UTC"}

// isolate points HOME and the working directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	am.Reset()
	t.Cleanup(func() { am.SetConfigFile("") })
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func withRef(args ...string) []string {
	return append(append([]string{}, args[:1]...), append(append([]string{}, refArgs...), args[1:]...)...)
}

func TestParseCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want string
	}{
		{withRef("parse", "tomorrow"), "2021-02-15T15:04:05Z\n"},
		{withRef("parse", "3", "days", "ago", "at", "noon"), "2021-02-11T12:00:00Z\n"},
		{withRef("parse", "@1344000"), "1970-01-16T13:20:00Z\n"},
		{withRef("parse", "tomorrow", "--format", "unix"), "1613401445\n"},
		{withRef("parse", "2021-02-14", "--layout", "2006-01-02 Mon"), "2021-02-14 Sun\n"},
		{withRef("epoch"), "1613260800\n"},
		{withRef("epoch", "now", "--nanos"), "1613315045000000000\n"},
		{withRef("add", "--to", "2021-01-31", "1", "month"), "2021-02-28T00:00:00Z\n"},
		{withRef("duration", "1", "hour", "30", "minutes"), "1h30m0s\n"},
		{withRef("duration", "2", "hours", "ago", "--format", "unix"), "-7200\n"},
		{[]string{"weekday", "wednes"}, "Wednesday 3\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			stdout, _, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestParseCommandStructured(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", withRef("parse", "tomorrow", "--format", "json")...)
	require.NoError(t, err)

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, "tomorrow", rec["expression"])
	assert.Equal(t, "2021-02-15T15:04:05Z", rec["time"])
	assert.Equal(t, "1613401445", rec["unix"])
	assert.Equal(t, "UTC +00:00", rec["zone"])
	assert.Equal(t, "Monday", rec["weekday"])

	stdout, _, err = run(t, "", withRef("parse", "tomorrow", "--format", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "weekday: Monday")

	stdout, _, err = run(t, "", withRef("duration", "1", "day", "--format", "toml")...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "duration = '24h0m0s'")
	assert.Contains(t, stdout, "seconds = 86400.0")
}

func TestParseCommandErrors(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", withRef("parse", "next", "frday")...)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))

	_, _, err = run(t, "", withRef("duration", "2021-02-14")...)
	require.Error(t, err)
	assert.True(t, errors.IsNotADurationError(err))

	_, _, err = run(t, "", "parse", "--tz", "Nowhere/Special", "now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, _, err = run(t, "", "parse", "--format", "xml", "now")
	require.Error(t, err)
}

func TestWeekdayCommandSuggests(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "weekday", "frday")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
	assert.Contains(t, errors.GetAllHints(err), `did you mean "friday"?`)
}

func TestExplainCommand(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", withRef("explain", "3 days ago at noon")...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 days ago")
	assert.Contains(t, stdout, "noon")
	assert.True(t, strings.HasSuffix(stdout, "2021-02-11T12:00:00Z\n"), stdout)
}

func TestParseBatchLine(t *testing.T) {
	tests := []struct {
		line    string
		want    batchLine
		wantErr bool
	}{
		{line: "tomorrow", want: batchLine{expr: "tomorrow"}},
		{line: "-3 days", want: batchLine{expr: "-3 days"}},
		{line: "--ref=2021-01-01T00:00:00Z --duration 1 day", want: batchLine{expr: "1 day", ref: "2021-01-01T00:00:00Z", duration: true}},
		{line: `--tz "America/New_York" next monday`, want: batchLine{expr: "next monday", tz: "America/New_York"}},
		{line: "-- --duration", want: batchLine{expr: "--duration"}},
		{line: "--bogus now", wantErr: true},
		{line: "--tz", wantErr: true},
		{line: `"unbalanced`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseBatchLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBatchCommand(t *testing.T) {
	isolate(t)

	input := strings.Join([]string{
		"tomorrow",
		"# comment",
		"",
		"--tz=Asia/Tokyo now",
		"blorp",
		"--duration 90 minutes",
	}, "\n")

	stdout, stderr, err := run(t, input, withRef("batch")...)
	require.Error(t, err)
	assert.Equal(t, "1 of 4 expressions failed", err.Error())
	assert.Equal(t, "2021-02-15T15:04:05Z\n2021-02-15T00:04:05+09:00\n1h30m0s\n", stdout)
	assert.True(t, strings.HasPrefix(stderr, "-:5: "), stderr)
}

func TestBatchCommandFailFast(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "blorp\ntomorrow\n", withRef("batch", "--fail-fast")...)
	require.Error(t, err)
	assert.Equal(t, "1 of 1 expressions failed", err.Error())
	assert.Empty(t, stdout)
}

func TestBatchCommandFiles(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("yesterday\n"), 0644))

	stdout, _, err := run(t, "", withRef("batch", path)...)
	require.NoError(t, err)
	assert.Equal(t, "2021-02-13T15:04:05Z\n", stdout)

	_, _, err = run(t, "", withRef("batch", filepath.Join(dir, "missing.txt"))...)
	require.Error(t, err)
}

func TestWatchCommand(t *testing.T) {
	isolate(t)
	t.Setenv("GNUDATE_WATCH_BURST", "3")

	stdout, _, err := run(t, "", withRef("watch", "--count", "3", "now")...)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("2021-02-14T15:04:05Z\n", 3), stdout)
}

func TestWatchReloadKeepsFlags(t *testing.T) {
	o := &rootOptions{now: time.Now}
	root := newRootCmd(o)
	require.NoError(t, root.PersistentFlags().Set("tz", "UTC"))

	w := &watchRun{o: o, cmd: root, limiter: rate.NewLimiter(rate.Every(time.Second), 1)}
	require.NoError(t, w.reload(&am.Config{
		Reference: am.ReferenceConfig{Timezone: "Asia/Tokyo"},
		Output:    am.OutputConfig{Format: am.FormatUnix},
		Watch:     am.WatchConfig{IntervalSeconds: 5, Burst: 2},
	}))

	cfg := w.config()
	assert.Equal(t, "UTC", cfg.Reference.Timezone)
	assert.Equal(t, am.FormatUnix, cfg.Output.Format)
	assert.Equal(t, 2, w.limiter.Burst())
	assert.Equal(t, rate.Every(5*time.Second), w.limiter.Limit())
}

func TestConfigCommands(t *testing.T) {
	home := isolate(t)

	stdout, _, err := run(t, "", "config", "set", "output.format", "unix")
	require.NoError(t, err)
	assert.Contains(t, stdout, "output.format = unix")
	assert.FileExists(t, filepath.Join(home, ".gnudate", "am.toml"))

	stdout, _, err = run(t, "", "config", "get", "output.format")
	require.NoError(t, err)
	assert.Equal(t, "unix\n", stdout)

	stdout, _, err = run(t, "", withRef("parse", "tomorrow")...)
	require.NoError(t, err)
	assert.Equal(t, "1613401445\n", stdout)

	_, _, err = run(t, "", "config", "get", "output.nope")
	require.Error(t, err)

	_, _, err = run(t, "", "config", "set", "watch.burst", "many")
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "config", "show", "--tz", "UTC", "--format", "json")
	require.NoError(t, err)

	var cfg am.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "UTC", cfg.Reference.Timezone)
	assert.Equal(t, am.FormatRFC3339, cfg.Output.Format)

	stdout, _, err = run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[watch]")
}

func TestConfigValidate(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[output]\nformt = \"unix\"\n"), 0644))
	stdout, _, err := run(t, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, `unknown key "output.formt"`)
	assert.Contains(t, stdout, "Configuration is valid")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[output]\nformat = \"xml\"\n"), 0644))
	_, _, err = run(t, "", "config", "validate")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[output\n"), 0644))
	_, _, err = run(t, "", "config", "validate")
	require.Error(t, err)
	_, _, err = run(t, "", "parse", "now")
	require.Error(t, err)
}

func TestConfigWhere(t *testing.T) {
	home := isolate(t)
	t.Setenv("GNUDATE_NOW", "2021-02-14T15:04:05Z")

	_, _, err := run(t, "", "config", "set", "reference.timezone", "Asia/Tokyo")
	require.NoError(t, err)

	stdout, _, err := run(t, "", "config", "where")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, ".gnudate", "am.toml"))
	assert.Contains(t, stdout, "reference.timezone = Asia/Tokyo")
	assert.Contains(t, stdout, "GNUDATE_NOW")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "gnudate "), stdout)

	stdout, _, err = run(t, "", "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["go_version"])
}
