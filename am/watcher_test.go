package am

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloads(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "watched.toml")
	writeFile(t, path, `
[output]
format = "json"
`)
	SetConfigFile(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	cw, err := Watch(ctx, path, func(cfg *Config) error {
		reloaded <- cfg
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, cw, GetGlobalWatcher())

	writeFile(t, path, `
[output]
format = "unix"
`)

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "unix", cfg.Output.Format)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.Eventually(t, func() bool { return GetGlobalWatcher() == nil }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	cw, err := NewConfigWatcher(filepath.Join(t.TempDir(), "am.toml"), 10*time.Millisecond)
	require.NoError(t, err)
	defer cw.Stop()

	assert.False(t, cw.checkOwnWrite())
	cw.MarkOwnWrite()
	assert.True(t, cw.checkOwnWrite())
	assert.False(t, cw.checkOwnWrite(), "the flag covers one write")

	assert.NoError(t, cw.Stop())
	assert.NoError(t, cw.Stop(), "stop is idempotent")
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/am.toml.back1"))
	assert.True(t, isBackupFile("am.toml.back3"))
	assert.False(t, isBackupFile("am.toml"))
	assert.False(t, isBackupFile("am.toml.backup"))
}
