package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DiscardsWithoutPath(t *testing.T) {
	closeLog, err := setupLogging("", false)
	require.NoError(t, err)
	defer func() { _ = closeLog() }()

	// records are dropped, not printed over the game screen
	slog.Info("goes nowhere")
	assert.NotNil(t, slog.Default())
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "termtris.log")

	closeLog, err := setupLogging(path, false)
	require.NoError(t, err)

	slog.Info("Game started", "game_id", "game_1")
	slog.Debug("hidden at info level")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Game started")
	assert.Contains(t, string(data), "game_id=game_1")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestSetupLogging_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termtris.log")

	closeLog, err := setupLogging(path, true)
	require.NoError(t, err)
	slog.Debug("Sound queued")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sound queued")
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termtris.log")

	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o644))

	closeLog, err := setupLogging(path, false)
	require.NoError(t, err)
	defer func() { _ = closeLog() }()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	rotated := 0
	for _, e := range entries {
		if e.Name() != "termtris.log" && strings.HasPrefix(e.Name(), "termtris-") && filepath.Ext(e.Name()) == ".log" {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestSetupLogging_SmallFileIsKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termtris.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier run\n"), 0o644))

	closeLog, err := setupLogging(path, false)
	require.NoError(t, err)
	require.NoError(t, closeLog())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "earlier run"))
}
