/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "info", Str(LogLevel))
	assert.Equal(t, 500, Int(HistoryLimit))
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
}

func TestLoadFileOverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".malis.yaml")

	err := os.WriteFile(path, []byte("LogLevel: debug\n"), 0644)
	require.NoError(t, err)

	require.NoError(t, LoadFile(path))
	assert.Equal(t, "debug", Str(LogLevel))

	Config[LogLevel] = "info" // restore for other tests in this package
}
