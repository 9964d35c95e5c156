package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/prefs"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	src, err := prefs.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, prefs.Default(), src.Current())
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	writeFile(t, path, "explorer_enabled: true\n")

	src, err := prefs.Load(path)

	require.NoError(t, err)
	assert.True(t, src.Current().ExplorerEnabled)
	assert.Equal(t, path, src.Path())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	writeFile(t, path, "explorer_enabled: [nope\n")

	_, err := prefs.Load(path)

	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	writeFile(t, path, "explorer_enabled: false\n")

	src, err := prefs.Load(path)
	require.NoError(t, err)
	assert.False(t, src.Current().ExplorerEnabled)

	writeFile(t, path, "explorer_enabled: true\n")
	require.NoError(t, src.Reload())
	assert.True(t, src.Current().ExplorerEnabled)

	// A broken edit keeps the last good snapshot.
	writeFile(t, path, "explorer_enabled: {\n")
	assert.Error(t, src.Reload())
	assert.True(t, src.Current().ExplorerEnabled)
}

func TestStatic(t *testing.T) {
	src := prefs.Static(prefs.Preferences{ExplorerEnabled: true})

	require.NoError(t, src.Reload())
	assert.True(t, src.Current().ExplorerEnabled)
	assert.Empty(t, src.Path())
}
