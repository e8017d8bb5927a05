package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLocalConfig(t *testing.T) {
	// Create a temporary directory structure
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "subdir")
	err := os.Mkdir(subDir, 0o755)
	assert.NoError(t, err)

	configYML := filepath.Join(subDir, ".cargo-payload.yml")
	err = os.WriteFile(configYML, []byte("target: x86_64-pc-windows-gnu"), 0o644)
	assert.NoError(t, err)

	// Test finding in subdir
	result := FindLocalConfig(subDir)
	assert.Equal(t, configYML, result)

	// Test finding in parent
	result = FindLocalConfig(filepath.Join(subDir, "deep"))
	assert.Equal(t, configYML, result)

	// Test not found
	result = FindLocalConfig(tempDir)
	assert.Equal(t, "", result)
}

func TestLocateManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "crates", "hello", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	manifest := filepath.Join(root, "Cargo.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[workspace]\n"), 0o644))

	t.Run("found in cwd", func(t *testing.T) {
		got, err := LocateManifest(root)
		require.NoError(t, err)
		assert.Equal(t, manifest, got)
	})

	t.Run("found in parent", func(t *testing.T) {
		got, err := LocateManifest(nested)
		require.NoError(t, err)
		assert.Equal(t, manifest, got)
	})

	t.Run("nearest wins", func(t *testing.T) {
		member := filepath.Join(root, "crates", "hello", "Cargo.toml")
		require.NoError(t, os.WriteFile(member, []byte("[package]\n"), 0o644))

		got, err := LocateManifest(nested)
		require.NoError(t, err)
		assert.Equal(t, member, got)
	})

	t.Run("directory named Cargo.toml is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Cargo.toml"), 0o755))

		_, err := LocateManifest(dir)
		if err == nil {
			t.Skip("a Cargo.toml exists above the temp directory")
		}

		assert.Contains(t, err.Error(), "or any parent directory")
	})
}
