package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file name of a Cargo manifest
const ManifestName = "Cargo.toml"

var configExts = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range configExts {
			path := filepath.Join(dir, ".cargo-payload."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// LocateManifest returns the nearest Cargo.toml in cwd or any parent directory
func LocateManifest(cwd string) (string, error) {
	dir := cwd
	for {
		path := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", fmt.Errorf("could not find `%s` in `%s` or any parent directory", ManifestName, cwd)
}
