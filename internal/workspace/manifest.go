package workspace

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Manifest holds the Cargo.toml keys this tool reads
type Manifest struct {
	Package struct {
		Name       string `toml:"name"`
		DefaultRun string `toml:"default-run"`
	} `toml:"package"`
}

// ReadManifest parses the Cargo.toml at path
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read `%s`: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse `%s`: %w", path, err)
	}

	return &m, nil
}

// DefaultRunNote returns one note line per manifest declaring
// `default-run`, which inference does not honour. Unreadable manifests
// and repeated paths are skipped. It returns "" when there is nothing to say.
func DefaultRunNote(manifestPaths ...string) string {
	var notes []string
	seen := make(map[string]bool)

	for _, path := range manifestPaths {
		if seen[path] {
			continue
		}

		seen[path] = true

		m, err := ReadManifest(path)
		if err != nil || m.Package.DefaultRun == "" {
			continue
		}

		notes = append(notes, fmt.Sprintf("note: `default-run = %q` in `%s` is ignored; pass `--bin %s` to build it.",
			m.Package.DefaultRun, path, m.Package.DefaultRun))
	}

	return strings.Join(notes, "\n")
}
