package workspace

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs a program in dir and returns its standard output
type Runner func(dir, program string, args ...string) ([]byte, error)

// Loader queries workspace structure with `cargo metadata`
type Loader struct {
	cargo string
	run   Runner
}

// NewLoader returns a Loader invoking the given cargo executable
func NewLoader(cargo string) *Loader {
	return &Loader{cargo: cargo, run: runCaptured}
}

// Load reads the workspace containing manifestPath, running cargo in cwd
func (l *Loader) Load(manifestPath, cwd string) (*Metadata, error) {
	args := []string{"metadata", "--format-version", "1", "--no-deps", "--manifest-path", manifestPath}

	out, err := l.run(cwd, l.cargo, args...)
	if err != nil {
		return nil, fmt.Errorf("`%s metadata` failed for `%s`: %w", l.cargo, manifestPath, err)
	}

	return Parse(out)
}

func runCaptured(dir, program string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(program, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}

		return nil, err
	}

	return stdout.Bytes(), nil
}
