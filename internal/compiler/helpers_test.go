package compiler

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/cargo-payload/internal/config"
	"github.com/Norgate-AV/cargo-payload/internal/shell"
)

// fixture is a fake workspace with fake tools on a private search path
type fixture struct {
	root        string
	binDir      string
	manifestDir string
	targetDir   string
	tempRoot    string
	stdout      bytes.Buffer
	diag        bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}

	root := t.TempDir()
	f := &fixture{
		root:        root,
		binDir:      filepath.Join(root, "bin"),
		manifestDir: filepath.Join(root, "ws", "hello"),
		targetDir:   filepath.Join(root, "ws", "target"),
		tempRoot:    filepath.Join(root, "scratch"),
	}

	for _, dir := range []string{f.binDir, f.manifestDir, f.targetDir, f.tempRoot} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	return f
}

func (f *fixture) script(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(f.binDir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))

	return path
}

// fakeCargo writes "ELF:<bin>" to the artifact path and records its cwd.
// Arguments: build --release --bin <bin> --target <triple>
func (f *fixture) fakeCargo(t *testing.T, name string) string {
	return f.script(t, name, fmt.Sprintf(`set -e
out=%q/"$6"/release
mkdir -p "$out"
printf 'ELF:%%s' "$4" > "$out/$4"
pwd > %q
`, f.targetDir, filepath.Join(f.root, "cargo-cwd")))
}

// fakeStrip appends "+stripped" to its -s operand
func (f *fixture) fakeStrip(t *testing.T, name string) string {
	return f.script(t, name, `set -e
content=$(cat "$2")
printf '%s+stripped' "$content" > "$2"
`)
}

// fakeUpx appends "+packed" to its --best operand and chats on stdout
func (f *fixture) fakeUpx(t *testing.T) string {
	return f.script(t, "upx", `set -e
echo "Ultimate Packer for eXecutables"
content=$(cat "$2")
printf '%s+packed' "$content" > "$2"
`)
}

func (f *fixture) orchestrator(env Env) *Orchestrator {
	return f.orchestratorWithLogger(env, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (f *fixture) orchestratorWithLogger(env Env, logger *slog.Logger) *Orchestrator {
	sh := shell.NewWithWriter(&f.diag)
	o := NewOrchestrator(env, sh, logger)
	o.stdout = &f.stdout
	o.tempRoot = f.tempRoot

	return o
}

func (f *fixture) env() Env {
	return Env{Cargo: "cargo", Path: f.binDir}
}

func (f *fixture) request(cfg *config.Config) Request {
	return Request{
		Bin:         "hello",
		ManifestDir: f.manifestDir,
		TargetDir:   f.targetDir,
		Config:      cfg,
	}
}

func (f *fixture) assertScratchRemoved(t *testing.T) {
	t.Helper()

	entries, err := os.ReadDir(f.tempRoot)
	require.NoError(t, err)
	require.Empty(t, entries, "scratch directory left behind")
}

func defaultConfig() *config.Config {
	return &config.Config{
		Target:      config.DefaultTarget,
		Template:    config.DefaultTemplate,
		ExtractPath: config.DefaultExtractPath,
	}
}
