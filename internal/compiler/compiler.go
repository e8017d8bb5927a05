package compiler

import (
	"os"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Env carries the process environment the orchestrator depends on
type Env struct {
	// Cargo is the default builder program ($CARGO)
	Cargo string

	// Path is the executable search path ($PATH)
	Path string
}

// EnvFromOS reads Env from the process environment. $CARGO falls back to
// `cargo` so the tool also works when not launched by cargo.
func EnvFromOS() Env {
	cargo := os.Getenv("CARGO")
	if cargo == "" {
		cargo = "cargo"
	}

	return Env{
		Cargo: cargo,
		Path:  os.Getenv("PATH"),
	}
}

// ShellCommand is an external command and the directory it runs in
type ShellCommand struct {
	Path string
	Args []string
	Dir  string
}

// String reconstructs the command line with shell escaping, wrapped in
// backticks, so it can be pasted into a shell
func (c *ShellCommand) String() string {
	var sb strings.Builder
	sb.WriteString("`")
	sb.WriteString(shellescape.Quote(c.Path))

	for _, arg := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(shellescape.Quote(arg))
	}

	sb.WriteString("`")
	return sb.String()
}

// GetBuildCommand returns the release build of a single bin target for a triple
func GetBuildCommand(builder, manifestDir, bin, triple string) *ShellCommand {
	return &ShellCommand{
		Path: builder,
		Args: []string{"build", "--release", "--bin", bin, "--target", triple},
		Dir:  manifestDir,
	}
}
