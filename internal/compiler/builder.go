package compiler

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/cargo-payload/internal/codes"
	"github.com/Norgate-AV/cargo-payload/internal/shell"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// CommandRunner announces and runs external commands
type CommandRunner struct {
	shell       *shell.Shell
	execCommand func(cmd *ShellCommand, stdout, stderr io.Writer) Commander
}

// NewCommandRunner creates a runner that reports to sh
func NewCommandRunner(sh *shell.Shell) *CommandRunner {
	return &CommandRunner{
		shell: sh,
		execCommand: func(sc *ShellCommand, stdout, stderr io.Writer) Commander {
			cmd := exec.Command(sc.Path, sc.Args...)
			cmd.Dir = sc.Dir
			cmd.Stdout = stdout
			cmd.Stderr = stderr
			return cmd
		},
	}
}

// Run prints a "Running" status line for sc and executes it. Any failure,
// including a non-zero exit, is returned with the command line as context.
func (r *CommandRunner) Run(sc *ShellCommand, stdout, stderr io.Writer) error {
	line := sc.String()

	if err := r.shell.Status("Running", line); err != nil {
		return err
	}

	if err := r.execCommand(sc, stdout, stderr).Run(); err != nil {
		return fmt.Errorf("%s didn't exit successfully%s: %w", line, describeExit(sc.Path, err), err)
	}

	return nil
}

func describeExit(program string, err error) string {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ""
	}

	tool := strings.TrimSuffix(filepath.Base(program), ".exe")
	if msg := codes.GetErrorMessage(tool, exitErr.ExitCode()); msg != "" {
		return fmt.Sprintf(" (%s: %s)", tool, msg)
	}

	return ""
}
