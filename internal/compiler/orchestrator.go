// Package compiler builds a bin target with cargo, shrinks the artifact in
// an isolated scratch directory and hands back the encoded payload.
package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Norgate-AV/cargo-payload/internal/codec"
	"github.com/Norgate-AV/cargo-payload/internal/config"
	"github.com/Norgate-AV/cargo-payload/internal/shell"
	"github.com/Norgate-AV/cargo-payload/internal/utils"
)

// Request identifies what to build
type Request struct {
	// Bin is the resolved bin target name
	Bin string

	// ManifestDir is the owning package's root; every tool runs there
	ManifestDir string

	// TargetDir is the workspace's shared build output directory
	TargetDir string

	Config *config.Config
}

// postStage is an optional in-place rewrite of the scratch artifact. A
// stage whose program cannot be found is skipped.
type postStage struct {
	name           string
	enabled        func(cfg *config.Config) bool
	program        func(cfg *config.Config) string
	args           func(artifact string) []string
	stdoutToStderr bool

	// explicit reports whether the user named the program, in which case a
	// missing program is announced instead of skipped quietly
	explicit func(cfg *config.Config) bool
}

var postStages = []postStage{
	{
		name:    "strip",
		enabled: func(*config.Config) bool { return true },
		program: func(cfg *config.Config) string {
			if cfg.StripExe != "" {
				return cfg.StripExe
			}

			return "strip"
		},
		args:     func(artifact string) []string { return []string{"-s", artifact} },
		explicit: func(cfg *config.Config) bool { return cfg.StripExe != "" },
	},
	{
		name:           "upx",
		enabled:        func(cfg *config.Config) bool { return !cfg.NoUpx },
		program:        func(*config.Config) string { return "upx" },
		args:           func(artifact string) []string { return []string{"--best", artifact} },
		stdoutToStderr: true,
		explicit:       func(*config.Config) bool { return false },
	},
}

// Orchestrator runs the build, post-processing and encoding steps in order
type Orchestrator struct {
	env      Env
	shell    *shell.Shell
	runner   *CommandRunner
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	tempRoot string
}

// NewOrchestrator creates an orchestrator using env for tool lookup.
// Child processes inherit stdout; their stderr goes to the shell's stream.
func NewOrchestrator(env Env, sh *shell.Shell, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		env:    env,
		shell:  sh,
		runner: NewCommandRunner(sh),
		logger: logger,
		stdout: os.Stdout,
		stderr: sh.Err(),
	}
}

// Build produces the encoded payload for req. The scratch directory it
// creates is removed before Build returns, whether or not it succeeded.
func (o *Orchestrator) Build(req Request) (payload string, err error) {
	cfg := req.Config

	program := o.env.Cargo
	if cfg.UseCross {
		program = "cross"
	}

	builder, ok := FindExecutable(program, o.env.Path, req.ManifestDir)
	if !ok {
		return "", fmt.Errorf("`%s` does not seem to exist", program)
	}

	build := GetBuildCommand(builder, req.ManifestDir, req.Bin, cfg.Target)
	if err := o.runner.Run(build, o.stdout, o.stderr); err != nil {
		return "", err
	}

	artifactPath := utils.ArtifactPath(req.TargetDir, cfg.Target, req.Bin)

	scratch, err := os.MkdirTemp(o.tempRoot, "cargo-payload-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	o.logger.Debug("created scratch directory", "path", scratch)

	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil && err == nil {
			payload = ""
			err = fmt.Errorf("failed to remove `%s`: %w", scratch, rmErr)
		}
	}()

	artifact := filepath.Join(scratch, filepath.Base(artifactPath))
	if err := copyFile(artifactPath, artifact); err != nil {
		return "", fmt.Errorf("failed to copy `%s` to `%s`: %w", artifactPath, artifact, err)
	}

	for i, stage := range postStages {
		if err := o.postProcess(i+1, stage, req, artifact); err != nil {
			return "", err
		}
	}

	data, err := os.ReadFile(artifact)
	if err != nil {
		return "", fmt.Errorf("could not read `%s`: %w", artifact, err)
	}

	o.logger.Debug("encoding artifact", "path", artifact, "bytes", len(data))

	return codec.Encode(data), nil
}

// postProcess runs one optional stage. Skips are logged by step number
// only, so an absent tool leaves no trace of its name in the diagnostics.
func (o *Orchestrator) postProcess(step int, stage postStage, req Request, artifact string) error {
	if !stage.enabled(req.Config) {
		o.logger.Debug("optional step disabled", "step", step)
		return nil
	}

	name := stage.program(req.Config)

	program, ok := FindExecutable(name, o.env.Path, req.ManifestDir)
	if !ok {
		if stage.explicit(req.Config) {
			return o.shell.Warn(fmt.Sprintf("`%s` does not seem to exist; skipping %s", name, stage.name))
		}

		o.logger.Debug("optional step skipped, program not found", "step", step)
		return nil
	}

	stdout := o.stdout
	if stage.stdoutToStderr {
		stdout = o.stderr
	}

	cmd := &ShellCommand{Path: program, Args: stage.args(artifact), Dir: req.ManifestDir}
	return o.runner.Run(cmd, stdout, o.stderr)
}
