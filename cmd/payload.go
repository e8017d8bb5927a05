package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/cargo-payload/internal/compiler"
	"github.com/Norgate-AV/cargo-payload/internal/config"
	"github.com/Norgate-AV/cargo-payload/internal/generator"
	"github.com/Norgate-AV/cargo-payload/internal/shell"
	"github.com/Norgate-AV/cargo-payload/internal/workspace"
)

// Overridden in tests
var (
	newShell = shell.New
	newEnv   = compiler.EnvFromOS
)

func newPayloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payload",
		Short: "Build a bin target and emit it as a self-extracting program",
		Long: `Build a bin target in release mode for the target triple, strip and compress it,
then print a program whose source embeds the binary and the original code.`,
		Example: `  cargo payload
  cargo payload --src src/bin/a.rs
  cargo payload --bin a -o submission.rs`,
		RunE:         runPayload,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}
}

func runPayload(cmd *cobra.Command, args []string) error {
	sh := newShell()

	if err := payload(cmd, sh); err != nil {
		// argument errors never get here; those keep cobra's formatting
		cmd.SilenceErrors = true
		_ = sh.Error(err)
		return err
	}

	return nil
}

func payload(cmd *cobra.Command, sh *shell.Shell) error {
	cfg, err := config.NewLoader().LoadForPayload(cmd)
	if err != nil {
		return err
	}

	logger := shell.NewLogger(sh.Err(), cfg.Verbose)
	env := newEnv()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get CWD: %w", err)
	}

	manifestPath := cfg.ManifestPath
	if manifestPath == "" {
		manifestPath, err = config.LocateManifest(cwd)
		if err != nil {
			return err
		}
	}

	logger.Debug("using manifest", "path", manifestPath)

	metadata, err := workspace.NewLoader(env.Cargo).Load(manifestPath, cwd)
	if err != nil {
		return err
	}

	selection := selectionFor(cfg)

	bin, err := workspace.Resolve(metadata, selection)
	if err != nil {
		var resolveErr *workspace.ResolveError
		if errors.As(err, &resolveErr) && resolveErr.Ambiguous() && selection.Mode == workspace.Infer {
			resolveErr.Note = workspace.DefaultRunNote(append([]string{manifestPath}, resolveErr.ManifestPaths()...)...)
		}

		return err
	}

	logger.Debug("resolved bin target", "name", bin.Target.Name, "package", bin.Package.Name, "src", bin.Target.SrcPath)

	source, err := os.ReadFile(bin.Target.SrcPath)
	if err != nil {
		return fmt.Errorf("could not read `%s`: %w", bin.Target.SrcPath, err)
	}

	orchestrator := compiler.NewOrchestrator(env, sh, logger)

	encoded, err := orchestrator.Build(compiler.Request{
		Bin:         bin.Target.Name,
		ManifestDir: bin.Package.Dir(),
		TargetDir:   metadata.TargetDirectory,
		Config:      cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to build `%s`: %w", bin.Target.Name, err)
	}

	out, err := generator.Render(generator.Input{
		Language:    generator.Language(cfg.Template),
		Source:      string(source),
		Payload:     encoded,
		ExtractPath: cfg.ExtractPath,
	})
	if err != nil {
		return err
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("could not write `%s`: %w", cfg.OutputFile, err)
		}

		return nil
	}

	if _, err := cmd.OutOrStdout().Write([]byte(out)); err != nil {
		return fmt.Errorf("could not write to stdout: %w", err)
	}

	return nil
}

func selectionFor(cfg *config.Config) workspace.Selection {
	switch {
	case cfg.Bin != "":
		return workspace.SelectByName(cfg.Bin)
	case cfg.Src != "":
		return workspace.SelectBySourcePath(cfg.Src)
	default:
		return workspace.SelectInferred()
	}
}
