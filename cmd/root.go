package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/cargo-payload/internal/config"
	"github.com/Norgate-AV/cargo-payload/internal/generator"
	"github.com/Norgate-AV/cargo-payload/internal/version"
)

// NewRootCmd builds the command tree. Cargo runs external subcommands as
// `cargo-payload payload ...`, so the root and the `payload` subcommand do
// the same thing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "cargo-payload",
		Short:        "Embed a Rust binary into a self-extracting source file",
		Long:         `Build a bin target, shrink it, and emit a single source file that writes the binary to disk and executes it.`,
		RunE:         runPayload,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)

	flags := rootCmd.PersistentFlags()
	flags.Bool("use-cross", config.DefaultUseCross, "Use cross instead of $CARGO")
	flags.String("strip-exe", "", "Path to strip(1)")
	flags.Bool("no-upx", config.DefaultNoUpx, "Do not apply upx")
	flags.StringP("output", "o", "", "Write output to the file instead of stdout")
	flags.String("src", "", "Path to the main source file of the bin target")
	flags.String("bin", "", "Name of the bin target")
	flags.String("target", config.DefaultTarget, "Build for the target triple")
	flags.String("manifest-path", "", "Path to Cargo.toml")
	flags.String("template", config.DefaultTemplate, "Loader language ("+strings.Join(generator.Languages(), ", ")+")")
	flags.String("extract-path", config.DefaultExtractPath, "Path the generated program writes the binary to")
	flags.BoolP("verbose", "v", config.DefaultVerbose, "Verbose output")
	rootCmd.MarkFlagsMutuallyExclusive("src", "bin")

	rootCmd.AddCommand(newPayloadCmd())

	return rootCmd
}

func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
