package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/cargo-payload/internal/generator"
	"github.com/Norgate-AV/cargo-payload/internal/utils"
)

// Default configuration values
const (
	DefaultTarget      = utils.DefaultTriple
	DefaultTemplate    = string(generator.Rust)
	DefaultExtractPath = generator.DefaultExtractPath
	DefaultUseCross    = false
	DefaultNoUpx       = false
	DefaultVerbose     = false
)

// Holds the configuration options for cargo-payload
type Config struct {
	// Platform triple passed to `cargo build --target`
	Target string

	// Build with `cross` instead of $CARGO
	UseCross bool

	// Path to strip(1); empty means look up `strip`
	StripExe string

	// Skip upx compression
	NoUpx bool

	// Path to Cargo.toml; empty means search upward from the working directory
	ManifestPath string

	// Output file; empty means stdout
	OutputFile string

	// Main source file of the bin target to build
	Src string

	// Name of the bin target to build
	Bin string

	// Loader language (rust, go)
	Template string

	// Where the generated loader writes the decoded executable
	ExtractPath string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Target:       viper.GetString("target"),
		UseCross:     viper.GetBool("use_cross"),
		StripExe:     viper.GetString("strip_exe"),
		NoUpx:        viper.GetBool("no_upx"),
		ManifestPath: viper.GetString("manifest_path"),
		OutputFile:   viper.GetString("output"),
		Src:          viper.GetString("src"),
		Bin:          viper.GetString("bin"),
		Template:     viper.GetString("template"),
		ExtractPath:  viper.GetString("extract_path"),
		Verbose:      viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}

	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}

	if cfg.ExtractPath == "" {
		cfg.ExtractPath = DefaultExtractPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get CWD: %w", err)
	}

	if err := cfg.Validate(cwd); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the option combination and resolves user-supplied paths
// against cwd.
func (c *Config) Validate(cwd string) error {
	if c.Src != "" && c.Bin != "" {
		return fmt.Errorf("`--src` and `--bin` cannot be used together")
	}

	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target triple must not be empty")
	}

	if !generator.IsSupported(c.Template) {
		return fmt.Errorf("invalid template %q (expected one of %s)", c.Template, strings.Join(generator.Languages(), ", "))
	}

	if err := validateExtractPath(c.ExtractPath); err != nil {
		return err
	}

	c.ManifestPath = resolve(cwd, c.ManifestPath)
	c.Src = resolve(cwd, c.Src)
	c.StripExe = resolve(cwd, c.StripExe)

	return nil
}

// Extraction paths are spliced into string literals of both loader languages
func validateExtractPath(p string) error {
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("invalid extract path %q: must be absolute", p)
	}

	for _, r := range p {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return fmt.Errorf("invalid extract path %q: contains %q", p, r)
		}
	}

	return nil
}

func resolve(cwd, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(cwd, p)
}
