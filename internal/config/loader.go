package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flag name -> viper key
var flagKeys = map[string]string{
	"target":        "target",
	"use-cross":     "use_cross",
	"strip-exe":     "strip_exe",
	"no-upx":        "no_upx",
	"manifest-path": "manifest_path",
	"output":        "output",
	"src":           "src",
	"bin":           "bin",
	"template":      "template",
	"extract-path":  "extract_path",
	"verbose":       "verbose",
}

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForPayload loads configuration for a payload run. Flags override the
// local config file, which overrides the global one.
func (l *Loader) LoadForPayload(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()

	if cwd, err := os.Getwd(); err == nil {
		l.loadLocalConfig(cwd)
	}

	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("target", DefaultTarget)
	viper.SetDefault("template", DefaultTemplate)
	viper.SetDefault("extract_path", DefaultExtractPath)
	viper.SetDefault("use_cross", DefaultUseCross)
	viper.SetDefault("no_upx", DefaultNoUpx)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads the per-user config file
func (l *Loader) loadGlobalConfig() {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return
	}

	globalDir := filepath.Join(configDir, "cargo-payload")

	for _, ext := range configExts {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig merges the nearest project config file over the global one
func (l *Loader) loadLocalConfig(dir string) {
	localPath := FindLocalConfig(dir)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.MergeInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}
