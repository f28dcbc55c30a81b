package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. REFLECTGEN_OUTPUT_DIR
const EnvPrefix = "REFLECTGEN"

// Config represents the reflectgen configuration
type Config struct {
	SourceDir   string   `mapstructure:"source_dir"`
	OutputDir   string   `mapstructure:"output_dir"`
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	Jobs        int      `mapstructure:"jobs"`
	LuaBindings bool     `mapstructure:"lua_bindings"`
	Manifest    bool     `mapstructure:"manifest"`
	PCHHeader   string   `mapstructure:"pch_header"`
}

// Load loads the configuration from reflectgen.yml or reflectgen.yaml in
// the working directory or the nearest parent holding one. A missing file
// means defaults. Relative directories from a parent's config are rebased
// so they stay relative to that config file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("source_dir", "Source")
	v.SetDefault("output_dir", "Intermediate/Generated")
	v.SetDefault("include", []string{"**/*.h"})
	v.SetDefault("exclude", []string{})
	v.SetDefault("jobs", 1)
	v.SetDefault("lua_bindings", true)
	v.SetDefault("manifest", true)
	v.SetDefault("pch_header", "pch.h")

	v.SetConfigName("reflectgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if root, err := GetProjectRoot(); err == nil {
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		if err := config.rebase(filepath.Dir(used)); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetProjectRoot walks up from the working directory to the first
// directory holding a reflectgen config file
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "reflectgen.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "reflectgen.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no reflectgen.yml found in any parent directory")
		}
		dir = parent
	}
}

// rebase makes relative directories relative to the working directory
// instead of configDir
func (c *Config) rebase(configDir string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(wd, configDir)
	if err != nil {
		rel = configDir
	}
	if rel == "." {
		return nil
	}

	if c.SourceDir != "" && !filepath.IsAbs(c.SourceDir) {
		c.SourceDir = filepath.Join(rel, c.SourceDir)
	}
	if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(rel, c.OutputDir)
	}
	return nil
}

// Validate checks a config after flag overrides have been applied
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got: %d", cfg.Jobs)
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
