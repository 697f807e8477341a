// Package config provides configuration management for the component engine
// tooling using Viper for flexible loading from files, environment
// variables, and command-line flags.
//
// Configuration supports YAML files, environment overrides with the TMCE_
// prefix, and validation. It covers the preview server, catalog style
// sources, logging, and export behavior.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CatalogConfig struct {
	// StylePaths lists files whose CSS is injected into the editing surface
	// alongside the registered definitions' editor styles.
	StylePaths []string `yaml:"style_paths"`
	// StyleSetFiles lists YAML files of named style sets registered into
	// the session's style selector.
	StyleSetFiles []string `yaml:"style_set_files"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	// KeepInstanceIDs leaves data-instance-id attributes in exported markup,
	// for embedders that track instances externally.
	KeepInstanceIDs bool `yaml:"keep_instance_ids"`
}

// Load reads configuration from viper's current state and applies defaults.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Server.Port == 0 {
		config.Server.Port = 8120
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}

	// Workaround for viper slice handling when values come from env
	if viper.IsSet("catalog.style_paths") && len(config.Catalog.StylePaths) == 0 {
		config.Catalog.StylePaths = viper.GetStringSlice("catalog.style_paths")
	}
	if viper.IsSet("catalog.style_set_files") && len(config.Catalog.StyleSetFiles) == 0 {
		config.Catalog.StyleSetFiles = viper.GetStringSlice("catalog.style_set_files")
	}
	if viper.IsSet("export.keep_instance_ids") {
		config.Export.KeepInstanceIDs = viper.GetBool("export.keep_instance_ids")
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate checks configuration values for correctness.
func Validate(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", config.Server.Port)
	}
	if strings.ContainsAny(config.Server.Host, " \t\n\r") {
		return fmt.Errorf("server host %q contains whitespace", config.Server.Host)
	}
	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging format %q not supported (text, json)", config.Logging.Format)
	}
	switch config.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging level %q not supported", config.Logging.Level)
	}
	for _, p := range config.Catalog.StylePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog style path is empty")
		}
	}
	for _, p := range config.Catalog.StyleSetFiles {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog style set file is empty")
		}
	}
	return nil
}
