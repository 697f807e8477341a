// Package cmd provides the command-line interface for the component engine
// tooling, with configuration from multiple sources in clear precedence:
//
//  1. Command-line flags (--config, --port, etc.) - highest priority
//  2. Individual environment variables (TMCE_SERVER_PORT, etc.)
//  3. Configuration files (.tinymce-components.yml) - lowest priority
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinymce-components",
	Short: "Visual component authoring engine for TinyMCE documents",
	Long: `tinymce-components manages registered HTML components inside an editable
document: a definition catalog, live instances bound to data-prop-*
attributes, placement rules, and a generated properties panel.

Quick Start:
  tinymce-components serve        Start the preview server
  tinymce-components catalog      List registered components
  tinymce-components export FILE  Print a document with engine attributes stripped`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// accept log_level as well as log-level
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tinymce-components.yml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".tinymce-components")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TMCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: cannot read config: %v\n", err)
		}
	}
}
