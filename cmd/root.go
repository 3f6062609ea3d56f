// Package cmd provides the command-line interface for neptune-export.
//
// This package implements a cobra-based CLI with commands for:
//   - apply-profile: Normalise export arguments for a NeptuneML data model
//   - query: Run a Gremlin query against a Neptune cluster
//   - version: Display version and build information
//
// The CLI supports configuration via:
//   - Command-line flags
//   - Configuration files (YAML format)
//   - Environment variables prefixed with NEPTUNE_EXPORT_
//
// Configuration File Locations:
//   - Specified via --config flag
//   - $HOME/.neptune-export.yaml (default)
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile holds the path to the configuration file
	cfgFile string

	// logger is shared by every command and handed to the connection factory
	logger = logrus.New()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "neptune-export",
		Short: "Export tooling for Amazon Neptune",
		Long: `neptune-export prepares and runs exports from Amazon Neptune clusters.

It can:
  - Normalise export arguments for NeptuneML property graph or RDF training data
  - Validate NeptuneML training targets
  - Open IAM-signed Gremlin connections, directly or through a load balancer

Use "neptune-export query --help" to run a query against a cluster.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return configureLogger(viper.GetBool("debug"), viper.GetString("log-format"))
		},
	}
)

// Execute executes the root command and returns any error that occurs.
// This is the main entry point for the CLI application.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger.SetOutput(os.Stderr)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.neptune-export.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "log format, one of 'text' or 'json'")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	viper.SetDefault("log-format", "text")
}

// initConfig reads in config file and environment variables if set.
// This function is called during cobra initialization before command execution.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".neptune-export")
	}

	viper.SetEnvPrefix("NEPTUNE_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

func configureLogger(debug bool, format string) error {
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q, expected 'text' or 'json'", format)
	}

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return nil
}
