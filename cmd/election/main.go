package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"election-admin/config"
	"election-admin/logging"
)

var rootCmd = &cobra.Command{
	Use:           "election",
	Short:         "election administration console",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().Var(&flagLogLevel, "log-level", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Var(&flagLogFormat, "log-format", "log format: terminal, json")
}

// loadConfig applies the command line flags on top of the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		c.Log.Level = flagLogLevel.String()
	}
	if cmd.Flags().Changed("log-format") {
		c.Log.Format = flagLogFormat.String()
	}

	return c, c.IsValid()
}

func newLogger(c *config.Config) (zerolog.Logger, error) {
	return logging.New(os.Stderr, c.Log.Level, c.Log.Format)
}
