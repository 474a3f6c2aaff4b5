package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print the effective config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// the default password is only a seed; never echo it.
		c.Admin.Password = "<redacted>"

		b, err := yaml.Marshal(c)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimSpace(b)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
