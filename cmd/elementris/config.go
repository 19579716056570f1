package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/elementris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it to ~/.elementris/configs/elementris.yaml or ./configs/elementris.yaml
and edit it to change the board size, fall speed or starting layout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultElementrisYAML())
		return err
	},
}
