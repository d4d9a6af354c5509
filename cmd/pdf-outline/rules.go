// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-outline/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rules table as YAML",
	Long: `Rules prints the heading phrase tables, excluded documents, generator
prefixes and per-document overrides in effect. Save the output, edit it
and pass it back with --rules (or rules_file in the config) to change
classification without rebuilding.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	r, err := rules.Load(viper.GetString("rules_file"))
	if err != nil {
		return err
	}
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
