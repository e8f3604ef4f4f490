package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <description>",
	Short: "Check a machine description",
	Long:  `Parses the description and builds its transition table, reporting the first problem with its line number.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return cli.Validate(cmd.Context(), sourceOptions(cmd), args[0], strict, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat lint warnings as errors")
}
