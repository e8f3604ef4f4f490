package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the machines available from the source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.List(cmd.Context(), sourceOptions(cmd), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
