package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <description>",
	Short: "Export the transition diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the transition table. With --input the states visited by that run are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input *string
		if cmd.Flags().Changed("input") {
			v, _ := cmd.Flags().GetString("input")
			input = &v
		}
		return cli.Graph(cmd.Context(), sourceOptions(cmd), args[0], input, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Run this input and highlight the visited states")
}
