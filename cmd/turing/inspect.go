package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <description>",
	Short: "Describe a machine",
	Long:  `Prints the alphabet, blank, states and rules of a machine as rendered markdown, or the description itself as YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		raw, _ := cmd.Flags().GetBool("raw")
		banner, _ := cmd.Flags().GetBool("banner")

		opts := cli.InspectOptions{YAML: asYAML, Raw: raw}
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			opts.Raw = true
		} else if width, _, err := term.GetSize(fd); err == nil {
			opts.Width = width
		}
		if banner && !opts.YAML {
			tui.PrintBanner(os.Stdout)
		}
		return cli.Inspect(cmd.Context(), sourceOptions(cmd), args[0], opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("yaml", false, "Print the description in the YAML format")
	inspectCmd.Flags().Bool("raw", false, "Print markdown without rendering it")
	inspectCmd.Flags().Bool("banner", false, "Print the banner first")
}
