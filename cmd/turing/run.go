package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <description>",
	Short: "Run a machine on every line of stdin",
	Long: `Loads the machine description and runs it once per stdin line, printing the final tape.
With --source file the argument may be a path; otherwise it is a machine name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Usage()
			return errors.New("please specify a machine description")
		}
		log, err := logger(cmd)
		if err != nil {
			return err
		}
		traceMode, _ := cmd.Flags().GetBool("trace")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.Run(cmd.Context(), cli.RunOptions{
			Source:  sourceOptions(cmd),
			Machine: args[0],
			Trace:   traceMode,
			JSON:    jsonMode,
			In:      os.Stdin,
			Out:     os.Stdout,
			Err:     os.Stderr,
			Logger:  log,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, c := range []*cobra.Command{runCmd, rootCmd} {
		c.Flags().Bool("trace", false, "Print the configuration at every step to stderr")
		c.Flags().Bool("json", false, "Print one JSON record per input line")
	}

	// `turing machine.tm` behaves like `turing run machine.tm`.
	rootCmd.RunE = runCmd.RunE
}
