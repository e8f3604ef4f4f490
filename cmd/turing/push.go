package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var pushCmd = &cobra.Command{
	Use:   "push <name> <file>",
	Short: "Publish a description to the source",
	Long: `Validates a description file and stores it under name, in Redis (--source redis)
or in the --dir directory (--source file). The library source is read-only.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger(cmd)
		if err != nil {
			return err
		}
		src := sourceOptions(cmd)
		src.RedisTTL, _ = cmd.Flags().GetDuration("ttl")
		return cli.Push(cmd.Context(), src, args[0], args[1], log)
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().Duration("ttl", 0, "Expire the description after this long (source redis, 0 keeps it)")
}
