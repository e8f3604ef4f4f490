package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "turing [description]",
	Short: "Turing is a single-tape Turing machine simulator",
	Long: `Turing runs deterministic single-tape Turing machines described in a small text format.

Each line read from stdin is a separate input; the final tape is printed per line and the
exit status reports the verdict on the last one (0 accept, 1 reject, 2 usage or definition error).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	closeLog()

	// A plain rejection only sets the exit status.
	var exitErr *cli.ExitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.Err == nil) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing machine descriptions (or the library)")
	rootCmd.PersistentFlags().String("source", cli.SourceFile, "Where descriptions come from: file, redis or library")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (source redis)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database (source redis)")
	rootCmd.PersistentFlags().String("redis-prefix", "turing:", "Redis key prefix (source redis)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
}

// closeLog releases the --log-file handle once the command is done.
var closeLog = func() {}

// sourceOptions reads the persistent source flags.
func sourceOptions(cmd *cobra.Command) cli.SourceOptions {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	source, _ := flags.GetString("source")
	addr, _ := flags.GetString("redis-addr")
	db, _ := flags.GetInt("redis-db")
	prefix, _ := flags.GetString("redis-prefix")
	return cli.SourceOptions{
		Source:      source,
		Dir:         dir,
		RedisAddr:   addr,
		RedisDB:     db,
		RedisPrefix: prefix,
	}
}

// logger builds the logger selected by --log-level and --log-file.
func logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	file, _ := cmd.Flags().GetString("log-file")
	l, closer, err := cli.CreateLogger(level, file)
	if err != nil {
		return logging.NewNop(), err
	}
	closeLog = closer
	return l, nil
}
