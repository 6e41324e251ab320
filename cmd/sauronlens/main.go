package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ja7ad/sauron/pkg/aggregate"
)

func main() {
	root := &cobra.Command{
		Use:   "sauronlens [log-file]",
		Short: "Replay sauron process logs into per-process statistics",
		Long: `Sauronlens reads the rotating text logs written by the sauron daemon
and folds them into per-process aggregate statistics: sample count,
average, min/max (with timestamps) and latest CPU and memory usage.

Reads the given log file, or standard input when data is piped in.
Malformed lines (torn writes from an interrupted daemon) are skipped.

Examples:
  sauronlens /var/log/sauron/process.log
  cat process.log.2 process.log.1 process.log | sauronlens`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var in io.Reader

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		in = f
	} else {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return errors.New("no log file given and stdin is a terminal; pass a path or pipe log data")
		}
		in = os.Stdin
	}

	agg := aggregate.New()
	if err := agg.Run(in); err != nil {
		return fmt.Errorf("process logs: %w", err)
	}
	agg.Report(cmd.OutOrStdout())
	return nil
}
