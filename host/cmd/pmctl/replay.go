package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"gopm/host/monitor"
)

var replayFlags struct {
	db    string
	quiet bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <capture>",
	Short: "Decode a captured PM telemetry stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		out, err := openEventOutput(cmd, replayFlags.db, replayFlags.quiet)
		if err != nil {
			return err
		}

		m := monitor.New(f)
		m.StopOnEOF = true
		m.OnEvent(out.handle)

		runErr := m.Run(cmd.Context())

		stats := m.Stats()
		cmd.PrintErrf("received=%d lost=%d malformed=%d dropped_bytes=%d resets=%d\n",
			stats.Received, stats.Lost, stats.Malformed, stats.Dropped, stats.Resets)
		return errors.Join(runErr, out.close())
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFlags.db, "db", "", "SQLite file to store events in (default from PMCTL_DB)")
	replayCmd.Flags().BoolVarP(&replayFlags.quiet, "quiet", "q", false, "do not print events")
	rootCmd.AddCommand(replayCmd)
}
