package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gopm/host/monitor"
	"gopm/host/serial"
)

var monitorFlags struct {
	device string
	baud   int
	db     string
	quiet  bool
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Decode live PM telemetry from the firmware's serial port",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := serial.ConfigFromEnv()
		if cmd.Flags().Changed("device") {
			cfg.Device = monitorFlags.device
		}
		if cmd.Flags().Changed("baud") {
			cfg.Baud = monitorFlags.baud
		}

		port, err := serial.Open(cfg)
		if err != nil {
			return err
		}
		defer port.Close()

		out, err := openEventOutput(cmd, monitorFlags.db, monitorFlags.quiet)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		m := monitor.New(port)
		m.OnEvent(out.handle)

		cmd.PrintErrf("monitoring %s at %d baud, Ctrl-C to stop\n", cfg.Device, cfg.Baud)
		runErr := m.Run(ctx)

		stats := m.Stats()
		cmd.PrintErrf("received=%d lost=%d malformed=%d dropped_bytes=%d resets=%d\n",
			stats.Received, stats.Lost, stats.Malformed, stats.Dropped, stats.Resets)

		if errors.Is(runErr, context.Canceled) {
			runErr = nil
		}
		return errors.Join(runErr, out.close())
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorFlags.device, "device", "/dev/ttyACM0", "serial device path (default from PMCTL_DEVICE)")
	monitorCmd.Flags().IntVar(&monitorFlags.baud, "baud", 115200, "baud rate (default from PMCTL_BAUD)")
	monitorCmd.Flags().StringVar(&monitorFlags.db, "db", "", "SQLite file to store events in (default from PMCTL_DB)")
	monitorCmd.Flags().BoolVarP(&monitorFlags.quiet, "quiet", "q", false, "do not print events")
	rootCmd.AddCommand(monitorCmd)
}
