package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gopm/config"
	"gopm/core"
	"gopm/protocol"
	"gopm/sim"
)

var simulateFlags struct {
	config  string
	steps   int
	seed    uint32
	db      string
	capture string
	quiet   bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the PM core against simulated hardware",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.DefaultSTM32L4Config()
		if simulateFlags.config != "" {
			data, err := os.ReadFile(simulateFlags.config)
			if err != nil {
				return err
			}
			if settings, err = config.LoadConfig(data); err != nil {
				return err
			}
		}

		runner, err := sim.NewRunner(settings.PM, settings.CounterFreq, settings.CounterMax)
		if err != nil {
			return err
		}

		out, err := openEventOutput(cmd, simulateFlags.db, simulateFlags.quiet)
		if err != nil {
			return err
		}

		var capture *os.File
		var writer *protocol.FrameWriter
		if simulateFlags.capture != "" {
			if capture, err = os.Create(simulateFlags.capture); err != nil {
				return errors.Join(err, out.close())
			}
			defer capture.Close()
			writer = protocol.NewFrameWriter(capture)
		}

		var writeErr error
		runner.PM.Telemetry.SetEventSink(func(evt core.Event) {
			out.handle(evt)
			if writer != nil && writeErr == nil {
				writeErr = writer.WriteFrame(evt.Encode)
			}
		})
		runner.PM.Telemetry.SetDebugWriter(func(s string) { cmd.PrintErrln(s) })

		for i, step := range sim.Workload(simulateFlags.steps, simulateFlags.seed) {
			if _, err := runner.Do(step); err != nil {
				return errors.Join(fmt.Errorf("step %d: %w", i, err), out.close())
			}
		}

		hw := runner.HW.Stats()
		cmd.PrintErrf("os_tick=%d slept=%d residual=%d run_mode=%q halts=%d timer_starts=%d clock_changes=%d\n",
			runner.Sys.Tick(), runner.Slept(), runner.PM.Converter().Residual(),
			runner.PM.RunMode().String(), hw.Halts, len(hw.Starts), len(hw.Clocks))

		return errors.Join(writeErr, out.close())
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateFlags.config, "config", "", "JSON PM configuration (default: STM32L4 settings)")
	simulateCmd.Flags().IntVar(&simulateFlags.steps, "steps", 100, "number of workload steps")
	simulateCmd.Flags().Uint32Var(&simulateFlags.seed, "seed", 1, "workload seed")
	simulateCmd.Flags().StringVar(&simulateFlags.db, "db", "", "SQLite file to store events in (default from PMCTL_DB)")
	simulateCmd.Flags().StringVar(&simulateFlags.capture, "capture", "", "write the framed telemetry stream to this file")
	simulateCmd.Flags().BoolVarP(&simulateFlags.quiet, "quiet", "q", false, "do not print events")
	rootCmd.AddCommand(simulateCmd)
}
