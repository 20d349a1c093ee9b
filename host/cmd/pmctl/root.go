package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"gopm/core"
	"gopm/host/store"
)

// EnvDB names the default event database
const EnvDB = "PMCTL_DB"

var envFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pmctl",
	Short: "pmctl monitors and simulates the power-management back end.",
	Long: `pmctl monitors and simulates the power-management back end. ` +
		`It decodes the telemetry stream the firmware writes to its UART, ` +
		`replays captured streams, and runs the core against simulated hardware.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// defaults for flags come from the environment, optionally from a .env file
		err := godotenv.Load(envFile)
		if err != nil && !(errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file")) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with PMCTL_* environment defaults")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers run on failure too.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

// eventOutput prints events and optionally stores them
type eventOutput struct {
	cmd   *cobra.Command
	quiet bool
	store *store.EventStore
	err   error
}

// openEventOutput opens the event database named by dbPath, or by
// PMCTL_DB when dbPath is empty; no database is used when both are empty
func openEventOutput(cmd *cobra.Command, dbPath string, quiet bool) (*eventOutput, error) {
	out := &eventOutput{cmd: cmd, quiet: quiet}
	if dbPath == "" {
		dbPath = os.Getenv(EnvDB)
	}
	if dbPath == "" {
		return out, nil
	}

	out.store = store.NewEventStore(dbPath)
	if err := out.store.Init(); err != nil {
		return nil, err
	}
	cmd.PrintErrf("storing events in %s (session %s)\n", out.store.Path(), out.store.Session())
	return out, nil
}

func (o *eventOutput) handle(evt core.Event) {
	if !o.quiet {
		fmt.Fprintln(o.cmd.OutOrStdout(), evt.String())
	}
	if o.store != nil && o.err == nil {
		o.err = o.store.Write(evt)
	}
}

func (o *eventOutput) close() error {
	if o.store == nil {
		return o.err
	}
	if err := o.store.Close(); err != nil {
		return err
	}
	return o.err
}
