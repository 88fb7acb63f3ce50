package cmd

import (
	"os"

	"kaylife/kaydash/cmd/commands/alarms"
	cfgcmd "kaylife/kaydash/cmd/commands/config"
	"kaylife/kaydash/cmd/commands/dashboard"
	"kaylife/kaydash/cmd/commands/electrical"
	"kaylife/kaydash/cmd/commands/telemetry"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "kaydash",
		Short: "Live telemetry dashboard for the Kaylife aquaculture plant",
		Long: `kaydash simulates the water-quality and electrical telemetry of an
aquaculture plant and shows it in a live terminal dashboard.

Every series follows a bounded random walk and is classified against its
parameter's normal band: ok inside the band, alert near it, critical far
outside. Status changes are recorded in an alarm journal.

Engine commands accept --profile, --history, --seed and --log-level.

Quick start:
  kaydash dashboard                        # Live TUI
  kaydash telemetry snapshot --sensors     # Latest readings, one shot
  kaydash telemetry series --param ph --plot
  kaydash alarms list --ticks 500          # Transitions after a simulated run`,
	}

	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(telemetry.NewCommand())
	cmd.AddCommand(electrical.NewCommand())
	cmd.AddCommand(alarms.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
