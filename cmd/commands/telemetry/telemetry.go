package telemetry

import (
	"kaylife/kaydash/internal/services/plant"

	"github.com/spf13/cobra"
)

// NewCommand returns the "telemetry" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect and simulate water-quality telemetry",
		Long: `Inspect the parameter catalog, classify readings and run the telemetry
engine without the dashboard.

Every command builds a fresh simulated plant. Use --seed for
reproducible output.`,
		SilenceUsage: true,
	}

	plant.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(ParamsCommand())
	cmd.AddCommand(ClassifyCommand())
	cmd.AddCommand(SnapshotCommand())
	cmd.AddCommand(SeriesCommand())
	cmd.AddCommand(SimulateCommand())

	return cmd
}
