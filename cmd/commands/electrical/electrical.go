package electrical

import (
	"kaylife/kaydash/internal/services/plant"

	"github.com/spf13/cobra"
)

// NewCommand returns the "electrical" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "electrical",
		Short:        "Inspect the simulated electrical status matrix",
		SilenceUsage: true,
	}

	plant.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(MatrixCommand())

	return cmd
}
