package telemetry

import (
	"fmt"
	"text/tabwriter"

	"kaylife/kaydash/internal/telemetry/classify"

	"github.com/spf13/cobra"
)

// ParamsCommand returns the "telemetry params" command.
func ParamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the tracked parameters and their bands",
		Long: `List every tracked parameter with its normal band [min, max] and the
alert tolerance either side of it.

Examples:
  kaydash telemetry params
  kaydash telemetry params --profile plant.yaml -o json`,
		Args:         cobra.NoArgs,
		RunE:         runParams,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runParams(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	eng, err := openPrimed(cmd, 0)
	if err != nil {
		return err
	}
	defer eng.Close()

	params := eng.Parameters()
	if output == "json" {
		return printJSON(cmd, params)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tUNIT\tMIN\tMAX\tTOLERANCE")
	fmt.Fprintln(w, "---\t-----\t----\t---\t---\t---------")
	for _, p := range params {
		unit := p.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t±%s\n",
			p.Key,
			p.Label,
			unit,
			p.Format(p.Min),
			p.Format(p.Max),
			p.Format(classify.Tolerance(p)),
		)
	}
	return w.Flush()
}
