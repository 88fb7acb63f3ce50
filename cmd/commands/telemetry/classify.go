package telemetry

import (
	"fmt"
	"math"
	"strings"

	"kaylife/kaydash/internal/telemetry/classify"
	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/spf13/cobra"
)

type classification struct {
	Param  string        `json:"param"`
	Value  float64       `json:"value"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
	Status domain.Status `json:"status"`
	Binary domain.Status `json:"binary"`
}

// ClassifyCommand returns the "telemetry classify" command.
func ClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a reading against its parameter's band",
		Long: `Classify a single reading as ok, alert or critical.

Readings inside [min, max] are ok. Readings outside the band but within
10% of its width are alert; anything further out is critical. The binary
status collapses alert into critical, as the sensor overview does.

Examples:
  kaydash telemetry classify --param ph --value 9.5
  kaydash telemetry classify --param o2 --value 3.8 -o json`,
		Args:         cobra.NoArgs,
		RunE:         runClassify,
		SilenceUsage: true,
	}

	cmd.Flags().String("param", "", "Parameter key (required)")
	cmd.Flags().Float64("value", math.NaN(), "Reading to classify (required)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("param")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	key, _ := cmd.Flags().GetString("param")
	value, _ := cmd.Flags().GetFloat64("value")
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("--value must be a finite number")
	}

	eng, err := openPrimed(cmd, 0)
	if err != nil {
		return err
	}
	defer eng.Close()

	status, ok := eng.Classify(key, value)
	if !ok {
		keys := make([]string, 0, len(eng.Parameters()))
		for _, p := range eng.Parameters() {
			keys = append(keys, p.Key)
		}
		return fmt.Errorf("unknown parameter %q (valid: %s)", key, strings.Join(keys, ", "))
	}

	p, _ := eng.Catalog().Parameter(key)
	result := classification{
		Param:  p.Key,
		Value:  value,
		Min:    p.Min,
		Max:    p.Max,
		Status: status,
		Binary: classify.Binary(status),
	}
	if output == "json" {
		return printJSON(cmd, result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (band %s–%s, binary %s)\n",
		p.Label,
		p.FormatWithUnit(value),
		status,
		p.Format(p.Min),
		p.Format(p.Max),
		result.Binary,
	)
	return nil
}
