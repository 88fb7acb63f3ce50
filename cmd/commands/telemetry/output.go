package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"kaylife/kaydash/internal/services/plant"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/spf13/cobra"
)

func outputFormat(cmd *cobra.Command) (string, error) {
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "", "table":
		return "table", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", output)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// openPrimed builds an engine for cmd on a fixed clock, seeds it and applies
// ticks telemetry ticks, one tick interval apart.
func openPrimed(cmd *cobra.Command, ticks int) (*engine.Engine, error) {
	if ticks < 0 {
		return nil, fmt.Errorf("--ticks must not be negative, got %d", ticks)
	}

	start := time.Now().UTC().Truncate(time.Second)
	eng, err := plant.Open(cmd, cmd.ErrOrStderr(), engine.Deps{Clock: func() time.Time { return start }})
	if err != nil {
		return nil, err
	}

	eng.Prime()
	step := eng.Options().TickInterval
	for i := 1; i <= ticks; i++ {
		eng.TickTelemetry(start.Add(time.Duration(i) * step))
	}
	return eng, nil
}
