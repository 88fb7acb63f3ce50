package telemetry

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"kaylife/kaydash/internal/telemetry/classify"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/tui"
	"kaylife/kaydash/internal/tui/components"
	"kaylife/kaydash/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// plotWidth is the width of --plot output.
const plotWidth = 72

type seriesOutput struct {
	Series  string          `json:"series"`
	Param   string          `json:"param"`
	Unit    string          `json:"unit,omitempty"`
	Range   string          `json:"range"`
	Samples []domain.Sample `json:"samples"`
}

// SeriesCommand returns the "telemetry series" command.
func SeriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the seeded history of one series",
		Long: `Print the samples of one series within a time range. History is
seeded one sample per minute, so ranges longer than --history are
clipped.

Without --param on a terminal, a picker asks for the parameter and
sensor.

Examples:
  kaydash telemetry series --param ph
  kaydash telemetry series --param o2 --sensor sensor-3 --range 4h --plot
  kaydash telemetry series --param temp -o json`,
		Args:         cobra.NoArgs,
		RunE:         runSeries,
		SilenceUsage: true,
	}

	cmd.Flags().String("param", "", "Parameter key")
	cmd.Flags().String("sensor", "", "Sensor id (plant-wide when empty)")
	cmd.Flags().String("range", util.Ranges[0].Name, "Time range: "+fmt.Sprint(util.RangeNames()))
	cmd.Flags().Bool("plot", false, "Draw an ASCII plot instead of a table")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runSeries(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	rangeFlag, _ := cmd.Flags().GetString("range")
	rng, err := util.ParseRange(rangeFlag)
	if err != nil {
		return err
	}
	plot, _ := cmd.Flags().GetBool("plot")
	param, _ := cmd.Flags().GetString("param")
	sensor, _ := cmd.Flags().GetString("sensor")

	eng, err := openPrimed(cmd, 0)
	if err != nil {
		return err
	}
	defer eng.Close()
	c := eng.Catalog()

	if param == "" {
		if !term.IsTerminal(int(os.Stdout.Fd())) || cmd.Flags().Changed("output") {
			return fmt.Errorf("--param is required when not running interactively")
		}
		param, sensor, err = tui.PickSeries(c)
		if errors.Is(err, tui.ErrPickAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	p, ok := c.Parameter(param)
	if !ok {
		return fmt.Errorf("unknown parameter %q", param)
	}
	id := domain.ParamSeries(p.Key)
	label := p.Label
	if sensor != "" {
		s, ok := c.Sensor(sensor)
		if !ok {
			return fmt.Errorf("unknown sensor %q", sensor)
		}
		id = domain.SensorSeries(s.ID, p.Key)
		label = s.Label + " · " + p.Label
	}

	samples := eng.Snapshot().Window(id, rng.Duration)

	if output == "json" {
		return printJSON(cmd, seriesOutput{
			Series:  id.String(),
			Param:   p.Key,
			Unit:    p.Unit,
			Range:   rng.Name,
			Samples: samples,
		})
	}

	if plot {
		fmt.Fprintln(cmd.OutOrStdout(), components.Plot(fmt.Sprintf("%s, last %s", label, rng.Name), p, samples.Values(), plotWidth, components.PlotHeight))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tVALUE\tSTATUS")
	fmt.Fprintln(w, "----\t-----\t------")
	for _, s := range samples {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			s.Timestamp.Local().Format(time.DateTime),
			p.FormatWithUnit(s.Value),
			classify.Classify(p, s.Value),
		)
	}
	return w.Flush()
}
