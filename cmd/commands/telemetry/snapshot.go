package telemetry

import (
	"fmt"
	"text/tabwriter"
	"time"

	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/store"
	"kaylife/kaydash/internal/telemetry/weather"

	"github.com/spf13/cobra"
)

type reading struct {
	Series string        `json:"series"`
	Param  string        `json:"param"`
	Label  string        `json:"label"`
	Value  float64       `json:"value"`
	Unit   string        `json:"unit,omitempty"`
	Status domain.Status `json:"status"`
}

type snapshotOutput struct {
	Seed     uint64              `json:"seed"`
	Seq      uint64              `json:"seq"`
	At       time.Time           `json:"at"`
	Readings []reading           `json:"readings"`
	Weather  *weather.Conditions `json:"weather,omitempty"`
}

// SnapshotCommand returns the "telemetry snapshot" command.
func SnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the latest reading of every series",
		Long: `Seed a simulated plant, advance it --ticks times and print the latest
reading of every plant-wide series with its status. --sensors adds the
per-sensor series.

Examples:
  kaydash telemetry snapshot
  kaydash telemetry snapshot --ticks 100 --sensors
  kaydash telemetry snapshot --seed 42 -o json`,
		Args:         cobra.NoArgs,
		RunE:         runSnapshot,
		SilenceUsage: true,
	}

	cmd.Flags().Int("ticks", 0, "Telemetry ticks to apply after seeding")
	cmd.Flags().Bool("sensors", false, "Include per-sensor series")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// collectReadings lists plant-wide series first, then sensors in catalog
// order when withSensors is set.
func collectReadings(c *catalog.Catalog, snap *store.Snapshot, classify func(string, float64) (domain.Status, bool), withSensors bool) []reading {
	var out []reading
	add := func(id domain.SeriesID, label string, p domain.Parameter) {
		sample, ok := snap.Latest(id)
		if !ok {
			return
		}
		status, _ := classify(p.Key, sample.Value)
		out = append(out, reading{
			Series: id.String(),
			Param:  p.Key,
			Label:  label,
			Value:  sample.Value,
			Unit:   p.Unit,
			Status: status,
		})
	}

	for _, p := range c.Parameters {
		add(domain.ParamSeries(p.Key), p.Label, p)
	}
	if withSensors {
		for _, s := range c.Sensors {
			for _, p := range c.Parameters {
				add(domain.SensorSeries(s.ID, p.Key), s.Label+" · "+p.Label, p)
			}
		}
	}
	return out
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	withSensors, _ := cmd.Flags().GetBool("sensors")

	eng, err := openPrimed(cmd, ticks)
	if err != nil {
		return err
	}
	defer eng.Close()

	snap := eng.Snapshot()
	result := snapshotOutput{
		Seed:     eng.Seed(),
		Seq:      snap.Seq,
		At:       snap.At,
		Readings: collectReadings(eng.Catalog(), snap, eng.Classify, withSensors),
	}
	if w, ok := eng.Weather(); ok {
		result.Weather = &w
	}

	if output == "json" {
		return printJSON(cmd, result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot #%d at %s (seed %d)\n\n",
		result.Seq, result.At.Local().Format("2006-01-02 15:04:05"), result.Seed)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SERIES\tLABEL\tVALUE\tUNIT\tSTATUS")
	fmt.Fprintln(w, "------\t-----\t-----\t----\t------")
	for _, r := range result.Readings {
		p, _ := eng.Catalog().Parameter(r.Param)
		unit := r.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Series, r.Label, p.Format(r.Value), unit, r.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if result.Weather != nil {
		wc := result.Weather
		fmt.Fprintf(cmd.OutOrStdout(), "\nWeather: %.0f °C, wind %.0f km/h, rain %.2f mm, humidity %.0f %%, pressure %.0f hPa\n",
			wc.AmbientTemp, wc.Wind, wc.Rain, wc.Humidity, wc.Pressure)
	}
	return nil
}
