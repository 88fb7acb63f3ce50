package telemetry

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"kaylife/kaydash/internal/metrics"
	"kaylife/kaydash/internal/services/plant"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type simulateOutput struct {
	Duration     string           `json:"duration"`
	Frames       int64            `json:"frames"`
	Transitions  int64            `json:"alarm_transitions"`
	ActiveAlarms int              `json:"active_alarms"`
	Metrics      []metrics.Sample `json:"metrics"`
}

// SimulateCommand returns the "telemetry simulate" command.
func SimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the engine in real time and report its metrics",
		Long: `Run both telemetry loops in real time for --duration, then print the
engine's metrics: ticks per loop, series and electrical cells per status,
and alarm transitions per severity.

With --ticks the run is replayed instantly instead: that many telemetry
ticks on a simulated clock, with electrical ticks at their relative rate.
The result depends only on the seed and the intervals.

Examples:
  kaydash telemetry simulate --duration 30s
  kaydash telemetry simulate --duration 5s --tick-interval 200ms -o json
  kaydash telemetry simulate --ticks 1200 --seed 42`,
		Args:         cobra.NoArgs,
		RunE:         runSimulate,
		SilenceUsage: true,
	}

	cmd.Flags().Duration("duration", 30*time.Second, "How long to run")
	cmd.Flags().Int("ticks", 0, "Replay this many telemetry ticks instead of running in real time")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	plant.BindIntervalFlags(cmd.Flags())

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	duration, _ := cmd.Flags().GetDuration("duration")
	if duration <= 0 {
		return fmt.Errorf("--duration must be positive, got %s", duration)
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	if ticks < 0 {
		return fmt.Errorf("--ticks must not be negative, got %d", ticks)
	}

	var start time.Time
	deps := engine.Deps{}
	if ticks > 0 {
		start = time.Now().UTC().Truncate(time.Second)
		deps.Clock = func() time.Time { return start }
	}
	eng, err := plant.Open(cmd, cmd.ErrOrStderr(), deps)
	if err != nil {
		return err
	}
	defer eng.Close()

	var frames atomic.Int64
	unsubscribe := eng.Subscribe(func(engine.Frame) { frames.Add(1) })
	defer unsubscribe()

	if ticks > 0 {
		plant.Replay(eng, start, ticks)
		duration = time.Duration(ticks) * eng.Options().TickInterval
	} else if err := runRealTime(cmd, eng, duration, output); err != nil {
		return err
	}

	samples, err := eng.Metrics().Gather()
	if err != nil {
		return err
	}
	transitions, err := eng.Alarms().Count()
	if err != nil {
		return err
	}

	result := simulateOutput{
		Duration:     duration.String(),
		Frames:       frames.Load(),
		Transitions:  transitions,
		ActiveAlarms: eng.ActiveAlarms(),
		Metrics:      samples,
	}
	if output == "json" {
		return printJSON(cmd, result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Simulated %s: %d frames, %d alarm transitions, %d active alarms (seed %d)\n\n",
		result.Duration, result.Frames, result.Transitions, result.ActiveAlarms, eng.Seed())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METRIC\tLABELS\tVALUE")
	fmt.Fprintln(w, "------\t------\t-----")
	for _, s := range samples {
		labels := s.Labels
		if labels == "" {
			labels = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%g\n", s.Name, labels, s.Value)
	}
	return w.Flush()
}

func runRealTime(cmd *cobra.Command, eng *engine.Engine, duration time.Duration, output string) error {
	run := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()
		return eng.Run(ctx)
	}

	var err error
	if term.IsTerminal(int(os.Stdout.Fd())) && output == "table" {
		err = spinner.New().
			Title(fmt.Sprintf("Simulating %s (seed %d)...", duration, eng.Seed())).
			Accessible(os.Getenv("ACCESSIBLE") != "").
			Output(cmd.ErrOrStderr()).
			ActionWithErr(run).
			Run()
	} else {
		err = run(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	return nil
}
