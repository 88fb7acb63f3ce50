package alarms

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/services/plant"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alarm transitions after a simulated run",
		Long: `Seed a plant, apply --ticks telemetry ticks (and electrical ticks at
their relative rate) and list the journaled transitions, newest first.

Each run is appended to the default database, or to --db, so later runs
and "alarms prune" see it. --ticks 0 lists the journal without
simulating. --ephemeral keeps the run in memory and writes nothing.

Examples:
  kaydash alarms list
  kaydash alarms list --ticks 1000 --severity critical
  kaydash alarms list --subject farm-3/gm1
  kaydash alarms list --db alarms.db --ticks 0 -o json
  kaydash alarms list --ephemeral --seed 7`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("ticks", 500, "Telemetry ticks to simulate")
	cmd.Flags().Int("limit", 25, "Number of events to display")
	cmd.Flags().String("severity", "", "Filter by severity: info, warning or critical")
	cmd.Flags().String("subject", "", "Filter by series id or farm/circuit cell")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().Bool("ephemeral", false, "Journal this run in memory only")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	if ticks < 0 {
		return fmt.Errorf("--ticks must not be negative, got %d", ticks)
	}
	severity, _ := cmd.Flags().GetString("severity")
	if severity != "" && !alarms.ValidSeverity(severity) {
		return fmt.Errorf("unknown severity %q (valid: info, warning, critical)", severity)
	}
	subject, _ := cmd.Flags().GetString("subject")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	dbPath, _ := cmd.Flags().GetString("db")
	if ephemeral && dbPath != "" {
		return fmt.Errorf("--ephemeral and --db cannot be used together")
	}

	var (
		repo *alarms.SQLiteRepository
		err  error
	)
	if ephemeral {
		repo, err = alarms.OpenMemory()
	} else {
		repo, err = openJournal(cmd)
	}
	if err != nil {
		return err
	}
	defer repo.Close()

	if ticks > 0 || ephemeral {
		var start time.Time
		eng, err := plant.Open(cmd, cmd.ErrOrStderr(), engine.Deps{
			Alarms: repo,
			Clock:  func() time.Time { return start },
		})
		if err != nil {
			return err
		}
		// The replayed run ends now, so its events are never in the future.
		span := time.Duration(ticks) * eng.Options().TickInterval
		start = time.Now().UTC().Truncate(time.Second).Add(-span)
		plant.Replay(eng, start, ticks)
		if err := eng.Close(); err != nil {
			return err
		}
	}

	var events []alarms.Event
	switch {
	case severity != "":
		events, err = repo.ListBySeverity(severity, limit)
	case subject != "":
		events, err = repo.ListBySubject(subject, limit)
	default:
		events, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No alarm transitions found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSEVERITY\tSOURCE\tSUBJECT\tLABEL\tTRANSITION\tVALUE")
	fmt.Fprintln(w, "----\t--------\t------\t-------\t-----\t----------\t-----")
	for _, e := range events {
		value := "-"
		if e.Source == alarms.SourceTelemetry {
			value = fmt.Sprintf("%.2f %s", e.Value, e.Unit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s → %s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Severity,
			e.Source,
			e.Subject,
			e.Label,
			e.Previous,
			e.Current,
			value,
		)
	}
	return w.Flush()
}
