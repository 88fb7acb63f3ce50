package alarms

import (
	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/database"
	"kaylife/kaydash/internal/services/plant"

	"github.com/spf13/cobra"
)

// NewCommand returns the "alarms" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarms",
		Short: "Simulate a run and inspect its alarm journal",
		Long: "Every status change of a series or electrical cell is journaled with\n" +
			"its severity: critical for entering critical, warning for alert and\n" +
			"info for recoveries.\n\n" +
			"The journal is the default database file unless --db names another\n" +
			"SQLite file. `list --ephemeral` keeps a run in memory.",
		SilenceUsage: true,
	}

	plant.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().String("db", "", "SQLite journal file (default database when empty)")

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}

// openJournal opens the --db journal, or the default database file when
// the flag is empty.
func openJournal(cmd *cobra.Command) (*alarms.SQLiteRepository, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		var err error
		path, err = database.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return alarms.OpenAt(path)
}
