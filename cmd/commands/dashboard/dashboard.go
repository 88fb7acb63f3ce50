package dashboard

import (
	"fmt"
	"os"

	"kaylife/kaydash/internal/config"
	"kaylife/kaydash/internal/logging"
	"kaylife/kaydash/internal/services/plant"
	"kaylife/kaydash/internal/telemetry/engine"
	"kaylife/kaydash/internal/tui"
	"kaylife/kaydash/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// NewCommand returns the "dashboard" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the live telemetry dashboard",
		Long: `Open the live terminal dashboard.

The dashboard owns the terminal, so logs are discarded unless --log-file
is set. Views: ` + fmt.Sprint(config.Views) + `.

Examples:
  kaydash dashboard
  kaydash dashboard --view electrical
  kaydash dashboard --range 8h --seed 42 --log-file /tmp/kaydash.log`,
		Args:         cobra.NoArgs,
		RunE:         runDashboard,
		SilenceUsage: true,
	}

	cmd.Flags().String("view", "", "Initial view (defaults to the default-view config key)")
	cmd.Flags().String("range", "", "Trend window: "+fmt.Sprint(util.RangeNames()))
	cmd.Flags().String("log-file", "", "Append JSON logs to this file")
	plant.BindFlags(cmd.Flags())

	return cmd
}

// resolveUI merges the view and range flags over the user config.
func resolveUI(cmd *cobra.Command, cfg *config.Config) (tui.DashboardOptions, error) {
	opts := tui.DashboardOptions{View: cfg.View(), Range: cfg.Range()}

	if v, _ := cmd.Flags().GetString("view"); v != "" {
		if err := util.ValidateOneOf("--view", v, config.Views); err != nil {
			return opts, err
		}
		opts.View = util.NormalizeKey(v)
	}
	if r, _ := cmd.Flags().GetString("range"); r != "" {
		rng, err := util.ParseRange(r)
		if err != nil {
			return opts, err
		}
		opts.Range = rng
	}
	return opts, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("dashboard requires an interactive terminal; try \"kaydash telemetry snapshot\"")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ui, err := resolveUI(cmd, cfg)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		level := plant.Level(cfg, plant.SettingsFromFlags(cmd), "info")
		fileLog, closeLog, err := logging.NewFile(level, path)
		if err != nil {
			return err
		}
		defer closeLog()
		log = fileLog
	}

	eng, err := plant.Open(cmd, cmd.ErrOrStderr(), engine.Deps{Logger: log})
	if err != nil {
		return err
	}
	defer eng.Close()

	return tui.RunDashboard(cmd.Context(), eng, ui)
}
