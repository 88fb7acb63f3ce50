package config

import (
	"kaylife/kaydash/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage kaydash configuration",
		Long: "View and modify persistent kaydash settings.\n\n" +
			"Configuration is stored at ~/.config/kaydash/config.json.\n" +
			"Command-line flags override these values.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
