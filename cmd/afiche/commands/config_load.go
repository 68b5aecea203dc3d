package commands

import (
	"github.com/spf13/cobra"

	"github.com/DANIELNAHUN/afiche-generator/config"
)

// loadConfig resolves configuration for a command run, honoring the
// --config flag when present.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
