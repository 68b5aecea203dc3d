package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// ConfigCmd inspects the effective configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage afiche configuration",
	Long:  `Inspect the configuration resolved from defaults, afiche.toml and AFICHE_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		// Security answers never reach stdout
		redacted := *cfg
		redacted.Auth.Questions = nil
		for _, q := range cfg.Auth.Questions {
			q.Answer = "***"
			redacted.Auth.Questions = append(redacted.Auth.Questions, q)
		}

		output, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format configuration")
		}
		fmt.Println(string(output))
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}
