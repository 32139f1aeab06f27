package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/areavii/av-downloader/internal/config"
)

// YAMLIndent is the indentation of `config show`
const YAMLIndent = 2

// newConfigCmd builds `config show`
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the application settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.NewSettings(newApp())

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(YAMLIndent)
			if err := enc.Encode(settings.View()); err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}
			return enc.Close()
		},
	}

	configCmd.AddCommand(showCmd)
	return configCmd
}
