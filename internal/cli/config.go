package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/config"
)

// configCommand creates the config command, which prints the effective
// configuration after flags and arguments are applied.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config [counts...]",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration netgraph would use, as TOML. The output is a
valid config file: redirect it to the default path to start customizing.

  netgraph config > "$(netgraph config --path)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := c.configPath
				if path == "" {
					p, err := config.DefaultPath()
					if err != nil {
						return err
					}
					path = p
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}
			cfg, err := c.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path instead")

	return cmd
}
