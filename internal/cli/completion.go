package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for netgraph.

To load completions:

Bash:
  $ source <(netgraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ netgraph completion bash > /etc/bash_completion.d/netgraph
  # macOS:
  $ netgraph completion bash > $(brew --prefix)/etc/bash_completion.d/netgraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ netgraph completion zsh > "${fpath[1]}/_netgraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ netgraph completion fish | source

  # To load completions for each session, execute once:
  $ netgraph completion fish > ~/.config/fish/completions/netgraph.fish

PowerShell:
  PS> netgraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> netgraph completion powershell > netgraph.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
