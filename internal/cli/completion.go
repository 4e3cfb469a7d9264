package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cliques.

To load completions:

Bash:
  $ source <(cliques completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ cliques completion bash > /etc/bash_completion.d/cliques
  # macOS:
  $ cliques completion bash > $(brew --prefix)/etc/bash_completion.d/cliques

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cliques completion zsh > "${fpath[1]}/_cliques"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cliques completion fish | source

  # To load completions for each session, execute once:
  $ cliques completion fish > ~/.config/fish/completions/cliques.fish

PowerShell:
  PS> cliques completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> cliques completion powershell > cliques.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
