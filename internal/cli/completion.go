package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for bash, zsh, fish or PowerShell.

Once loaded, dataset arguments complete as file paths, --protocol offers the
built-in presets (codex9, qv7) and --sort offers the sort algorithms
(quick, merge):

  $ shardline run vault.toml --protocol <TAB>
  codex9  qv7

Load for the current shell:
  bash:        source <(shardline completion bash)
  zsh:         source <(shardline completion zsh)
  fish:        shardline completion fish | source
  PowerShell:  shardline completion powershell | Out-String | Invoke-Expression

Install permanently:
  bash:        shardline completion bash > /etc/bash_completion.d/shardline
  zsh:         shardline completion zsh > "${fpath[1]}/_shardline"
  fish:        shardline completion fish > ~/.config/fish/completions/shardline.fish
  PowerShell:  shardline completion powershell > shardline.ps1, then source it from $PROFILE

zsh needs compinit enabled ("autoload -U compinit; compinit" in ~/.zshrc).
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
