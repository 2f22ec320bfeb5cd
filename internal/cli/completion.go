package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for justify.

To load completions:

Bash:
  $ source <(justify completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ justify completion bash > /etc/bash_completion.d/justify
  # macOS:
  $ justify completion bash > $(brew --prefix)/etc/bash_completion.d/justify

Zsh:
  $ justify completion zsh > "${fpath[1]}/_justify"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ justify completion fish | source

  # To load completions for each session, execute once:
  $ justify completion fish > ~/.config/fish/completions/justify.fish

PowerShell:
  PS> justify completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// manifestCompletion completes gallery manifest files.
func manifestCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// formatCompletion completes the --format flag.
func formatCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}
