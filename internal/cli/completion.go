package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heft/pkg/resolve"
)

// completionCommand prints a shell completion script. Flag completion for
// weight narrows file suggestions to the extensions each flag accepts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for heft.

File flags complete only matching files: --path offers TypeScript and
JavaScript sources, --graph offers .dot and .svg, --output offers .json.

  $ source <(heft completion bash)
  $ heft completion zsh > "${fpath[1]}/_heft"
  $ heft completion fish > ~/.config/fish/completions/heft.fish
  PS> heft completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerWeightCompletions attaches file filters to weight's path flags.
func registerWeightCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("path", completeExtensions(resolve.DefaultExtensions...))
	_ = cmd.RegisterFlagCompletionFunc("config", completeExtensions(".toml"))
	_ = cmd.RegisterFlagCompletionFunc("graph", completeExtensions(".dot", ".svg"))
	_ = cmd.RegisterFlagCompletionFunc("output", completeExtensions(".json"))
}

// completeExtensions restricts the shell's file completion to exts. Shells
// expect the extensions without their leading dot.
func completeExtensions(exts ...string) cobra.CompletionFunc {
	bare := make([]string, len(exts))
	for i, ext := range exts {
		bare[i] = strings.TrimPrefix(ext, ".")
	}
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return bare, cobra.ShellCompDirectiveFilterFileExt
	}
}
