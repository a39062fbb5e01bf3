package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectionflow/pkg/layout"
)

// completionShells are the shells cobra can generate scripts for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a completion script for the given shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Completions cover subcommands, flags and the --alignment values.

Try it in the current shell:
  source <(sectionflow completion bash)
  sectionflow completion fish | source

Install it for your user:
  sectionflow completion bash > ~/.local/share/bash-completion/completions/sectionflow
  sectionflow completion zsh  > ~/.zsh/completions/_sectionflow   # a directory on $fpath
  sectionflow completion fish > ~/.config/fish/completions/sectionflow.fish
  sectionflow completion powershell >> $PROFILE`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(stdout, true)
			case "zsh":
				return root.GenZshCompletion(stdout)
			case "fish":
				return root.GenFishCompletion(stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(stdout)
			}
		},
	}
}

// registerAlignmentCompletion completes --alignment with the row alignments.
func registerAlignmentCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("alignment", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{
			layout.AlignLeading.String(),
			layout.AlignCenter.String(),
			layout.AlignTrailing.String(),
		}, cobra.ShellCompDirectiveNoFileComp
	})
}
