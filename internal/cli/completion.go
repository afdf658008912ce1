package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// flagValues lists the fixed values of enum-like flags, with descriptions.
var flagValues = map[string][]string{
	"format": {"svg\tvector image", "png\traster image", "json\tlayout records"},
	"glyphs": {"opentype\tfont outlines", "mono\tblock glyphs, no fonts needed"},
	"plan":   {"area\tquota by region area", "value\tquota by region depth"},
	"angles": {
		"0\thorizontal",
		"1\tmixed horizontal and vertical",
		"2\trandom",
		"3\tdiagonal up",
		"4\tdiagonal down",
		"5\tdiagonal mix",
	},
}

// flagFileTypes restricts file completion for input flags.
var flagFileTypes = map[string][]string{
	"words":  {"json"},
	"mask":   {"json"},
	"field":  {"json"},
	"config": {"toml"},
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for shapewordle.

Load it into the current session:

  $ source <(shapewordle completion bash)
  $ shapewordle completion fish | source

or install it once, e.g. for zsh:

  $ shapewordle completion zsh > "${fpath[1]}/_shapewordle"

Besides commands and flags, the scripts complete option values
(--format, --glyphs, --plan, --angles), JSON inputs and layout files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

// registerCompletions walks the command tree and attaches value completion
// to every flag listed in flagValues or flagFileTypes.
func registerCompletions(cmd *cobra.Command) {
	for name, values := range flagValues {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	for name, exts := range flagFileTypes {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.MarkFlagFilename(name, exts...)
		}
	}
	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}

// completeLayoutFile offers saved layout files as the positional argument.
func completeLayoutFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
