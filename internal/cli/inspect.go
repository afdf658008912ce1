package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapewordle/pkg/io"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// inspectCommand creates the inspect command for examining a saved layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Show how each region of a layout was filled",
		Long: `Show how each region of a layout was filled.

Prints the canvas summary and one row per region: its area, keyword quota
and total weight, the number of anchor points, and how many keywords were
placed. Regions that fell back to an earlier placement are highlighted.

With --interactive, browse the regions and their anchor points.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := io.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(NewRegionListModel(l.Regions), tea.WithAltScreen()).Run()
				return err
			}
			printLayoutSummary(l)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse regions interactively")

	return cmd
}

// printLayoutSummary prints the canvas parameters and the region table.
func printLayoutSummary(l wordle.Layout) {
	printKeyValue("Canvas", fmt.Sprintf("%d×%d", l.Width, l.Height))
	printKeyValue("Seed", fmt.Sprintf("%d", l.Seed))
	printKeyValue("Max font", fmt.Sprintf("%d", l.MaxFontSize))
	printKeyValue("Keywords", fmt.Sprintf("%d", len(l.Keywords)))
	printKeyValue("Fillings", fmt.Sprintf("%d", len(l.Fillings)))
	if len(l.Regions) == 0 {
		printNewline()
		printInfo("Layout carries no region reports")
		return
	}
	printNewline()
	fmt.Println(regionTable(l.Regions))

	rolledBack := 0
	for _, r := range l.Regions {
		if r.RolledBack {
			rolledBack++
		}
	}
	if rolledBack > 0 {
		printWarning("%d region(s) kept an earlier placement", rolledBack)
	}
}
