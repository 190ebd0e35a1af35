package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/buffer"
	"github.com/pluqqy/htmlpane/pkg/models"
)

// context column width in text output
const searchContextWidth = 60

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term> [file]",
		Short: "List literal matches of a term in markup",
		Long: `Search markup the way the editor does: literal, case-sensitive, with
overlapping matches. The term is trimmed first.

Examples:
  # Where is the card class used?
  htmlpane search 'class="card"' page.html

  # From a pipe, as JSON
  cat page.html | htmlpane search div -o json`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateSearchTerm(args[0])
		},
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	settings := commandContext(cmd).LoadSettingsWithDefault()

	input, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	ctrl := newHeadlessSession(settings)
	if err := ctrl.Open(input, nil); err != nil {
		return err
	}
	defer ctrl.Cancel()

	state, err := ctrl.Search(args[0])
	if err != nil {
		return err
	}

	lines := strings.Split(input, "\n")
	report := models.SearchReport{
		Term:    state.Term,
		Counter: state.Counter(),
		Matches: make([]models.MatchInfo, 0, len(state.Matches)),
	}
	for _, m := range state.Matches {
		line, col := buffer.Position(input, m.Start)
		report.Matches = append(report.Matches, models.MatchInfo{
			Start:   m.Start,
			End:     m.End,
			Line:    line + 1,
			Column:  col + 1,
			Context: cli.OneLine(lines[line]),
		})
	}

	switch format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, report)
	default:
		return outputSearchText(cmd, report)
	}
}

func outputSearchText(cmd *cobra.Command, report models.SearchReport) error {
	if len(report.Matches) == 0 {
		cli.PrintInfo("No matches for %q", report.Term)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("LINE", "COL", "OFFSET", "CONTEXT")
	for _, m := range report.Matches {
		table.Row(
			fmt.Sprint(m.Line),
			fmt.Sprint(m.Column),
			fmt.Sprintf("%d-%d", m.Start, m.End),
			cli.TruncateString(m.Context, searchContextWidth),
		)
	}
	table.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nMatches: %d (first is %s)\n", len(report.Matches), report.Counter)
	return nil
}
