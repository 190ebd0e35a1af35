package commands

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/tui"
)

// swapped out in tests
var (
	runEditor        = tui.Run
	stdoutIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
)

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	settings := ctx.LoadSettingsWithDefault()

	applyOutputFlags(cmd, &settings.Output)
	if cmd.Flags().Changed("preview-file") {
		settings.Preview.File, _ = cmd.Flags().GetString("preview-file")
	}

	var programOpts []tea.ProgramOption
	piped := !stdinIsTerminal()
	if piped {
		// content arrives on stdin, keys come from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	if !stdoutIsTerminal() {
		programOpts = append(programOpts, tea.WithOutput(os.Stderr))
	}

	initial := ""
	if len(args) > 0 || piped {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		initial = input
	}

	if fromFragment, _ := cmd.Flags().GetBool("from-fragment"); fromFragment {
		content, err := seedFromFragment(initial)
		if err != nil {
			return err
		}
		initial = content
	}

	log.Printf("edit: starting session with %d bytes", len(initial))
	result, err := runEditor(tui.Options{
		Initial:  initial,
		Settings: settings,
	}, programOpts...)
	if err != nil {
		return err
	}

	if !result.Committed {
		log.Printf("edit: cancelled")
		cli.PrintWarning("Cancelled, nothing was inserted")
		return nil
	}

	log.Printf("edit: committed %d bytes", len(result.Fragment))
	return deliver(cmd.OutOrStdout(), result.Fragment, settings.Output)
}
