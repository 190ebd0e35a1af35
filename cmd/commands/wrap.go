package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/pkg/session"
)

// NewWrapCommand creates the wrap command
func NewWrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrap [file]",
		Short: "Wrap markup in a sandboxed iframe fragment",
		Long: `Wrap raw HTML/CSS in a self-contained fragment without opening the editor.

The markup is trimmed, placed in a full document and embedded in a
sandboxed iframe through its srcdoc attribute. Reads stdin when no file
is given (or the file is "-").

Examples:
  # Print the fragment
  htmlpane wrap card.html

  # From a pipe into a file
  cat card.html | htmlpane wrap --out card.fragment.html

  # Straight to the clipboard
  htmlpane wrap card.html --clipboard`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWrap,
	}

	addOutputFlags(cmd)
	return cmd
}

func runWrap(cmd *cobra.Command, args []string) error {
	settings := commandContext(cmd).LoadSettingsWithDefault()
	applyOutputFlags(cmd, &settings.Output)

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var committed string
	ctrl := newHeadlessSession(settings)
	if err := ctrl.Open(input, func(frag string) { committed = frag }); err != nil {
		return err
	}

	if _, err := ctrl.Commit(); err != nil {
		ctrl.Cancel()
		if errors.Is(err, session.ErrEmptyCommit) {
			return fmt.Errorf("input is blank: %w", err)
		}
		return err
	}

	return deliver(cmd.OutOrStdout(), committed, settings.Output)
}
