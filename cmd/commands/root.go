package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/internal/cli"
)

// closes the log file opened for the running command
var closeLog = func() {}

// NewRootCommand creates the htmlpane command tree. Run without a
// subcommand it opens the interactive editor.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlpane [file]",
		Short: "Edit HTML snippets with a live preview and embed them safely",
		Long: `htmlpane opens a terminal editor for raw HTML/CSS with a live preview.

On insert (ctrl+s) the snippet is wrapped in a sandboxed iframe fragment
that can be dropped into any host page without leaking styles or markup.
The fragment goes to stdout, a file and/or the clipboard.

Examples:
  # Start from scratch
  htmlpane

  # Edit a file and write the fragment next to it
  htmlpane card.html --out card.fragment.html

  # Re-open an existing fragment for editing
  htmlpane --from-fragment embed.html --clipboard

  # Mirror the preview to a file a browser can reload
  htmlpane --preview-file /tmp/preview.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")
			noColor, _ := cmd.Flags().GetBool("no-color")
			yes, _ := cmd.Flags().GetBool("yes")
			cli.SetGlobalFlags(quiet, noColor, yes)

			if _, err := outputFormat(cmd); err != nil {
				return err
			}

			ctx := commandContext(cmd)
			settings := ctx.LoadSettingsWithDefault()
			attachCommandContext(cmd, ctx)
			closeLog = cli.SetupLogging(settings.Log.File)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
		RunE: runEdit,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Settings file (default: ./.htmlpane.yaml, ./.htmlpane.toml, user config dir)")
	flags.StringP("output", "o", "text", "Output format (text, json, yaml)")
	flags.BoolP("quiet", "q", false, "Suppress informational messages")
	flags.Bool("no-color", false, "Disable icons and colors in messages")
	flags.BoolP("yes", "y", false, "Answer yes to every confirmation")

	addOutputFlags(cmd)
	cmd.Flags().String("preview-file", "", "Mirror the live preview to this .html file")
	cmd.Flags().Bool("from-fragment", false, "Treat the input as a fragment and edit the markup inside it")

	cmd.AddCommand(
		NewWrapCommand(),
		NewUnwrapCommand(),
		NewPreviewCommand(),
		NewSearchCommand(),
		NewInitCommand(),
		NewVersionCommand(version),
	)

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of htmlpane",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "htmlpane version %s\n", version)
		},
	}
}
