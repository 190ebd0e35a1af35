package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/files"
	"github.com/pluqqy/htmlpane/pkg/fragment"
	"github.com/pluqqy/htmlpane/pkg/models"
	"github.com/pluqqy/htmlpane/pkg/session"
)

// swapped out in tests
var (
	writeClipboard  = clipboard.WriteAll
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
)

type commandContextKey struct{}

// commandContext returns the settings context attached by the root
// command, or builds one from the --config flag
func commandContext(cmd *cobra.Command) *cli.CommandContext {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(commandContextKey{}).(*cli.CommandContext); ok {
			return c
		}
	}

	path := ""
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}
	return cli.NewCommandContext(path)
}

// attachCommandContext makes c visible to the command's RunE
func attachCommandContext(cmd *cobra.Command, c *cli.CommandContext) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, commandContextKey{}, c))
}

// outputFormat returns the validated --output flag
func outputFormat(cmd *cobra.Command) (string, error) {
	format := string(cli.FormatText)
	if f := cmd.Flag("output"); f != nil {
		format = f.Value.String()
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// readInput reads the markup named by args, or piped stdin
func readInput(cmd *cobra.Command, args []string) (string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if err := cli.ValidateFilePath(path); err != nil {
		return "", err
	}
	return files.ReadSource(path, cmd.InOrStdin())
}

// headlessSurface hosts a session without a terminal UI. Selection and
// focus have nowhere to go; warnings are printed.
type headlessSurface struct{}

func (headlessSurface) Select(start, end int) {}
func (headlessSurface) ScrollTo(line int)     {}
func (headlessSurface) Focus()                {}

func (headlessSurface) Warn(message string) {
	cli.PrintWarning("%s", message)
}

func newHeadlessSession(settings *models.Settings) *session.Controller {
	return session.New(session.Config{
		Surface:      headlessSurface{},
		MaxBytes:     settings.Preview.MaxBytes,
		ContextLines: settings.Search.ContextLines,
	})
}

// deliver hands a committed fragment to every configured sink
func deliver(w io.Writer, frag string, out models.OutputSettings) error {
	if out.Stdout {
		fmt.Fprintln(w, frag)
	}

	// keep stdout clean when the fragment itself goes there
	notify := func(format string, args ...interface{}) {
		if !out.Stdout {
			cli.PrintSuccess(format, args...)
		}
	}

	if out.File != "" {
		if err := files.WriteFile(out.File, frag+"\n"); err != nil {
			return err
		}
		notify("Fragment written to %s", out.File)
	}

	if out.Clipboard {
		if err := writeClipboard(frag); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		notify("Fragment copied to clipboard (%s)", cli.FormatBytes(int64(len(frag))))
	}

	return nil
}

// seedFromFragment replaces a fragment with the markup embedded in it
func seedFromFragment(input string) (string, error) {
	embedded, err := fragment.Unwrap(input)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap fragment: %w", err)
	}
	return embedded.Content, nil
}

// applyOutputFlags overrides the output settings from --out, --clipboard
// and --stdout. Naming a sink turns stdout off unless asked for.
func applyOutputFlags(cmd *cobra.Command, out *models.OutputSettings) {
	flags := cmd.Flags()

	if flags.Changed("out") {
		out.File, _ = flags.GetString("out")
	}
	if flags.Changed("clipboard") {
		out.Clipboard, _ = flags.GetBool("clipboard")
	}

	switch {
	case flags.Changed("stdout"):
		out.Stdout, _ = flags.GetBool("stdout")
	case flags.Changed("out") || flags.Changed("clipboard"):
		out.Stdout = false
	}
}

// addOutputFlags registers the delivery flags
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "f", "", "Write the fragment to this file")
	cmd.Flags().Bool("clipboard", false, "Copy the fragment to the system clipboard")
	cmd.Flags().Bool("stdout", true, "Print the fragment to stdout")
}
