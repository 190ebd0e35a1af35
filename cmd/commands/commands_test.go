package commands

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/fragment"
	"github.com/pluqqy/htmlpane/pkg/models"
	"github.com/pluqqy/htmlpane/pkg/preview"
	"github.com/pluqqy/htmlpane/pkg/session"
	"github.com/pluqqy/htmlpane/pkg/testhelpers"
	"github.com/pluqqy/htmlpane/pkg/tui"
)

type testStreams struct {
	status *bytes.Buffer // cli.Stdout
	errors *bytes.Buffer // cli.Stderr
}

// setupCommandTest isolates a test in a temp dir with captured CLI streams
func setupCommandTest(t *testing.T) *testStreams {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	streams := &testStreams{status: &bytes.Buffer{}, errors: &bytes.Buffer{}}
	oldOut, oldErr, oldIn := cli.Stdout, cli.Stderr, cli.Stdin
	cli.Stdout, cli.Stderr = streams.status, streams.errors

	oldStdinTerm, oldStdoutTerm := stdinIsTerminal, stdoutIsTerminal
	stdinIsTerminal = func() bool { return true }
	stdoutIsTerminal = func() bool { return true }

	t.Cleanup(func() {
		cli.Stdout, cli.Stderr, cli.Stdin = oldOut, oldErr, oldIn
		cli.SetGlobalFlags(false, false, false)
		stdinIsTerminal, stdoutIsTerminal = oldStdinTerm, oldStdoutTerm
		log.SetOutput(os.Stderr)
	})
	return streams
}

// execute runs the command tree with stdin and returns what went to stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand("test")
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
}

func TestWrapCommand(t *testing.T) {
	t.Run("stdin to stdout", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "  "+testhelpers.SampleBold+"\n", "wrap")
		require.NoError(t, err)

		testhelpers.AssertIsolatedFragment(t, out, "&lt;b&gt;hi&lt;/b&gt;")
		assert.True(t, strings.HasSuffix(out, "</div>\n"))
	})

	t.Run("file to file", func(t *testing.T) {
		streams := setupCommandTest(t)
		writeFile(t, "card.html", testhelpers.SampleReserved)

		out, err := execute(t, "", "wrap", "card.html", "--out", "dist/card.fragment.html")
		require.NoError(t, err)
		assert.Empty(t, out, "stdout is off once another sink is named")

		data, err := os.ReadFile("dist/card.fragment.html")
		require.NoError(t, err)
		embedded, err := fragment.Unwrap(string(data))
		require.NoError(t, err)
		assert.Equal(t, testhelpers.SampleReserved, embedded.Content)
		assert.Contains(t, streams.status.String(), "Fragment written to dist/card.fragment.html")
	})

	t.Run("clipboard and stdout", func(t *testing.T) {
		setupCommandTest(t)
		var copied string
		old := writeClipboard
		writeClipboard = func(s string) error {
			copied = s
			return nil
		}
		t.Cleanup(func() { writeClipboard = old })

		out, err := execute(t, "<p>x</p>", "wrap", "--clipboard", "--stdout")
		require.NoError(t, err)
		assert.Equal(t, copied+"\n", out)
		assert.Contains(t, copied, "data-html-preview-container")
	})

	t.Run("blank input", func(t *testing.T) {
		streams := setupCommandTest(t)

		_, err := execute(t, " \n\t ", "wrap")
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrEmptyCommit)
		assert.Contains(t, streams.errors.String(), session.EmptyCommitWarning)
	})

	t.Run("missing file", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "", "wrap", "nope.html")
		assert.ErrorContains(t, err, "path does not exist")
	})
}

func TestUnwrapCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, "frag.html", fragment.Wrap(testhelpers.SampleStyled))

		out, err := execute(t, "", "unwrap", "frag.html")
		require.NoError(t, err)
		assert.Equal(t, testhelpers.SampleStyled+"\n", out)
	})

	t.Run("json", func(t *testing.T) {
		setupCommandTest(t)
		frag := fragment.Wrapper{NewID: func() string { return "html-preview-abc1234" }}.Wrap("<p>x</p>")

		out, err := execute(t, frag, "unwrap", "-o", "json")
		require.NoError(t, err)

		var info models.FragmentInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "html-preview-abc1234", info.ID)
		assert.Equal(t, "<p>x</p>", info.Content)
	})

	t.Run("not a fragment", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "<p>plain</p>", "unwrap")
		assert.ErrorIs(t, err, fragment.ErrNotFragment)
	})
}

func TestPreviewCommand(t *testing.T) {
	t.Run("document on stdout", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "  <h1>Title</h1>  ", "preview")
		require.NoError(t, err)
		assert.Equal(t, preview.Document("<h1>Title</h1>")+"\n", out)
	})

	t.Run("blank shows placeholder", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "   ", "preview")
		require.NoError(t, err)
		assert.Equal(t, preview.Placeholder+"\n", out)
	})

	t.Run("to file", func(t *testing.T) {
		streams := setupCommandTest(t)

		out, err := execute(t, "<p>x</p>", "preview", "--file", "out/preview.html")
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile("out/preview.html")
		require.NoError(t, err)
		assert.Equal(t, preview.Document("<p>x</p>"), string(data))
		assert.Contains(t, streams.status.String(), "Preview written to out/preview.html")
	})

	t.Run("failure renders a diagnostic", func(t *testing.T) {
		streams := setupCommandTest(t)
		writeFile(t, ".htmlpane.yaml", "preview:\n  max_bytes: 4\n")

		out, err := execute(t, "<p>too long</p>", "preview")
		require.NoError(t, err)
		assert.Contains(t, out, "Error:")
		assert.Contains(t, streams.errors.String(), "Preview shows an error")
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, "page.html", "<main>\n  <div class=\"a\">one</div>\n</main>\n")

		out, err := execute(t, "", "search", "div", "page.html")
		require.NoError(t, err)

		assert.Contains(t, out, "LINE")
		assert.Contains(t, out, "2  4 ")
		assert.Contains(t, out, "10-13")
		assert.Contains(t, out, "29-32")
		assert.Contains(t, out, `<div class="a">one</div>`)
		assert.Contains(t, out, "Matches: 2 (first is 1/2)")
	})

	t.Run("json with overlapping hits", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "<div><div></div></div>", "search", "div", "-o", "json")
		require.NoError(t, err)

		var report models.SearchReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "div", report.Term)
		assert.Equal(t, "1/4", report.Counter)
		require.Len(t, report.Matches, 4)
		assert.Equal(t, models.MatchInfo{Start: 1, End: 4, Line: 1, Column: 2, Context: "<div><div></div></div>"}, report.Matches[0])
		assert.Equal(t, 18, report.Matches[3].Start)
	})

	t.Run("term is trimmed", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "aXa", "search", "  X ", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "term: X")
		assert.Contains(t, out, "counter: 1/1")
	})

	t.Run("no matches", func(t *testing.T) {
		streams := setupCommandTest(t)

		out, err := execute(t, "abc", "search", "zz")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Contains(t, streams.status.String(), `No matches for "zz"`)
	})

	t.Run("blank term", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "abc", "search", "   ")
		assert.ErrorContains(t, err, "search term cannot be empty")
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("writes yaml defaults", func(t *testing.T) {
		streams := setupCommandTest(t)

		_, err := execute(t, "", "init")
		require.NoError(t, err)

		data, err := os.ReadFile(".htmlpane.yaml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "context_lines: 3")
		assert.Contains(t, streams.status.String(), "Created .htmlpane.yaml")
	})

	t.Run("keeps existing file when declined", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, ".htmlpane.yaml", "search:\n  context_lines: 7\n")
		cli.Stdin = strings.NewReader("n\n")

		_, err := execute(t, "", "init")
		require.NoError(t, err)

		data, err := os.ReadFile(".htmlpane.yaml")
		require.NoError(t, err)
		assert.Equal(t, "search:\n  context_lines: 7\n", string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, ".htmlpane.toml", "junk")

		_, err := execute(t, "", "init", "--format", "toml", "--force")
		require.NoError(t, err)

		data, err := os.ReadFile(".htmlpane.toml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "[search]")
	})

	t.Run("global", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "", "init", "--global")
		require.NoError(t, err)

		dir, err := os.UserConfigDir()
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "htmlpane", "config.yaml"))
	})

	t.Run("bad format", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "", "init", "--format", "ini")
		assert.ErrorContains(t, err, "invalid settings format")
	})
}

// fakeEditor stands in for the terminal UI
type fakeEditor struct {
	opts        tui.Options
	programOpts []tea.ProgramOption
	result      tui.Result
}

func (f *fakeEditor) install(t *testing.T) {
	old := runEditor
	runEditor = func(opts tui.Options, programOpts ...tea.ProgramOption) (tui.Result, error) {
		f.opts = opts
		f.programOpts = programOpts
		return f.result, nil
	}
	t.Cleanup(func() { runEditor = old })
}

func TestEditCommand(t *testing.T) {
	t.Run("commit goes to stdout", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, "card.html", "<p>card</p>")
		editor := &fakeEditor{result: tui.Result{Committed: true, Fragment: "<div>frag</div>"}}
		editor.install(t)

		out, err := execute(t, "", "card.html")
		require.NoError(t, err)
		assert.Equal(t, "<p>card</p>", editor.opts.Initial)
		assert.Equal(t, "<div>frag</div>\n", out)
		assert.Empty(t, editor.programOpts)
	})

	t.Run("cancel delivers nothing", func(t *testing.T) {
		streams := setupCommandTest(t)
		editor := &fakeEditor{}
		editor.install(t)

		out, err := execute(t, "", "--out", "frag.html")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.NoFileExists(t, "frag.html")
		assert.Contains(t, streams.errors.String(), "Cancelled")
		assert.Empty(t, editor.opts.Initial)
	})

	t.Run("piped stdin seeds the buffer", func(t *testing.T) {
		setupCommandTest(t)
		stdinIsTerminal = func() bool { return false }
		editor := &fakeEditor{}
		editor.install(t)

		_, err := execute(t, "<b>piped</b>")
		require.NoError(t, err)
		assert.Equal(t, "<b>piped</b>", editor.opts.Initial)
		assert.Len(t, editor.programOpts, 1, "keys must come from the terminal")
	})

	t.Run("reopen a fragment", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, "embed.html", fragment.Wrap(testhelpers.SampleScript))
		editor := &fakeEditor{}
		editor.install(t)

		_, err := execute(t, "", "--from-fragment", "embed.html")
		require.NoError(t, err)
		assert.Equal(t, testhelpers.SampleScript, editor.opts.Initial)
	})

	t.Run("flags override settings", func(t *testing.T) {
		setupCommandTest(t)
		editor := &fakeEditor{result: tui.Result{Committed: true, Fragment: "F"}}
		editor.install(t)

		out, err := execute(t, "", "--preview-file", "live.html", "--out", "frag.html")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, "live.html", editor.opts.Settings.Preview.File)

		data, err := os.ReadFile("frag.html")
		require.NoError(t, err)
		assert.Equal(t, "F\n", string(data))
	})

	t.Run("bad fragment", func(t *testing.T) {
		setupCommandTest(t)
		writeFile(t, "plain.html", "<p>plain</p>")
		(&fakeEditor{}).install(t)

		_, err := execute(t, "", "--from-fragment", "plain.html")
		assert.ErrorIs(t, err, fragment.ErrNotFragment)
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		setupCommandTest(t)

		out, err := execute(t, "", "version")
		require.NoError(t, err)
		assert.Equal(t, "htmlpane version test\n", out)
	})

	t.Run("invalid output format", func(t *testing.T) {
		setupCommandTest(t)

		_, err := execute(t, "x", "search", "x", "-o", "xml")
		assert.ErrorContains(t, err, "invalid output format")
	})

	t.Run("quiet hides info", func(t *testing.T) {
		streams := setupCommandTest(t)

		_, err := execute(t, "abc", "search", "zz", "--quiet")
		require.NoError(t, err)
		assert.Empty(t, streams.status.String())
	})
}

// chdir switches the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
