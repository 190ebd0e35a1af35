package session

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/htmlpane/pkg/fragment"
	"github.com/pluqqy/htmlpane/pkg/preview"
	"github.com/pluqqy/htmlpane/pkg/search"
	"github.com/pluqqy/htmlpane/pkg/testhelpers"
)

type fixture struct {
	ctrl    *Controller
	surface *testhelpers.RecordingSurface
	target  *preview.MemoryTarget
	commits *testhelpers.CommitRecorder
}

func newFixture(t *testing.T, mutate ...func(*Config)) *fixture {
	t.Helper()

	f := &fixture{
		surface: testhelpers.NewRecordingSurface(),
		commits: &testhelpers.CommitRecorder{},
	}
	cfg := Config{
		Surface: f.surface,
		Targets: func() (preview.Target, error) {
			f.target = preview.NewMemoryTarget()
			return f.target, nil
		},
		Wrapper: fragment.Wrapper{NewID: func() string { return "html-preview-test001" }},
		Logger:  log.New(&bytes.Buffer{}, "", 0),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	f.ctrl = New(cfg)
	return f
}

func TestOpen_RendersInitialContent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Open("<b>hi</b>", f.commits.Func()))

	assert.True(t, f.ctrl.IsOpen())
	assert.Equal(t, StatusOpen, f.ctrl.Status())
	assert.Equal(t, 1, f.target.Writes())
	assert.Contains(t, f.target.Document(), "<b>hi</b>")
	assert.Equal(t, "0/0", f.ctrl.Counter())
}

func TestOpen_Twice(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("", nil))

	assert.ErrorIs(t, f.ctrl.Open("x", nil), ErrAlreadyOpen)
}

func TestOpen_TargetFailure(t *testing.T) {
	f := newFixture(t, func(c *Config) {
		c.Targets = func() (preview.Target, error) {
			return nil, errors.New("no display")
		}
	})

	err := f.ctrl.Open("x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	assert.False(t, f.ctrl.IsOpen())
}

func TestEdit_RefreshesEveryTime(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("", nil))
	assert.Equal(t, preview.Placeholder, f.target.Document())

	require.NoError(t, f.ctrl.Edit("<p>a</p>"))
	require.NoError(t, f.ctrl.Edit("<p>ab</p>"))
	require.NoError(t, f.ctrl.Edit("<p>ab</p>"))

	assert.Equal(t, 4, f.target.Writes(), "no debouncing or caching: every edit re-renders")
	assert.Contains(t, f.target.Document(), "<p>ab</p>")
	assert.Equal(t, "<p>ab</p>", f.ctrl.Text())
	assert.Equal(t, uint64(2), f.ctrl.Revision())
}

func TestRenderFailureDoesNotBreakSession(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.MaxBytes = 10 })
	require.NoError(t, f.ctrl.Open("", nil))

	require.NoError(t, f.ctrl.Edit("<p>far too long</p>"))
	assert.ErrorIs(t, f.ctrl.RenderError(), preview.ErrTooLarge)
	assert.Contains(t, f.target.Document(), "Error:")
	assert.True(t, f.ctrl.IsOpen())

	require.NoError(t, f.ctrl.Edit("<i>ok</i>"))
	assert.NoError(t, f.ctrl.RenderError())
}

func TestSearch_ContextLines(t *testing.T) {
	text := "l0\nl1\nl2\nl3\nl4\nhit\n"
	tests := []struct {
		name         string
		contextLines int
		wantScroll   int
	}{
		{"zero puts the match on top", 0, 5},
		{"explicit", 1, 4},
		{"negative falls back to the default", -1, 5 - search.DefaultContextLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(c *Config) { c.ContextLines = tt.contextLines })
			require.NoError(t, f.ctrl.Open(text, nil))

			_, err := f.ctrl.Search("hit")
			require.NoError(t, err)
			require.NotEmpty(t, f.surface.Scrolls)
			assert.Equal(t, tt.wantScroll, f.surface.Scrolls[len(f.surface.Scrolls)-1])
		})
	}
}

func TestSearchFlow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("ababa", nil))

	state, err := f.ctrl.Search("aba")
	require.NoError(t, err)
	assert.Equal(t, []search.Match{{Start: 0, End: 3}, {Start: 2, End: 5}}, state.Matches)
	assert.Equal(t, "1/2", f.ctrl.Counter())
	assert.Equal(t, testhelpers.Selection{Start: 0, End: 3}, f.surface.LastSelection())

	require.NoError(t, f.ctrl.NextMatch())
	assert.Equal(t, "2/2", f.ctrl.Counter())
	assert.Equal(t, testhelpers.Selection{Start: 2, End: 5}, f.surface.LastSelection())

	require.NoError(t, f.ctrl.NextMatch())
	assert.Equal(t, "1/2", f.ctrl.Counter())

	require.NoError(t, f.ctrl.PrevMatch())
	assert.Equal(t, "2/2", f.ctrl.Counter())

	require.NoError(t, f.ctrl.ClearSearch())
	assert.Equal(t, "0/0", f.ctrl.Counter())
	assert.Empty(t, f.ctrl.SearchState().Matches)
	assert.Equal(t, 1, f.surface.Focused)
}

func TestStaleSearch_KeptByDefault(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("x x", nil))
	_, err := f.ctrl.Search("x")
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Edit("yy x x x"))
	assert.True(t, f.ctrl.Stale())

	require.NoError(t, f.ctrl.NextMatch())
	assert.Equal(t, "2/2", f.ctrl.Counter(), "old matches are still navigated")
	assert.True(t, f.ctrl.Stale())
}

func TestStaleSearch_Recomputed(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.StaleRecompute = true })
	require.NoError(t, f.ctrl.Open("x x", nil))
	_, err := f.ctrl.Search("x")
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Edit("yy x x x"))
	require.NoError(t, f.ctrl.NextMatch())

	assert.False(t, f.ctrl.Stale())
	assert.Equal(t, "2/3", f.ctrl.Counter())
	assert.Equal(t, testhelpers.Selection{Start: 5, End: 6}, f.surface.LastSelection())
}

func TestCommit_DeliversFragmentAndCloses(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open(testhelpers.SampleBold, f.commits.Func()))

	frag, err := f.ctrl.Commit()
	require.NoError(t, err)

	require.Equal(t, 1, f.commits.Calls())
	assert.Equal(t, frag, f.commits.Fragments[0])
	testhelpers.AssertIsolatedFragment(t, frag, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, frag, `id="html-preview-test001"`)

	assert.False(t, f.ctrl.IsOpen())
	assert.Empty(t, f.target.Document(), "closing releases the render target")
	assert.Nil(t, f.ctrl.Target())
}

func TestCommit_TrimsBuffer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("\n  <i>x</i>  \n", f.commits.Func()))

	frag, err := f.ctrl.Commit()
	require.NoError(t, err)
	assert.Contains(t, testhelpers.SrcdocValue(t, frag), "&lt;body&gt;\n&lt;i&gt;x&lt;/i&gt;\n&lt;/body&gt;")
}

func TestCommit_EmptyBufferWarnsAndStaysOpen(t *testing.T) {
	for _, blank := range testhelpers.BlankInputs {
		f := newFixture(t)
		require.NoError(t, f.ctrl.Open(blank, f.commits.Func()))

		frag, err := f.ctrl.Commit()

		assert.ErrorIs(t, err, ErrEmptyCommit)
		assert.Empty(t, frag)
		assert.Equal(t, []string{EmptyCommitWarning}, f.surface.Warnings)
		assert.Zero(t, f.commits.Calls())
		assert.True(t, f.ctrl.IsOpen())

		require.NoError(t, f.ctrl.Edit("<p>now</p>"))
		_, err = f.ctrl.Commit()
		assert.NoError(t, err)
		assert.Equal(t, 1, f.commits.Calls())
	}
}

func TestCommit_WithoutCallbackStillCloses(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("<p>x</p>", nil))

	frag, err := f.ctrl.Commit()
	require.NoError(t, err)
	assert.NotEmpty(t, frag)
	assert.False(t, f.ctrl.IsOpen())
}

func TestCancel_NeverCommits(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("<p>x</p>", f.commits.Func()))

	f.ctrl.Cancel()
	f.ctrl.Cancel()

	assert.False(t, f.ctrl.IsOpen())
	assert.Zero(t, f.commits.Calls())
}

func TestClosedSessionRejectsEvents(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("<p>x</p>", f.commits.Func()))
	f.ctrl.Cancel()

	assert.ErrorIs(t, f.ctrl.Edit("y"), ErrClosed)
	_, err := f.ctrl.Search("x")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, f.ctrl.NextMatch(), ErrClosed)
	assert.ErrorIs(t, f.ctrl.PrevMatch(), ErrClosed)
	assert.ErrorIs(t, f.ctrl.ClearSearch(), ErrClosed)
	_, err = f.ctrl.Commit()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, "0/0", f.ctrl.Counter())
	assert.Empty(t, f.ctrl.Text())
	assert.Zero(t, f.commits.Calls())
}

func TestReopenAfterClose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Open("<p>one</p>", nil))
	f.ctrl.Cancel()

	require.NoError(t, f.ctrl.Open("<p>two</p>", nil))
	assert.Equal(t, "<p>two</p>", f.ctrl.Text())
	assert.Equal(t, uint64(0), f.ctrl.Revision())
	assert.Contains(t, f.target.Document(), "<p>two</p>")
}
