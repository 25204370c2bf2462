package ui

import (
	"context"
	"errors"
	"testing"

	"scripture-tui/internal/api"
	"scripture-tui/internal/highlight"
	"scripture-tui/internal/settings"
	"scripture-tui/internal/verse"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const john3 = `<h2>John 3:16-17</h2><p><a class="va" rel="v43003016"></a><span class="woc">For God so loved the world,</span> ` +
	`<a class="va" rel="v43003017"></a><span class="woc">For God did not send his Son into the world</span></p>`

type stubFetcher struct {
	markup  map[string]string
	fail    error
	queries []string
	opts    []api.PassageOptions
}

func (s *stubFetcher) FetchVerse(ctx context.Context, ref string, opts api.PassageOptions) (*api.PassageResponse, error) {
	s.queries = append(s.queries, ref)
	s.opts = append(s.opts, opts)
	if s.fail != nil {
		return nil, s.fail
	}
	if ref == "" {
		ref = api.DefaultReference
	}
	return &api.PassageResponse{Query: ref, Passages: []string{s.markup[ref]}}, nil
}

func (s *stubFetcher) Search(ctx context.Context, q string) (*api.SearchResponse, error) {
	s.queries = append(s.queries, q)
	if s.fail != nil {
		return nil, s.fail
	}
	return &api.SearchResponse{Results: []api.SearchResult{
		{Reference: "John 3:16", Content: "For God so loved the world"},
	}}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// drain runs cmd and feeds lookup results and errors back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case lookupDoneMsg, errMsg:
		m, _ = send(t, m, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	}
	return m
}

func newTestModel(t *testing.T, f *stubFetcher, session *highlight.Session) Model {
	t.Helper()
	m := NewModel(Options{
		Fetcher:      f,
		Session:      session,
		Settings:     settings.Default(),
		InitialQuery: "John 3:16-17",
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return drain(t, m, m.Init())
}

func TestInitLoadsPassage(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	m := newTestModel(t, f, nil)

	require.Len(t, m.units, 2)
	assert.Equal(t, 0, m.focused)
	assert.Equal(t, []string{"John 3:16-17"}, m.history.Items())
	assert.Contains(t, m.View(), "For God so loved the world")
}

func TestMarkVerseWithArmedColor(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	session := highlight.NewSession()
	m := newTestModel(t, f, session)

	// unarmed click does nothing
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 0, session.Store.Len())

	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	got, ok := session.Store.Get("v43003017")
	require.True(t, ok)
	assert.Equal(t, highlight.Color("bg-red-600"), got)
	assert.Equal(t, []verse.SpanState{verse.Emphasized}, m.units[1].Spans())
	assert.Contains(t, m.View(), "(1 marked)")
}

func TestHighlightsSurviveRefetch(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	session := highlight.NewSession()
	m := newTestModel(t, f, session)

	m, _ = send(t, m, runes("2"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	// toggling headings re-runs the last lookup with new options
	m, cmd := send(t, m, runes("g"))
	m = drain(t, m, cmd)
	require.Len(t, f.opts, 2)
	assert.True(t, f.opts[1].Headings)

	assert.Equal(t, highlight.Color("bg-blue-600"), m.units[0].Color())
	assert.Equal(t, []verse.SpanState{verse.Emphasized}, m.units[0].Spans())
}

func TestPaletteCursorAndDisarm(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	session := highlight.NewSession()
	m := newTestModel(t, f, session)

	m, _ = send(t, m, runes("["))
	assert.Equal(t, len(highlight.Palette)-1, m.cursor)
	m, _ = send(t, m, runes("a"))
	c, armed := session.Arming.Armed()
	assert.True(t, armed)
	assert.Equal(t, highlight.Color("bg-sky-600"), c)

	m, _ = send(t, m, runes("a"))
	_, armed = session.Arming.Armed()
	assert.False(t, armed)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 0, session.Store.Len())
}

func TestSearchThenOpenResult(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3, "John 3:16": john3}}
	m := newTestModel(t, f, nil)

	m, _ = send(t, m, runes("/"))
	assert.Equal(t, modeInput, m.mode)
	for _, r := range "love" {
		m, _ = send(t, m, runes(string(r)))
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Equal(t, modeResults, m.mode)
	require.Len(t, m.results, 1)
	assert.Contains(t, m.View(), "John 3:16 -- For God so loved the world")

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)
	assert.Equal(t, modeReader, m.mode)
	assert.Equal(t, []string{"John 3:16-17", "love", "John 3:16"}, m.history.Items())
}

func TestHistoryReuseAndClear(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	m := newTestModel(t, f, nil)

	m, _ = send(t, m, runes("h"))
	assert.Equal(t, modeHistory, m.mode)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)
	assert.Equal(t, 1, m.history.Len(), "re-running a query does not duplicate it")

	m, _ = send(t, m, runes("h"))
	m, _ = send(t, m, runes("D"))
	assert.Equal(t, 0, m.history.Len())
}

func TestLookupErrorKeepsContent(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	m := newTestModel(t, f, nil)
	root := m.root

	f.fail = errors.New("network down")
	m, cmd := send(t, m, runes("#"))
	m = drain(t, m, cmd)

	assert.Same(t, root, m.root)
	assert.Len(t, m.units, 2)
	assert.Contains(t, m.View(), "Error: fetch")
	assert.Contains(t, m.View(), "For God so loved the world")
}

func TestThemeTogglePersists(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	var saved []settings.Settings
	m := NewModel(Options{
		Fetcher:      f,
		Settings:     settings.Default(),
		InitialQuery: "John 3:16-17",
		Save: func(s settings.Settings) error {
			saved = append(saved, s)
			return nil
		},
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = drain(t, m, m.Init())
	m, _ = send(t, m, runes("t"))

	require.NotEmpty(t, saved)
	last := saved[len(saved)-1]
	assert.Equal(t, "light", last.Theme)
	assert.Equal(t, "John 3:16-17", last.LastQuery)
}

func TestQuitKeys(t *testing.T) {
	f := &stubFetcher{markup: map[string]string{"John 3:16-17": john3}}
	m := newTestModel(t, f, nil)

	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// q is plain text while typing a query
	m, _ = send(t, m, runes("/"))
	m, _ = send(t, m, runes("q"))
	assert.Equal(t, "q", m.textInput.Value())
}
