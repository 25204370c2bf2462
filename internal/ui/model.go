package ui

import (
	"context"
	"fmt"

	"scripture-tui/internal/api"
	"scripture-tui/internal/highlight"
	"scripture-tui/internal/history"
	"scripture-tui/internal/logging"
	"scripture-tui/internal/lookup"
	"scripture-tui/internal/render"
	"scripture-tui/internal/settings"
	"scripture-tui/internal/theme"
	"scripture-tui/internal/verse"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

type viewMode int

const (
	modeReader viewMode = iota
	modeInput
	modeHistory
	modeResults
)

const (
	headerHeight = 5
	footerHeight = 2
)

// Options wires a Model to its collaborators.
type Options struct {
	Fetcher      lookup.Fetcher
	Session      *highlight.Session
	Settings     settings.Settings
	InitialQuery string
	// Save persists settings; nil disables persistence.
	Save func(settings.Settings) error
}

type Model struct {
	dispatcher *lookup.Dispatcher
	session    *highlight.Session
	controller *verse.Controller
	history    *history.History
	save       func(settings.Settings) error

	viewport  viewport.Model
	textInput textinput.Model
	theme     theme.Theme
	opts      api.PassageOptions

	mode      viewMode
	lastQuery string
	title     string

	root    *html.Node
	units   []*verse.Unit
	focused int
	page    render.Page

	results  []api.SearchResult
	selected int
	histSel  int
	cursor   int

	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

type errMsg struct{ err error }
type lookupDoneMsg struct{ result *lookup.Result }

func (e errMsg) Error() string { return e.err.Error() }

func NewModel(o Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Reference (John 3:16), search text, or \"Romans Road\""
	ti.CharLimit = 100
	ti.Width = 60

	session := o.Session
	if session == nil {
		session = highlight.NewSession()
	}

	query := o.InitialQuery
	if query == "" {
		query = o.Settings.LastQuery
	}

	return Model{
		dispatcher: lookup.NewDispatcher(o.Fetcher),
		session:    session,
		controller: verse.NewController(session),
		history:    history.New(),
		save:       o.Save,
		textInput:  ti,
		theme:      theme.GetTheme(o.Settings.Theme),
		opts:       o.Settings.Passage,
		mode:       modeReader,
		lastQuery:  query,
		focused:    -1,
	}
}

func (m Model) Init() tea.Cmd {
	return runLookup(m.dispatcher, m.lastQuery, m.opts)
}

func runLookup(d *lookup.Dispatcher, query string, opts api.PassageOptions) tea.Cmd {
	return func() tea.Msg {
		ctx, _ := logging.NewRequest(context.Background())
		res, err := d.Lookup(ctx, query, opts)
		if err != nil {
			logging.FromContext(ctx).Error("lookup failed", "query", query, "error", err)
			return errMsg{err}
		}
		return lookupDoneMsg{res}
	}
}

func (m *Model) lookup(query string) tea.Cmd {
	m.lastQuery = query
	m.loading = true
	m.err = nil
	return runLookup(m.dispatcher, query, m.opts)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			if next, cmd, handled := m.updateInput(msg); handled {
				return next, cmd
			}
		case modeHistory:
			return m.updateHistory(msg)
		case modeResults:
			if next, cmd, handled := m.updateResults(msg); handled {
				return next, cmd
			}
		default:
			if next, cmd, handled := m.updateReader(msg); handled {
				return next, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.refresh()

	case lookupDoneMsg:
		m.loading = false
		m.apply(msg.result)
		m.persist()

	case errMsg:
		// The content region keeps whatever it showed before.
		m.err = msg.err
		m.loading = false
	}

	if m.mode == modeInput {
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) apply(res *lookup.Result) {
	m.history.Add(res.HistoryKey)

	if res.Mode == lookup.ModeSearch {
		m.results = res.Results
		m.selected = 0
		m.mode = modeResults
		m.title = fmt.Sprintf("Search: %s (%d results)", res.Query, len(res.Results))
		m.refresh()
		m.viewport.GotoTop()
		return
	}

	root, err := verse.ParseFragment(res.Markup)
	if err != nil {
		m.err = err
		return
	}
	m.root = root
	m.units = m.controller.Bind(verse.Segment(root))
	m.focused = -1
	if len(m.units) > 0 {
		m.focused = 0
	}
	m.mode = modeReader
	m.title = res.HistoryKey
	if m.title == "" {
		m.title = res.Query
	}
	m.refresh()
	m.viewport.GotoTop()
}

// refresh re-renders the content region from the current state.
func (m *Model) refresh() {
	width := m.width - 2
	switch m.mode {
	case modeResults:
		m.viewport.SetContent(render.SearchResults(m.results, m.selected, m.theme, width))
	case modeHistory:
		m.viewport.SetContent(render.History(m.history.Items(), m.histSel, m.theme))
	default:
		if m.root == nil {
			m.viewport.SetContent("")
			return
		}
		m.page = render.Passage(m.root, m.units, m.focused, m.theme, width)
		m.viewport.SetContent(m.page.Content)
	}
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	s := settings.Settings{Theme: m.theme.Name, LastQuery: m.lastQuery, Passage: m.opts}
	if err := m.save(s); err != nil {
		logging.Warn("saving settings failed", "error", err)
	}
}

func (m Model) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit, true
	case "/":
		m.mode = modeInput
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink, true
	case "tab", "j":
		m.moveFocus(1)
		return m, nil, true
	case "shift+tab", "k":
		m.moveFocus(-1)
		return m, nil, true
	case " ":
		if m.focused >= 0 && m.focused < len(m.units) {
			if m.controller.Click(m.units[m.focused]) {
				m.refresh()
			}
		}
		return m, nil, true
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		idx := int(key[0] - '1')
		if key == "0" {
			idx = 9
		}
		m.cursor = idx
		m.pressButton(idx)
		return m, nil, true
	case "[":
		m.cursor = (m.cursor + len(highlight.Palette) - 1) % len(highlight.Palette)
		return m, nil, true
	case "]":
		m.cursor = (m.cursor + 1) % len(highlight.Palette)
		return m, nil, true
	case "a":
		m.pressButton(m.cursor)
		return m, nil, true
	case "g", "x", "#":
		switch key {
		case "g":
			m.opts.Headings = !m.opts.Headings
		case "x":
			m.opts.Extras = !m.opts.Extras
		default:
			m.opts.Numbers = !m.opts.Numbers
		}
		return m, m.lookup(m.lastQuery), true
	case "h":
		m.mode = modeHistory
		m.histSel = 0
		m.refresh()
		return m, nil, true
	case "t":
		m.theme = m.theme.Toggle()
		m.refresh()
		m.persist()
		return m, nil, true
	case "esc":
		m.err = nil
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) pressButton(idx int) {
	if err := m.session.Arming.PressIndex(idx); err != nil {
		m.err = err
	}
}

func (m *Model) moveFocus(delta int) {
	if len(m.units) == 0 {
		return
	}
	m.focused = (m.focused + delta + len(m.units)) % len(m.units)
	m.refresh()

	line := m.page.UnitLines[m.focused]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line)
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		query := m.textInput.Value()
		m.textInput.Blur()
		m.mode = modeReader
		return m, m.lookup(query), true
	case "esc":
		m.textInput.Blur()
		m.mode = modeReader
		m.refresh()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.history.Items()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.histSel > 0 {
			m.histSel--
		}
	case "down", "j":
		if m.histSel < len(items)-1 {
			m.histSel++
		}
	case "enter":
		if m.histSel < len(items) {
			m.mode = modeReader
			return m, m.lookup(items[m.histSel])
		}
	case "D":
		m.history.Clear()
		m.histSel = 0
	case "esc", "h":
		m.mode = modeReader
	}
	m.refresh()
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "k":
		if m.selected > 0 {
			m.selected--
			m.refresh()
		}
		return m, nil, true
	case "j":
		if m.selected < len(m.results)-1 {
			m.selected++
			m.refresh()
		}
		return m, nil, true
	case "enter":
		if m.selected < len(m.results) {
			return m, m.lookup(m.results[m.selected].Reference), true
		}
		return m, nil, true
	case "/":
		m.mode = modeInput
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink, true
	case "h":
		m.mode = modeHistory
		m.histSel = 0
		m.refresh()
		return m, nil, true
	case "esc":
		m.mode = modeReader
		m.refresh()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(m.theme.Border)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.BorderActive)

	helpStyle := lipgloss.NewStyle().
		Foreground(m.theme.Muted)

	errorStyle := lipgloss.NewStyle().
		Foreground(m.theme.Error).
		Bold(true)

	var header string
	switch m.mode {
	case modeInput:
		header = headerStyle.Render("Lookup") + "\n" + m.textInput.View()
	case modeHistory:
		header = headerStyle.Render("History - enter: open | D: clear | esc: back")
	default:
		title := m.title
		if title == "" {
			title = "scripture-tui"
		}
		header = headerStyle.Render(titleStyle.Render(title))
	}
	header += "\n" + render.Options(m.opts, m.theme) +
		"\n" + render.Palette(m.session.Arming.Buttons(), m.cursor, m.theme)

	var help string
	switch {
	case m.loading:
		help = helpStyle.Render("Loading...")
	case m.mode == modeResults:
		help = helpStyle.Render("j/k: select | enter: open | /: lookup | h: history | esc: back | q: quit")
	default:
		help = helpStyle.Render(fmt.Sprintf(
			"/: lookup | tab/j k: verse | space: mark | 1-0 [ ] a: color | h: history | t: theme | q: quit  (%d marked)",
			m.session.Store.Len()))
	}

	var errorMsg string
	if m.err != nil {
		errorMsg = "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return fmt.Sprintf("%s\n%s\n%s%s", header, m.viewport.View(), help, errorMsg)
}
