package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/highlight"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/search"
)

// DefaultDebounce is the quiet period after the last filter edit before a
// search is issued.
const DefaultDebounce = 300 * time.Millisecond

// searchState is the controller's position in the search lifecycle.
type searchState int

const (
	stateIdle searchState = iota
	stateDebouncing
	stateSearching
	stateResults
	stateEmpty
	stateFailed
)

func (s searchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateDebouncing:
		return "debouncing"
	case stateSearching:
		return "searching"
	case stateResults:
		return "results"
	case stateEmpty:
		return "empty"
	case stateFailed:
		return "failed"
	}
	return fmt.Sprintf("searchState(%d)", int(s))
}

type searchScreen int

const (
	screenSearch searchScreen = iota
	screenEntry
)

// Text inputs, in focus order.
const (
	inputKeyword = iota
	inputFrom
	inputTo
	inputCount
)

// RecentStore is the slice of the recent-search store the view needs.
type RecentStore interface {
	Record(keyword string) error
	List() ([]string, error)
	Clear() error
}

// debounceMsg fires when a debounce period ends. Only the tick carrying the
// latest token may start a search.
type debounceMsg struct {
	token int
}

// searchResultMsg carries the outcome of one tagged request.
type searchResultMsg struct {
	generation uint64
	filter     search.Filter
	page       search.Page
	err        error
	appending  bool
}

type recentLoadedMsg struct {
	queries []string
	err     error
}

// issued records the arguments of the last request so it can be retried.
type issued struct {
	filter    search.Filter
	offset    int
	appending bool
}

// SearchConfig configures the search screen.
type SearchConfig struct {
	Client        *search.Client
	Recent        RecentStore
	Theme         Theme
	Debounce      time.Duration
	PreviewLength int
	MaxWidth      int
	Logger        *slog.Logger
}

// SearchModel is the interactive search screen. It owns the filter inputs,
// debounces edits, and accepts results only for the request it is waiting on.
type SearchModel struct {
	client        *search.Client
	recent        RecentStore
	theme         Theme
	logger        *slog.Logger
	debounce      time.Duration
	previewLength int
	maxWidth      int

	inputs [inputCount]textinput.Model
	focus  int
	mood   mood.Mood

	state       searchState
	token       int
	req         *search.Request // most recently issued request; nil when none is pending
	last        *issued         // repeated by retry
	filter      search.Filter   // filter the visible results belong to
	results     []entry.Entry
	hasMore     bool
	loadingMore bool
	selected    int
	err         error

	recentQueries []string
	recentNext    int
	recentErr     error

	spinner spinner.Model
	screen  searchScreen
	detail  viewport.Model
	width   int
	height  int
}

// NewSearchModel builds the search screen in the Idle state with the keyword
// field focused.
func NewSearchModel(cfg SearchConfig) SearchModel {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = highlight.DefaultPreviewLength
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := SearchModel{
		client:        cfg.Client,
		recent:        cfg.Recent,
		theme:         cfg.Theme,
		logger:        cfg.Logger,
		debounce:      cfg.Debounce,
		previewLength: cfg.PreviewLength,
		maxWidth:      cfg.MaxWidth,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(cfg.Theme.AccentStyle()),
		),
	}

	prompts := [inputCount]struct{ prompt, placeholder string }{
		inputKeyword: {"Search: ", "keyword"},
		inputFrom:    {"From: ", search.DateLayout},
		inputTo:      {"To: ", search.DateLayout},
	}
	for i, p := range prompts {
		ti := textinput.New()
		ti.Prompt = p.prompt
		ti.Placeholder = p.placeholder
		ti.PromptStyle = cfg.Theme.AccentStyle()
		ti.TextStyle = cfg.Theme.ViewPaneStyle()
		ti.PlaceholderStyle = cfg.Theme.HelpStyle()
		if i != inputKeyword {
			ti.CharLimit = len(search.DateLayout)
			ti.Width = len(search.DateLayout) + 1
		}
		m.inputs[i] = ti
	}
	m.inputs[inputKeyword].Focus()
	return m
}

func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRecent())
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.inputs[inputKeyword].Width = max(m.contentWidth()-len(m.inputs[inputKeyword].Prompt)-2, 10)
		if m.screen == screenEntry {
			m.detail.Width = m.contentWidth()
			m.detail.Height = m.detailHeight()
		}
		return m, nil

	case debounceMsg:
		if msg.token != m.token {
			return m, nil
		}
		return m.fire()

	case searchResultMsg:
		return m.receive(msg)

	case recentLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("recent searches unavailable", "error", msg.err)
		}
		m.recentQueries, m.recentErr = msg.queries, msg.err
		m.recentNext = 0
		return m, nil

	case spinner.TickMsg:
		if m.state != stateSearching && !m.loadingMore {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.screen == screenEntry {
			return m.updateEntry(msg)
		}
		return m.updateSearch(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m SearchModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = inputCount - 1
		}
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + step) % inputCount
		cmd := m.inputs[m.focus].Focus()
		return m, cmd

	case "ctrl+o":
		m.mood = mood.Next(m.mood)
		return m.edited()

	case "ctrl+p":
		if len(m.recentQueries) == 0 {
			return m, nil
		}
		m.inputs[inputKeyword].SetValue(m.recentQueries[m.recentNext%len(m.recentQueries)])
		m.inputs[inputKeyword].CursorEnd()
		m.recentNext++
		if m.focus != inputKeyword {
			m.inputs[m.focus].Blur()
			m.focus = inputKeyword
			m.inputs[inputKeyword].Focus()
		}
		return m.edited()

	case "ctrl+x":
		return m, m.clearRecent()

	case "ctrl+r":
		if m.state != stateFailed || m.last == nil {
			return m, nil
		}
		cmd := m.issue(m.last.filter, m.last.offset, m.last.appending)
		return m, cmd

	case "ctrl+n":
		if m.state != stateResults || !m.hasMore || m.loadingMore {
			return m, nil
		}
		cmd := m.issue(m.filter, len(m.results), true)
		return m, cmd

	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		if len(m.results) == 0 || m.selected >= len(m.results) {
			return m, nil
		}
		m.openEntry(m.results[m.selected])
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}
	next, debounce := m.edited()
	return next, tea.Batch(cmd, debounce)
}

func (m SearchModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.screen = screenSearch
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// edited moves to Debouncing after any filter change. Whatever is in flight
// belongs to the old filter, so it is superseded right away.
func (m SearchModel) edited() (tea.Model, tea.Cmd) {
	if m.req != nil {
		m.client.Cancel()
		m.req = nil
	}
	m.loadingMore = false
	m.state = stateDebouncing
	m.token++
	token := m.token
	return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{token: token}
	})
}

// fire runs when the latest debounce tick arrives.
func (m SearchModel) fire() (tea.Model, tea.Cmd) {
	f := m.currentFilter()
	if f.IsEmpty() {
		m.client.Cancel()
		m.req = nil
		m.last = nil
		m.state = stateIdle
		m.filter = search.Filter{}
		m.results, m.hasMore, m.selected, m.err = nil, false, 0, nil
		return m, nil
	}
	cmd := m.issue(f, 0, false)
	return m, cmd
}

// issue tags a new request and returns the command that executes it. The
// tag is taken here, inside Update, so issue order decides which request is
// current no matter how the commands are scheduled.
func (m *SearchModel) issue(f search.Filter, offset int, appending bool) tea.Cmd {
	req := m.client.NewRequest(f, offset, 0)
	m.req = req
	m.err = nil
	m.last = &issued{filter: f, offset: offset, appending: appending}
	if appending {
		m.loadingMore = true
		m.state = stateResults
	} else {
		m.state = stateSearching
	}
	return tea.Batch(m.spinner.Tick, execute(req, appending))
}

func execute(req *search.Request, appending bool) tea.Cmd {
	return func() tea.Msg {
		page, err := req.Execute(context.Background())
		return searchResultMsg{
			generation: req.Generation(),
			filter:     req.Filter,
			page:       page,
			err:        err,
			appending:  appending,
		}
	}
}

func (m SearchModel) receive(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if m.req == nil || msg.generation != m.req.Generation() || errors.Is(msg.err, search.ErrSuperseded) {
		m.logger.Debug("dropping stale search result", "generation", msg.generation)
		return m, nil
	}
	m.req = nil
	m.loadingMore = false

	if msg.err != nil {
		m.logger.Warn("search failed", "error", msg.err)
		m.err = msg.err
		m.state = stateFailed
		return m, nil
	}

	m.last = nil
	m.filter = msg.filter
	m.hasMore = msg.page.HasMore
	if msg.appending {
		m.results = append(m.results, msg.page.Entries...)
	} else {
		m.results = msg.page.Entries
		m.selected = 0
	}
	if len(m.results) == 0 {
		m.state = stateEmpty
	} else {
		m.state = stateResults
	}

	if msg.appending || msg.filter.Term() == "" {
		return m, nil
	}
	return m, m.recordRecent(msg.filter.Term())
}

// currentFilter reads the inputs. Unparseable dates count as unset.
func (m SearchModel) currentFilter() search.Filter {
	f := search.Filter{
		Keyword: m.inputs[inputKeyword].Value(),
		Mood:    m.mood,
	}
	f.Start, _ = search.ParseDate(m.inputs[inputFrom].Value())
	f.End, _ = search.ParseDate(m.inputs[inputTo].Value())
	return f
}

func (m SearchModel) dateInvalid(i int) bool {
	_, err := search.ParseDate(m.inputs[i].Value())
	return err != nil
}

func (m SearchModel) loadRecent() tea.Cmd {
	if m.recent == nil {
		return nil
	}
	store := m.recent
	return func() tea.Msg {
		queries, err := store.List()
		return recentLoadedMsg{queries: queries, err: err}
	}
}

func (m SearchModel) recordRecent(term string) tea.Cmd {
	if m.recent == nil {
		return nil
	}
	store := m.recent
	return func() tea.Msg {
		if err := store.Record(term); err != nil {
			return recentLoadedMsg{err: err}
		}
		queries, err := store.List()
		return recentLoadedMsg{queries: queries, err: err}
	}
}

func (m SearchModel) clearRecent() tea.Cmd {
	if m.recent == nil {
		return nil
	}
	store := m.recent
	return func() tea.Msg {
		return recentLoadedMsg{err: store.Clear()}
	}
}

func (m *SearchModel) openEntry(e entry.Entry) {
	m.screen = screenEntry
	m.detail = viewport.New(m.contentWidth(), m.detailHeight())
	m.detail.Style = m.theme.ViewPaneStyle()

	var b strings.Builder
	b.WriteString(m.theme.HeaderStyle().Render(e.CreatedAt.Local().Format("Monday, 2006-01-02 15:04")))
	if e.Mood != mood.None {
		b.WriteString("  " + m.theme.MoodStyle(true).Render(e.Mood.String()))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderMarkdown(e.Content, m.contentWidth(), m.theme.MarkdownStyle))
	m.detail.SetContent(b.String())
}

func (m SearchModel) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if m.maxWidth > 0 && w > m.maxWidth {
		return m.maxWidth
	}
	return w
}

func (m SearchModel) screenHeight() int {
	if m.height <= 0 {
		return 24
	}
	return m.height
}

func (m SearchModel) detailHeight() int {
	return max(m.screenHeight()-2, 3)
}

func (m SearchModel) View() string {
	var body string
	if m.screen == screenEntry {
		body = m.detail.View() + "\n" + m.theme.HelpStyle().Render("↑/↓ scroll • esc back")
	} else {
		body = m.searchView()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return m.theme.PaintScreen(body, m.width, m.height, m.contentWidth())
}

func (m SearchModel) searchView() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderStyle().Render("moodlog search") + "\n\n")
	b.WriteString(m.inputs[inputKeyword].View() + "\n")
	b.WriteString(m.theme.HelpStyle().Render("Mood: ") + m.theme.MoodStyle(m.mood != mood.None).Render(m.mood.String()) + "\n")
	for _, i := range []int{inputFrom, inputTo} {
		b.WriteString(m.inputs[i].View())
		if m.dateInvalid(i) {
			b.WriteString(" " + m.theme.DangerStyle().Render("invalid date, ignored"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateIdle:
		b.WriteString(m.recentView())
	case stateDebouncing:
		b.WriteString(m.theme.HelpStyle().Render("…") + "\n")
		b.WriteString(m.resultsView())
	case stateSearching:
		b.WriteString(m.spinner.View() + m.theme.HelpStyle().Render(" Searching…") + "\n")
	case stateResults:
		b.WriteString(m.resultsView())
	case stateEmpty:
		b.WriteString(m.theme.HelpStyle().Render("No entries match.") + "\n")
	case stateFailed:
		b.WriteString(m.theme.DangerStyle().Render("Search failed: "+m.err.Error()) + "\n")
		b.WriteString(m.theme.HelpStyle().Render("ctrl+r retry") + "\n")
	}

	b.WriteString("\n" + m.theme.HelpStyle().Render("tab next field • ctrl+o mood • ↑/↓ select • enter open • ctrl+n more • ctrl+p recent • ctrl+x clear recent • esc quit"))
	return b.String()
}

func (m SearchModel) recentView() string {
	if m.recentErr != nil {
		return m.theme.DangerStyle().Render("Recent searches unavailable: "+m.recentErr.Error()) + "\n"
	}
	if len(m.recentQueries) == 0 {
		return m.theme.HelpStyle().Render("Type to search your journal.") + "\n"
	}
	var b strings.Builder
	b.WriteString(m.theme.HelpStyle().Render("Recent searches (ctrl+p to recall):") + "\n")
	for _, q := range m.recentQueries {
		b.WriteString("  " + m.theme.ViewPaneStyle().Render(q) + "\n")
	}
	return b.String()
}

func (m SearchModel) resultsView() string {
	if len(m.results) == 0 {
		return ""
	}

	var b strings.Builder
	count := fmt.Sprintf("%d entries", len(m.results))
	if len(m.results) == 1 {
		count = "1 entry"
	}
	if m.hasMore {
		count += ", more with ctrl+n"
	}
	if m.loadingMore {
		count = m.spinner.View() + " " + count
	}
	b.WriteString(m.theme.HelpStyle().Render(count) + "\n")

	// header (10 lines) and footer (2) leave the rest for two-line rows
	perScreen := max((m.screenHeight()-12)/2, 1)
	start := 0
	if m.selected >= perScreen {
		start = m.selected - perScreen + 1
	}
	end := min(start+perScreen, len(m.results))

	width := m.contentWidth() - 4
	for i := start; i < end; i++ {
		e := m.results[i]
		cursor := "  "
		title := m.theme.ViewPaneStyle()
		if i == m.selected {
			cursor = m.theme.AccentStyle().Render("› ")
			title = m.theme.AccentStyle()
		}
		line := title.Render(e.CreatedAt.Local().Format("2006-01-02 15:04"))
		if e.Mood != mood.None {
			line += "  " + m.theme.MoodStyle(true).Render(e.Mood.String())
		}
		b.WriteString(cursor + line + "\n")

		preview := highlight.Highlight(e.Content, m.filter.Term(), min(m.previewLength, width))
		b.WriteString("    " + ansi.Truncate(preview.Terminal(m.theme.PreviewStyle(), m.theme.MatchStyle()), width, "…") + "\n")
	}
	return b.String()
}

// RunSearch starts the interactive search screen and blocks until the user
// quits.
func RunSearch(cfg SearchConfig) error {
	_, err := tea.NewProgram(NewSearchModel(cfg), tea.WithAltScreen()).Run()
	return err
}
