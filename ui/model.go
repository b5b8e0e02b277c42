package ui

import (
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nordiskauto/bilvisning/chrome"
	"github.com/nordiskauto/bilvisning/controller"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/types"
)

// Options configures the terminal showroom.
type Options struct {
	PageSize        int
	FallbackURL     string
	Placeholder     string
	HeaderThreshold float64
	Logger          logging.Logger

	// OpenURL and CopyText default to the system browser and clipboard.
	OpenURL  func(string) error
	CopyText func(string) error
}

// Model is the main TUI model
type Model struct {
	source    types.ListingSource
	opts      Options
	logger    logging.Logger
	screen    *screen
	session   *controller.Session
	viewport  viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	header    *chrome.HeaderScroll
	nav       chrome.NavDrawer
	navCursor int
	scroller  *chrome.SmoothScroller
	stats     []*statCounter
	layout    layout
	cursor    int
	width     int
	height    int
	loading   bool
	err       error
	statusMsg string
}

// NewModel creates a new Model that loads its listings from source
func NewModel(source types.ListingSource, opts Options) Model {
	if opts.OpenURL == nil {
		opts.OpenURL = openBrowser
	}
	if opts.CopyText == nil {
		opts.CopyText = writeClipboard
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	h := help.New()
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpDescStyle
	h.Styles.FullKey = HelpKeyStyle
	h.Styles.FullDesc = HelpDescStyle

	m := Model{
		source:    source,
		opts:      opts,
		logger:    logging.OrNoop(opts.Logger),
		screen:    &screen{},
		viewport:  viewport.New(0, 0),
		spinner:   s,
		help:      h,
		keys:      keys,
		header:    chrome.NewHeaderScroll(opts.HeaderThreshold),
		scroller:  chrome.NewSmoothScroller(chrome.DefaultFPS),
		stats:     newStatCounters(),
		loading:   true,
		statusMsg: "Laster biler…",
	}
	m.refresh()
	return m
}

// Init starts the one feed load of the session
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadFeed(m.source))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		m.refresh()
		return m, m.observeCounters()

	case feedLoadedMsg:
		return m.handleFeed(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case counterTickMsg:
		if msg.index < 0 || msg.index >= len(m.stats) || m.stats[msg.index].counter == nil {
			return m, nil
		}
		sc := m.stats[msg.index]
		text, done := sc.counter.Step()
		sc.text = text
		m.refresh()
		if done {
			return m, nil
		}
		return m, tickCounter(msg.index)

	case scrollFrameMsg:
		if !m.scroller.Active() {
			return m, nil
		}
		y, done := m.scroller.Step()
		cmd := m.setOffset(int(math.Round(y)))
		if done {
			return m, cmd
		}
		return m, tea.Batch(cmd, nextScrollFrame())

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("open link failed", "url", msg.url, "error", msg.err)
			m.statusMsg = ErrorStyle.Render("Kunne ikke åpne lenken: " + msg.err.Error())
		} else {
			m.statusMsg = "Åpnet " + msg.url
		}
		return m, nil

	case linkCopiedMsg:
		if msg.err != nil {
			m.logger.Warn("copy link failed", "url", msg.url, "error", msg.err)
			m.statusMsg = ErrorStyle.Render("Kunne ikke kopiere lenken: " + msg.err.Error())
		} else {
			m.statusMsg = "Kopierte " + msg.url
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFeed(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.session = controller.Start(msg.feed, msg.err, m.screen, controller.Options{
		PageSize:    m.opts.PageSize,
		FallbackURL: m.opts.FallbackURL,
		Placeholder: m.opts.Placeholder,
	}, m.logger)

	switch m.session.State {
	case controller.StateFailed:
		m.err = msg.err
		m.statusMsg = ErrorStyle.Render("Kunne ikke laste biler")
	case controller.StateEmpty:
		m.statusMsg = "Ingen biler tilgjengelig"
	case controller.StateReady:
		if m.screen.stats != nil {
			m.stats[0].text = m.screen.stats.Text()
		}
		for _, sc := range m.stats {
			sc.counter = chrome.NewCounter(sc.text)
		}
		m.statusMsg = m.windowStatus()
	}
	m.cursor = 0
	m.refresh()
	return m, m.observeCounters()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePanes()
		m.refresh()
		return m, nil
	}

	if m.nav.Open() {
		return m.handleNavKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Nav):
		m.nav.Toggle()
		m.navCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		return m, m.moveCursor(-max(m.layout.cols, 1))
	case key.Matches(msg, m.keys.Down):
		return m, m.moveCursor(max(m.layout.cols, 1))
	case key.Matches(msg, m.keys.Left):
		return m, m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		return m, m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.userScroll(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		return m, m.userScroll(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.Top):
		return m, m.userScroll(0)
	case key.Matches(msg, m.keys.Bottom):
		return m, m.userScroll(m.viewport.TotalLineCount())
	case key.Matches(msg, m.keys.NextFilter):
		return m, m.cycleFilter(1)
	case key.Matches(msg, m.keys.PrevFilter):
		return m, m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Filter):
		idx := int(msg.String()[0] - '1')
		return m, m.activateFilter(types.Filters[idx])
	case key.Matches(msg, m.keys.LoadMore):
		return m, m.loadMore()
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Enter):
		if url := m.currentURL(); url != "" {
			return m, openLink(m.opts.OpenURL, url)
		}
	case key.Matches(msg, m.keys.Copy):
		if url := m.currentURL(); url != "" {
			return m, copyLink(m.opts.CopyText, url)
		}
	}
	return m, nil
}

// handleNavKey handles keys while the drawer is open. The page does not
// scroll underneath it.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.navLinks()
	switch {
	case key.Matches(msg, m.keys.Nav), key.Matches(msg, m.keys.Back):
		m.nav.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.navCursor = (m.navCursor - 1 + len(links)) % len(links)
	case key.Matches(msg, m.keys.Down):
		m.navCursor = (m.navCursor + 1) % len(links)
	case key.Matches(msg, m.keys.Enter):
		link := links[m.navCursor]
		m.nav.OnLinkSelect()
		if !chrome.IsAnchor(link.href) {
			return m, openLink(m.opts.OpenURL, link.href)
		}
		m.scroller.Intercept(link.href, float64(m.viewport.YOffset), m.resolve)
		if m.scroller.Active() {
			return m, nextScrollFrame()
		}
	}
	return m, nil
}

// View renders the current view
func (m Model) View() string {
	body := m.viewport.View()
	if m.nav.Open() {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, m.renderNav())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		StatusBarStyle.Render(m.statusMsg),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	style := HeaderStyle
	if m.header.Scrolled() {
		style = HeaderScrolledStyle
	}
	title := style.Render("Nordisk Auto")
	hint := HeaderHintStyle.Render(" ☰ meny [n]")
	pad := max(m.width-lipgloss.Width(title)-lipgloss.Width(hint), 0)
	return title + lipgloss.NewStyle().Width(pad).Render("") + hint
}

// resizePanes adjusts the viewport to the window, leaving room for the
// header, status bar and help
func (m *Model) resizePanes() {
	m.help.Width = m.width
	headerHeight := 1
	statusHeight := 1
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-statusHeight-helpHeight, 0)
}

// refresh re-renders the page into the viewport.
func (m *Model) refresh() {
	content, l := m.renderPage()
	m.layout = l
	m.viewport.SetContent(content)
}

// setOffset moves the viewport and replays the scroll handlers.
func (m *Model) setOffset(y int) tea.Cmd {
	m.viewport.SetYOffset(y)
	m.header.OnScroll(float64(m.viewport.YOffset * rowHeight))
	return m.observeCounters()
}

func (m *Model) userScroll(y int) tea.Cmd {
	m.scroller.Stop()
	return m.setOffset(y)
}

// observeCounters starts every counter whose row has entered the viewport.
func (m *Model) observeCounters() tea.Cmd {
	var cmds []tea.Cmd
	top := float64(m.layout.statsRow - m.viewport.YOffset)
	for i, sc := range m.stats {
		if sc.counter == nil || sc.started {
			continue
		}
		if sc.counter.Observe(top, float64(m.viewport.Height)) {
			sc.started = true
			cmds = append(cmds, tickCounter(i))
		}
	}
	return tea.Batch(cmds...)
}

// resolve maps an anchor id to the offset that brings its section to the
// top, as far as the page can scroll.
func (m *Model) resolve(id string) (float64, bool) {
	row, ok := m.layout.sections[id]
	if !ok {
		return 0, false
	}
	maxOffset := max(m.viewport.TotalLineCount()-m.viewport.Height, 0)
	return float64(min(row, maxOffset)), true
}

func (m Model) ready() bool {
	return m.session != nil && m.session.State == controller.StateReady
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	n := len(m.layout.cards)
	if n == 0 {
		return nil
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.refresh()
	return m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() tea.Cmd {
	if m.cursor >= len(m.layout.cards) {
		return nil
	}
	box := m.layout.cards[m.cursor]
	switch {
	case box.top < m.viewport.YOffset:
		return m.userScroll(box.top)
	case box.bottom > m.viewport.YOffset+m.viewport.Height:
		return m.userScroll(box.bottom - m.viewport.Height)
	}
	return nil
}

func (m *Model) cycleFilter(step int) tea.Cmd {
	if !m.ready() {
		return nil
	}
	i := slices.Index(types.Filters, m.session.Filters.Active())
	n := len(types.Filters)
	return m.activateFilter(types.Filters[((i+step)%n+n)%n])
}

func (m *Model) activateFilter(f types.FilterType) tea.Cmd {
	if !m.ready() {
		return nil
	}
	if err := m.session.Filters.OnActivate(f); err != nil {
		m.logger.Warn("filter activation failed", "filter", f, "error", err)
		m.statusMsg = ErrorStyle.Render(err.Error())
		return nil
	}
	m.cursor = 0
	m.refresh()
	m.statusMsg = m.windowStatus()
	return m.observeCounters()
}

func (m *Model) loadMore() tea.Cmd {
	if !m.ready() {
		return nil
	}
	changed, err := m.session.Pager.OnActivate()
	if err != nil {
		m.logger.Warn("load more failed", "error", err)
		return nil
	}
	if !changed {
		return nil
	}
	m.refresh()
	m.statusMsg = m.windowStatus()
	return nil
}

// currentURL is the link the open and copy keys act on.
func (m Model) currentURL() string {
	if p := m.screen.panel(); p != nil {
		return p.LinkURL
	}
	cards := m.screen.cards()
	if m.cursor < len(cards) {
		return cards[m.cursor].DetailURL
	}
	return ""
}

func (m Model) windowStatus() string {
	st := m.session.Store
	return fmt.Sprintf("Viser %d av %d biler · %s", len(m.screen.cards()), st.FilteredCount(), st.Filter().Label())
}
