package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/nordiskauto/bilvisning/chrome"
	"github.com/nordiskauto/bilvisning/render"
)

const (
	cardWidth = 32
	cardGap   = 1
	// rowHeight approximates one terminal row in CSS pixels, so the header
	// threshold means the same distance as on the web page.
	rowHeight = 20

	anchorHome  = "#hjem"
	anchorCars  = "#biler"
	anchorAbout = "#om-oss"
)

type statCounter struct {
	text    string
	label   string
	counter *chrome.Counter
	started bool
}

func newStatCounters() []*statCounter {
	return []*statCounter{
		{text: "0", label: "biler på lager"},
		{text: "25+", label: "år i bransjen"},
		{text: "1000+", label: "fornøyde kunder"},
	}
}

type navLink struct {
	label string
	href  string
}

type cardBox struct {
	top    int
	bottom int
}

// layout records where things landed in the rendered page, in rows.
type layout struct {
	sections map[string]int
	statsRow int
	cards    []cardBox
	cols     int
}

type pageBuilder struct {
	lines []string
}

func (b *pageBuilder) add(block string) {
	b.lines = append(b.lines, strings.Split(block, "\n")...)
}

func (b *pageBuilder) row() int { return len(b.lines) }

func (b *pageBuilder) String() string { return strings.Join(b.lines, "\n") }

// renderPage lays out the scrollable page.
func (m Model) renderPage() (string, layout) {
	var b pageBuilder
	l := layout{sections: make(map[string]int)}
	width := max(m.width, cardWidth+2)

	l.sections[strings.TrimPrefix(anchorHome, "#")] = b.row()
	b.add(HeroTitleStyle.Render("Nordisk Auto"))
	b.add(HeroTaglineStyle.Render("Kvalitetsbiler med trygg handel"))
	b.add("")
	l.statsRow = b.row()
	b.add(m.renderStats())
	b.add("")

	l.sections[strings.TrimPrefix(anchorCars, "#")] = b.row()
	b.add(SectionTitleStyle.Render("Våre biler"))
	switch {
	case m.loading:
		b.add(m.spinner.View() + " Laster biler…")
	case m.screen.panel() != nil:
		b.add(renderPanel(*m.screen.panel(), width))
	default:
		if m.screen.filters != nil {
			b.add(renderFilters(*m.screen.filters))
			b.add("")
		}
		l.cols, l.cards = m.renderGrid(&b, width)
		if m.screen.loadMore.Visible {
			b.add("")
			b.add(LoadMoreStyle.Render("[m] " + m.screen.loadMore.Label() + " ⌄"))
		}
	}
	b.add("")

	l.sections[strings.TrimPrefix(anchorAbout, "#")] = b.row()
	b.add(SectionTitleStyle.Render("Om oss"))
	b.add(lipgloss.NewStyle().Width(min(width, 72)).Render(
		"Nordisk Auto selger nøye utvalgte bruktbiler. Alle bilene våre er også lagt ut på FINN.no, der du finner fullstendige annonser."))
	b.add("")

	return b.String(), l
}

func (m Model) renderStats() string {
	parts := make([]string, 0, len(m.stats))
	for _, s := range m.stats {
		parts = append(parts, StatNumberStyle.Render(s.text)+" "+s.label)
	}
	return strings.Join(parts, "   ")
}

func renderFilters(bar render.FilterBar) string {
	tabs := make([]string, 0, len(bar.Buttons))
	for _, btn := range bar.Buttons {
		if btn.Active {
			tabs = append(tabs, ActiveTabStyle.Render(btn.Label()))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(btn.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderGrid(b *pageBuilder, width int) (int, []cardBox) {
	cards := m.screen.cards()
	cols := max(1, (width+cardGap)/(cardWidth+2+cardGap))
	boxes := make([]cardBox, 0, len(cards))
	gap := strings.Repeat(" ", cardGap)

	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rendered := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				rendered = append(rendered, gap)
			}
			rendered = append(rendered, renderCard(cards[i], i == m.cursor))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
		top := b.row()
		b.add(row)
		for i := start; i < end; i++ {
			boxes = append(boxes, cardBox{top: top, bottom: b.row()})
		}
	}
	return cols, boxes
}

func renderCard(c render.Card, selected bool) string {
	inner := cardWidth - 2
	fit := func(s string) string { return ansi.Truncate(s, inner, "…") }

	mileage := c.Mileage
	if mileage != render.UnknownLabel {
		mileage += " km"
	}
	lines := []string{
		CardBrandStyle.Render(fit(strings.ToUpper(c.Brand))),
		CardTitleStyle.Render(fit(c.Title)),
		CardSpecStyle.Render(fit(fmt.Sprintf("%s · %s", c.Year, mileage))),
		renderBadge(c.Badge, inner),
		CardPriceStyle.Render(fit(c.PriceLabel())),
		CardLinkStyle.Render(render.DetailLabel + " →"),
	}
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderBadge(b render.Badge, width int) string {
	text := ansi.Truncate(b.Text, width-2, "…")
	switch b.Class {
	case "electric":
		return BadgeElectricStyle.Render(text)
	case "hybrid":
		return BadgeHybridStyle.Render(text)
	default:
		return CardSpecStyle.Render(text)
	}
}

func renderPanel(p render.Panel, width int) string {
	style := PanelStyle
	if p.Failed() {
		style = PanelErrorStyle
	}
	body := strings.Join([]string{
		PanelHeadingStyle.Render(p.Heading),
		p.Body,
		"",
		CardLinkStyle.Render("[o] " + p.LinkLabel),
		StatusBarStyle.Render(p.LinkURL),
	}, "\n")
	return style.Width(min(width-2, 72)).Render(body)
}

func (m Model) renderNav() string {
	items := make([]string, 0, len(m.navLinks()))
	for i, link := range m.navLinks() {
		if i == m.navCursor {
			items = append(items, NavItemActiveStyle.Render("› "+link.label))
		} else {
			items = append(items, NavItemStyle.Render("  "+link.label))
		}
	}
	return NavStyle.Render(strings.Join(items, "\n"))
}

func (m Model) navLinks() []navLink {
	return []navLink{
		{label: "Hjem", href: anchorHome},
		{label: "Biler", href: anchorCars},
		{label: "Om oss", href: anchorAbout},
		{label: "FINN.no", href: m.opts.FallbackURL},
	}
}
