// Package render turns listings and stats into UI fragments. Every function is
// pure: fragments are plain values, and hosts decide how to paint them (HTML
// markup for the DOM host, lipgloss for the terminal).
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nordiskauto/bilvisning/types"
)

const (
	// UnknownLabel replaces a missing year, mileage or fuel type.
	UnknownLabel = "Ukjent"
	// Currency follows the pre-formatted price.
	Currency = "kr"
	// DetailLabel captions the outbound detail link.
	DetailLabel = "Detaljer"
	// FallbackLinkLabel captions the call to action in terminal panels.
	FallbackLinkLabel = "Se biler på FINN.no"
)

// Card is one listing as displayed in the grid.
type Card struct {
	Brand       string
	Title       string
	Image       string
	Placeholder string
	Year        string
	Mileage     string
	FuelType    string
	Price       string
	DetailURL   string
	FilterType  types.FilterType
	Badge       Badge
}

// PriceLabel is the price with its currency suffix.
func (c Card) PriceLabel() string {
	return c.Price + " " + Currency
}

// Badge is the fuel badge shown on a card.
type Badge struct {
	Class string
	Text  string
}

// PanelKind distinguishes the two terminal panels.
type PanelKind int

const (
	PanelEmpty PanelKind = iota + 1
	PanelError
)

// Panel replaces the grid when there is nothing to show.
type Panel struct {
	Kind      PanelKind
	Heading   string
	Body      string
	LinkLabel string
	LinkURL   string
}

// Failed reports whether the panel stands in for a load failure.
func (p Panel) Failed() bool { return p.Kind == PanelError }

// Grid is either a list of cards or, when Panel is set, a terminal panel.
type Grid struct {
	Cards []Card
	Panel *Panel
}

// FilterButton is one category button.
type FilterButton struct {
	Filter types.FilterType
	Count  int
	Active bool
}

// Label is the button caption, e.g. "Elbiler (5)".
func (b FilterButton) Label() string {
	return fmt.Sprintf("%s (%d)", b.Filter.Label(), b.Count)
}

// FilterBar holds one button per category in types.Filters order.
type FilterBar struct {
	Buttons []FilterButton
}

// Active returns the active button's filter.
func (f FilterBar) Active() types.FilterType {
	for _, b := range f.Buttons {
		if b.Active {
			return b.Filter
		}
	}
	return types.FilterAll
}

// StatsCounter is the value written into the first counter element.
type StatsCounter struct {
	Total int
}

func (s StatsCounter) Text() string { return strconv.Itoa(s.Total) }

// LoadMore is the state of the "load more" control.
type LoadMore struct {
	Visible   bool
	Increment int
}

// Label is e.g. "Vis 3 flere"; empty when hidden.
func (l LoadMore) Label() string {
	if !l.Visible {
		return ""
	}
	return fmt.Sprintf("Vis %d flere", l.Increment)
}

// Display is the CSS display value for the control.
func (l LoadMore) Display() string {
	if l.Visible {
		return "inline-flex"
	}
	return "none"
}

// NewCard maps a listing to its card. An empty image URL shows the placeholder
// directly; otherwise the placeholder is the load-failure fallback.
func NewCard(l types.Listing, placeholder string) Card {
	image := l.Image()
	if strings.TrimSpace(image) == "" {
		image = placeholder
	}
	return Card{
		Brand:       l.Brand(),
		Title:       l.Title(),
		Image:       image,
		Placeholder: placeholder,
		Year:        YearLabel(l.Year()),
		Mileage:     MileageLabel(l.Mileage()),
		FuelType:    orUnknown(l.FuelType()),
		Price:       l.PriceFormatted(),
		DetailURL:   l.FinnURL(),
		FilterType:  l.FilterType(),
		Badge:       NewBadge(l),
	}
}

// Cards renders the grid: one card per listing, in order.
func Cards(cars []types.Listing, placeholder string) Grid {
	cards := make([]Card, 0, len(cars))
	for _, c := range cars {
		cards = append(cards, NewCard(c, placeholder))
	}
	return Grid{Cards: cards}
}

// FilterButtons renders the filter bar with exactly one active button.
func FilterButtons(stats types.Stats, active types.FilterType) FilterBar {
	found := false
	for _, f := range types.Filters {
		if f == active {
			found = true
		}
	}
	if !found {
		active = types.FilterAll
	}

	buttons := make([]FilterButton, 0, len(types.Filters))
	for _, f := range types.Filters {
		buttons = append(buttons, FilterButton{Filter: f, Count: stats.Count(f), Active: f == active})
	}
	return FilterBar{Buttons: buttons}
}

// Counter renders the stats fragment.
func Counter(stats types.Stats) StatsCounter {
	return StatsCounter{Total: stats.Total}
}

// LoadMoreButton is visible iff filtered > visible, announcing
// min(remaining, pageSize) more listings.
func LoadMoreButton(filtered, visible, pageSize int) LoadMore {
	remaining := filtered - visible
	if remaining <= 0 {
		return LoadMore{}
	}
	return LoadMore{Visible: true, Increment: min(remaining, pageSize)}
}

// EmptyState is the panel shown when the feed has no listings.
func EmptyState(fallbackURL string) Grid {
	return Grid{Panel: &Panel{
		Kind:      PanelEmpty,
		Heading:   "Ingen biler tilgjengelig",
		Body:      "Sjekk tilbake senere eller se alle biler på FINN.no",
		LinkLabel: FallbackLinkLabel,
		LinkURL:   fallbackURL,
	}}
}

// ErrorState is the panel shown when the feed could not be loaded.
func ErrorState(fallbackURL string) Grid {
	return Grid{Panel: &Panel{
		Kind:      PanelError,
		Heading:   "Kunne ikke laste biler",
		Body:      "Prøv å oppdatere siden eller se alle biler på FINN.no",
		LinkLabel: FallbackLinkLabel,
		LinkURL:   fallbackURL,
	}}
}

// YearLabel renders a year or the unknown label.
func YearLabel(y types.Year) string {
	if !y.Known() {
		return UnknownLabel
	}
	return y.String()
}

// MileageLabel renders the display value of a mileage: the upper bound of a
// range, else the value, else the unknown label.
func MileageLabel(m types.Mileage) string {
	if !m.Known() {
		return UnknownLabel
	}
	return strconv.Itoa(m.Display())
}

// NewBadge derives the fuel badge: the class comes from the filter type, the
// text from the fuel type.
func NewBadge(l types.Listing) Badge {
	return Badge{Class: badgeClass(l.FilterType()), Text: badgeText(l.FuelType())}
}

func badgeClass(f types.FilterType) string {
	switch f {
	case types.FilterElectric:
		return "electric"
	case types.FilterHybrid:
		return "hybrid"
	default:
		return ""
	}
}

func badgeText(fuel string) string {
	switch {
	case fuel == "":
		return UnknownLabel
	case strings.Contains(fuel, "Elektrisk"):
		return "Elektrisk"
	case strings.Contains(fuel, "Plug-in"):
		return "Plug-in Hybrid"
	case strings.Contains(fuel, "Hybrid"):
		return "Hybrid"
	default:
		return fuel
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownLabel
	}
	return s
}
