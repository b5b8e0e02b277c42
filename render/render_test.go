package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/nordiskauto/bilvisning/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = "assets/images/placeholder.jpg"

func listing(title string, year types.Year, mileage types.Mileage, fuel string, tag types.FilterType) types.Listing {
	return types.NewListing("Tesla", title, "https://img.example/"+title+".jpg", year, mileage, fuel, "329 900", "https://www.finn.no/mobility/item/1", tag)
}

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestMileageLabel(t *testing.T) {
	assert.Equal(t, "25000", MileageLabel(types.NewMileageRange(1000, 25000)))
	assert.Equal(t, "17000", MileageLabel(types.NewMileage(17000)))
	assert.Equal(t, UnknownLabel, MileageLabel(types.UnknownMileage()))
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "2021", YearLabel(2021))
	assert.Equal(t, UnknownLabel, YearLabel(0))
}

func TestNewCardFallbacks(t *testing.T) {
	bare := types.NewListing("Kia", "Kia Niro", "", 0, types.UnknownMileage(), "", "259 900", "https://www.finn.no/mobility/item/9", types.FilterHybrid)

	card := NewCard(bare, placeholder)

	assert.Equal(t, placeholder, card.Image, "empty image shows the placeholder")
	assert.Equal(t, UnknownLabel, card.Year)
	assert.Equal(t, UnknownLabel, card.Mileage)
	assert.Equal(t, UnknownLabel, card.FuelType)
	assert.Equal(t, "259 900 kr", card.PriceLabel())
	assert.Equal(t, Badge{Class: "hybrid", Text: UnknownLabel}, card.Badge)
}

func TestBadge(t *testing.T) {
	tests := []struct {
		fuel     string
		tag      types.FilterType
		expected Badge
	}{
		{"Elektrisk", types.FilterElectric, Badge{"electric", "Elektrisk"}},
		{"Plug-in Hybrid bensin", types.FilterHybrid, Badge{"hybrid", "Plug-in Hybrid"}},
		{"Hybrid diesel", types.FilterHybrid, Badge{"hybrid", "Hybrid"}},
		{"Diesel", types.FilterDiesel, Badge{"", "Diesel"}},
		{"", types.FilterPetrol, Badge{"", UnknownLabel}},
	}

	for _, tt := range tests {
		t.Run(tt.fuel, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewBadge(listing("x", 2020, types.NewMileage(1), tt.fuel, tt.tag)))
		})
	}
}

func TestGridMarkup(t *testing.T) {
	cars := []types.Listing{
		listing("first", 2021, types.NewMileageRange(1000, 25000), "Elektrisk", types.FilterElectric),
		listing("second", 0, types.UnknownMileage(), "", types.FilterDiesel),
	}

	markup, err := Cards(cars, placeholder).HTML()
	require.NoError(t, err)
	doc := parse(t, markup)

	cards := doc.Find(".car-card")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, "el", first.AttrOr("data-type", ""))
	assert.Equal(t, "first", first.Find(".car-title").Text())
	assert.Equal(t, "Tesla", first.Find(".car-brand").Text())
	assert.Equal(t, "2021", strings.TrimSpace(first.Find(".car-year").Text()))
	assert.Equal(t, "25000", strings.TrimSpace(first.Find(".car-mileage").Text()))
	assert.Equal(t, "329 900 kr", first.Find(".car-price").Text())

	img := first.Find("img")
	assert.Equal(t, "https://img.example/first.jpg", img.AttrOr("src", ""))
	assert.Equal(t, placeholder, img.AttrOr("data-fallback", ""))
	assert.NotEmpty(t, img.AttrOr("onerror", ""))

	link := first.Find("a.car-link")
	assert.Equal(t, "https://www.finn.no/mobility/item/1", link.AttrOr("href", ""))
	assert.Equal(t, "_blank", link.AttrOr("target", ""))

	second := cards.Eq(1)
	assert.Equal(t, UnknownLabel, strings.TrimSpace(second.Find(".car-year").Text()))
	assert.Equal(t, UnknownLabel, strings.TrimSpace(second.Find(".car-mileage").Text()))
	assert.Equal(t, UnknownLabel, strings.TrimSpace(second.Find(".car-fuel").Text()))
}

func TestGridMarkupEscapes(t *testing.T) {
	evil := types.NewListing("<b>", `"><script>alert(1)</script>`, "", 0, types.UnknownMileage(), "", "1", "javascript:alert(1)", types.FilterPetrol)

	markup, err := Cards([]types.Listing{evil}, placeholder).HTML()
	require.NoError(t, err)

	assert.NotContains(t, markup, "<script>")
	doc := parse(t, markup)
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.NotEqual(t, "javascript:alert(1)", doc.Find("a.car-link").AttrOr("href", ""))
}

func TestPanels(t *testing.T) {
	const fallback = "https://www.finn.no/mobility/search/car?orgId=1031027521"

	empty := EmptyState(fallback)
	failed := ErrorState(fallback)

	require.NotNil(t, empty.Panel)
	require.NotNil(t, failed.Panel)
	assert.Empty(t, empty.Cards)
	assert.False(t, empty.Panel.Failed())
	assert.True(t, failed.Panel.Failed())
	assert.NotEqual(t, empty.Panel.Heading, failed.Panel.Heading)

	for _, g := range []Grid{empty, failed} {
		markup, err := g.HTML()
		require.NoError(t, err)
		doc := parse(t, markup)
		link := doc.Find(".listings-panel a")
		assert.Equal(t, fallback, link.AttrOr("href", ""))
		assert.Equal(t, "_blank", link.AttrOr("target", ""))
		assert.Equal(t, FallbackLinkLabel, link.Text())
		assert.Equal(t, 0, doc.Find(".car-card").Length())
	}
}

func TestFilterButtons(t *testing.T) {
	stats := types.Stats{Total: 12, Electric: 5, Hybrid: 3, Petrol: 2, Diesel: 2}

	for _, active := range types.Filters {
		bar := FilterButtons(stats, active)
		require.Len(t, bar.Buttons, 5)
		activeCount := 0
		for _, b := range bar.Buttons {
			if b.Active {
				activeCount++
				assert.Equal(t, active, b.Filter)
			}
		}
		assert.Equal(t, 1, activeCount)
		assert.Equal(t, active, bar.Active())
	}

	bar := FilterButtons(stats, types.FilterType("lpg"))
	assert.Equal(t, types.FilterAll, bar.Active(), "unknown filter falls back to all")

	markup, err := FilterButtons(stats, types.FilterElectric).HTML()
	require.NoError(t, err)
	doc := parse(t, markup)
	var labels []string
	doc.Find("button.filter-btn").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Text())
	})
	assert.Equal(t, []string{"Alle (12)", "Elbiler (5)", "Hybrid (3)", "Bensin (2)", "Diesel (2)"}, labels)
	assert.Equal(t, "el", doc.Find("button.active").AttrOr("data-filter", ""))
}

func TestLoadMoreButton(t *testing.T) {
	tests := []struct {
		name                        string
		filtered, visible, pageSize int
		expected                    LoadMore
		label                       string
	}{
		{"partial last page", 12, 9, 9, LoadMore{Visible: true, Increment: 3}, "Vis 3 flere"},
		{"full next page", 30, 9, 9, LoadMore{Visible: true, Increment: 9}, "Vis 9 flere"},
		{"exactly shown", 9, 9, 9, LoadMore{}, ""},
		{"fewer than page", 5, 9, 9, LoadMore{}, ""},
		{"empty", 0, 9, 9, LoadMore{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoadMoreButton(tt.filtered, tt.visible, tt.pageSize)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.label, got.Label())
		})
	}

	assert.Equal(t, "none", LoadMore{}.Display())
	assert.Equal(t, "inline-flex", LoadMore{Visible: true, Increment: 1}.Display())

	markup, err := LoadMoreButton(12, 9, 9).HTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(markup, "Vis 3 flere"))
	assert.Contains(t, markup, "<svg")
}

func TestCounter(t *testing.T) {
	assert.Equal(t, "120", Counter(types.Stats{Total: 120}).Text())
}
