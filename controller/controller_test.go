package controller

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallback = "https://www.finn.no/mobility/search/car?orgId=1031027521"

// recordingView keeps the last fragment of each kind and counts paints.
type recordingView struct {
	grid     *render.Grid
	filters  *render.FilterBar
	loadMore *render.LoadMore
	stats    *render.StatsCounter
	paints   int
}

func (v *recordingView) ShowGrid(g render.Grid)          { v.grid = &g; v.paints++ }
func (v *recordingView) ShowFilters(f render.FilterBar)  { v.filters = &f; v.paints++ }
func (v *recordingView) ShowLoadMore(l render.LoadMore)  { v.loadMore = &l; v.paints++ }
func (v *recordingView) ShowStats(s render.StatsCounter) { v.stats = &s; v.paints++ }

func fixtureFeed() types.Feed {
	tags := []types.FilterType{
		types.FilterElectric, types.FilterElectric, types.FilterHybrid, types.FilterDiesel,
		types.FilterElectric, types.FilterHybrid, types.FilterPetrol, types.FilterElectric,
		types.FilterDiesel, types.FilterHybrid, types.FilterPetrol, types.FilterElectric,
	}
	cars := make([]types.Listing, 0, len(tags))
	for i, tag := range tags {
		cars = append(cars, types.NewListing(
			"Brand", fmt.Sprintf("Car %02d", i), "", types.Year(2020), types.NewMileage(1000*i),
			"", "100 000", fmt.Sprintf("https://www.finn.no/mobility/item/%d", i), tag,
		))
	}
	return types.Feed{Cars: cars, Stats: types.DeriveStats(cars)}
}

func cardTitles(g *render.Grid) []string {
	out := make([]string, 0, len(g.Cards))
	for _, c := range g.Cards {
		out = append(out, c.Title)
	}
	return out
}

func startReady(t *testing.T) (*Session, *recordingView) {
	t.Helper()
	view := &recordingView{}
	s := Start(fixtureFeed(), nil, view, Options{PageSize: 9, FallbackURL: fallback}, nil)
	require.Equal(t, StateReady, s.State)
	return s, view
}

func TestStartRendersFirstPage(t *testing.T) {
	s, view := startReady(t)

	require.NotNil(t, view.grid)
	assert.Len(t, view.grid.Cards, 9)
	assert.Nil(t, view.grid.Panel)

	require.NotNil(t, view.filters)
	assert.Equal(t, types.FilterAll, view.filters.Active())
	assert.Equal(t, "Alle (12)", view.filters.Buttons[0].Label())
	assert.Equal(t, "Elbiler (5)", view.filters.Buttons[1].Label())

	require.NotNil(t, view.stats)
	assert.Equal(t, "12", view.stats.Text())

	require.NotNil(t, view.loadMore)
	assert.True(t, view.loadMore.Visible)
	assert.Equal(t, "Vis 3 flere", view.loadMore.Label())

	assert.Equal(t, types.FilterAll, s.Filters.Active())
}

func TestLoadMoreRevealsRemainder(t *testing.T) {
	s, view := startReady(t)

	changed, err := s.Pager.OnActivate()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, view.grid.Cards, 12)
	assert.False(t, view.loadMore.Visible)
	assert.Equal(t, "none", view.loadMore.Display())

	// hidden control does nothing
	paints := view.paints
	changed, err = s.Pager.OnActivate()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, paints, view.paints)
}

func TestFilterActivationResetsWindow(t *testing.T) {
	s, view := startReady(t)

	_, err := s.Pager.OnActivate()
	require.NoError(t, err)

	require.NoError(t, s.Filters.OnActivate(types.FilterElectric))
	assert.Equal(t, types.FilterElectric, view.filters.Active())
	assert.Equal(t, []string{"Car 00", "Car 01", "Car 04", "Car 07", "Car 11"}, cardTitles(view.grid))
	assert.False(t, view.loadMore.Visible)
	assert.Equal(t, 9, s.Store.VisibleCount())

	active := 0
	for _, b := range view.filters.Buttons {
		if b.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)

	require.NoError(t, s.Filters.OnActivate(types.FilterAll))
	assert.Len(t, view.grid.Cards, 9)
	assert.True(t, view.loadMore.Visible)
}

func TestFilterWithNoMatches(t *testing.T) {
	view := &recordingView{}
	cars := fixtureFeed().Cars[:2]
	s := Start(types.Feed{Cars: cars, Stats: types.DeriveStats(cars)}, nil, view, Options{PageSize: 9}, nil)

	require.NoError(t, s.Filters.OnActivate(types.FilterDiesel))
	assert.Empty(t, view.grid.Cards)
	assert.False(t, view.loadMore.Visible)
}

func TestFilterRejectsUnknown(t *testing.T) {
	s, view := startReady(t)
	paints := view.paints

	err := s.Filters.OnActivate(types.FilterType("lpg"))
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.Equal(t, paints, view.paints)
	assert.Equal(t, types.FilterAll, s.Filters.Active())
}

func TestDisposeUnbinds(t *testing.T) {
	s, view := startReady(t)
	s.Dispose()
	paints := view.paints

	assert.ErrorIs(t, s.Filters.OnActivate(types.FilterHybrid), ErrDisposed)
	_, err := s.Pager.OnActivate()
	assert.ErrorIs(t, err, ErrDisposed)
	s.Filters.Render()
	s.Pager.Render()
	assert.Equal(t, paints, view.paints)
}

func TestStartEmptyFeed(t *testing.T) {
	view := &recordingView{}
	s := Start(types.Feed{}, nil, view, Options{PageSize: 9, FallbackURL: fallback}, nil)

	assert.Equal(t, StateEmpty, s.State)
	require.NotNil(t, view.grid)
	require.NotNil(t, view.grid.Panel)
	assert.Equal(t, render.PanelEmpty, view.grid.Panel.Kind)
	assert.Equal(t, fallback, view.grid.Panel.LinkURL)
	assert.Nil(t, view.filters)
	assert.Nil(t, view.loadMore)
	assert.Nil(t, s.Filters)
	assert.Nil(t, s.Pager)
	s.Dispose()
}

func TestStartLoadError(t *testing.T) {
	view := &recordingView{}
	loadErr := &feed.NetworkError{Location: "data/cars.json", StatusCode: 404, Err: errors.New("not found")}
	s := Start(types.Feed{}, loadErr, view, Options{PageSize: 9, FallbackURL: fallback}, nil)

	assert.Equal(t, StateFailed, s.State)
	require.NotNil(t, view.grid.Panel)
	assert.True(t, view.grid.Panel.Failed())
	assert.Equal(t, render.FallbackLinkLabel, view.grid.Panel.LinkLabel)
	assert.Nil(t, view.filters)
	assert.Nil(t, view.loadMore)
	assert.Nil(t, view.stats)

	var netErr *feed.NetworkError
	assert.ErrorAs(t, s.Err, &netErr)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "failed", StateFailed.String())
}
