package ui

import "github.com/nordiskauto/bilvisning/render"

// screen keeps the last fragment the controllers painted. The model renders
// from it on every View.
type screen struct {
	grid     *render.Grid
	filters  *render.FilterBar
	loadMore render.LoadMore
	stats    *render.StatsCounter
}

func (s *screen) ShowGrid(g render.Grid)          { s.grid = &g }
func (s *screen) ShowFilters(f render.FilterBar)  { s.filters = &f }
func (s *screen) ShowLoadMore(l render.LoadMore)  { s.loadMore = l }
func (s *screen) ShowStats(c render.StatsCounter) { s.stats = &c }

func (s *screen) cards() []render.Card {
	if s.grid == nil {
		return nil
	}
	return s.grid.Cards
}

func (s *screen) panel() *render.Panel {
	if s.grid == nil {
		return nil
	}
	return s.grid.Panel
}
