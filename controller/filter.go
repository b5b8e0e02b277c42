package controller

import (
	"slices"

	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/store"
	"github.com/nordiskauto/bilvisning/types"
)

// FilterController drives the filter bar. Its state is the active filter,
// starting at "all" and changing only on user activation.
type FilterController struct {
	store       *store.Store
	grid        GridView
	bar         FilterView
	pager       *PaginationController
	placeholder string
	disposed    bool
}

// NewFilterController binds the filter bar to s. pager is recomputed after
// every filter change.
func NewFilterController(s *store.Store, grid GridView, bar FilterView, pager *PaginationController, placeholder string) *FilterController {
	return &FilterController{store: s, grid: grid, bar: bar, pager: pager, placeholder: placeholder}
}

// Active returns the active filter.
func (c *FilterController) Active() types.FilterType {
	return c.store.Filter()
}

// Render paints the filter bar with the active button marked.
func (c *FilterController) Render() {
	if c.disposed {
		return
	}
	c.bar.ShowFilters(render.FilterButtons(c.store.Stats(), c.store.Filter()))
}

// OnActivate selects f: it becomes the only active button, the window resets
// to the first page and the load-more control is recomputed.
func (c *FilterController) OnActivate(f types.FilterType) error {
	if c.disposed {
		return ErrDisposed
	}
	if !slices.Contains(types.Filters, f) {
		return ErrUnknownFilter
	}
	c.store.SetFilter(f)
	c.Render()
	c.grid.ShowGrid(render.Cards(c.store.VisibleSlice(), c.placeholder))
	if c.pager != nil {
		c.pager.Render()
	}
	return nil
}

// Dispose unbinds the controller.
func (c *FilterController) Dispose() {
	c.disposed = true
}
