package controller

import (
	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/store"
)

// PaginationController drives the "load more" control. The control is shown
// only while the current filter has listings beyond the visible window.
type PaginationController struct {
	store       *store.Store
	grid        GridView
	view        LoadMoreView
	placeholder string
	disposed    bool
}

// NewPaginationController binds the control to s.
func NewPaginationController(s *store.Store, grid GridView, view LoadMoreView, placeholder string) *PaginationController {
	return &PaginationController{store: s, grid: grid, view: view, placeholder: placeholder}
}

// State returns the control as it should currently be displayed.
func (c *PaginationController) State() render.LoadMore {
	return render.LoadMoreButton(c.store.FilteredCount(), c.store.VisibleCount(), c.store.PageSize())
}

// Render recomputes the control's visibility and label.
func (c *PaginationController) Render() {
	if c.disposed {
		return
	}
	c.view.ShowLoadMore(c.State())
}

// OnActivate reveals the next page. It reports whether anything changed;
// activating a hidden control is a no-op.
func (c *PaginationController) OnActivate() (bool, error) {
	if c.disposed {
		return false, ErrDisposed
	}
	if !c.State().Visible {
		return false, nil
	}
	c.store.AdvancePage()
	c.grid.ShowGrid(render.Cards(c.store.VisibleSlice(), c.placeholder))
	c.Render()
	return true, nil
}

// Dispose unbinds the controller.
func (c *PaginationController) Dispose() {
	c.disposed = true
}
