// Package controller binds user activations to the listing store and pushes
// freshly rendered fragments to a host view.
package controller

import (
	"errors"

	"github.com/nordiskauto/bilvisning/render"
)

var (
	// ErrDisposed is returned by activations after Dispose.
	ErrDisposed = errors.New("controller disposed")
	// ErrUnknownFilter is returned for a filter outside types.Filters.
	ErrUnknownFilter = errors.New("unknown filter")
)

// GridView paints the listings grid.
type GridView interface {
	ShowGrid(render.Grid)
}

// FilterView paints the filter bar.
type FilterView interface {
	ShowFilters(render.FilterBar)
}

// LoadMoreView paints the load-more control.
type LoadMoreView interface {
	ShowLoadMore(render.LoadMore)
}

// StatsView paints the stat counter.
type StatsView interface {
	ShowStats(render.StatsCounter)
}

// View is everything a host must paint for the listings section.
type View interface {
	GridView
	FilterView
	LoadMoreView
	StatsView
}
