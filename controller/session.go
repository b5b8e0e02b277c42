package controller

import (
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/store"
	"github.com/nordiskauto/bilvisning/types"
)

// State is the outcome of starting a session.
type State int

const (
	StateReady State = iota
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	PageSize    int
	FallbackURL string
	Placeholder string
}

// Session owns the store and the controllers for one listings section.
// Filters and Pager are nil unless the session is ready.
type Session struct {
	State   State
	Store   *store.Store
	Filters *FilterController
	Pager   *PaginationController
	Err     error
}

// Start renders the initial listings section. A load error paints the error
// panel, an empty feed paints the empty panel, and in both cases the filter
// bar and load-more control stay untouched.
func Start(feed types.Feed, loadErr error, view View, opts Options, logger logging.Logger) *Session {
	logger = logging.OrNoop(logger)
	s := &Session{Store: store.New(opts.PageSize), Err: loadErr}

	if loadErr != nil {
		logger.Error("failed to load listings", "error", loadErr)
		s.State = StateFailed
		view.ShowGrid(render.ErrorState(opts.FallbackURL))
		return s
	}
	if len(feed.Cars) == 0 {
		logger.Info("feed has no listings")
		s.State = StateEmpty
		view.ShowGrid(render.EmptyState(opts.FallbackURL))
		return s
	}

	s.Store.SetData(feed.Cars, feed.Stats)
	s.Pager = NewPaginationController(s.Store, view, view, opts.Placeholder)
	s.Filters = NewFilterController(s.Store, view, view, s.Pager, opts.Placeholder)

	view.ShowGrid(render.Cards(s.Store.VisibleSlice(), opts.Placeholder))
	s.Filters.Render()
	view.ShowStats(render.Counter(feed.Stats))
	s.Pager.Render()
	s.State = StateReady
	logger.Debug("listings rendered", "total", s.Store.Len(), "visible", s.Store.VisibleCount())
	return s
}

// Dispose unbinds both controllers.
func (s *Session) Dispose() {
	if s.Filters != nil {
		s.Filters.Dispose()
	}
	if s.Pager != nil {
		s.Pager.Dispose()
	}
}
