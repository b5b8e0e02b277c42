// Package store holds the loaded listings and the view state derived from them.
package store

import "github.com/nordiskauto/bilvisning/types"

// Store owns the full listing set, the current filter and the visible-count
// cursor for one session. It is not safe for concurrent use; hosts drive it
// from a single event loop.
type Store struct {
	pageSize int
	cars     []types.Listing
	stats    types.Stats
	filter   types.FilterType
	visible  int
}

// New creates an empty Store. A non-positive pageSize is treated as 1.
func New(pageSize int) *Store {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Store{pageSize: pageSize, filter: types.FilterAll, visible: pageSize}
}

// SetData replaces the listing set and restarts at page one of "all".
func (s *Store) SetData(cars []types.Listing, stats types.Stats) {
	s.cars = append([]types.Listing(nil), cars...)
	s.stats = stats
	s.filter = types.FilterAll
	s.visible = s.pageSize
}

// SetFilter selects a category and restarts pagination from page one, so a
// stale and possibly empty tail is never shown.
func (s *Store) SetFilter(f types.FilterType) {
	s.filter = f
	s.visible = s.pageSize
}

// AdvancePage reveals one more page.
func (s *Store) AdvancePage() {
	s.visible += s.pageSize
}

// VisibleSlice returns the first VisibleCount listings matching the current
// filter, in feed order.
func (s *Store) VisibleSlice() []types.Listing {
	out := make([]types.Listing, 0, min(s.visible, len(s.cars)))
	for _, c := range s.cars {
		if len(out) == s.visible {
			break
		}
		if s.filter.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// FilteredCount counts the listings matching the current filter.
func (s *Store) FilteredCount() int {
	if s.filter == types.FilterAll {
		return len(s.cars)
	}
	n := 0
	for _, c := range s.cars {
		if s.filter.Matches(c) {
			n++
		}
	}
	return n
}

// Remaining is the number of matching listings not yet visible; never negative.
func (s *Store) Remaining() int {
	return max(s.FilteredCount()-s.visible, 0)
}

func (s *Store) Filter() types.FilterType { return s.filter }
func (s *Store) VisibleCount() int        { return s.visible }
func (s *Store) PageSize() int            { return s.pageSize }
func (s *Store) Stats() types.Stats       { return s.stats }
func (s *Store) Len() int                 { return len(s.cars) }
