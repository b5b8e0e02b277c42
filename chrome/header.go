// Package chrome holds the page behaviors that sit around the listings: the
// scrolled header, the mobile navigation drawer, smooth in-page scrolling and
// the animated stat counters. Each behavior is a small state machine that a
// host feeds with events and reads back for painting.
package chrome

// DefaultHeaderThreshold is the scroll offset past which the header is styled
// as scrolled.
const DefaultHeaderThreshold = 100

// HeaderScroll tracks the header's "scrolled" style.
type HeaderScroll struct {
	threshold float64
	scrolled  bool
}

// NewHeaderScroll creates a header tracker. A non-positive threshold selects
// DefaultHeaderThreshold.
func NewHeaderScroll(threshold float64) *HeaderScroll {
	if threshold <= 0 {
		threshold = DefaultHeaderThreshold
	}
	return &HeaderScroll{threshold: threshold}
}

// OnScroll recomputes the style for the given vertical offset and returns it.
func (h *HeaderScroll) OnScroll(offset float64) bool {
	h.scrolled = offset > h.threshold
	return h.scrolled
}

func (h *HeaderScroll) Scrolled() bool     { return h.scrolled }
func (h *HeaderScroll) Threshold() float64 { return h.threshold }
