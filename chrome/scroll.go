package chrome

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultFPS is the frame rate smooth scrolling is stepped at.
	DefaultFPS = 60

	springFrequency = 6.0
	springDamping   = 1.0
	settleDistance  = 0.5
)

// Resolver returns the page-coordinate top edge of the element with the given
// id.
type Resolver func(id string) (top float64, ok bool)

// SmoothScroller animates the viewport towards an in-page anchor target with
// a critically damped spring.
type SmoothScroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

// NewSmoothScroller creates a scroller stepped at fps frames per second.
func NewSmoothScroller(fps int) *SmoothScroller {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &SmoothScroller{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

// IsAnchor reports whether href points inside the page.
func IsAnchor(href string) bool {
	return strings.HasPrefix(href, "#")
}

// Intercept handles an anchor activation at scroll offset from. It returns
// true when the default navigation must be suppressed, which is every in-page
// anchor. Scrolling only starts when the target resolves.
func (s *SmoothScroller) Intercept(href string, from float64, resolve Resolver) bool {
	if !IsAnchor(href) {
		return false
	}
	id := strings.TrimPrefix(href, "#")
	if id == "" || resolve == nil {
		return true
	}
	top, ok := resolve(id)
	if !ok {
		return true
	}
	s.ScrollTo(from, top)
	return true
}

// ScrollTo starts an animation from the current offset to target.
func (s *SmoothScroller) ScrollTo(from, target float64) {
	s.pos = from
	s.target = math.Max(target, 0)
	if !s.active {
		s.vel = 0
	}
	s.active = s.pos != s.target
}

// Step advances one frame and returns the new offset. done is true once the
// offset has settled exactly on the target.
func (s *SmoothScroller) Step() (pos float64, done bool) {
	if !s.active {
		return s.pos, true
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settleDistance && math.Abs(s.vel) < settleDistance {
		s.pos, s.vel = s.target, 0
		s.active = false
	}
	return s.pos, !s.active
}

// Stop abandons the current animation where it is, as a user scroll does.
func (s *SmoothScroller) Stop() {
	s.active = false
	s.vel = 0
}

func (s *SmoothScroller) Active() bool      { return s.active }
func (s *SmoothScroller) Position() float64 { return s.pos }
func (s *SmoothScroller) Target() float64   { return s.target }
