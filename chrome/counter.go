package chrome

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// CounterSteps is the number of increments from zero to the target.
	CounterSteps = 30
	// CounterInterval is the delay between increments.
	CounterInterval = 50 * time.Millisecond
)

// CounterState is the lifecycle of a stat counter.
type CounterState int

const (
	CounterIdle CounterState = iota
	CounterAnimating
	CounterDone
)

func (s CounterState) String() string {
	switch s {
	case CounterIdle:
		return "idle"
	case CounterAnimating:
		return "animating"
	case CounterDone:
		return "done"
	default:
		return "unknown"
	}
}

// Counter counts a stat element up from zero the first time it scrolls into
// view. It never animates twice.
type Counter struct {
	target    int
	numeric   bool
	current   float64
	increment float64
	state     CounterState
}

// NewCounter creates a counter for an element whose text is text. Text that
// does not start with an integer never animates.
func NewCounter(text string) *Counter {
	target, ok := ParseCounterTarget(text)
	return &Counter{target: target, numeric: ok}
}

// ParseCounterTarget reads the leading integer of text, so "120+" is 120.
func ParseCounterTarget(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Observe reports the element's top edge relative to the viewport. The first
// observation with top inside the viewport starts the animation; it returns
// true only for that observation.
func (c *Counter) Observe(top, viewportHeight float64) bool {
	if top >= viewportHeight {
		return false
	}
	return c.Enter()
}

// Enter starts the animation if the counter is idle and numeric.
func (c *Counter) Enter() bool {
	if c.state != CounterIdle || !c.numeric {
		return false
	}
	c.state = CounterAnimating
	c.current = 0
	c.increment = float64(c.target) / CounterSteps
	return true
}

// Step advances one increment and returns the text to display. The final step
// shows the exact target and moves the counter to done.
func (c *Counter) Step() (text string, done bool) {
	switch c.state {
	case CounterAnimating:
	case CounterDone:
		return strconv.Itoa(c.target), true
	default:
		return "", false
	}
	c.current += c.increment
	if c.current >= float64(c.target) {
		c.state = CounterDone
		return strconv.Itoa(c.target), true
	}
	return strconv.Itoa(int(math.Floor(c.current))), false
}

func (c *Counter) State() CounterState { return c.state }
func (c *Counter) Target() int         { return c.target }
func (c *Counter) Numeric() bool       { return c.numeric }

// Animate steps an animating counter every interval, passing each text to
// write, until it is done or ctx is cancelled. It returns nil immediately for
// a counter that is not animating.
func Animate(ctx context.Context, c *Counter, interval time.Duration, write func(string)) error {
	if c.State() != CounterAnimating {
		return nil
	}
	if interval <= 0 {
		interval = CounterInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			text, done := c.Step()
			write(text)
			if done {
				return nil
			}
		}
	}
}
