package chrome

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHeaderScroll(t *testing.T) {
	h := NewHeaderScroll(0)
	assert.Equal(t, float64(DefaultHeaderThreshold), h.Threshold())

	tests := []struct {
		offset float64
		want   bool
	}{
		{0, false},
		{100, false},
		{101, true},
		{250, true},
		{40, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, h.OnScroll(tt.offset), "offset %v", tt.offset)
		assert.Equal(t, tt.want, h.Scrolled())
	}
}

func TestNavDrawer(t *testing.T) {
	var d NavDrawer
	assert.False(t, d.Open())
	assert.False(t, d.OnLinkSelect(), "closed drawer ignores link selection")

	assert.True(t, d.Toggle())
	assert.True(t, d.ScrollLocked())

	assert.True(t, d.OnLinkSelect())
	assert.False(t, d.Open())
	assert.False(t, d.ScrollLocked())

	d.Toggle()
	d.Toggle()
	assert.False(t, d.Open(), "two toggles restore the original state")
}

func settle(t *testing.T, s *SmoothScroller) float64 {
	t.Helper()
	for i := 0; i < 10*DefaultFPS; i++ {
		if pos, done := s.Step(); done {
			return pos
		}
	}
	t.Fatalf("scroller did not settle, at %v heading to %v", s.Position(), s.Target())
	return 0
}

func TestSmoothScrollerReachesTarget(t *testing.T) {
	s := NewSmoothScroller(0)
	resolve := func(id string) (float64, bool) {
		if id == "biler" {
			return 1200, true
		}
		return 0, false
	}

	require.True(t, s.Intercept("#biler", 0, resolve))
	require.True(t, s.Active())

	pos, done := s.Step()
	assert.False(t, done)
	assert.Greater(t, pos, 0.0)
	assert.Less(t, pos, 1200.0)

	assert.Equal(t, 1200.0, settle(t, s))
	assert.False(t, s.Active())
}

func TestSmoothScrollerSuppressesUnknownTargets(t *testing.T) {
	s := NewSmoothScroller(DefaultFPS)
	none := func(string) (float64, bool) { return 0, false }

	assert.True(t, s.Intercept("#missing", 300, none))
	assert.False(t, s.Active())
	assert.True(t, s.Intercept("#", 300, none))
	assert.False(t, s.Active())

	assert.False(t, s.Intercept("https://www.finn.no", 300, none), "external links are left alone")
	assert.False(t, s.Intercept("/om-oss", 300, none))
}

func TestSmoothScrollerClampsAtTop(t *testing.T) {
	s := NewSmoothScroller(DefaultFPS)
	s.ScrollTo(400, -50)
	assert.Equal(t, 0.0, settle(t, s))
}

func TestParseCounterTarget(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"120", 120, true},
		{" 45+", 45, true},
		{"0", 0, true},
		{"12 500", 12, true},
		{"-3", -3, true},
		{"", 0, false},
		{"mange", 0, false},
		{"+", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCounterTarget(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestCounterCountsToExactTarget(t *testing.T) {
	c := NewCounter("120")
	assert.False(t, c.Observe(900, 800), "below the fold")
	assert.Equal(t, CounterIdle, c.State())

	require.True(t, c.Observe(500, 800))
	assert.Equal(t, CounterAnimating, c.State())

	var texts []string
	for {
		text, done := c.Step()
		texts = append(texts, text)
		if done {
			break
		}
		require.Less(t, len(texts), 100)
	}

	assert.Len(t, texts, CounterSteps)
	assert.Equal(t, "4", texts[0])
	assert.Equal(t, "116", texts[CounterSteps-2])
	assert.Equal(t, "120", texts[len(texts)-1])
	assert.Equal(t, CounterDone, c.State())
}

func TestCounterFloorsIntermediateValues(t *testing.T) {
	c := NewCounter("7")
	require.True(t, c.Enter())

	prev := 0
	var last string
	for i := 0; i <= CounterSteps+1; i++ {
		text, done := c.Step()
		n, err := strconv.Atoi(text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, prev)
		assert.LessOrEqual(t, n, 7)
		prev, last = n, text
		if done {
			break
		}
	}
	assert.Equal(t, "7", last)
	assert.Equal(t, CounterDone, c.State())
}

func TestCounterAnimatesOnce(t *testing.T) {
	c := NewCounter("5")
	require.True(t, c.Observe(0, 800))
	assert.False(t, c.Observe(0, 800))
	for {
		if _, done := c.Step(); done {
			break
		}
	}
	assert.False(t, c.Observe(0, 800), "re-entry after done")
	text, done := c.Step()
	assert.True(t, done)
	assert.Equal(t, "5", text)
}

func TestCounterNonNumericNeverAnimates(t *testing.T) {
	c := NewCounter("N/A")
	assert.False(t, c.Numeric())
	assert.False(t, c.Observe(0, 800))
	assert.Equal(t, CounterIdle, c.State())
	text, done := c.Step()
	assert.Empty(t, text)
	assert.False(t, done)
}

func TestAnimateWritesEveryStep(t *testing.T) {
	c := NewCounter("30")
	require.True(t, c.Enter())

	var (
		mu     sync.Mutex
		writes []string
	)
	err := Animate(context.Background(), c, time.Millisecond, func(s string) {
		mu.Lock()
		defer mu.Unlock()
		writes = append(writes, s)
	})
	require.NoError(t, err)
	require.Len(t, writes, CounterSteps)
	assert.Equal(t, "1", writes[0])
	assert.Equal(t, "30", writes[len(writes)-1])
}

func TestAnimateStopsOnCancel(t *testing.T) {
	c := NewCounter("1000")
	require.True(t, c.Enter())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Animate(ctx, c, time.Hour, func(string) {})
	}()
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Animate did not return after cancel")
	}
	assert.Equal(t, CounterAnimating, c.State())
}

func TestAnimateIgnoresIdleCounter(t *testing.T) {
	c := NewCounter("10")
	called := false
	require.NoError(t, Animate(context.Background(), c, time.Millisecond, func(string) { called = true }))
	assert.False(t, called)
}

func TestSmoothScrollerStop(t *testing.T) {
	s := NewSmoothScroller(DefaultFPS)
	s.ScrollTo(0, 900)
	s.Step()
	at := s.Position()
	s.Stop()

	pos, done := s.Step()
	assert.True(t, done)
	assert.Equal(t, at, pos)
}
