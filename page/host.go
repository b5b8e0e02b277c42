package page

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nordiskauto/bilvisning/chrome"
	"github.com/nordiskauto/bilvisning/controller"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/types"
	"golang.org/x/sync/errgroup"
)

// DefaultViewportHeight is the viewport height used when none is configured.
const DefaultViewportHeight = 800

var (
	// ErrNotReady is returned by listing activations before a successful load.
	ErrNotReady = errors.New("listings not ready")
	// ErrNoSuchElement is returned when an activation targets a missing element.
	ErrNoSuchElement = errors.New("no such element")
)

// Options configures a Host.
type Options struct {
	PageSize        int
	FallbackURL     string
	Placeholder     string
	HeaderThreshold float64
	ViewportHeight  float64
	CounterInterval time.Duration
	FPS             int
	Logger          logging.Logger
}

type statCounter struct {
	counter *chrome.Counter
	started bool
}

// Host drives one page: the listings section and the chrome around it.
// Event methods must be called from a single goroutine; counter animations
// run on their own goroutines and write through the document lock.
type Host struct {
	doc      *Document
	opts     Options
	logger   logging.Logger
	view     *domView
	session  *controller.Session
	header   *chrome.HeaderScroll
	nav      chrome.NavDrawer
	scroller *chrome.SmoothScroller
	counters []*statCounter
	scrollY  float64

	ctx     context.Context
	cancel  context.CancelFunc
	animate errgroup.Group
}

// NewHost binds a host to doc. Chrome behaviors are live immediately; the
// listings section waits for Mount.
func NewHost(doc *Document, opts Options) *Host {
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	if opts.CounterInterval <= 0 {
		opts.CounterInterval = chrome.CounterInterval
	}
	logger := logging.OrNoop(opts.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Host{
		doc:      doc,
		opts:     opts,
		logger:   logger,
		view:     &domView{doc: doc, logger: logger},
		header:   chrome.NewHeaderScroll(opts.HeaderThreshold),
		scroller: chrome.NewSmoothScroller(opts.FPS),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Mount loads the feed once and renders the listings section. Load failures
// are painted as the error panel rather than returned.
func (h *Host) Mount(ctx context.Context, source types.ListingSource) *controller.Session {
	feed, err := source.Load(ctx)
	h.session = controller.Start(feed, err, h.view, controller.Options{
		PageSize:    h.opts.PageSize,
		FallbackURL: h.opts.FallbackURL,
		Placeholder: h.opts.Placeholder,
	}, h.logger)
	if h.session.State == controller.StateReady {
		h.initCounters()
		h.observeCounters()
	}
	return h.session
}

// Session returns the mounted session, or nil before Mount.
func (h *Host) Session() *controller.Session { return h.session }

func (h *Host) Document() *Document { return h.doc }

func (h *Host) ScrollY() float64 { return h.scrollY }

// OnScroll handles a user scroll to offset y. It is ignored while the nav
// drawer locks the page.
func (h *Host) OnScroll(y float64) {
	if h.nav.ScrollLocked() {
		return
	}
	h.scrollTo(y)
}

func (h *Host) scrollTo(y float64) {
	h.scrollY = y
	scrolled := h.header.OnScroll(y)
	h.doc.update(func(doc *goquery.Document) {
		toggleClass(doc.FindMatcher(selHeader), "scrolled", scrolled)
	})
	h.observeCounters()
}

// ClickNavToggle toggles the drawer from the hamburger button.
func (h *Host) ClickNavToggle() { h.toggleNav() }

// ClickNavOverlay toggles the drawer from the overlay.
func (h *Host) ClickNavOverlay() { h.toggleNav() }

// ClickNavLink activates the i-th nav link: it closes an open drawer and
// follows in-page anchors smoothly. It reports whether default navigation
// was suppressed.
func (h *Host) ClickNavLink(i int) (bool, error) {
	var (
		href  string
		found bool
	)
	h.doc.Read(func(doc *goquery.Document) {
		link := doc.FindMatcher(selNavLinks).Eq(i)
		found = link.Length() > 0
		href, _ = link.Attr("href")
	})
	if !found {
		return false, fmt.Errorf("nav link %d: %w", i, ErrNoSuchElement)
	}
	if h.nav.OnLinkSelect() {
		h.applyNav()
	}
	return h.scroller.Intercept(href, h.scrollY, h.resolve), nil
}

// ClickAnchor clicks the in-page link whose href is href. The default
// navigation is always suppressed; a smooth scroll starts when the target
// exists.
func (h *Host) ClickAnchor(href string) (bool, error) {
	found := false
	h.doc.Read(func(doc *goquery.Document) {
		doc.FindMatcher(selAnchors).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			v, _ := a.Attr("href")
			found = v == href
			return !found
		})
	})
	if !found {
		return false, fmt.Errorf("anchor %q: %w", href, ErrNoSuchElement)
	}
	return h.scroller.Intercept(href, h.scrollY, h.resolve), nil
}

// Scrolling reports whether a smooth scroll is in progress.
func (h *Host) Scrolling() bool { return h.scroller.Active() }

// ScrollFrame advances a smooth scroll by one frame.
func (h *Host) ScrollFrame() (y float64, done bool) {
	if !h.scroller.Active() {
		return h.scrollY, true
	}
	y, done = h.scroller.Step()
	h.scrollTo(y)
	return y, done
}

// ClickFilter activates the filter button carrying data-filter=filter.
func (h *Host) ClickFilter(filter string) error {
	if !h.ready() {
		return ErrNotReady
	}
	found := false
	h.doc.Read(func(doc *goquery.Document) {
		doc.FindMatcher(selFilterBtns).EachWithBreak(func(_ int, btn *goquery.Selection) bool {
			if v, _ := btn.Attr("data-filter"); v == filter {
				found = true
			}
			return !found
		})
	})
	if !found {
		return fmt.Errorf("filter button %q: %w", filter, ErrNoSuchElement)
	}
	return h.session.Filters.OnActivate(types.FilterType(filter))
}

// ClickLoadMore activates the load-more control. It reports whether more
// listings were revealed.
func (h *Host) ClickLoadMore() (bool, error) {
	if !h.ready() {
		return false, ErrNotReady
	}
	if h.doc.Count("#load-more-btn") == 0 {
		return false, fmt.Errorf("load-more button: %w", ErrNoSuchElement)
	}
	return h.session.Pager.OnActivate()
}

// WaitCounters blocks until every started counter animation has finished.
func (h *Host) WaitCounters() error {
	return h.animate.Wait()
}

// Close stops counter animations and releases the controllers.
func (h *Host) Close() error {
	h.cancel()
	err := h.animate.Wait()
	if h.session != nil {
		h.session.Dispose()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Host) ready() bool {
	return h.session != nil && h.session.State == controller.StateReady
}

func (h *Host) toggleNav() {
	h.nav.Toggle()
	h.applyNav()
}

func (h *Host) applyNav() {
	open := h.nav.Open()
	h.doc.update(func(doc *goquery.Document) {
		toggleClass(doc.FindMatcher(selNavToggle), "active", open)
		toggleClass(doc.FindMatcher(selNav), "active", open)
		toggleClass(doc.FindMatcher(selNavOverlay), "active", open)
		overflow := ""
		if h.nav.ScrollLocked() {
			overflow = "hidden"
		}
		setStyle(doc.FindMatcher(selBody), "overflow", overflow)
	})
}

func (h *Host) resolve(id string) (float64, bool) {
	var (
		top float64
		ok  bool
	)
	h.doc.Read(func(doc *goquery.Document) {
		target := doc.Find("[id]").FilterFunction(func(_ int, el *goquery.Selection) bool {
			v, _ := el.Attr("id")
			return v == id
		}).First()
		if target.Length() == 0 {
			return
		}
		top, ok = layoutTop(target), true
	})
	return top, ok
}

func (h *Host) initCounters() {
	h.doc.Read(func(doc *goquery.Document) {
		doc.FindMatcher(selStats).Each(func(_ int, s *goquery.Selection) {
			h.counters = append(h.counters, &statCounter{counter: chrome.NewCounter(s.Text())})
		})
	})
}

// observeCounters starts every counter whose element has entered the
// viewport.
func (h *Host) observeCounters() {
	for i, sc := range h.counters {
		if sc.started {
			continue
		}
		var top float64
		h.doc.Read(func(doc *goquery.Document) {
			top = layoutTop(doc.FindMatcher(selStats).Eq(i)) - h.scrollY
		})
		if !sc.counter.Observe(top, h.opts.ViewportHeight) {
			continue
		}
		sc.started = true
		h.startCounter(i, sc.counter)
	}
}

func (h *Host) startCounter(i int, c *chrome.Counter) {
	h.doc.update(func(doc *goquery.Document) {
		doc.FindMatcher(selStats).Eq(i).AddClass("animated")
	})
	h.logger.Debug("counter started", "index", i, "target", c.Target())
	h.animate.Go(func() error {
		return chrome.Animate(h.ctx, c, h.opts.CounterInterval, func(text string) {
			h.doc.update(func(doc *goquery.Document) {
				doc.FindMatcher(selStats).Eq(i).SetText(text)
			})
		})
	})
}
