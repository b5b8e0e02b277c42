// Package page hosts the listings section on a headless HTML document. It
// honors the same ids and classes as the storefront page, so the controllers
// and chrome behaviors can be driven without a browser.
package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	selBody       = cascadia.MustCompile("body")
	selGrid       = cascadia.MustCompile("#cars-grid")
	selFilters    = cascadia.MustCompile(".filter-container")
	selFilterBtns = cascadia.MustCompile(".filter-btn[data-filter]")
	selLoadMore   = cascadia.MustCompile("#load-more-btn")
	selHeader     = cascadia.MustCompile("#header")
	selNavToggle  = cascadia.MustCompile("#nav-toggle")
	selNav        = cascadia.MustCompile("#nav")
	selNavOverlay = cascadia.MustCompile("#nav-overlay")
	selNavLinks   = cascadia.MustCompile("nav a")
	selStats      = cascadia.MustCompile(".stat-number")
	selAnchors    = cascadia.MustCompile(`a[href^="#"]`)
)

// Document is an HTML document shared between the host and its counter
// goroutines. All access goes through its lock.
type Document struct {
	mu  sync.Mutex
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString reads an HTML page from a string.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// Read runs fn with the document locked. fn must not retain the document.
func (d *Document) Read(fn func(doc *goquery.Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.doc)
}

func (d *Document) update(fn func(doc *goquery.Document)) {
	d.Read(fn)
}

// HTML serializes the whole document.
func (d *Document) HTML() (string, error) {
	var (
		out string
		err error
	)
	d.Read(func(doc *goquery.Document) {
		out, err = goquery.OuterHtml(doc.Selection)
	})
	return out, err
}

// Text returns the trimmed text of the elements matching selector.
func (d *Document) Text(selector string) string {
	var out string
	d.Read(func(doc *goquery.Document) {
		out = strings.TrimSpace(doc.Find(selector).Text())
	})
	return out
}

// HasClass reports whether the first element matching selector has class.
func (d *Document) HasClass(selector, class string) bool {
	var ok bool
	d.Read(func(doc *goquery.Document) {
		ok = doc.Find(selector).First().HasClass(class)
	})
	return ok
}

// Style returns one inline style property of the first element matching
// selector.
func (d *Document) Style(selector, property string) string {
	var out string
	d.Read(func(doc *goquery.Document) {
		style, _ := doc.Find(selector).First().Attr("style")
		out = parseStyle(style)[property]
	})
	return out
}

// Count returns the number of elements matching selector.
func (d *Document) Count(selector string) int {
	var n int
	d.Read(func(doc *goquery.Document) {
		n = doc.Find(selector).Length()
	})
	return n
}

func toggleClass(s *goquery.Selection, class string, on bool) {
	if on {
		s.AddClass(class)
	} else {
		s.RemoveClass(class)
	}
}

// setStyle sets one inline style property; an empty value removes it.
func setStyle(s *goquery.Selection, property, value string) {
	s.Each(func(_ int, el *goquery.Selection) {
		raw, _ := el.Attr("style")
		props := parseStyle(raw)
		order := styleOrder(raw)
		if value == "" {
			delete(props, property)
		} else {
			if _, ok := props[property]; !ok {
				order = append(order, property)
			}
			props[property] = value
		}
		var parts []string
		for _, name := range order {
			if v, ok := props[name]; ok {
				parts = append(parts, name+": "+v)
			}
		}
		if len(parts) == 0 {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", strings.Join(parts, "; "))
	})
}

func parseStyle(raw string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return props
}

func styleOrder(raw string) []string {
	var order []string
	for _, decl := range strings.Split(raw, ";") {
		if name, _, ok := strings.Cut(decl, ":"); ok {
			order = append(order, strings.TrimSpace(name))
		}
	}
	return order
}

// layoutTop returns the page-coordinate top edge of s from the nearest
// data-top attribute on it or an ancestor. Elements without layout sit at 0.
func layoutTop(s *goquery.Selection) float64 {
	el := s.Closest("[data-top]")
	raw, ok := el.Attr("data-top")
	if !ok {
		return 0
	}
	top, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return top
}
