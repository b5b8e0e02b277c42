package page

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/render"
)

// domView paints controller fragments into the document.
type domView struct {
	doc    *Document
	logger logging.Logger
}

func (v *domView) ShowGrid(g render.Grid) {
	v.replace(selGrid, "#cars-grid", g.HTML)
}

func (v *domView) ShowFilters(f render.FilterBar) {
	v.replace(selFilters, ".filter-container", f.HTML)
}

func (v *domView) ShowLoadMore(l render.LoadMore) {
	v.doc.update(func(doc *goquery.Document) {
		btn := doc.FindMatcher(selLoadMore)
		if btn.Length() == 0 {
			return
		}
		if l.Visible {
			markup, err := l.HTML()
			if err != nil {
				v.logger.Error("render load-more", "error", err)
				return
			}
			btn.SetHtml(markup)
		}
		setStyle(btn, "display", l.Display())
	})
}

func (v *domView) ShowStats(s render.StatsCounter) {
	v.doc.update(func(doc *goquery.Document) {
		doc.FindMatcher(selStats).First().SetText(s.Text())
	})
}

func (v *domView) replace(sel goquery.Matcher, name string, markup func() (string, error)) {
	html, err := markup()
	if err != nil {
		v.logger.Error("render fragment", "target", name, "error", err)
		return
	}
	v.doc.update(func(doc *goquery.Document) {
		target := doc.FindMatcher(sel)
		if target.Length() == 0 {
			v.logger.Warn("missing element", "target", name)
			return
		}
		target.SetHtml(html)
	})
}
