package render

import (
	"html/template"
	"strings"
)

const (
	iconCalendar = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="3" y="4" width="18" height="18" rx="2"/><line x1="16" y1="2" x2="16" y2="6"/><line x1="8" y1="2" x2="8" y2="6"/></svg>`
	iconPin      = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M12 22s-8-4.5-8-11.8A8 8 0 0112 2a8 8 0 018 8.2c0 7.3-8 11.8-8 11.8z"/></svg>`
	iconBolt     = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M13 2L3 14h9l-1 8 10-12h-9l1-8z"/></svg>`
	iconArrow    = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M5 12h14M12 5l7 7-7 7"/></svg>`
	iconChevron  = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M6 9l6 6 6-6"/></svg>`
)

var icons = map[string]string{
	"calendar": iconCalendar,
	"pin":      iconPin,
	"bolt":     iconBolt,
	"arrow":    iconArrow,
	"chevron":  iconChevron,
}

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"icon": func(name string) template.HTML { return template.HTML(icons[name]) },
}).Parse(`
{{define "card"}}<div class="car-card" data-type="{{.FilterType}}">
<div class="car-image"><img src="{{.Image}}" alt="{{.Title}}" data-fallback="{{.Placeholder}}" onerror="this.onerror=null;this.src=this.dataset.fallback">{{if .Badge.Class}}<span class="car-badge {{.Badge.Class}}">{{.Badge.Text}}</span>{{end}}</div>
<div class="car-content">
<div class="car-brand">{{.Brand}}</div>
<h3 class="car-title">{{.Title}}</h3>
<div class="car-specs">
<span class="car-spec car-year">{{icon "calendar"}}{{.Year}}</span>
<span class="car-spec car-mileage">{{icon "pin"}}{{.Mileage}}</span>
<span class="car-spec car-fuel">{{icon "bolt"}}{{.FuelType}}</span>
</div>
<div class="car-footer">
<div class="car-price">{{.Price}} <span>kr</span></div>
<a href="{{.DetailURL}}" target="_blank" rel="noopener" class="car-link">Detaljer{{icon "arrow"}}</a>
</div>
</div>
</div>{{end}}
{{define "grid"}}{{if .Panel}}{{template "panel" .Panel}}{{else}}{{range .Cards}}{{template "card" .}}{{end}}{{end}}{{end}}
{{define "panel"}}<div class="listings-panel{{if .Failed}} listings-panel--error{{else}} listings-panel--empty{{end}}">
<h3>{{.Heading}}</h3>
<p>{{.Body}}</p>
<a href="{{.LinkURL}}" target="_blank" rel="noopener" class="btn btn-primary">{{.LinkLabel}}</a>
</div>{{end}}
{{define "filters"}}{{range .Buttons}}<button class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Filter}}">{{.Label}}</button>{{end}}{{end}}
{{define "loadmore"}}{{if .Visible}}{{.Label}}{{icon "chevron"}}{{end}}{{end}}
`))

func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTML renders the grid container's inner markup.
func (g Grid) HTML() (string, error) { return execute("grid", g) }

// HTML renders a single card.
func (c Card) HTML() (string, error) { return execute("card", c) }

// HTML renders the filter container's inner markup.
func (f FilterBar) HTML() (string, error) { return execute("filters", f) }

// HTML renders the load-more control's inner markup.
func (l LoadMore) HTML() (string, error) { return execute("loadmore", l) }
