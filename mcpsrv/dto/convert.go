package dto

import (
	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/types"
)

// FromCard converts a rendered card. position is 1-based within the window.
func FromCard(position int, c render.Card) Listing {
	return Listing{
		Position:   position,
		Brand:      c.Brand,
		Title:      c.Title,
		Image:      c.Image,
		Year:       c.Year,
		Mileage:    c.Mileage,
		FuelType:   c.FuelType,
		Price:      c.PriceLabel(),
		FinnURL:    c.DetailURL,
		FilterType: string(c.FilterType),
		Badge:      Badge{Class: c.Badge.Class, Text: c.Badge.Text},
	}
}

func FromCards(cards []render.Card) []Listing {
	out := make([]Listing, 0, len(cards))
	for i, c := range cards {
		out = append(out, FromCard(i+1, c))
	}
	return out
}

func FromStats(s types.Stats) Stats {
	return Stats{
		Total:    s.Total,
		Electric: s.Electric,
		Hybrid:   s.Hybrid,
		Petrol:   s.Petrol,
		Diesel:   s.Diesel,
	}
}

func FromFilterBar(bar render.FilterBar) []Filter {
	out := make([]Filter, 0, len(bar.Buttons))
	for _, b := range bar.Buttons {
		out = append(out, Filter{
			Filter: string(b.Filter),
			Label:  b.Filter.Label(),
			Count:  b.Count,
			Active: b.Active,
		})
	}
	return out
}

func FromLoadMore(l render.LoadMore) LoadMore {
	if !l.Visible {
		return LoadMore{}
	}
	return LoadMore{Visible: true, Label: l.Label()}
}
