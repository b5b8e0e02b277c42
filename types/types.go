package types

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// FilterType is the category tag used by the filter bar.
type FilterType string

const (
	FilterAll      FilterType = "all"
	FilterElectric FilterType = "el"
	FilterHybrid   FilterType = "hybrid"
	FilterPetrol   FilterType = "bensin"
	FilterDiesel   FilterType = "diesel"
)

// Filters lists every selectable filter in filter-bar order.
var Filters = []FilterType{FilterAll, FilterElectric, FilterHybrid, FilterPetrol, FilterDiesel}

// ParseFilterType returns the filter named by raw. An empty string selects "all".
func ParseFilterType(raw string) (FilterType, error) {
	v := FilterType(strings.TrimSpace(strings.ToLower(raw)))
	if v == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if f == v {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("invalid filter %q; expected all|el|hybrid|bensin|diesel", raw)
}

// Label returns the filter-bar caption for the filter.
func (f FilterType) Label() string {
	switch f {
	case FilterAll:
		return "Alle"
	case FilterElectric:
		return "Elbiler"
	case FilterHybrid:
		return "Hybrid"
	case FilterPetrol:
		return "Bensin"
	case FilterDiesel:
		return "Diesel"
	default:
		return string(f)
	}
}

// Matches reports whether the listing belongs to the filter.
func (f FilterType) Matches(l Listing) bool {
	return f == FilterAll || l.filterType == f
}

// Mileage is either a single odometer value or a [low, high] range.
type Mileage struct {
	low    int
	high   int
	ranged bool
	known  bool
}

// NewMileage creates a scalar mileage.
func NewMileage(km int) Mileage {
	return Mileage{low: km, high: km, known: true}
}

// NewMileageRange creates a ranged mileage.
func NewMileageRange(low, high int) Mileage {
	return Mileage{low: low, high: high, ranged: true, known: true}
}

// UnknownMileage is the zero mileage: nothing reported.
func UnknownMileage() Mileage { return Mileage{} }

func (m Mileage) Known() bool  { return m.known }
func (m Mileage) Ranged() bool { return m.ranged }
func (m Mileage) Low() int     { return m.low }

// Display returns the value shown on a card: the upper bound of a range.
func (m Mileage) Display() int { return m.high }

// Year is a model year; zero means unknown.
type Year int

func (y Year) Known() bool { return y > 0 }

func (y Year) String() string {
	if !y.Known() {
		return ""
	}
	return strconv.Itoa(int(y))
}

// Listing is one vehicle in the feed. Identity is its position in the feed.
type Listing struct {
	brand          string
	title          string
	image          string
	year           Year
	mileage        Mileage
	fuelType       string
	priceFormatted string
	finnURL        string
	filterType     FilterType
}

// NewListing creates a Listing with the given fields
func NewListing(brand, title, image string, year Year, mileage Mileage, fuelType, priceFormatted, finnURL string, filterType FilterType) Listing {
	return Listing{
		brand:          brand,
		title:          title,
		image:          image,
		year:           year,
		mileage:        mileage,
		fuelType:       fuelType,
		priceFormatted: priceFormatted,
		finnURL:        finnURL,
		filterType:     filterType,
	}
}

// Getters for Listing fields
func (l Listing) Brand() string          { return l.brand }
func (l Listing) Title() string          { return l.title }
func (l Listing) Image() string          { return l.image }
func (l Listing) Year() Year             { return l.year }
func (l Listing) Mileage() Mileage       { return l.mileage }
func (l Listing) FuelType() string       { return l.fuelType }
func (l Listing) PriceFormatted() string { return l.priceFormatted }
func (l Listing) FinnURL() string        { return l.finnURL }
func (l Listing) FilterType() FilterType { return l.filterType }

// Stats holds the feed-supplied category counts.
type Stats struct {
	Total    int
	Electric int
	Hybrid   int
	Petrol   int
	Diesel   int
}

// Count returns the count shown next to the filter's button.
func (s Stats) Count(f FilterType) int {
	switch f {
	case FilterAll:
		return s.Total
	case FilterElectric:
		return s.Electric
	case FilterHybrid:
		return s.Hybrid
	case FilterPetrol:
		return s.Petrol
	case FilterDiesel:
		return s.Diesel
	default:
		return 0
	}
}

// DeriveStats counts the listings per category. Listings whose filterType is
// missing or unrecognized only count towards the total.
func DeriveStats(cars []Listing) Stats {
	s := Stats{Total: len(cars)}
	for _, c := range cars {
		switch c.filterType {
		case FilterElectric:
			s.Electric++
		case FilterHybrid:
			s.Hybrid++
		case FilterPetrol:
			s.Petrol++
		case FilterDiesel:
			s.Diesel++
		}
	}
	return s
}

// Feed is the decoded listings document.
type Feed struct {
	Cars  []Listing
	Stats Stats
}

// ListingSource is the core abstraction for data access.
// One Load per session; implementations must not retry.
type ListingSource interface {
	Load(ctx context.Context) (Feed, error)
}
