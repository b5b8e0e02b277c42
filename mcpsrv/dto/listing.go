package dto

// Listing is one car as the showroom displays it.
type Listing struct {
	Position   int    `json:"position"`
	Brand      string `json:"brand"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Year       string `json:"year"`
	Mileage    string `json:"mileage"`
	FuelType   string `json:"fuel_type"`
	Price      string `json:"price"`
	FinnURL    string `json:"finn_url"`
	FilterType string `json:"filter_type,omitempty"`
	Badge      Badge  `json:"badge"`
}

type Badge struct {
	Class string `json:"class,omitempty"`
	Text  string `json:"text"`
}

// Stats mirrors the feed's category counts.
type Stats struct {
	Total    int `json:"total"`
	Electric int `json:"electric"`
	Hybrid   int `json:"hybrid"`
	Petrol   int `json:"petrol"`
	Diesel   int `json:"diesel"`
}

// Filter is one filter-bar button.
type Filter struct {
	Filter string `json:"filter"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// LoadMore is the state of the "load more" control.
type LoadMore struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label,omitempty"`
}
