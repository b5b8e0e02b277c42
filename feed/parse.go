package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/nordiskauto/bilvisning/types"
)

type feedJSON struct {
	Cars  []carJSON  `json:"cars"`
	Stats *statsJSON `json:"stats"`
}

type carJSON struct {
	Brand          string          `json:"brand"`
	Title          string          `json:"title"`
	Image          string          `json:"image"`
	Year           json.RawMessage `json:"year"`
	Mileage        json.RawMessage `json:"mileage"`
	FuelType       *string         `json:"fuelType"`
	PriceFormatted string          `json:"priceFormatted"`
	FinnURL        string          `json:"finnUrl"`
	FilterType     string          `json:"filterType"`
}

type statsJSON struct {
	Total    int `json:"total"`
	Electric int `json:"electric"`
	Hybrid   int `json:"hybrid"`
	Petrol   int `json:"petrol"`
	Diesel   int `json:"diesel"`
}

// numberRe matches one number, optionally grouped by thousands ("17 000",
// "17.000") and suffixed with km. Ranges such as "2019-2020" do not match.
var numberRe = regexp.MustCompile(`(?i)^\s*(\d{1,3}(?:[ .\x{00a0}]\d{3})+|\d+)\s*(?:km)?\s*$`)

var groupSepRe = regexp.MustCompile(`[ .\x{00a0}]`)

// ParseFeed decodes a listings document. A document without cars is valid and
// yields an empty feed; cars without stats is malformed because the filter bar
// cannot be labeled.
func ParseFeed(r io.Reader) (types.Feed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Feed{}, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.Feed{}, errors.New("document is not a JSON object")
	}

	var doc feedJSON
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return types.Feed{}, fmt.Errorf("decode document: %w", err)
	}

	var stats types.Stats
	if doc.Stats != nil {
		stats = types.Stats{
			Total:    doc.Stats.Total,
			Electric: doc.Stats.Electric,
			Hybrid:   doc.Stats.Hybrid,
			Petrol:   doc.Stats.Petrol,
			Diesel:   doc.Stats.Diesel,
		}
	} else if len(doc.Cars) > 0 {
		return types.Feed{}, errors.New("document has cars but no stats")
	}

	cars := make([]types.Listing, 0, len(doc.Cars))
	for i, c := range doc.Cars {
		year, _, err := decodeInt(c.Year)
		if err != nil {
			return types.Feed{}, fmt.Errorf("car %d: year: %w", i, err)
		}
		mileage, err := decodeMileage(c.Mileage)
		if err != nil {
			return types.Feed{}, fmt.Errorf("car %d: mileage: %w", i, err)
		}
		fuel := ""
		if c.FuelType != nil {
			fuel = *c.FuelType
		}
		cars = append(cars, types.NewListing(
			c.Brand, c.Title, c.Image,
			types.Year(year), mileage,
			fuel, c.PriceFormatted, c.FinnURL,
			types.FilterType(c.FilterType),
		))
	}

	return types.Feed{Cars: cars, Stats: stats}, nil
}

// decodeMileage accepts a number, a [low, high] array or null. A string counts
// only when it holds a single number ("17 000 km" reads as 17000). Only the
// upper bound of a range is displayed, so the lower bound may be null.
func decodeMileage(raw json.RawMessage) (types.Mileage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return types.UnknownMileage(), nil
	}
	if raw[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(raw, &parts); err != nil {
			return types.Mileage{}, err
		}
		switch {
		case len(parts) == 0:
			return types.UnknownMileage(), nil
		case len(parts) == 1:
			return decodeMileage(parts[0])
		case len(parts) > 2:
			return types.Mileage{}, fmt.Errorf("expected [low, high], got %d elements", len(parts))
		}
		low, _, err := decodeInt(parts[0])
		if err != nil {
			return types.Mileage{}, err
		}
		high, ok, err := decodeInt(parts[1])
		if err != nil {
			return types.Mileage{}, err
		}
		if !ok {
			return types.UnknownMileage(), nil
		}
		return types.NewMileageRange(low, high), nil
	}
	km, ok, err := decodeInt(raw)
	if err != nil {
		return types.Mileage{}, err
	}
	if !ok {
		return types.UnknownMileage(), nil
	}
	return types.NewMileage(km), nil
}

// decodeInt reads a JSON number, numeric string or null. ok is false when no
// usable value was present: null, a string that is not a single number, or a
// number outside 0..MaxInt32.
func decodeInt(raw json.RawMessage) (n int, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		m := numberRe.FindStringSubmatch(s)
		if m == nil {
			return 0, false, nil
		}
		n, err := strconv.Atoi(groupSepRe.ReplaceAllString(m[1], ""))
		if err != nil || n > math.MaxInt32 {
			return 0, false, nil
		}
		return n, true, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false, fmt.Errorf("expected number, got %s", raw)
	}
	if f < 0 || f > math.MaxInt32 {
		return 0, false, nil
	}
	return int(math.Floor(f)), true, nil
}
