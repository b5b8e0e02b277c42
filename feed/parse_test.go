package feed

import (
	"os"
	"strings"
	"testing"

	"github.com/nordiskauto/bilvisning/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeed_Fixture(t *testing.T) {
	f, err := os.Open("testdata/cars.json")
	require.NoError(t, err)
	defer f.Close()

	feed, err := ParseFeed(f)
	require.NoError(t, err)

	require.Len(t, feed.Cars, 12)
	assert.Equal(t, types.Stats{Total: 12, Electric: 5, Hybrid: 3, Petrol: 2, Diesel: 2}, feed.Stats)
	assert.Equal(t, feed.Stats, types.DeriveStats(feed.Cars))

	first := feed.Cars[0]
	assert.Equal(t, "Tesla", first.Brand())
	assert.Equal(t, "Tesla Model 3 Long Range", first.Title())
	assert.Equal(t, types.Year(2021), first.Year())
	assert.True(t, first.Mileage().Ranged())
	assert.Equal(t, 1000, first.Mileage().Low())
	assert.Equal(t, 25000, first.Mileage().Display())
	assert.Equal(t, "Elektrisk", first.FuelType())
	assert.Equal(t, "329 900", first.PriceFormatted())
	assert.Equal(t, types.FilterElectric, first.FilterType())

	assert.Equal(t, 17000, feed.Cars[1].Mileage().Display())
	assert.False(t, feed.Cars[6].Year().Known(), "null year is unknown")
	assert.False(t, feed.Cars[7].Mileage().Known(), "null mileage is unknown")
	assert.Empty(t, feed.Cars[9].FuelType(), "missing fuel type is empty")
}

func TestParseFeed_Empty(t *testing.T) {
	f, err := os.Open("testdata/empty.json")
	require.NoError(t, err)
	defer f.Close()

	feed, err := ParseFeed(f)
	require.NoError(t, err)
	assert.Empty(t, feed.Cars)
}

func TestParseFeed_MissingCarsIsEmpty(t *testing.T) {
	feed, err := ParseFeed(strings.NewReader(`{"stats": {"total": 3}}`))
	require.NoError(t, err)
	assert.Empty(t, feed.Cars)
	assert.Equal(t, 3, feed.Stats.Total)
}

func TestParseFeed_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"html", "<html><body>502 Bad Gateway</body></html>"},
		{"array", `[{"brand": "Tesla"}]`},
		{"truncated", `{"cars": [{"brand": "Tesla"`},
		{"cars without stats", `{"cars": [{"brand": "Tesla"}]}`},
		{"cars not a list", `{"cars": "many", "stats": {}}`},
		{"mileage object", `{"cars": [{"mileage": {"km": 1}}], "stats": {}}`},
		{"year bool", `{"cars": [{"year": true}], "stats": {}}`},
		{"mileage with three elements", `{"cars": [{"mileage": [1000, 25000, 3]}], "stats": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeed(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeMileage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		known   bool
		ranged  bool
		display int
	}{
		{"range uses upper bound", `[1000, 25000]`, true, true, 25000},
		{"scalar", `17000`, true, false, 17000},
		{"missing", ``, false, false, 0},
		{"null", `null`, false, false, 0},
		{"empty range", `[]`, false, false, 0},
		{"single element range", `[4200]`, true, false, 4200},
		{"string with unit", `"17 000 km"`, true, false, 17000},
		{"string without digits", `"ukjent"`, false, false, 0},
		{"fractional", `1234.9`, true, false, 1234},
		{"dotted thousands", `"17.000"`, true, false, 17000},
		{"range as string", `"12 000 - 15 000 km"`, false, false, 0},
		{"two numbers in a string", `"ca 12000 eller 13000"`, false, false, 0},
		{"null lower bound", `[null, 25000]`, true, true, 25000},
		{"huge number", `1e300`, false, false, 0},
		{"negative", `-5`, false, false, 0},
		{"huge range bound", `[0, 1e300]`, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeMileage([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.known, m.Known())
			assert.Equal(t, tt.ranged, m.Ranged())
			assert.Equal(t, tt.display, m.Display())
		})
	}
}

func TestParseFeed_YearStrings(t *testing.T) {
	tests := []struct {
		raw   string
		known bool
		want  types.Year
	}{
		{`2019`, true, 2019},
		{`"2019"`, true, 2019},
		{`"2019-2020"`, false, 0},
		{`1e300`, false, 0},
		{`-2019`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			doc := `{"cars": [{"brand": "Volvo", "year": ` + tt.raw + `}], "stats": {"total": 1}}`
			feed, err := ParseFeed(strings.NewReader(doc))
			require.NoError(t, err)
			require.Len(t, feed.Cars, 1)
			assert.Equal(t, tt.known, feed.Cars[0].Year().Known())
			if tt.known {
				assert.Equal(t, tt.want, feed.Cars[0].Year())
			}
		})
	}
}
