package delivery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Origin:           Point{Lat: 41.9842, Lng: 44.1158},
		RatePerKm:        0.5,
		MinFee:           2,
		MaxFee:           40,
		ExpressSurcharge: 5,
		CityTariffs: map[string]float64{
			"გორი":    2,
			"თბილისი": 10,
			"Telavi":  7,
		},
	}
}

func TestQuotePickupAlwaysFree(t *testing.T) {
	cfg := testConfig()

	// Pickup ignores any location input.
	quote, err := cfg.Quote(Request{
		Type:     TypePickup,
		CityName: "თბილისი",
		Coords:   &Point{Lat: 41.7151, Lng: 44.8271},
	})
	require.NoError(t, err)
	assert.True(t, quote.Resolved)
	assert.Equal(t, 0.0, quote.Fee)
}

func TestQuoteCityTariff(t *testing.T) {
	cfg := testConfig()

	quote, err := cfg.Quote(Request{Type: TypeStandard, CityName: "გორი"})
	require.NoError(t, err)
	assert.True(t, quote.Resolved)
	assert.Equal(t, 2.0, quote.Fee)
	assert.Equal(t, "გორი", quote.LocationName)
	assert.Zero(t, quote.DistanceKm)
}

func TestQuoteCityTariffMatchIsNormalized(t *testing.T) {
	cfg := testConfig()

	for _, name := range []string{"telavi", "TELAVI", "  Telavi ", "Télavi"} {
		quote, err := cfg.Quote(Request{Type: TypeStandard, CityName: name})
		require.NoError(t, err, "city %q", name)
		assert.True(t, quote.Resolved, "city %q", name)
		assert.Equal(t, 7.0, quote.Fee, "city %q", name)
	}
}

func TestQuoteDistanceFee(t *testing.T) {
	cfg := testConfig()

	// 0.1 degrees of latitude due north is roughly 11.12 km.
	dest := Point{Lat: cfg.Origin.Lat + 0.1, Lng: cfg.Origin.Lng}
	quote, err := cfg.Quote(Request{Type: TypeStandard, Coords: &dest})
	require.NoError(t, err)
	assert.True(t, quote.Resolved)
	assert.InDelta(t, 11.12, quote.DistanceKm, 0.01)
	assert.InDelta(t, 5.56, quote.Fee, 0.001)
}

func TestQuoteDistanceFeeClamps(t *testing.T) {
	cfg := testConfig()

	// Same point as origin: distance 0, clamped up to the minimum fee.
	atOrigin := cfg.Origin
	quote, err := cfg.Quote(Request{Type: TypeStandard, Coords: &atOrigin})
	require.NoError(t, err)
	assert.Equal(t, cfg.MinFee, quote.Fee)

	// A full degree north is ~111 km, clamped down to the maximum fee.
	far := Point{Lat: cfg.Origin.Lat + 1, Lng: cfg.Origin.Lng}
	quote, err = cfg.Quote(Request{Type: TypeStandard, Coords: &far})
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxFee, quote.Fee)
}

func TestQuoteExpressSurcharge(t *testing.T) {
	cfg := testConfig()

	quote, err := cfg.Quote(Request{Type: TypeExpress, CityName: "გორი"})
	require.NoError(t, err)
	assert.Equal(t, 7.0, quote.Fee)

	// Surcharge lands on top of the already-clamped distance fee.
	far := Point{Lat: cfg.Origin.Lat + 1, Lng: cfg.Origin.Lng}
	quote, err = cfg.Quote(Request{Type: TypeExpress, Coords: &far})
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxFee+cfg.ExpressSurcharge, quote.Fee)
}

func TestQuoteUnresolved(t *testing.T) {
	cfg := testConfig()

	quote, err := cfg.Quote(Request{Type: TypeStandard})
	require.NoError(t, err)
	assert.False(t, quote.Resolved)

	// Unknown city without coordinates stays unresolved too.
	quote, err = cfg.Quote(Request{Type: TypeStandard, CityName: "ზუგდიდი"})
	require.NoError(t, err)
	assert.False(t, quote.Resolved)
}

func TestQuoteUnknownCityFallsBackToCoords(t *testing.T) {
	cfg := testConfig()

	dest := Point{Lat: cfg.Origin.Lat + 0.1, Lng: cfg.Origin.Lng}
	quote, err := cfg.Quote(Request{Type: TypeStandard, CityName: "ზუგდიდი", Coords: &dest})
	require.NoError(t, err)
	assert.True(t, quote.Resolved)
	assert.InDelta(t, 5.56, quote.Fee, 0.001)
}

func TestQuoteMalformedInput(t *testing.T) {
	cfg := testConfig()

	_, err := cfg.Quote(Request{Type: TypeStandard, Coords: &Point{Lat: 95, Lng: 0}})
	assert.Error(t, err)

	_, err = cfg.Quote(Request{Type: TypeStandard, Coords: &Point{Lat: 0, Lng: 181}})
	assert.Error(t, err)

	_, err = cfg.Quote(Request{Type: TypeStandard, Coords: &Point{Lat: math.NaN(), Lng: 0}})
	assert.Error(t, err)

	_, err = cfg.Quote(Request{Type: "drone"})
	assert.Error(t, err)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Gori to Tbilisi is roughly 62 km as the crow flies.
	gori := Point{Lat: 41.9842, Lng: 44.1158}
	tbilisi := Point{Lat: 41.7151, Lng: 44.8271}
	assert.InDelta(t, 66, haversineKm(gori, tbilisi), 5)
}
