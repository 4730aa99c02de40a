package delivery

import (
	"fmt"
	"math"
)

type Type string

const (
	TypeStandard Type = "standard"
	TypeExpress  Type = "express"
	TypePickup   Type = "pickup"
)

func ValidType(t Type) bool {
	switch t {
	case TypeStandard, TypeExpress, TypePickup:
		return true
	}
	return false
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Config holds everything the pricing engine needs. It is built once at
// startup and passed in explicitly; the engine never reads ambient state.
type Config struct {
	Origin           Point
	RatePerKm        float64
	MinFee           float64
	MaxFee           float64
	ExpressSurcharge float64
	CityTariffs      map[string]float64
}

type Request struct {
	Type     Type
	CityName string
	Coords   *Point
}

// Quote is a transient value computed per checkout session. It is never
// persisted as-is; a resolved fee is baked into the order at creation.
type Quote struct {
	Fee          float64 `json:"fee"`
	Resolved     bool    `json:"resolved"`
	DistanceKm   float64 `json:"distanceKm,omitempty"`
	LocationName string  `json:"locationName,omitempty"`
}

// Quote prices a destination. An unresolved quote is a normal state the
// checkout UI displays, not a fault; only malformed input is an error.
func (c Config) Quote(req Request) (Quote, error) {
	if !ValidType(req.Type) {
		return Quote{}, fmt.Errorf("unknown delivery type %q", req.Type)
	}

	if req.Type == TypePickup {
		return Quote{Fee: 0, Resolved: true}, nil
	}

	if req.CityName != "" {
		if fee, ok := c.cityTariff(req.CityName); ok {
			return Quote{
				Fee:          c.withSurcharge(fee, req.Type),
				Resolved:     true,
				LocationName: req.CityName,
			}, nil
		}
	}

	if req.Coords != nil {
		if err := validatePoint(*req.Coords); err != nil {
			return Quote{}, err
		}
		km := haversineKm(c.Origin, *req.Coords)
		fee := round2(clamp(km*c.RatePerKm, c.MinFee, c.MaxFee))
		return Quote{
			Fee:        c.withSurcharge(fee, req.Type),
			Resolved:   true,
			DistanceKm: round2(km),
		}, nil
	}

	return Quote{Resolved: false}, nil
}

func (c Config) cityTariff(name string) (float64, bool) {
	want := normalizeCityName(name)
	for city, fee := range c.CityTariffs {
		if normalizeCityName(city) == want {
			return fee, true
		}
	}
	return 0, false
}

// withSurcharge applies the express flat surcharge after clamping.
func (c Config) withSurcharge(fee float64, t Type) float64 {
	if t == TypeExpress {
		return round2(fee + c.ExpressSurcharge)
	}
	return fee
}

func validatePoint(p Point) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("coordinates are not finite numbers")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", p.Lng)
	}
	return nil
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two points. Good
// enough as a delivery-distance proxy; we do not route over roads.
func haversineKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
