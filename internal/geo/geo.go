// Package geo maps device coordinates to the barangay's purok zones so a
// patient's purok can be filled in automatically during registration.
package geo

import (
	"errors"
	"math"
)

// ErrLocationUnavailable is returned when no usable coordinates were
// provided. Callers fall back to manual purok selection.
var ErrLocationUnavailable = errors.New("location unavailable")

// Zone is a named purok with its reference coordinates.
type Zone struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Reference points for the barangay's puroks. Coordinates come from the
// clinic's field survey of Jamindan.
var zones = []Zone{
	{Name: "Purok 1", Lat: 11.4285, Lng: 122.4815},
	{Name: "Purok 2", Lat: 11.4290, Lng: 122.4820},
	{Name: "Purok 3", Lat: 11.4275, Lng: 122.4825},
	{Name: "Purok 4", Lat: 11.4270, Lng: 122.4810},
	{Name: "Purok 5", Lat: 11.4280, Lng: 122.4830},
	{Name: "Purok 6", Lat: 11.4295, Lng: 122.4805},
	{Name: "Purok 7", Lat: 11.4265, Lng: 122.4835},
}

// Puroks returns the zones in display order.
func Puroks() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// PurokNames returns just the zone names, for dropdowns and validation.
func PurokNames() []string {
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return names
}

// IsPurok reports whether name matches a known zone.
func IsPurok(name string) bool {
	for _, z := range zones {
		if z.Name == name {
			return true
		}
	}
	return false
}

// Nearest returns the zone closest to the given coordinates. The zones span
// a few hundred meters, so a plain Euclidean distance on raw degrees is
// accurate enough; ties keep the earlier zone.
func Nearest(lat, lng float64) Zone {
	best := zones[0]
	bestDist := math.Hypot(lat-best.Lat, lng-best.Lng)
	for _, z := range zones[1:] {
		d := math.Hypot(lat-z.Lat, lng-z.Lng)
		if d < bestDist {
			best = z
			bestDist = d
		}
	}
	return best
}

// Assign resolves a purok from optional coordinates. When either coordinate
// is missing it returns ErrLocationUnavailable so the caller can ask for a
// manual choice instead.
func Assign(lat, lng *float64) (Zone, error) {
	if lat == nil || lng == nil {
		return Zone{}, ErrLocationUnavailable
	}
	return Nearest(*lat, *lng), nil
}
