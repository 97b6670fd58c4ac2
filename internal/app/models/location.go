package models

import "strings"

// LocationType is the raw category string of a Location as sent by the backend.
// The raw value is preserved for display; Kind maps it onto the closed set.
type LocationType string

// Location kinds
const (
	LocationRestaurant LocationType = "restaurant"
	LocationAttraction LocationType = "attraction"
	LocationHotel      LocationType = "hotel"
	LocationActivity   LocationType = "activity"
	LocationOther      LocationType = "other"
)

// Kind returns the recognised kind; unknown or empty values are LocationOther.
func (t LocationType) Kind() LocationType {
	switch LocationType(strings.ToLower(strings.TrimSpace(string(t)))) {
	case LocationRestaurant:
		return LocationRestaurant
	case LocationAttraction:
		return LocationAttraction
	case LocationHotel:
		return LocationHotel
	case LocationActivity:
		return LocationActivity
	default:
		return LocationOther
	}
}

// Label is the text shown next to a location name.
func (t LocationType) Label() string {
	raw := strings.TrimSpace(string(t))
	if raw == "" {
		return string(LocationOther)
	}
	return raw
}
