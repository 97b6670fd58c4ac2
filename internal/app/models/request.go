package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trip duration bounds, inclusive.
const (
	MinTripDurationDays = 1
	MaxTripDurationDays = 30
)

// TripRequest is the body of POST /api/extract. Absent optional fields are sent as null.
type TripRequest struct {
	URL              string  `json:"url"`
	TripDurationDays *int    `json:"trip_duration"`
	Preferences      *string `json:"preferences"`
}

// ValidDuration reports whether d is inside the accepted trip duration range.
func ValidDuration(d int) bool {
	return d >= MinTripDurationDays && d <= MaxTripDurationDays
}

// TravelStyle is one of the preset travel styles offered by the form.
type TravelStyle string

// Travel styles
const (
	StyleBudget    TravelStyle = "budget"
	StyleLuxury    TravelStyle = "luxury"
	StyleFoodie    TravelStyle = "foodie"
	StyleAdventure TravelStyle = "adventure"
	StyleRelaxed   TravelStyle = "relaxed"
	StyleFamily    TravelStyle = "family"
)

// TravelStyles lists the presets in form order.
var TravelStyles = []TravelStyle{
	StyleBudget, StyleLuxury, StyleFoodie, StyleAdventure, StyleRelaxed, StyleFamily,
}

var titleCaser = cases.Title(language.English)

// ParseTravelStyle matches s against the presets, ignoring case and surrounding spaces.
func ParseTravelStyle(s string) (TravelStyle, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, style := range TravelStyles {
		if string(style) == needle {
			return style, true
		}
	}
	return "", false
}

// Label is the human readable name, e.g. "Foodie".
func (s TravelStyle) Label() string {
	return titleCaser.String(string(s))
}

// ErrorResponse is the failure body of the extraction endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
