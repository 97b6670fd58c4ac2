package renderer

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// IconSpec is the marker drawn next to a location.
type IconSpec struct {
	Glyph string
	Class string
}

// Icon maps a location type to its marker. Unknown types get the generic pin.
func Icon(t models.LocationType) IconSpec {
	switch t.Kind() {
	case models.LocationRestaurant:
		return IconSpec{Glyph: "🍽️", Class: "bg-orange-100 text-orange-700"}
	case models.LocationAttraction:
		return IconSpec{Glyph: "🏛️", Class: "bg-sky-100 text-sky-700"}
	case models.LocationHotel:
		return IconSpec{Glyph: "🏨", Class: "bg-violet-100 text-violet-700"}
	case models.LocationActivity:
		return IconSpec{Glyph: "🎯", Class: "bg-emerald-100 text-emerald-700"}
	default:
		return IconSpec{Glyph: "📍", Class: "bg-gray-100 text-gray-700"}
	}
}

// ExportText flattens an itinerary for the copy-to-clipboard action.
// The output is meant for people and has no parser.
func ExportText(it *models.Itinerary) string {
	if it == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", it.Destination, pluralDays(it.DurationDays))
	if it.Vibe != "" {
		fmt.Fprintf(&b, "Vibe: %s\n", it.Vibe)
	}
	if it.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", it.Summary)
	}

	for _, day := range it.Days {
		fmt.Fprintf(&b, "\nDay %d: %s\n", day.Day, day.Title)
		for _, loc := range day.Locations {
			fmt.Fprintf(&b, "  - %s (%s)\n", loc.Name, loc.Type.Label())
			if tip := strings.TrimSpace(models.Deref(loc.Tips)); tip != "" {
				fmt.Fprintf(&b, "    Tip: %s\n", tip)
			}
		}
	}

	if len(it.PackingTips) > 0 {
		b.WriteString("\nPacking tips:\n")
		for _, tip := range it.PackingTips {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}

	return b.String()
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func pluralStops(n int) string {
	if n == 1 {
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", n)
}
