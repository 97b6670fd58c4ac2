package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

func TestIcon(t *testing.T) {
	tests := []struct {
		in    models.LocationType
		glyph string
	}{
		{models.LocationRestaurant, "🍽️"},
		{"Restaurant", "🍽️"},
		{models.LocationAttraction, "🏛️"},
		{models.LocationHotel, "🏨"},
		{models.LocationActivity, "🎯"},
		{models.LocationOther, "📍"},
		{"", "📍"},
		{"neighborhood", "📍"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			icon := Icon(tt.in)
			assert.Equal(t, tt.glyph, icon.Glyph)
			assert.NotEmpty(t, icon.Class)
		})
	}
}

func TestExportText(t *testing.T) {
	it := &models.Itinerary{
		Destination:  "Tokyo, Japan",
		DurationDays: 1,
		Summary:      "Ramen crawl.",
		Vibe:         "Foodie Paradise",
		Days: []models.DayPlan{{
			Day:   1,
			Title: "Shibuya",
			Locations: []models.Location{
				{Name: "Ichiran", Type: models.LocationRestaurant, Tips: models.StringPtr("Go early")},
				{Name: "Crossing", Type: ""},
			},
		}},
	}

	text := ExportText(it)
	lines := strings.Split(text, "\n")

	assert.Equal(t, "Tokyo, Japan - 1 day", lines[0])
	assert.Contains(t, text, "Ramen crawl.")

	idx := indexOf(lines, "Day 1: Shibuya")
	require.GreaterOrEqual(t, idx, 0)
	require.Greater(t, len(lines), idx+3)
	assert.Equal(t, "  - Ichiran (restaurant)", lines[idx+1])
	assert.Equal(t, "    Tip: Go early", lines[idx+2])
	assert.Equal(t, "  - Crossing (other)", lines[idx+3])
}

func TestExportTextNil(t *testing.T) {
	assert.Empty(t, ExportText(nil))
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}
