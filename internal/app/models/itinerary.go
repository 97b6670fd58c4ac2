package models

// Itinerary is the structured trip plan returned by the extraction endpoint.
// It is built wholesale from one response payload and never mutated afterwards.
type Itinerary struct {
	Destination     string    `json:"destination"`
	DurationDays    int       `json:"duration_days"`
	Summary         string    `json:"summary"`
	Vibe            string    `json:"vibe"`
	BestTimeToVisit *string   `json:"best_time_to_visit,omitempty"`
	EstimatedBudget *string   `json:"estimated_budget,omitempty"`
	SourceURL       *string   `json:"source_url,omitempty"`
	SourceCreator   *string   `json:"source_creator,omitempty"`
	Days            []DayPlan `json:"days"`
	PackingTips     []string  `json:"packing_tips,omitempty"`
	LocalPhrases    []Phrase  `json:"local_phrases,omitempty"`
}

// DayPlan is one day's worth of locations. Day is unique within an itinerary.
type DayPlan struct {
	Day       int        `json:"day"`
	Title     string     `json:"title"`
	Notes     *string    `json:"notes,omitempty"`
	Locations []Location `json:"locations"`
}

// Location is a single point of interest. Insertion order is display order.
type Location struct {
	Name          string       `json:"name"`
	Type          LocationType `json:"type"`
	Description   *string      `json:"description,omitempty"`
	Address       *string      `json:"address,omitempty"`
	Tips          *string      `json:"tips,omitempty"`
	PriceLevel    *string      `json:"price_level,omitempty"`
	GoogleMapsURL *string      `json:"google_maps_url,omitempty"`
	BookingURL    *string      `json:"booking_url,omitempty"`
	Rating        *float64     `json:"rating,omitempty"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	OpeningHours  []string     `json:"opening_hours,omitempty"`
}

// Coordinates are filled in by places enrichment.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Phrase is a local-language phrase with its meaning.
type Phrase struct {
	Phrase  string `json:"phrase"`
	Meaning string `json:"meaning"`
}

// DayByNumber returns the plan for the given day key.
func (i *Itinerary) DayByNumber(day int) (DayPlan, bool) {
	for _, d := range i.Days {
		if d.Day == day {
			return d, true
		}
	}
	return DayPlan{}, false
}

// StopCount is the number of locations in the day.
func (d DayPlan) StopCount() int {
	return len(d.Locations)
}

// StringPtr returns nil for empty strings.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
