// Package itinerary converts untyped extraction payloads into the typed Itinerary model.
package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Size limits applied when parsing.
const (
	MaxDays            = 60
	MaxLocationsPerDay = 100
)

type wireItinerary struct {
	Destination     *string         `json:"destination"`
	DurationDays    *int            `json:"duration_days"`
	Summary         *string         `json:"summary"`
	Vibe            *string         `json:"vibe"`
	BestTimeToVisit *string         `json:"best_time_to_visit"`
	EstimatedBudget *string         `json:"estimated_budget"`
	SourceURL       *string         `json:"source_url"`
	SourceCreator   *string         `json:"source_creator"`
	Days            *[]wireDay      `json:"days"`
	PackingTips     []string        `json:"packing_tips"`
	LocalPhrases    []models.Phrase `json:"local_phrases"`
}

type wireDay struct {
	Day       *int              `json:"day"`
	Title     *string           `json:"title"`
	Notes     *string           `json:"notes"`
	Locations []models.Location `json:"locations"`
}

// Parse decodes a JSON itinerary and checks it against the schema.
// Every failure is returned as *models.SchemaError.
func Parse(data []byte) (*models.Itinerary, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &models.SchemaError{Reason: "empty payload"}
	}

	var w wireItinerary
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, decodeError(err)
	}

	it, err := w.toModel()
	if err != nil {
		return nil, err
	}
	if err := Validate(it); err != nil {
		return nil, err
	}
	Normalize(it)
	return it, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &models.SchemaError{
			Path:   typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &models.SchemaError{Reason: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	}
	return &models.SchemaError{Reason: err.Error()}
}

func (w wireItinerary) toModel() (*models.Itinerary, error) {
	switch {
	case w.Destination == nil:
		return nil, missing("destination")
	case w.DurationDays == nil:
		return nil, missing("duration_days")
	case w.Summary == nil:
		return nil, missing("summary")
	case w.Vibe == nil:
		return nil, missing("vibe")
	case w.Days == nil:
		return nil, missing("days")
	}

	it := &models.Itinerary{
		Destination:     *w.Destination,
		DurationDays:    *w.DurationDays,
		Summary:         *w.Summary,
		Vibe:            *w.Vibe,
		BestTimeToVisit: w.BestTimeToVisit,
		EstimatedBudget: w.EstimatedBudget,
		SourceURL:       w.SourceURL,
		SourceCreator:   w.SourceCreator,
		PackingTips:     w.PackingTips,
		LocalPhrases:    w.LocalPhrases,
		Days:            make([]models.DayPlan, 0, len(*w.Days)),
	}

	for i, d := range *w.Days {
		if d.Day == nil {
			return nil, missing(fmt.Sprintf("days[%d].day", i))
		}
		if d.Title == nil {
			return nil, missing(fmt.Sprintf("days[%d].title", i))
		}
		locations := d.Locations
		if locations == nil {
			locations = []models.Location{}
		}
		it.Days = append(it.Days, models.DayPlan{
			Day:       *d.Day,
			Title:     *d.Title,
			Notes:     d.Notes,
			Locations: locations,
		})
	}
	return it, nil
}

func missing(path string) error {
	return &models.SchemaError{Path: path, Reason: "required field is missing"}
}

// Validate checks the invariants of an already typed itinerary.
func Validate(it *models.Itinerary) error {
	if it == nil {
		return &models.SchemaError{Reason: "itinerary is nil"}
	}
	if strings.TrimSpace(it.Destination) == "" {
		return &models.SchemaError{Path: "destination", Reason: "must not be empty"}
	}
	if it.DurationDays < 1 {
		return &models.SchemaError{Path: "duration_days", Reason: "must be a positive integer"}
	}
	if len(it.Days) > MaxDays {
		return &models.SchemaError{Path: "days", Reason: fmt.Sprintf("at most %d days are supported", MaxDays)}
	}

	seen := make(map[int]struct{}, len(it.Days))
	for i, d := range it.Days {
		if d.Day < 1 {
			return &models.SchemaError{Path: fmt.Sprintf("days[%d].day", i), Reason: "must be a positive integer"}
		}
		if _, dup := seen[d.Day]; dup {
			return &models.SchemaError{Path: fmt.Sprintf("days[%d].day", i), Reason: fmt.Sprintf("duplicate day %d", d.Day)}
		}
		seen[d.Day] = struct{}{}

		if len(d.Locations) > MaxLocationsPerDay {
			return &models.SchemaError{
				Path:   fmt.Sprintf("days[%d].locations", i),
				Reason: fmt.Sprintf("at most %d locations per day are supported", MaxLocationsPerDay),
			}
		}
		for j, loc := range d.Locations {
			if strings.TrimSpace(loc.Name) == "" {
				return &models.SchemaError{Path: fmt.Sprintf("days[%d].locations[%d].name", i, j), Reason: "must not be empty"}
			}
		}
	}

	for i, p := range it.LocalPhrases {
		if strings.TrimSpace(p.Phrase) == "" {
			return &models.SchemaError{Path: fmt.Sprintf("local_phrases[%d].phrase", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// Normalize orders days by their day number. Gaps in numbering are kept as sent.
func Normalize(it *models.Itinerary) {
	sort.SliceStable(it.Days, func(a, b int) bool {
		return it.Days[a].Day < it.Days[b].Day
	})
}
