package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/itinerary"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// Source identifies where the itinerary came from.
type Source struct {
	URL     string
	Creator string
}

// cleanJSONResponse removes markdown code fences around a model answer.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// decodeObject parses the model answer, salvaging the outermost {...} when
// the model wrapped it in prose.
func decodeObject(raw string) (map[string]any, error) {
	cleaned := cleanJSONResponse(raw)

	var obj map[string]any
	err := json.Unmarshal([]byte(cleaned), &obj)
	if err == nil && obj != nil {
		return obj, nil
	}

	match := jsonObject.FindString(cleaned)
	if match == "" {
		if err == nil {
			err = errors.New("response is not a JSON object")
		}
		return nil, errors.Wrap(err, "failed to parse AI response as JSON")
	}
	if err := json.Unmarshal([]byte(match), &obj); err != nil {
		return nil, errors.Wrap(err, "failed to parse AI response as JSON")
	}
	return obj, nil
}

// DecodeItinerary turns a model answer into a validated itinerary. Missing
// collections default to empty, a missing duration defaults to the requested
// one or the number of days, and the source is stamped on the result.
func DecodeItinerary(raw string, src Source, requestedDuration *int) (*models.Itinerary, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	days, ok := obj["days"].([]any)
	if !ok {
		days = []any{}
		obj["days"] = days
	}
	if _, ok := obj["duration_days"]; !ok {
		if requestedDuration != nil && *requestedDuration > 0 {
			obj["duration_days"] = *requestedDuration
		} else {
			obj["duration_days"] = len(days)
		}
	}
	for _, key := range []string{"packing_tips", "local_phrases"} {
		if v, ok := obj[key]; !ok || v == nil {
			obj[key] = []any{}
		}
	}
	for _, key := range []string{"summary", "vibe"} {
		if v, ok := obj[key]; !ok || v == nil {
			obj[key] = ""
		}
	}

	obj["source_url"] = src.URL
	if src.Creator != "" {
		obj["source_creator"] = src.Creator
	} else {
		delete(obj, "source_creator")
	}

	normalized, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, "re-encode AI response")
	}
	return itinerary.Parse(normalized)
}
