// Package places enriches itinerary locations with Google Places data.
package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// DefaultBaseURL is the legacy Places web service root.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

const (
	detailFields  = "name,formatted_address,geometry,rating,price_level,photos,opening_hours,url,website,formatted_phone_number"
	photoMaxWidth = 800
)

// searchTypes maps location types onto Places type filters.
var searchTypes = map[string]string{
	"restaurant":   "restaurant",
	"attraction":   "tourist_attraction",
	"hotel":        "lodging",
	"activity":     "point_of_interest",
	"neighborhood": "neighborhood",
}

// ErrNotFound means the search returned no candidate.
var ErrNotFound = errors.New("place not found")

// SearchResult is a text search candidate.
type SearchResult struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// Details is the subset of a place details answer that is copied onto a Location.
type Details struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	PriceLevel       *int     `json:"price_level"`
	URL              string   `json:"url"`
	Geometry         *struct {
		Location models.Coordinates `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	OpeningHours *struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
}

// Client calls the Places text search and details endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Places client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Search returns the first text search hit for query, filtered by location type when known.
func (c *Client) Search(ctx context.Context, query string, locationType models.LocationType) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if t, ok := searchTypes[strings.ToLower(strings.TrimSpace(string(locationType)))]; ok {
		params.Set("type", t)
	}

	var body struct {
		Status  string         `json:"status"`
		Results []SearchResult `json:"results"`
	}
	if err := c.get(ctx, "/textsearch/json", params, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, ErrNotFound
	}
	return &body.Results[0], nil
}

// Details fetches the details of placeID.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	if placeID == "" {
		return nil, ErrNotFound
	}
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)
	params.Set("fields", detailFields)

	var body struct {
		Status string  `json:"status"`
		Result Details `json:"result"`
	}
	if err := c.get(ctx, "/details/json", params, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" {
		return nil, errors.Wrapf(ErrNotFound, "details status %s", body.Status)
	}
	return &body.Result, nil
}

// PhotoURL builds the photo endpoint URL for a photo reference.
func (c *Client) PhotoURL(reference string) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(photoMaxWidth))
	params.Set("photo_reference", reference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/photo?" + params.Encode()
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build places request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "places %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("places %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode places %s", path)
	}
	return nil
}

// ConvertPriceLevel maps the 0..4 Places price level to Free or dollar signs.
func ConvertPriceLevel(level *int) *string {
	if level == nil {
		return nil
	}
	switch *level {
	case 0:
		return models.StringPtr("Free")
	case 1, 2, 3, 4:
		return models.StringPtr(strings.Repeat("$", *level))
	default:
		return nil
	}
}
