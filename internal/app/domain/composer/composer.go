// Package composer builds trip requests from raw form input and issues them
// against the extraction backend, one at a time.
package composer

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Composer issues exactly one backend call per Submit or LoadDemo.
type Composer struct {
	backend  Backend
	logger   *zap.Logger
	inFlight atomic.Bool
}

// New creates a Composer for the given backend.
func New(backend Backend, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{backend: backend, logger: logger}
}

// BuildTripRequest turns raw form input into a TripRequest.
// A duration that is not an integer in range is sent as absent, never as zero.
func BuildTripRequest(url, durationInput, preferencesInput string) (models.TripRequest, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return models.TripRequest{}, &models.ValidationError{Field: "url", Reason: "must not be empty"}
	}

	req := models.TripRequest{URL: url}

	if days, err := strconv.Atoi(strings.TrimSpace(durationInput)); err == nil && models.ValidDuration(days) {
		req.TripDurationDays = &days
	}

	if strings.TrimSpace(preferencesInput) != "" {
		prefs := preferencesInput
		req.Preferences = &prefs
	}

	return req, nil
}

// InFlight reports whether a request is outstanding.
func (c *Composer) InFlight() bool {
	return c.inFlight.Load()
}

// Submit validates the input and sends one extraction request.
// Invalid input returns a *models.ValidationError without touching the network.
func (c *Composer) Submit(ctx context.Context, url, durationInput, preferencesInput string) (*models.Itinerary, error) {
	req, err := BuildTripRequest(url, durationInput, preferencesInput)
	if err != nil {
		return nil, err
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, models.ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	c.logger.Info("Submitting trip request",
		zap.String("url", req.URL),
		zap.Bool("has_duration", req.TripDurationDays != nil),
		zap.Bool("has_preferences", req.Preferences != nil),
	)

	it, err := c.backend.Extract(ctx, req)
	if err != nil {
		c.logger.Warn("Trip request failed", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	return it, nil
}

// LoadDemo fetches the fixed sample itinerary.
func (c *Composer) LoadDemo(ctx context.Context) (*models.Itinerary, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, models.ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	it, err := c.backend.Demo(ctx)
	if err != nil {
		c.logger.Warn("Demo request failed", zap.Error(err))
		return nil, err
	}
	return it, nil
}
