// Package extract turns a social video URL into an itinerary: content
// extraction, model generation, optional places enrichment and caching.
package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/itinerary"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/metrics"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/cache"
)

// Details returned to callers.
const (
	DetailInvalidURL     = "Please provide a valid TikTok, Instagram, or YouTube URL"
	DetailNotConfigured  = "AI provider not configured"
	DetailNoContent      = "Could not extract content from this URL. The video might be private or unavailable."
	DetailProcessingFail = "Error processing content"
)

// Planner generates an itinerary from extracted content.
type Planner interface {
	Plan(ctx context.Context, c *content.Content, req models.TripRequest) (*models.Itinerary, error)
}

// Enricher adds verified place data to an itinerary in place.
type Enricher interface {
	Enrich(ctx context.Context, it *models.Itinerary) error
}

// Health is the body of GET /api/health.
type Health struct {
	Status           string `json:"status"`
	AIConfigured     bool   `json:"ai_configured"`
	AIProvider       string `json:"ai_provider,omitempty"`
	PlacesConfigured bool   `json:"places_configured"`
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Extract(ctx context.Context, req models.TripRequest) (*models.Itinerary, error)
	Demo(ctx context.Context) *models.Itinerary
	Health() Health
}

// Options holds the optional collaborators of the service.
type Options struct {
	// Planner nil means no model is configured.
	Planner Planner
	// ProviderName is reported by Health.
	ProviderName string
	// Enricher nil disables places enrichment.
	Enricher Enricher
	// Cache nil disables result caching.
	Cache *cache.UnifiedCache[models.Itinerary]
}

type ServiceImpl struct {
	source       content.Source
	planner      Planner
	providerName string
	enricher     Enricher
	cache        *cache.UnifiedCache[models.Itinerary]
	logger       *zap.Logger
}

func NewService(source content.Source, opts Options, logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceImpl{
		source:       source,
		planner:      opts.Planner,
		providerName: opts.ProviderName,
		enricher:     opts.Enricher,
		cache:        opts.Cache,
		logger:       logger,
	}
}

// Extract runs the whole pipeline. Every failure is an *models.HTTPError.
func (s *ServiceImpl) Extract(ctx context.Context, req models.TripRequest) (*models.Itinerary, error) {
	ctx, span := otel.Tracer("ExtractService").Start(ctx, "Extract")
	defer span.End()

	start := time.Now()
	platform, supported := content.DetectPlatform(req.URL)
	span.SetAttributes(attribute.String("content.platform", string(platform)))

	it, outcome, err := s.extract(ctx, req, platform, supported)

	attrs := metric.WithAttributes(
		attribute.String("platform", string(platform)),
		attribute.String("outcome", outcome),
	)
	m := metrics.Get()
	m.ExtractionsTotal.Add(ctx, 1, attrs)
	m.ExtractionDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	return it, nil
}

func (s *ServiceImpl) extract(ctx context.Context, req models.TripRequest, platform content.Platform, supported bool) (*models.Itinerary, string, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" || !supported {
		return nil, "invalid_url", &models.HTTPError{Status: http.StatusBadRequest, Detail: DetailInvalidURL}
	}
	req.URL = url

	if s.planner == nil {
		return nil, "not_configured", &models.HTTPError{Status: http.StatusInternalServerError, Detail: DetailNotConfigured, Err: models.ErrNotConfigured}
	}

	if req.TripDurationDays != nil && !models.ValidDuration(*req.TripDurationDays) {
		s.logger.Debug("Ignoring out of range trip duration", zap.Int("trip_duration", *req.TripDurationDays))
		req.TripDurationDays = nil
	}

	key := s.cacheKey(req)
	if s.cache != nil && key != "" {
		if cached, found := s.cache.Get(key); found {
			s.logger.Info("Serving cached itinerary", zap.String("url", url))
			return &cached, "cached", nil
		}
	}

	c, err := s.source.Extract(ctx, url)
	if err != nil {
		if errors.Is(err, models.ErrNoContent) {
			return nil, "no_content", &models.HTTPError{Status: http.StatusUnprocessableEntity, Detail: DetailNoContent, Err: err}
		}
		return nil, "error", processingError(err)
	}
	s.logger.Info("Content extracted",
		zap.String("platform", string(platform)),
		zap.Int("transcript_chars", len(c.Transcript)),
	)

	it, err := s.planner.Plan(ctx, c, req)
	if err != nil {
		s.logger.Error("Itinerary generation failed", zap.String("url", url), zap.Error(err))
		return nil, "error", processingError(err)
	}

	if s.enricher != nil {
		if err := s.enricher.Enrich(ctx, it); err != nil {
			s.logger.Warn("Places enrichment interrupted", zap.Error(err))
		}
	}

	if s.cache != nil && key != "" {
		s.cache.Set(key, *it)
	}
	return it, "success", nil
}

func (s *ServiceImpl) cacheKey(req models.TripRequest) string {
	if s.cache == nil {
		return ""
	}
	return cache.NewCacheKeyBuilder(s.logger).
		AddURL(req.URL).
		AddDuration(req.TripDurationDays).
		AddPreferences(req.Preferences).
		BuildOrDefault()
}

func processingError(err error) *models.HTTPError {
	return &models.HTTPError{
		Status: http.StatusInternalServerError,
		Detail: fmt.Sprintf("%s: %v", DetailProcessingFail, err),
		Err:    err,
	}
}

// Demo returns the fixed sample itinerary.
func (s *ServiceImpl) Demo(ctx context.Context) *models.Itinerary {
	_, span := otel.Tracer("ExtractService").Start(ctx, "Demo")
	defer span.End()
	return itinerary.Demo()
}

func (s *ServiceImpl) Health() Health {
	return Health{
		Status:           "healthy",
		AIConfigured:     s.planner != nil,
		AIProvider:       s.providerName,
		PlacesConfigured: s.enricher != nil,
	}
}
