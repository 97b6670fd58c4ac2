package places

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/metrics"
)

// DefaultConcurrency caps parallel lookups per itinerary.
const DefaultConcurrency = 4

// Lookup is the subset of Client used by the Enricher.
type Lookup interface {
	Search(ctx context.Context, query string, locationType models.LocationType) (*SearchResult, error)
	Details(ctx context.Context, placeID string) (*Details, error)
	PhotoURL(reference string) string
}

// Enricher fills in verified address, rating, price, photo and coordinates.
type Enricher struct {
	lookup      Lookup
	concurrency int
	logger      *zap.Logger
}

func NewEnricher(lookup Lookup, concurrency int, logger *zap.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{lookup: lookup, concurrency: concurrency, logger: logger}
}

// Enrich updates every location of it in place. A failed lookup leaves that
// location as it was; only cancellation of ctx is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, it *models.Itinerary) error {
	ctx, span := otel.Tracer("PlacesEnricher").Start(ctx, "Enrich")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for d := range it.Days {
		for l := range it.Days[d].Locations {
			loc := &it.Days[d].Locations[l]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				e.enrichOne(gctx, loc, it.Destination)
				return nil
			})
		}
	}

	err := g.Wait()
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (e *Enricher) enrichOne(ctx context.Context, loc *models.Location, destination string) {
	outcome := "enriched"
	defer func() {
		metrics.Get().PlacesLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	hit, err := e.lookup.Search(ctx, loc.Name+" "+destination, loc.Type)
	if err != nil {
		outcome = lookupOutcome(err)
		e.logger.Debug("Place search failed", zap.String("location", loc.Name), zap.Error(err))
		return
	}

	details, err := e.lookup.Details(ctx, hit.PlaceID)
	if err != nil {
		outcome = lookupOutcome(err)
		e.logger.Warn("Place details failed", zap.String("location", loc.Name), zap.Error(err))
		return
	}

	apply(loc, details, e.lookup.PhotoURL)
}

func lookupOutcome(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	return "error"
}

// apply copies verified fields onto loc. Fields Places does not know keep their values.
func apply(loc *models.Location, d *Details, photoURL func(string) string) {
	if d.FormattedAddress != "" {
		loc.Address = models.StringPtr(d.FormattedAddress)
	}
	if d.Geometry != nil {
		coords := d.Geometry.Location
		loc.Coordinates = &coords
	}
	if d.Rating != nil {
		loc.Rating = d.Rating
	}
	if price := ConvertPriceLevel(d.PriceLevel); price != nil {
		loc.PriceLevel = price
	}
	if d.URL != "" {
		loc.GoogleMapsURL = models.StringPtr(d.URL)
	}
	if len(d.Photos) > 0 && d.Photos[0].PhotoReference != "" {
		loc.ImageURL = models.StringPtr(photoURL(d.Photos[0].PhotoReference))
	}
	if d.OpeningHours != nil && len(d.OpeningHours.WeekdayText) > 0 {
		loc.OpeningHours = d.OpeningHours.WeekdayText
	}
}
