package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every application instrument.
const MeterName = "tiktok-to-trip"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	ExtractionsTotal   metric.Int64Counter
	ExtractionDuration metric.Float64Histogram

	LLMRequestsTotal metric.Int64Counter
	LLMTokensTotal   metric.Int64Counter
	LLMLatency       metric.Float64Histogram

	PlacesLookupsTotal metric.Int64Counter

	CacheHitsTotal   metric.Int64Counter
	CacheMissesTotal metric.Int64Counter

	ActiveSessions metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider once.
// Call it after the provider is installed so instruments are exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter(MeterName)
		m := &AppMetrics{}

		m.HTTPRequestsTotal = must(meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		))
		m.HTTPRequestDuration = must(meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		))
		m.ExtractionsTotal = must(meter.Int64Counter(
			"itinerary_extractions_total",
			metric.WithDescription("Itinerary extractions by platform and outcome"),
			metric.WithUnit("{extraction}"),
		))
		m.ExtractionDuration = must(meter.Float64Histogram(
			"itinerary_extraction_duration_seconds",
			metric.WithDescription("End to end duration of an extraction"),
			metric.WithUnit("s"),
		))
		m.LLMRequestsTotal = must(meter.Int64Counter(
			"llm_requests_total",
			metric.WithDescription("Chat model calls by provider and outcome"),
			metric.WithUnit("{request}"),
		))
		m.LLMTokensTotal = must(meter.Int64Counter(
			"llm_tokens_total",
			metric.WithDescription("Tokens consumed by chat model calls"),
			metric.WithUnit("{token}"),
		))
		m.LLMLatency = must(meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of chat model calls"),
			metric.WithUnit("s"),
		))
		m.PlacesLookupsTotal = must(meter.Int64Counter(
			"places_lookups_total",
			metric.WithDescription("Places enrichment lookups by outcome"),
			metric.WithUnit("{lookup}"),
		))
		m.CacheHitsTotal = must(meter.Int64Counter(
			"cache_hits_total",
			metric.WithDescription("Cache hits by cache name"),
			metric.WithUnit("{hit}"),
		))
		m.CacheMissesTotal = must(meter.Int64Counter(
			"cache_misses_total",
			metric.WithDescription("Cache misses by cache name"),
			metric.WithUnit("{miss}"),
		))
		m.ActiveSessions = must(meter.Int64UpDownCounter(
			"frontend_sessions_active",
			metric.WithDescription("Browser sessions currently held by the web frontend"),
			metric.WithUnit("{session}"),
		))

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the instruments, creating them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

func must[T any](instrument T, err error) T {
	if err != nil {
		log.Fatalf("Metrics: failed to create instrument: %v", err)
	}
	return instrument
}
