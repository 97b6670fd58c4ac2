package composer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/itinerary"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Endpoint paths on the extraction backend.
const (
	ExtractPath = "/api/extract"
	DemoPath    = "/api/extract/demo"
)

const maxResponseBytes = 4 << 20

// Backend is the extraction service as seen by the composer.
type Backend interface {
	Extract(ctx context.Context, req models.TripRequest) (*models.Itinerary, error)
	Demo(ctx context.Context) (*models.Itinerary, error)
}

// HTTPClient talks to the extraction endpoints over HTTP. It never retries.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a client for the backend rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Extract posts the trip request to /api/extract.
func (c *HTTPClient) Extract(ctx context.Context, req models.TripRequest) (*models.Itinerary, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encode trip request")
	}
	return c.post(ctx, ExtractPath, body, models.FallbackExtractMessage)
}

// Demo posts an empty request to /api/extract/demo.
func (c *HTTPClient) Demo(ctx context.Context) (*models.Itinerary, error) {
	return c.post(ctx, DemoPath, nil, models.FallbackDemoMessage)
}

func (c *HTTPClient) post(ctx context.Context, path string, body []byte, fallback string) (*models.Itinerary, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, &models.TransportError{Message: fallback, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Extraction request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &models.TransportError{Message: fallback, Err: errors.Wrapf(err, "POST %s", path)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &models.TransportError{Message: fallback, Err: errors.Wrap(err, "read response")}
	}
	oversized := len(payload) > maxResponseBytes
	if oversized {
		payload = payload[:maxResponseBytes]
	}

	c.logger.Debug("Extraction response received",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.ExtractionError{
			Status:  resp.StatusCode,
			Message: errorDetail(payload, fallback),
		}
	}
	if oversized {
		return nil, &models.SchemaError{Reason: "payload exceeds 4 MiB"}
	}

	return itinerary.Parse(payload)
}

// errorDetail extracts the string detail of an error body, or returns fallback.
func errorDetail(payload []byte, fallback string) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return fallback
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil || strings.TrimSpace(detail) == "" {
		return fallback
	}
	return detail
}
