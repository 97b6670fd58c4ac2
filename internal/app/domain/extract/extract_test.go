package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/cache"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Extract(ctx context.Context, url string) (*content.Content, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Content), args.Error(1)
}

type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) Plan(ctx context.Context, c *content.Content, req models.TripRequest) (*models.Itinerary, error) {
	args := m.Called(ctx, c, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Itinerary), args.Error(1)
}

type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, it *models.Itinerary) error {
	return m.Called(ctx, it).Error(0)
}

const tiktokURL = "https://www.tiktok.com/@traveler/video/123"

func tokyo() *models.Itinerary {
	return &models.Itinerary{
		Destination:  "Tokyo",
		DurationDays: 1,
		Summary:      "s",
		Vibe:         "v",
		Days:         []models.DayPlan{{Day: 1, Title: "Shibuya"}},
	}
}

func httpStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var httpErr *models.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Status, httpErr.Detail
}

func TestServiceExtract(t *testing.T) {
	ctx := context.Background()
	clip := &content.Content{Platform: content.PlatformTikTok, Title: "Tokyo eats"}

	t.Run("unsupported url", func(t *testing.T) {
		source := new(MockSource)
		svc := NewService(source, Options{Planner: new(MockPlanner)}, nil)

		_, err := svc.Extract(ctx, models.TripRequest{URL: "https://vimeo.com/1"})
		status, detail := httpStatus(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, DetailInvalidURL, detail)
		source.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("no model configured", func(t *testing.T) {
		svc := NewService(new(MockSource), Options{}, nil)

		_, err := svc.Extract(ctx, models.TripRequest{URL: tiktokURL})
		status, detail := httpStatus(t, err)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, DetailNotConfigured, detail)
		assert.ErrorIs(t, err, models.ErrNotConfigured)
	})

	t.Run("no content", func(t *testing.T) {
		source := new(MockSource)
		source.On("Extract", mock.Anything, tiktokURL).Return(nil, models.ErrNoContent).Once()
		svc := NewService(source, Options{Planner: new(MockPlanner)}, nil)

		_, err := svc.Extract(ctx, models.TripRequest{URL: tiktokURL})
		status, detail := httpStatus(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, DetailNoContent, detail)
	})

	t.Run("generation failure", func(t *testing.T) {
		source := new(MockSource)
		source.On("Extract", mock.Anything, tiktokURL).Return(clip, nil).Once()
		planner := new(MockPlanner)
		planner.On("Plan", mock.Anything, clip, mock.Anything).Return(nil, errors.New("AI generation failed: boom")).Once()

		_, err := NewService(source, Options{Planner: planner}, nil).Extract(ctx, models.TripRequest{URL: tiktokURL})
		status, detail := httpStatus(t, err)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Error processing content: AI generation failed: boom", detail)
	})

	t.Run("success enriches and drops out of range duration", func(t *testing.T) {
		source := new(MockSource)
		source.On("Extract", mock.Anything, tiktokURL).Return(clip, nil).Once()
		planner := new(MockPlanner)
		planner.On("Plan", mock.Anything, clip, mock.MatchedBy(func(r models.TripRequest) bool {
			return r.TripDurationDays == nil && r.URL == tiktokURL
		})).Return(tokyo(), nil).Once()
		enricher := new(MockEnricher)
		enricher.On("Enrich", mock.Anything, mock.Anything).Return(nil).Once()

		ninety := 90
		it, err := NewService(source, Options{Planner: planner, Enricher: enricher}, nil).
			Extract(ctx, models.TripRequest{URL: "  " + tiktokURL + " ", TripDurationDays: &ninety})

		require.NoError(t, err)
		assert.Equal(t, "Tokyo", it.Destination)
		planner.AssertExpectations(t)
		enricher.AssertExpectations(t)
	})

	t.Run("enrichment errors keep the itinerary", func(t *testing.T) {
		source := new(MockSource)
		source.On("Extract", mock.Anything, tiktokURL).Return(clip, nil).Once()
		planner := new(MockPlanner)
		planner.On("Plan", mock.Anything, clip, mock.Anything).Return(tokyo(), nil).Once()
		enricher := new(MockEnricher)
		enricher.On("Enrich", mock.Anything, mock.Anything).Return(context.Canceled).Once()

		it, err := NewService(source, Options{Planner: planner, Enricher: enricher}, nil).
			Extract(ctx, models.TripRequest{URL: tiktokURL})
		require.NoError(t, err)
		assert.Equal(t, "Tokyo", it.Destination)
	})
}

func TestServiceExtractCache(t *testing.T) {
	clip := &content.Content{Platform: content.PlatformTikTok}
	source := new(MockSource)
	source.On("Extract", mock.Anything, tiktokURL).Return(clip, nil).Once()
	planner := new(MockPlanner)
	planner.On("Plan", mock.Anything, clip, mock.Anything).Return(tokyo(), nil).Once()

	itineraries := cache.NewUnifiedCache[models.Itinerary](time.Minute, "test", nil)
	svc := NewService(source, Options{Planner: planner, Cache: itineraries}, nil)

	first, err := svc.Extract(context.Background(), models.TripRequest{URL: tiktokURL})
	require.NoError(t, err)
	second, err := svc.Extract(context.Background(), models.TripRequest{URL: tiktokURL})
	require.NoError(t, err)

	assert.Equal(t, first.Destination, second.Destination)
	assert.Equal(t, int64(1), itineraries.GetMetrics().Hits)
	source.AssertNumberOfCalls(t, "Extract", 1)
	planner.AssertNumberOfCalls(t, "Plan", 1)
}

func TestServiceHealthAndDemo(t *testing.T) {
	bare := NewService(new(MockSource), Options{}, nil)
	assert.Equal(t, Health{Status: "healthy"}, bare.Health())

	full := NewService(new(MockSource), Options{Planner: new(MockPlanner), ProviderName: "openai", Enricher: new(MockEnricher)}, nil)
	h := full.Health()
	assert.True(t, h.AIConfigured)
	assert.True(t, h.PlacesConfigured)
	assert.Equal(t, "openai", h.AIProvider)

	demo := bare.Demo(context.Background())
	require.NotNil(t, demo)
	assert.Contains(t, demo.Destination, "Tokyo")
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, nil).RegisterRoutes(r)
	return r
}

func TestHandlerExtract(t *testing.T) {
	clip := &content.Content{Platform: content.PlatformTikTok}
	source := new(MockSource)
	source.On("Extract", mock.Anything, tiktokURL).Return(clip, nil).Once()
	planner := new(MockPlanner)
	planner.On("Plan", mock.Anything, clip, mock.MatchedBy(func(r models.TripRequest) bool {
		return r.TripDurationDays != nil && *r.TripDurationDays == 3 && r.Preferences == nil
	})).Return(tokyo(), nil).Once()

	r := setupRouter(NewService(source, Options{Planner: planner}, nil))

	body := `{"url":"` + tiktokURL + `","trip_duration":3,"preferences":null}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Itinerary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Tokyo", got.Destination)
}

func TestHandlerExtractErrors(t *testing.T) {
	r := setupRouter(NewService(new(MockSource), Options{Planner: new(MockPlanner)}, nil))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{"unsupported url", `{"url":"https://example.com/video"}`, http.StatusBadRequest, DetailInvalidURL},
		{"empty url", `{"url":""}`, http.StatusBadRequest, DetailInvalidURL},
		{"platform domain in query", `{"url":"http://169.254.169.254/latest/meta-data/?x=tiktok.com"}`, http.StatusBadRequest, DetailInvalidURL},
		{"look-alike host", `{"url":"https://tiktok.com.evil.example/"}`, http.StatusBadRequest, DetailInvalidURL},
		{"option injection", `{"url":"--batch-file=/etc/hostname#tiktok.com"}`, http.StatusBadRequest, DetailInvalidURL},
		{"malformed body", `{"url":`, http.StatusUnprocessableEntity, "Invalid request body"},
		{"wrong type", `{"url":"` + tiktokURL + `","trip_duration":"abc"}`, http.StatusUnprocessableEntity, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestHandlerDemoHealthRoot(t *testing.T) {
	r := setupRouter(NewService(new(MockSource), Options{}, nil))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/api/extract/demo", nil))
		require.Equal(t, http.StatusOK, w.Code, method)

		var got models.Itinerary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.NotEmpty(t, got.Days)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","ai_configured":false,"places_configured":false}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"running"`)
}
