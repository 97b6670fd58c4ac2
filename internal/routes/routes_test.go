package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/config"
)

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		CacheTTL:  time.Minute,
		Extractor: config.ExtractorConfig{YTDLPPath: "yt-dlp-not-installed", YTDLPTimeout: time.Second},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 60, Burst: 5},
		Places:    config.PlacesConfig{Concurrency: 2},
		Web:       config.WebConfig{BackendURL: backendURL, BackendTimeout: 5 * time.Second, SessionTTL: time.Hour},
	}
}

func TestSetupAPIWithoutProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	_, err := SetupAPI(context.Background(), r, testConfig("http://localhost:8000"), zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.JSONEq(t, `{"status":"healthy","ai_configured":false,"places_configured":false}`, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewBufferString(`{"url":"https://www.tiktok.com/@x/video/1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"AI provider not configured"}`, w.Body.String())
}

func TestSetupAPIWithOpenAIAndPlaces(t *testing.T) {
	cfg := testConfig("http://localhost:8000")
	cfg.AI = config.AIConfig{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o"}
	cfg.Places.APIKey = "places-key"

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers, err := SetupAPI(context.Background(), r, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, handlers.Cache)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.JSONEq(t, `{"status":"healthy","ai_configured":true,"ai_provider":"openai","places_configured":true}`, w.Body.String())
}

func TestWebAgainstAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := gin.New()
	_, err := SetupAPI(context.Background(), api, testConfig("http://unused"), zap.NewNop())
	require.NoError(t, err)
	backend := httptest.NewServer(api)
	defer backend.Close()

	web := gin.New()
	store := SetupWeb(web, testConfig(backend.URL), zap.NewNop())

	w := httptest.NewRecorder()
	web.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/trip/demo", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/export.txt", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	web.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tokyo")
	assert.Equal(t, 1, store.Len())

	var demo models.Itinerary
	resp, err := http.Post(backend.URL+"/api/extract/demo", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&demo))
	assert.Equal(t, "Tokyo, Japan", demo.Destination)
}
