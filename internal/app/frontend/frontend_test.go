package frontend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/itinerary"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Extract(ctx context.Context, req models.TripRequest) (*models.Itinerary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Itinerary), args.Error(1)
}

func (m *MockBackend) Demo(ctx context.Context) (*models.Itinerary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Itinerary), args.Error(1)
}

type browser struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newBrowser(t *testing.T, backend *MockBackend) *browser {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewSessionStore(backend, time.Hour, nil), false, nil).RegisterRoutes(r)
	return &browser{t: t, router: r}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) page() *goquery.Document {
	w := b.do(http.MethodGet, "/", nil)
	require.Equal(b.t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(b.t, err)
	return doc
}

func TestShowPageIdle(t *testing.T) {
	b := newBrowser(t, new(MockBackend))
	doc := b.page()

	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
	assert.Equal(t, "idle", doc.Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, 1, doc.Find("#trip-form").Length())

	first := b.cookie.Value
	b.page()
	assert.Equal(t, first, b.cookie.Value, "the session is reused")
}

func TestDemoToggleExportReset(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Demo", mock.Anything).Return(itinerary.Demo(), nil).Once()
	b := newBrowser(t, backend)

	w := b.do(http.MethodPost, "/trip/demo", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	doc := b.page()
	assert.Equal(t, "displaying", doc.Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, "true", doc.Find(`.day-card[data-day="1"]`).AttrOr("data-expanded", ""))
	assert.Equal(t, "false", doc.Find(`.day-card[data-day="2"]`).AttrOr("data-expanded", ""))

	w = b.do(http.MethodPost, "/days/2/toggle", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/#day-2", w.Header().Get("Location"))
	doc = b.page()
	assert.Equal(t, "true", doc.Find(`.day-card[data-day="2"]`).AttrOr("data-expanded", ""))

	w = b.do(http.MethodGet, "/export.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "itinerary.txt")
	assert.Contains(t, w.Body.String(), "Day 1: ")

	b.do(http.MethodPost, "/reset", url.Values{})
	doc = b.page()
	assert.Equal(t, "idle", doc.Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, "/export.txt", nil).Code)

	backend.AssertNumberOfCalls(t, "Demo", 1)
	backend.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestSubmitFlow(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Extract", mock.Anything, mock.MatchedBy(func(r models.TripRequest) bool {
		return r.URL == "https://www.tiktok.com/@x/video/1" && r.TripDurationDays == nil && r.Preferences != nil && *r.Preferences == "foodie"
	})).Return(nil, &models.ExtractionError{Status: 422, Message: "Video unavailable"}).Once()
	b := newBrowser(t, backend)

	b.do(http.MethodPost, "/trip", url.Values{"url": {"   "}})
	doc := b.page()
	assert.Equal(t, "idle", doc.Find("body").AttrOr("data-phase", ""))
	backend.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)

	b.do(http.MethodPost, "/trip", url.Values{
		"url":           {"https://www.tiktok.com/@x/video/1"},
		"trip_duration": {"abc"},
		"preferences":   {"foodie"},
	})
	doc = b.page()
	assert.Equal(t, "error", doc.Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, "Video unavailable", doc.Find(".error-message").Text())
	assert.Equal(t, "https://www.tiktok.com/@x/video/1", doc.Find("#url").AttrOr("value", ""))

	b.do(http.MethodPost, "/error/dismiss", url.Values{})
	doc = b.page()
	assert.Equal(t, 0, doc.Find("#error-banner").Length())
	backend.AssertExpectations(t)
}

func TestToggleInvalidDay(t *testing.T) {
	b := newBrowser(t, new(MockBackend))
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/days/abc/toggle", url.Values{}).Code)
	assert.Equal(t, http.StatusSeeOther, b.do(http.MethodPost, "/days/9/toggle", url.Values{}).Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Demo", mock.Anything).Return(itinerary.Demo(), nil).Once()

	gin.SetMode(gin.TestMode)
	store := NewSessionStore(backend, time.Hour, nil)
	r := gin.New()
	NewHandler(store, false, nil).RegisterRoutes(r)

	alice := &browser{t: t, router: r}
	bob := &browser{t: t, router: r}

	alice.do(http.MethodPost, "/trip/demo", url.Values{})
	assert.Equal(t, "displaying", alice.page().Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, "idle", bob.page().Find("body").AttrOr("data-phase", ""))
	assert.Equal(t, 2, store.Len())
}
