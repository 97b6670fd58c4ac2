package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// MockProvider is a mock implementation of Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

func (m *MockProvider) Name() string { return "mock" }

const modelAnswer = `{
	"destination": "Tokyo, Japan",
	"duration_days": 2,
	"summary": "Ramen and temples.",
	"vibe": "Foodie Paradise",
	"days": [
		{"day": 1, "title": "Shibuya", "locations": [{"name": "Ichiran", "type": "restaurant"}]},
		{"day": 2, "title": "Asakusa", "locations": [{"name": "Senso-ji", "type": "attraction"}]}
	]
}`

func TestDecodeItinerary(t *testing.T) {
	src := Source{URL: "https://www.tiktok.com/@user/video/1", Creator: "@user"}

	t.Run("plain JSON", func(t *testing.T) {
		it, err := DecodeItinerary(modelAnswer, src, nil)
		require.NoError(t, err)
		assert.Equal(t, "Tokyo, Japan", it.Destination)
		assert.Equal(t, src.URL, models.Deref(it.SourceURL))
		assert.Equal(t, "@user", models.Deref(it.SourceCreator))
		assert.NotNil(t, it.PackingTips)
		assert.NotNil(t, it.LocalPhrases)
	})

	t.Run("markdown fences", func(t *testing.T) {
		it, err := DecodeItinerary("```json\n"+modelAnswer+"\n```", src, nil)
		require.NoError(t, err)
		assert.Len(t, it.Days, 2)
	})

	t.Run("prose around the object", func(t *testing.T) {
		it, err := DecodeItinerary("Sure! Here is your trip:\n"+modelAnswer+"\nEnjoy.", src, nil)
		require.NoError(t, err)
		assert.Equal(t, "Foodie Paradise", it.Vibe)
	})

	t.Run("missing duration uses day count", func(t *testing.T) {
		it, err := DecodeItinerary(`{"destination":"Rome","summary":"s","vibe":"v",
			"days":[{"day":1,"title":"a"},{"day":2,"title":"b"},{"day":3,"title":"c"}]}`, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, it.DurationDays)
	})

	t.Run("missing duration prefers the requested one", func(t *testing.T) {
		five := 5
		it, err := DecodeItinerary(`{"destination":"Rome","summary":"s","vibe":"v","days":[{"day":1,"title":"a"}]}`, src, &five)
		require.NoError(t, err)
		assert.Equal(t, 5, it.DurationDays)
	})

	t.Run("missing summary and vibe", func(t *testing.T) {
		it, err := DecodeItinerary(`{"destination":"Rome","duration_days":1,"days":[]}`, Source{URL: "u"}, nil)
		require.NoError(t, err)
		assert.Empty(t, it.Summary)
		assert.Nil(t, it.SourceCreator)
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := DecodeItinerary("I cannot help with that.", src, nil)
		assert.Error(t, err)
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := DecodeItinerary(`{"duration_days":1,"days":[]}`, src, nil)
		assert.ErrorIs(t, err, models.ErrSchema)
	})
}

func TestBuildPrompt(t *testing.T) {
	c := &content.Content{
		Platform:    content.PlatformTikTok,
		Title:       "Tokyo eats",
		Description: "#ramen",
		Transcript:  "first stop Ichiran",
	}

	t.Run("defaults", func(t *testing.T) {
		p := BuildPrompt(c, nil, nil)
		assert.Contains(t, p, "Platform: tiktok")
		assert.Contains(t, p, "Creator: unknown")
		assert.Contains(t, p, "Transcript/Captions:\nfirst stop Ichiran")
		assert.Contains(t, p, "Infer appropriate duration from content")
		assert.Contains(t, p, "Match the style/vibe of the original content")
	})

	t.Run("duration and known style", func(t *testing.T) {
		five, prefs := 5, "foodie"
		p := BuildPrompt(c, &five, &prefs)
		assert.Contains(t, p, "Create a 5-day itinerary")
		assert.Contains(t, p, "Style preferences: Foodie (")
	})

	t.Run("free text style", func(t *testing.T) {
		prefs := "slow travel, trains only"
		p := BuildPrompt(&content.Content{}, nil, &prefs)
		assert.Contains(t, p, "Style preferences: slow travel, trains only")
		assert.NotContains(t, p, "Transcript/Captions")
	})
}

func TestPlannerPlan(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.MatchedBy(func(r Request) bool {
		return r.Temperature == DefaultTemperature && r.MaxTokens == DefaultMaxTokens &&
			strings.Contains(r.Prompt, "Create a 2-day itinerary") && r.System == systemPrompt
	})).Return(&Response{Text: modelAnswer, Model: "gpt-4o", PromptTokens: 100, CompletionTokens: 50}, nil).Once()

	two := 2
	planner := NewPlanner(provider, nil)
	it, err := planner.Plan(context.Background(),
		&content.Content{Platform: content.PlatformTikTok, Creator: "@user"},
		models.TripRequest{URL: "https://www.tiktok.com/@user/video/1", TripDurationDays: &two})

	require.NoError(t, err)
	assert.Equal(t, "Tokyo, Japan", it.Destination)
	assert.Equal(t, "@user", models.Deref(it.SourceCreator))
	provider.AssertExpectations(t)
}

func TestPlannerPlanErrors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited")).Once()

		_, err := NewPlanner(provider, nil).Plan(context.Background(), &content.Content{}, models.TripRequest{URL: "u"})
		assert.ErrorContains(t, err, "AI generation failed")
		assert.ErrorContains(t, err, "rate limited")
	})

	t.Run("unusable answer", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("Complete", mock.Anything, mock.Anything).Return(&Response{Text: "no"}, nil).Once()

		_, err := NewPlanner(provider, nil).Plan(context.Background(), &content.Content{}, models.TripRequest{URL: "u"})
		assert.ErrorContains(t, err, "AI generation failed")
	})
}

func TestOpenAIProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		assert.EqualValues(t, 4000, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "gpt-4o-2024-08-06",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": modelAnswer}}},
			"usage":   map[string]any{"prompt_tokens": 12, "completion_tokens": 34, "total_tokens": 46},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "")
	resp, err := p.Complete(context.Background(), Request{System: "s", Prompt: "p", Temperature: 0.7, MaxTokens: 4000})

	require.NoError(t, err)
	assert.Equal(t, modelAnswer, resp.Text)
	assert.Equal(t, 12, resp.PromptTokens)
	assert.Equal(t, 34, resp.CompletionTokens)
	assert.Equal(t, "openai", p.Name())
}

func TestCalculateCost(t *testing.T) {
	assert.InDelta(t, 2.50+10.00, CalculateCost("gpt-4o-2024-08-06", 1_000_000, 1_000_000), 1e-9)
	assert.InDelta(t, 0.15, CalculateCost("gpt-4o-mini", 1_000_000, 0), 1e-9)
	assert.Zero(t, CalculateCost("unknown-model", 1000, 1000))
	assert.Len(t, HashPrompt("hello"), 64)
}
