package llm

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Generation settings.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// Planner builds itineraries from extracted content.
type Planner struct {
	provider     Provider
	interactions *InteractionLogger
	logger       *zap.Logger
	temperature  float32
	maxTokens    int
}

func NewPlanner(provider Provider, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		provider:     provider,
		interactions: NewInteractionLogger(logger),
		logger:       logger,
		temperature:  DefaultTemperature,
		maxTokens:    DefaultMaxTokens,
	}
}

// Plan asks the model for an itinerary and validates the answer.
func (p *Planner) Plan(ctx context.Context, c *content.Content, req models.TripRequest) (*models.Itinerary, error) {
	ctx, span := otel.Tracer("Planner").Start(ctx, "Plan")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", p.provider.Name()),
		attribute.String("content.platform", string(c.Platform)),
	)

	prompt := BuildPrompt(c, req.TripDurationDays, req.Preferences)

	start := time.Now()
	resp, err := p.provider.Complete(ctx, Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})

	in := Interaction{
		Provider: p.provider.Name(),
		Prompt:   prompt,
		Platform: string(c.Platform),
		Latency:  time.Since(start),
		Err:      err,
	}
	if resp != nil {
		in.Model = resp.Model
		in.PromptTokens = resp.PromptTokens
		in.CompletionTokens = resp.CompletionTokens
	}
	p.interactions.Log(ctx, in)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return nil, fmt.Errorf("AI generation failed: %w", err)
	}

	it, err := DecodeItinerary(resp.Text, Source{URL: req.URL, Creator: c.Creator}, req.TripDurationDays)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid itinerary")
		p.logger.Warn("Model answer rejected", zap.Error(err), zap.Int("answer_bytes", len(resp.Text)))
		return nil, fmt.Errorf("AI generation failed: %w", err)
	}

	span.SetAttributes(attribute.Int("itinerary.days", len(it.Days)))
	return it, nil
}
