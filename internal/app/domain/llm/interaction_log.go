package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/metrics"
)

// Interaction describes one chat model call.
type Interaction struct {
	Provider         string
	Model            string
	Prompt           string
	Platform         string
	PromptTokens     int
	CompletionTokens int
	Latency          time.Duration
	Err              error
}

// USD per million tokens.
var pricing = map[string]struct {
	InputPer1M  float64
	OutputPer1M float64
}{
	"gpt-4o-mini":      {InputPer1M: 0.15, OutputPer1M: 0.60},
	"gpt-4o":           {InputPer1M: 2.50, OutputPer1M: 10.00},
	"gemini-1.5-flash": {InputPer1M: 0.075, OutputPer1M: 0.30},
	"gemini-2.0-flash": {InputPer1M: 0.10, OutputPer1M: 0.40},
	"gemini-1.5-pro":   {InputPer1M: 3.50, OutputPer1M: 10.50},
}

// CalculateCost estimates the cost in USD of a call. Unknown models cost 0.
func CalculateCost(modelName string, promptTokens, completionTokens int) float64 {
	model := strings.ToLower(modelName)
	best := ""
	for key := range pricing {
		if strings.Contains(model, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return 0
	}
	p := pricing[best]
	return float64(promptTokens)/1_000_000*p.InputPer1M + float64(completionTokens)/1_000_000*p.OutputPer1M
}

// HashPrompt returns the hex SHA256 of a prompt.
func HashPrompt(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

// InteractionLogger records chat model calls to zap and the app metrics.
type InteractionLogger struct {
	logger *zap.Logger
}

func NewInteractionLogger(logger *zap.Logger) *InteractionLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionLogger{logger: logger}
}

// Log emits the interaction. It never fails.
func (l *InteractionLogger) Log(ctx context.Context, in Interaction) {
	outcome := "success"
	if in.Err != nil {
		outcome = "error"
	}

	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("provider", in.Provider),
		attribute.String("outcome", outcome),
	)
	m.LLMRequestsTotal.Add(ctx, 1, attrs)
	m.LLMLatency.Record(ctx, in.Latency.Seconds(), attrs)
	if tokens := in.PromptTokens + in.CompletionTokens; tokens > 0 {
		m.LLMTokensTotal.Add(ctx, int64(tokens), metric.WithAttributes(attribute.String("provider", in.Provider)))
	}

	fields := []zap.Field{
		zap.String("provider", in.Provider),
		zap.String("model", in.Model),
		zap.String("platform", in.Platform),
		zap.String("prompt_hash", HashPrompt(in.Prompt)),
		zap.Int("prompt_tokens", in.PromptTokens),
		zap.Int("completion_tokens", in.CompletionTokens),
		zap.Float64("cost_usd", CalculateCost(in.Model, in.PromptTokens, in.CompletionTokens)),
		zap.Duration("latency", in.Latency),
	}
	if in.Err != nil {
		l.logger.Error("LLM interaction failed", append(fields, zap.Error(in.Err))...)
		return
	}
	l.logger.Info("LLM interaction", fields...)
}
