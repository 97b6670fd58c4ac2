package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/composer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/extract"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/llm"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/places"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/frontend"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/cache"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/config"
	"github.com/FACorreiaa/tiktok-to-trip/pkg/middleware"
)

// APIHandlers holds the backend handlers
type APIHandlers struct {
	Extract *extract.Handler
	Cache   *cache.CacheManager
}

// SetupAPI mounts the extraction API on r.
func SetupAPI(ctx context.Context, r *gin.Engine, cfg *config.Config, log *zap.Logger) (*APIHandlers, error) {
	handlers, err := setupAPIDependencies(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	handlers.Extract.RegisterRoutes(r, middleware.RateLimitMiddleware(limiter))
	return handlers, nil
}

func setupAPIDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (*APIHandlers, error) {
	caches := cache.NewCacheManager(cfg.CacheTTL, log)
	extractor := content.NewExtractor(content.NewYTDLP(cfg.Extractor.YTDLPPath, cfg.Extractor.YTDLPTimeout), nil, log)

	opts := extract.Options{Cache: caches.Itineraries}

	provider, err := newProvider(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		opts.Planner = llm.NewPlanner(provider, log)
		opts.ProviderName = provider.Name()
		log.Info("AI provider configured", zap.String("provider", provider.Name()))
	} else {
		log.Warn("No AI provider key set, /api/extract will answer 500")
	}

	if cfg.Places.APIKey != "" {
		client := places.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL, log)
		opts.Enricher = places.NewEnricher(client, cfg.Places.Concurrency, log)
		log.Info("Places enrichment enabled")
	}

	service := extract.NewService(extractor, opts, log)
	return &APIHandlers{
		Extract: extract.NewHandler(service, log),
		Cache:   caches,
	}, nil
}

// newProvider returns nil when no key is configured.
func newProvider(ctx context.Context, ai config.AIConfig) (llm.Provider, error) {
	switch ai.ResolvedProvider() {
	case config.ProviderOpenAI:
		return llm.NewOpenAIProvider(ai.OpenAIAPIKey, ai.OpenAIBaseURL, ai.OpenAIModel), nil
	case config.ProviderGoogle:
		p, err := llm.NewGeminiProvider(ctx, ai.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to set up gemini provider: %w", err)
		}
		return p, nil
	default:
		return nil, nil
	}
}

// SetupWeb mounts the browser frontend on r. It talks to the API at cfg.Web.BackendURL.
func SetupWeb(r *gin.Engine, cfg *config.Config, log *zap.Logger) *frontend.SessionStore {
	backend := composer.NewHTTPClient(cfg.Web.BackendURL, cfg.Web.BackendTimeout, log)
	store := frontend.NewSessionStore(backend, cfg.Web.SessionTTL, log)
	frontend.NewHandler(store, cfg.IsProduction(), log).RegisterRoutes(r)
	return store
}
