package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// AI provider names accepted in AI_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

type AIConfig struct {
	// Provider is openai or google. Empty picks whichever key is set, OpenAI first.
	Provider      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
}

type PlacesConfig struct {
	APIKey      string
	BaseURL     string
	Concurrency int
}

type ExtractorConfig struct {
	YTDLPPath    string
	YTDLPTimeout time.Duration
}

type ObservabilityConfig struct {
	ServiceName  string
	OTLPEndpoint string
	MetricsAddr  string
	PprofAddr    string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

type WebConfig struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	SessionTTL     time.Duration
	// MetricsAddr serves the frontend's /metrics. Empty disables it.
	MetricsAddr string
}

type Config struct {
	Environment string
	LogLevel    string
	ServerPort  string
	CORSOrigins []string
	CacheTTL    time.Duration

	AI            AIConfig
	Places        PlacesConfig
	Extractor     ExtractorConfig
	Observability ObservabilityConfig
	RateLimit     RateLimitConfig
	Web           WebConfig
}

func Load() (*Config, error) {
	var errs []string
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnvOrDefault(key, def))
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive duration", key))
		}
		return d
	}
	integer := func(key, def string) int {
		n, err := strconv.Atoi(getEnvOrDefault(key, def))
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive integer", key))
		}
		return n
	}

	cfg := &Config{
		Environment: getEnvOrDefault("APP_ENV", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8000"),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
		CacheTTL:    duration("ITINERARY_CACHE_TTL", "30m"),
		AI: AIConfig{
			Provider:      strings.ToLower(os.Getenv("AI_PROVIDER")),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		},
		Places: PlacesConfig{
			APIKey:      os.Getenv("GOOGLE_PLACES_API_KEY"),
			BaseURL:     os.Getenv("GOOGLE_PLACES_BASE_URL"),
			Concurrency: integer("PLACES_CONCURRENCY", "4"),
		},
		Extractor: ExtractorConfig{
			YTDLPPath:    getEnvOrDefault("YTDLP_PATH", "yt-dlp"),
			YTDLPTimeout: duration("YTDLP_TIMEOUT", "30s"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("OTEL_SERVICE_NAME", "tiktok-to-trip"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    os.Getenv("PPROF_ADDR"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: integer("EXTRACT_RATE_PER_MINUTE", "10"),
			Burst:             integer("EXTRACT_RATE_BURST", "3"),
		},
		Web: WebConfig{
			Port:           getEnvOrDefault("WEB_PORT", "3000"),
			BackendURL:     getEnvOrDefault("BACKEND_URL", "http://localhost:8000"),
			BackendTimeout: duration("BACKEND_TIMEOUT", "120s"),
			SessionTTL:     duration("SESSION_TTL", "2h"),
			MetricsAddr:    os.Getenv("WEB_METRICS_ADDR"),
		},
	}

	for key, port := range map[string]string{"SERVER_PORT": cfg.ServerPort, "WEB_PORT": cfg.Web.Port} {
		if !validPort(port) {
			errs = append(errs, fmt.Sprintf("%s must be a port number, got %q", key, port))
		}
	}
	switch cfg.AI.Provider {
	case "", ProviderOpenAI, ProviderGoogle:
	default:
		errs = append(errs, fmt.Sprintf("AI_PROVIDER must be %s or %s, got %q", ProviderOpenAI, ProviderGoogle, cfg.AI.Provider))
	}
	if u, err := url.Parse(cfg.Web.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("BACKEND_URL must be an absolute URL, got %q", cfg.Web.BackendURL))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// ResolvedProvider is the provider that will serve requests, or "" when no key is set.
func (a AIConfig) ResolvedProvider() string {
	switch a.Provider {
	case ProviderOpenAI:
		if a.OpenAIAPIKey != "" {
			return ProviderOpenAI
		}
	case ProviderGoogle:
		if a.GeminiAPIKey != "" {
			return ProviderGoogle
		}
	default:
		if a.OpenAIAPIKey != "" {
			return ProviderOpenAI
		}
		if a.GeminiAPIKey != "" {
			return ProviderGoogle
		}
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func validPort(port string) bool {
	n, err := strconv.Atoi(port)
	return err == nil && n > 0 && n < 65536
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
