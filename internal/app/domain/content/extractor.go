package content

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Content is the text pulled out of one video.
type Content struct {
	Platform    Platform
	Title       string
	Description string
	Transcript  string
	Creator     string
	CreatorID   string
	Duration    float64
	ViewCount   int64
	LikeCount   int64
	Tags        []string
	Thumbnail   string
}

// Source extracts content from a URL.
type Source interface {
	Extract(ctx context.Context, url string) (*Content, error)
}

// Extractor tries yt-dlp first and falls back to scraping the public page
// where the platform allows it.
type Extractor struct {
	runner     MetadataRunner
	httpClient *http.Client
	pageClient *http.Client
	logger     *zap.Logger
}

// NewExtractor wires an extractor. A nil httpClient gets a traced client with a 15s timeout.
// Page fetches use a copy of httpClient that only follows redirects to supported hosts.
func NewExtractor(runner MetadataRunner, httpClient *http.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	pageClient := *httpClient
	pageClient.CheckRedirect = checkPageRedirect
	return &Extractor{runner: runner, httpClient: httpClient, pageClient: &pageClient, logger: logger}
}

// Extract returns models.ErrNoContent when nothing usable could be read.
func (e *Extractor) Extract(ctx context.Context, url string) (*Content, error) {
	ctx, span := otel.Tracer("ContentExtractor").Start(ctx, "Extract")
	defer span.End()

	platform, ok := DetectPlatform(url)
	if !ok {
		span.SetStatus(codes.Error, "unsupported platform")
		return nil, models.ErrNoContent
	}
	span.SetAttributes(attribute.String("content.platform", string(platform)))

	var c *Content
	switch platform {
	case PlatformTikTok:
		c = e.extractTikTok(ctx, url)
	case PlatformInstagram:
		c = e.extractInstagram(ctx, url)
	case PlatformYouTube:
		c = e.extractYouTube(ctx, url)
	}

	if c == nil {
		span.SetStatus(codes.Error, "no content")
		return nil, models.ErrNoContent
	}
	span.SetAttributes(attribute.Bool("content.has_transcript", c.Transcript != ""))
	return c, nil
}

func checkPageRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if !IsSupported(req.URL.String()) {
		return errors.Errorf("redirect to unsupported host %q", req.URL.Host)
	}
	return nil
}

func (e *Extractor) dump(ctx context.Context, url string) *videoMetadata {
	if e.runner == nil {
		return nil
	}
	raw, err := e.runner.Dump(ctx, url)
	if err != nil {
		e.logger.Info("yt-dlp unavailable for URL, falling back", zap.String("url", url), zap.Error(err))
		return nil
	}
	meta, err := parseMetadata(raw)
	if err != nil {
		e.logger.Warn("Unreadable yt-dlp output", zap.String("url", url), zap.Error(err))
		return nil
	}
	return meta
}

func (e *Extractor) extractTikTok(ctx context.Context, url string) *Content {
	if meta := e.dump(ctx, url); meta != nil {
		return &Content{
			Platform:    PlatformTikTok,
			Title:       meta.Title,
			Description: meta.Description,
			Transcript:  e.fetchSubtitles(ctx, pickTracks(meta.Subtitles, subtitleLanguages)),
			Creator:     firstNonEmpty(meta.Uploader, meta.Creator),
			CreatorID:   meta.UploaderID,
			Duration:    meta.Duration,
			ViewCount:   meta.ViewCount,
			LikeCount:   meta.LikeCount,
			Tags:        meta.Tags,
			Thumbnail:   meta.Thumbnail,
		}
	}

	page, err := e.fetchPage(ctx, url)
	if err != nil {
		e.logger.Warn("TikTok page fallback failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	c := &Content{
		Platform:    PlatformTikTok,
		Title:       page.Title,
		Description: page.Description,
		Creator:     page.Creator,
		Thumbnail:   page.Thumbnail,
	}
	if !page.FromJSONLD {
		c.Creator = CreatorFromURL(url)
	}
	return c
}

func (e *Extractor) extractInstagram(ctx context.Context, url string) *Content {
	if meta := e.dump(ctx, url); meta != nil {
		return &Content{
			Platform:    PlatformInstagram,
			Title:       meta.Title,
			Description: meta.Description,
			Creator:     meta.Uploader,
			CreatorID:   meta.UploaderID,
		}
	}

	page, err := e.fetchPage(ctx, url)
	if err != nil {
		e.logger.Warn("Instagram page fallback failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	return &Content{
		Platform:    PlatformInstagram,
		Title:       page.Title,
		Description: firstNonEmpty(page.OGDescription, page.Description),
		Creator:     CreatorFromURL(url),
	}
}

// extractYouTube relies on yt-dlp only.
func (e *Extractor) extractYouTube(ctx context.Context, url string) *Content {
	meta := e.dump(ctx, url)
	if meta == nil {
		return nil
	}

	subs := meta.Subtitles
	if len(subs) == 0 {
		subs = meta.AutomaticCaptions
	}

	return &Content{
		Platform:    PlatformYouTube,
		Title:       meta.Title,
		Description: meta.Description,
		Transcript:  e.fetchSubtitles(ctx, pickTracks(subs, youtubeCaptionLanguage)),
		Creator:     firstNonEmpty(meta.Uploader, meta.Channel),
		CreatorID:   firstNonEmpty(meta.UploaderID, meta.ChannelID),
		Duration:    meta.Duration,
		ViewCount:   meta.ViewCount,
		LikeCount:   meta.LikeCount,
		Tags:        meta.Tags,
		Thumbnail:   meta.Thumbnail,
	}
}
