package content

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 " +
	"(KHTML, like Gecko) Version/14.1.1 Mobile/15E148 Safari/604.1"

// pageMeta is what the HTML fallback can recover from a public page.
type pageMeta struct {
	Title         string
	Description   string
	OGDescription string
	Creator       string
	Thumbnail     string
	FromJSONLD    bool
}

type jsonLDVideo struct {
	Type         string          `json:"@type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ThumbnailURL json.RawMessage `json:"thumbnailUrl"`
	Creator      struct {
		Name string `json:"name"`
	} `json:"creator"`
}

func (e *Extractor) fetchPage(ctx context.Context, url string) (*pageMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build page request")
	}
	req.Header.Set("User-Agent", mobileUserAgent)

	resp, err := e.pageClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse page")
	}
	return parsePage(doc), nil
}

// parsePage prefers a JSON-LD VideoObject and falls back to meta tags.
func parsePage(doc *goquery.Document) *pageMeta {
	var meta *pageMeta
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var video jsonLDVideo
		if err := json.Unmarshal([]byte(s.Text()), &video); err != nil || video.Type != "VideoObject" {
			return true
		}
		meta = &pageMeta{
			Title:       video.Name,
			Description: video.Description,
			Creator:     video.Creator.Name,
			Thumbnail:   thumbnail(video.ThumbnailURL),
			FromJSONLD:  true,
		}
		return false
	})
	if meta != nil {
		return meta
	}

	return &pageMeta{
		Title:         metaContent(doc, `meta[property="og:title"]`),
		Description:   metaContent(doc, `meta[name="description"]`),
		OGDescription: metaContent(doc, `meta[property="og:description"]`),
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// thumbnail accepts both a single URL and a list of URLs.
func thumbnail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return one
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}
