package content

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const maxSubtitleBytes = 2 << 20

var (
	subtitleLanguages      = []string{"en", "en-US", "en-GB"}
	youtubeCaptionLanguage = append(append([]string{}, subtitleLanguages...), "a.en")
	textSubtitleFormats    = map[string]bool{"vtt": true, "srt": true, "txt": true, "json3": true}

	timestampLine = regexp.MustCompile(`^\d{2}:\d{2}`)
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// pickTracks returns the tracks for the first language present.
func pickTracks(subs map[string][]SubtitleTrack, languages []string) []SubtitleTrack {
	for _, lang := range languages {
		if tracks, ok := subs[lang]; ok {
			return tracks
		}
	}
	return nil
}

// fetchSubtitles downloads the first text-based track. Failures yield "".
func (e *Extractor) fetchSubtitles(ctx context.Context, tracks []SubtitleTrack) string {
	for _, track := range tracks {
		if !textSubtitleFormats[track.Ext] || track.URL == "" {
			continue
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
		if err != nil {
			return ""
		}
		resp, err := e.httpClient.Do(req)
		if err != nil {
			e.logger.Debug("Subtitle download failed", zap.Error(err))
			return ""
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxSubtitleBytes))
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			return ""
		}
		return CleanSubtitles(string(body))
	}
	return ""
}

// CleanSubtitles strips VTT/SRT cue numbers, timings and markup, joining the
// remaining caption lines with spaces.
func CleanSubtitles(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "",
			strings.Contains(line, "-->"),
			strings.HasPrefix(line, "WEBVTT"),
			isDigits(line),
			timestampLine.MatchString(line):
			continue
		}

		line = htmlTag.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.ReplaceAll(line, "&nbsp;", " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
