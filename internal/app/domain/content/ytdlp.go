package content

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultYTDLPTimeout bounds a single metadata dump.
const DefaultYTDLPTimeout = 30 * time.Second

// MetadataRunner dumps video metadata as JSON without downloading the video.
type MetadataRunner interface {
	Dump(ctx context.Context, url string) ([]byte, error)
}

// YTDLP runs the yt-dlp binary.
type YTDLP struct {
	Binary  string
	Timeout time.Duration
}

// NewYTDLP returns a runner for binary, defaulting to "yt-dlp" on PATH.
func NewYTDLP(binary string, timeout time.Duration) *YTDLP {
	if binary == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = DefaultYTDLPTimeout
	}
	return &YTDLP{Binary: binary, Timeout: timeout}
}

func (y *YTDLP) Dump(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, y.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.Binary, "--dump-json", "--no-download", "--", url)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "yt-dlp timed out")
		}
		return nil, errors.Wrapf(err, "yt-dlp failed: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// SubtitleTrack is one downloadable subtitle format.
type SubtitleTrack struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// videoMetadata is the subset of the yt-dlp dump that is used.
type videoMetadata struct {
	Title             string                     `json:"title"`
	Description       string                     `json:"description"`
	Uploader          string                     `json:"uploader"`
	Creator           string                     `json:"creator"`
	Channel           string                     `json:"channel"`
	UploaderID        string                     `json:"uploader_id"`
	ChannelID         string                     `json:"channel_id"`
	Duration          float64                    `json:"duration"`
	ViewCount         int64                      `json:"view_count"`
	LikeCount         int64                      `json:"like_count"`
	Tags              []string                   `json:"tags"`
	Thumbnail         string                     `json:"thumbnail"`
	Subtitles         map[string][]SubtitleTrack `json:"subtitles"`
	AutomaticCaptions map[string][]SubtitleTrack `json:"automatic_captions"`
}

func parseMetadata(raw []byte) (*videoMetadata, error) {
	var meta videoMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, errors.Wrap(err, "decode yt-dlp output")
	}
	return &meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
