// Package content pulls title, description, transcript and creator out of a
// social video URL.
package content

import (
	"net/url"
	"regexp"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Platform is a supported video source.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// hostDomains are registrable domains; the host must equal one or be a subdomain of it.
var hostDomains = []string{
	"tiktok.com",
	"instagram.com",
	"youtube.com",
	"youtu.be",
}

var hostPlatforms = []Platform{
	PlatformTikTok,
	PlatformInstagram,
	PlatformYouTube,
	PlatformYouTube,
}

var hostMatcher = func() ahocorasick.AhoCorasick {
	b := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            ahocorasick.StandardMatch,
	})
	return b.Build(hostDomains)
}()

// DetectPlatform reports which platform an absolute http(s) URL belongs to.
// Only the host is considered; paths, queries and fragments never match.
func DetectPlatform(rawURL string) (Platform, bool) {
	host, ok := urlHost(rawURL)
	if !ok {
		return "", false
	}
	return platformForHost(host)
}

func urlHost(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	return host, host != ""
}

// platformForHost accepts a match only when it ends the host and starts at a label boundary.
func platformForHost(host string) (Platform, bool) {
	iter := hostMatcher.IterOverlapping(host)
	for m := iter.Next(); m != nil; m = iter.Next() {
		if m.End() != len(host) {
			continue
		}
		if m.Start() == 0 || host[m.Start()-1] == '.' {
			return hostPlatforms[m.Pattern()], true
		}
	}
	return "", false
}

// IsSupported reports whether the URL is on the allow-list.
func IsSupported(rawURL string) bool {
	_, ok := DetectPlatform(rawURL)
	return ok
}

var creatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`tiktok\.com/@([^/?]+)`),
	regexp.MustCompile(`instagram\.com/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/@([^/?]+)`),
	regexp.MustCompile(`youtube\.com/channel/([^/?]+)`),
}

// CreatorFromURL returns "@handle" when the URL path carries one, or "".
func CreatorFromURL(rawURL string) string {
	for _, re := range creatorPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil && strings.TrimSpace(m[1]) != "" {
			return "@" + m[1]
		}
	}
	return ""
}
