package nfo

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// parseInt parses an integer, tolerating surrounding noise like grouping
// separators and trailing text ("1,234 votes").
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseFloat parses a decimal number accepting both dot and comma decimal
// separators, since sidecar files come from tools in many locales.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
	"2006",
}

// parseDate tries the date layouts found in sidecar files and returns the
// value normalized to yyyy-mm-dd.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

var multiValueDelims = regexp.MustCompile(`\s*[,/|]\s*`)

// splitMultiValue splits a legacy single-tag value on the delimiters the
// various tools use (",", "/", "|"), dropping empty parts.
func splitMultiValue(s string) []string {
	var out []string
	for _, part := range multiValueDelims.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeLanguage canonicalizes a language name or code to its ISO-639
// base form ("en", "de"). Unrecognized values are kept as-is.
func normalizeLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	base, conf := tag.Base()
	if conf == language.No {
		return s
	}
	return base.String()
}

// isHTTPURL reports whether s is an absolute http(s) URL. Artwork entries
// that are not are discarded rather than stored.
func isHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// isImdbID reports whether s looks like an IMDB identifier. A bare <id> tag
// is accepted as an identifier only in that case, so arbitrary values are
// not misclassified.
func isImdbID(s string) bool {
	return imdbIDPattern.MatchString(strings.TrimSpace(s))
}

// youtubePlugin matches the media-player plugin URL that embeds a video id.
var youtubePlugin = regexp.MustCompile(`plugin://plugin\.video\.youtube/\?action=play_video&videoid=([^&\s]+)`)

// normalizeTrailer decodes the known player-plugin trailer URL shapes into a
// canonical playback URL. Bare http(s) URLs pass through, anything else is
// rejected.
func normalizeTrailer(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := youtubePlugin.FindStringSubmatch(s); m != nil {
		return "https://www.youtube.com/watch?v=" + m[1], true
	}
	if strings.HasPrefix(s, "plugin://plugin.video.hdtrailers_net/video/") {
		rest := strings.TrimPrefix(s, "plugin://plugin.video.hdtrailers_net/video/")
		if idx := strings.Index(rest, "/"); idx >= 0 {
			rest = rest[idx+1:]
		}
		if decoded, err := url.QueryUnescape(rest); err == nil && isHTTPURL(decoded) {
			return decoded, true
		}
		return "", false
	}
	if isHTTPURL(s) {
		return s, true
	}
	return "", false
}
