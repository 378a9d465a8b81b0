package syncer

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanTitle normalizes a title for matching purposes.
// Removes articles, punctuation, accents, and normalizes whitespace.
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	// Strip leading articles from each colon-separated part so subtitles
	// like "Leon: The Professional" match "leon professional".
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleSimilarity scores two titles between 0 and 1 after normalization.
func TitleSimilarity(a, b string) float64 {
	ca, cb := CleanTitle(a), CleanTitle(b)
	if ca == cb {
		return 1
	}
	if ca == "" || cb == "" {
		return 0
	}
	return float64(edlib.JaroWinklerSimilarity(ca, cb))
}

// TitlesMatch reports whether two titles are close enough to refer to the
// same movie.
func TitlesMatch(a, b string, threshold float64) bool {
	return TitleSimilarity(a, b) >= threshold
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
