// Package nfo reads and writes movie sidecar metadata files in the tag
// dialects of the common media center applications. The reader is tolerant:
// it accepts any mix of the known tag shapes and keeps unrecognized tags as
// opaque fragments so they survive a read-modify-write cycle. The writer
// regenerates everything it understands in a deterministic, dialect-specific
// shape and re-emits the retained fragments.
package nfo

import (
	"errors"
	"strings"
)

// ErrUnknownRoot is returned when the document root is not a movie,
// collection, or recording element.
var ErrUnknownRoot = errors.New("unknown root element")

// Document kinds a record can originate from, named after the root element.
const (
	KindMovie      = "movie"
	KindCollection = "collection"
	KindRecording  = "recording"
)

// Well-known rating source keys.
const (
	RatingDefault    = "default"
	RatingUser       = "user"
	RatingImdb       = "imdb"
	RatingTmdb       = "tmdb"
	RatingMetacritic = "metacritic"
	RatingTomatoes   = "tomatometerallcritics"
)

// Well-known identifier provider keys.
const (
	IDImdb    = "imdb"
	IDTmdb    = "tmdb"
	IDTmdbSet = "tmdbSet"
)

// Rating is one scored rating from a named source.
type Rating struct {
	ID    string
	Value float64
	Votes int
	Max   int // rating scale upper bound, always > 0 when stored
}

// Person is a cast or crew member.
type Person struct {
	Name    string
	Role    string
	Thumb   string
	Profile string
	TmdbID  int
	ImdbID  string
	TvdbID  string
}

// SetCandidate is a possible parent movie set found in a document. The
// mapping layer picks at most one; candidates are never merged.
type SetCandidate struct {
	Name     string
	Overview string
	TmdbID   int
}

// Record is the flat interchange value exchanged between reader, writer and
// the domain mapping layer. It is constructed fresh per parse or write call
// and not retained beyond it.
type Record struct {
	// Kind is the document's root shape. Collection-rooted documents are
	// rewritten under a collection root so a rewrite never changes what
	// kind of entity the file describes.
	Kind string

	Title         string
	OriginalTitle string
	SortTitle     string
	Year          int
	Plot          string
	Outline       string
	Tagline       string
	Runtime       int // minutes
	Certification string
	ReleaseDate   string // yyyy-mm-dd
	Top250        int
	Watched       bool
	PlayCount     int
	Languages     string // spoken languages, pipe- or comma-separated as found
	DateAdded     string
	Locked        bool

	// Engine-owned bookkeeping, persisted in the trailer block.
	Source           string
	Edition          string
	OriginalFilename string
	Note             string

	IDs     map[string]any    // provider key -> string or int
	Ratings map[string]Rating // source key -> rating

	// Artwork URL buckets. The first entry of each is the primary one.
	Posters    []string
	Banners    []string
	ClearArt   []string
	ClearLogos []string
	DiscArt    []string
	Landscapes []string
	KeyArt     []string
	Logos      []string
	Fanart     []string

	Genres    []string
	Countries []string
	Studios   []string
	Tags      []string
	ShowLinks []string
	Trailers  []string

	Actors    []Person
	Directors []Person
	Credits   []Person
	Producers []Person

	Sets []SetCandidate

	// Unsupported holds serialized top-level fragments no extraction step
	// recognized. They are re-emitted verbatim on a non-clean write.
	Unsupported []string
}

// NewRecord returns an empty record with initialized maps.
func NewRecord() *Record {
	return &Record{
		Kind:    KindMovie,
		IDs:     make(map[string]any),
		Ratings: make(map[string]Rating),
	}
}

// Valid reports whether the record came from a usable document. A blank
// title means the document carries nothing worth keeping.
func (r *Record) Valid() bool {
	return strings.TrimSpace(r.Title) != ""
}

// SetRating stores a rating under its source key, dropping non-positive
// values and defaulting the scale to 10. A later rating for the same key
// overwrites an earlier one.
func (r *Record) SetRating(rt Rating) {
	if rt.Value <= 0 {
		return
	}
	if rt.Max <= 0 {
		rt.Max = 10
	}
	if rt.ID == "" {
		rt.ID = RatingDefault
	}
	r.Ratings[rt.ID] = rt
}

// SetID stores a provider identifier, coercing numeric-looking values to int.
func (r *Record) SetID(key, value string) {
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return
	}
	if n, ok := parseInt(value); ok {
		r.IDs[key] = n
		return
	}
	r.IDs[key] = value
}
