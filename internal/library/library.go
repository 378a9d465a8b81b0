// Package library manages the movie collection: domain entities, the SQLite
// store behind them, and the mapping to and from the flat sidecar
// interchange record.
package library

import (
	"time"

	"github.com/vmunix/nfokit/pkg/nfo"
)

// Artwork bucket keys used in the Movie artwork map.
const (
	ArtPoster    = "poster"
	ArtBanner    = "banner"
	ArtClearArt  = "clearart"
	ArtClearLogo = "clearlogo"
	ArtDiscArt   = "discart"
	ArtLandscape = "landscape"
	ArtKeyArt    = "keyart"
	ArtLogo      = "logo"
	ArtFanart    = "fanart"
)

// Movie is the long-lived domain entity. Sidecar records are transient
// projections of it; the movie row is the source of truth between syncs.
type Movie struct {
	ID            int64
	Title         string
	OriginalTitle string
	SortTitle     string
	Year          int
	Plot          string
	Outline       string
	Tagline       string
	RuntimeMin    int
	Certification string
	ReleaseDate   string // yyyy-mm-dd
	Top250        int
	Watched       bool
	PlayCount     int
	Languages     string
	DateAdded     string
	Locked        bool

	Source           string
	Edition          string
	OriginalFilename string
	Note             string

	// MediaFile is the absolute path of the movie's video file. Sidecar
	// target names derive from it.
	MediaFile string

	SetName     string
	SetOverview string
	SetTmdbID   int

	IDs     map[string]any
	Ratings map[string]nfo.Rating

	// Artwork maps bucket key to URLs; the first URL per bucket is the
	// primary one.
	Artwork map[string][]string

	Genres    []string
	Countries []string
	Studios   []string
	Tags      []string
	ShowLinks []string
	Trailers  []string

	Actors    []nfo.Person
	Directors []nfo.Person
	Credits   []nfo.Person
	Producers []nfo.Person

	AddedAt   time.Time
	UpdatedAt time.Time
}

// MovieSet is a movie collection entity, written as a collection-rooted
// sidecar of its own by some consumers.
type MovieSet struct {
	ID       int64
	Name     string
	Overview string
	TmdbID   int

	AddedAt   time.Time
	UpdatedAt time.Time
}

// Sidecar is one tracked sidecar file written for a movie.
type Sidecar struct {
	ID        int64
	MovieID   int64
	Path      string
	Dialect   string
	WrittenAt time.Time
}
