package library

import (
	"maps"
	"slices"

	"github.com/vmunix/nfokit/pkg/nfo"
)

// RecordFromMovie projects a movie into the flat interchange record used by
// the sidecar writer. The record shares no mutable state with the movie.
func RecordFromMovie(m *Movie) *nfo.Record {
	r := nfo.NewRecord()
	r.Title = m.Title
	r.OriginalTitle = m.OriginalTitle
	r.SortTitle = m.SortTitle
	r.Year = m.Year
	r.Plot = m.Plot
	r.Outline = m.Outline
	r.Tagline = m.Tagline
	r.Runtime = m.RuntimeMin
	r.Certification = m.Certification
	r.ReleaseDate = m.ReleaseDate
	r.Top250 = m.Top250
	r.Watched = m.Watched
	r.PlayCount = m.PlayCount
	r.Languages = m.Languages
	r.DateAdded = m.DateAdded
	r.Locked = m.Locked
	r.Source = m.Source
	r.Edition = m.Edition
	r.OriginalFilename = m.OriginalFilename
	r.Note = m.Note

	maps.Copy(r.IDs, m.IDs)
	maps.Copy(r.Ratings, m.Ratings)

	r.Posters = slices.Clone(m.Artwork[ArtPoster])
	r.Banners = slices.Clone(m.Artwork[ArtBanner])
	r.ClearArt = slices.Clone(m.Artwork[ArtClearArt])
	r.ClearLogos = slices.Clone(m.Artwork[ArtClearLogo])
	r.DiscArt = slices.Clone(m.Artwork[ArtDiscArt])
	r.Landscapes = slices.Clone(m.Artwork[ArtLandscape])
	r.KeyArt = slices.Clone(m.Artwork[ArtKeyArt])
	r.Logos = slices.Clone(m.Artwork[ArtLogo])
	r.Fanart = slices.Clone(m.Artwork[ArtFanart])

	r.Genres = slices.Clone(m.Genres)
	r.Countries = slices.Clone(m.Countries)
	r.Studios = slices.Clone(m.Studios)
	r.Tags = slices.Clone(m.Tags)
	r.ShowLinks = slices.Clone(m.ShowLinks)
	r.Trailers = slices.Clone(m.Trailers)

	r.Actors = slices.Clone(m.Actors)
	r.Directors = slices.Clone(m.Directors)
	r.Credits = slices.Clone(m.Credits)
	r.Producers = slices.Clone(m.Producers)

	if m.SetName != "" {
		r.Sets = []nfo.SetCandidate{{Name: m.SetName, Overview: m.SetOverview, TmdbID: m.SetTmdbID}}
	}
	if m.SetTmdbID > 0 {
		r.IDs[nfo.IDTmdbSet] = m.SetTmdbID
	}
	return r
}

// ApplyRecord overwrites the movie's mapped fields from a parsed record.
// Unmapped movie fields (ID, MediaFile, timestamps) are left alone.
func ApplyRecord(m *Movie, r *nfo.Record) {
	m.Title = r.Title
	m.OriginalTitle = r.OriginalTitle
	m.SortTitle = r.SortTitle
	m.Year = r.Year
	m.Plot = r.Plot
	m.Outline = r.Outline
	m.Tagline = r.Tagline
	m.RuntimeMin = r.Runtime
	m.Certification = r.Certification
	m.ReleaseDate = r.ReleaseDate
	m.Top250 = r.Top250
	m.Watched = r.Watched
	m.PlayCount = r.PlayCount
	m.Languages = r.Languages
	m.DateAdded = r.DateAdded
	m.Locked = r.Locked
	m.Source = r.Source
	m.Edition = r.Edition
	m.OriginalFilename = r.OriginalFilename
	m.Note = r.Note

	m.IDs = maps.Clone(r.IDs)
	m.Ratings = maps.Clone(r.Ratings)

	m.Artwork = make(map[string][]string)
	setBucket(m.Artwork, ArtPoster, r.Posters)
	setBucket(m.Artwork, ArtBanner, r.Banners)
	setBucket(m.Artwork, ArtClearArt, r.ClearArt)
	setBucket(m.Artwork, ArtClearLogo, r.ClearLogos)
	setBucket(m.Artwork, ArtDiscArt, r.DiscArt)
	setBucket(m.Artwork, ArtLandscape, r.Landscapes)
	setBucket(m.Artwork, ArtKeyArt, r.KeyArt)
	setBucket(m.Artwork, ArtLogo, r.Logos)
	setBucket(m.Artwork, ArtFanart, r.Fanart)

	m.Genres = slices.Clone(r.Genres)
	m.Countries = slices.Clone(r.Countries)
	m.Studios = slices.Clone(r.Studios)
	m.Tags = slices.Clone(r.Tags)
	m.ShowLinks = slices.Clone(r.ShowLinks)
	m.Trailers = slices.Clone(r.Trailers)

	m.Actors = slices.Clone(r.Actors)
	m.Directors = slices.Clone(r.Directors)
	m.Credits = slices.Clone(r.Credits)
	m.Producers = slices.Clone(r.Producers)

	if set := PickSet(r); set != nil {
		m.SetName = set.Name
		m.SetOverview = set.Overview
		m.SetTmdbID = set.TmdbID
		if m.SetTmdbID == 0 {
			if id, ok := r.IDs[nfo.IDTmdbSet].(int); ok {
				m.SetTmdbID = id
			}
		}
	} else {
		m.SetName = ""
		m.SetOverview = ""
		m.SetTmdbID = 0
	}
}

// PickSet chooses the movie set to keep from a record's candidates. A
// candidate carrying a tmdb collection id beats the document order;
// candidates are never merged.
func PickSet(r *nfo.Record) *nfo.SetCandidate {
	if len(r.Sets) == 0 {
		return nil
	}
	for i := range r.Sets {
		if r.Sets[i].TmdbID > 0 {
			return &r.Sets[i]
		}
	}
	return &r.Sets[0]
}

// SetFromRecord builds the collection entity out of a collection-rooted
// sidecar record. Returns nil when the record names no collection.
func SetFromRecord(r *nfo.Record) *MovieSet {
	if r.Title == "" {
		return nil
	}
	s := &MovieSet{Name: r.Title, Overview: r.Plot}
	if id, ok := r.IDs[nfo.IDTmdbSet].(int); ok {
		s.TmdbID = id
	} else if id, ok := r.IDs[nfo.IDTmdb].(int); ok {
		s.TmdbID = id
	}
	return s
}

func setBucket(art map[string][]string, key string, urls []string) {
	if len(urls) > 0 {
		art[key] = slices.Clone(urls)
	}
}
