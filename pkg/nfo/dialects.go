package nfo

import (
	"fmt"
	"strings"
)

// Dialect selects one target application's tag vocabulary and structural
// conventions. The Kodi dialect is the common base; the others override only
// the steps where their target application disagrees.
type Dialect string

const (
	DialectKodi        Dialect = "kodi"
	DialectXbmc        Dialect = "xbmc"
	DialectMediaPortal Dialect = "mediaportal"
	DialectEmby        Dialect = "emby"
	DialectJellyfin    Dialect = "jellyfin"
)

// Dialects lists every writable dialect.
var Dialects = []Dialect{DialectKodi, DialectXbmc, DialectMediaPortal, DialectEmby, DialectJellyfin}

// ParseDialect validates a dialect name from configuration.
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dialects {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dialect %q", s)
}

// stepsFor builds the step table for a dialect: the default table with the
// dialect's divergent entries replaced. A nil entry suppresses the step.
func stepsFor(d Dialect) (map[string]writeStep, error) {
	steps := defaultSteps()
	switch d {
	case DialectKodi, "":
		// Base behavior.

	case DialectXbmc:
		// The older player writes a duplicate bare id tag ahead of the
		// typed identifier block.
		steps["ids"] = func(b *builder) {
			if def := DefaultID(b.rec.IDs); def != "" {
				b.root.AppendElement("id", fmt.Sprintf("%v", b.rec.IDs[def]))
			}
			writeTypedIDs(b)
		}

	case DialectMediaPortal:
		// The legacy plugin wants grouped genres and sets, flat
		// provider-named id tags, and delimiter-joined multi-value
		// fields instead of repeated tags.
		steps["genres"] = func(b *builder) {
			if len(b.rec.Genres) == 0 {
				return
			}
			wrapper := b.root.AppendElement("genres", "")
			for _, g := range b.rec.Genres {
				wrapper.AppendElement("genre", g)
			}
		}
		steps["set"] = func(b *builder) {
			if len(b.rec.Sets) == 0 {
				return
			}
			wrapper := b.root.AppendElement("sets", "")
			wrapper.AppendElement("set", b.rec.Sets[0].Name)
		}
		steps["ids"] = writeFlatIDs
		steps["country"] = func(b *builder) {
			appendJoined(b, "country", b.rec.Countries)
		}
		steps["studios"] = func(b *builder) {
			studios := b.rec.Studios
			if b.opts.SingleStudio && len(studios) > 1 {
				studios = studios[:1]
			}
			appendJoined(b, "studio", studios)
		}
		steps["credits"] = func(b *builder) {
			appendJoined(b, "credits", personNames(b.rec.Credits))
		}
		steps["directors"] = func(b *builder) {
			appendJoined(b, "director", personNames(b.rec.Directors))
		}

	case DialectEmby:
		// Emby reads the certification tag and chokes on a second
		// MPAA-style representation of the same value.
		steps["mpaa"] = nil

	case DialectJellyfin:
		// Artwork URLs written into the sidecar override Jellyfin's own
		// image management, so this dialect must never emit them.
		steps["artwork"] = nil

	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
	return steps, nil
}

// writeFlatIDs emits provider-named id tags instead of the typed block.
func writeFlatIDs(b *builder) {
	if v, ok := b.rec.IDs[IDImdb]; ok {
		b.root.AppendElement("imdbid", fmt.Sprintf("%v", v))
	}
	if v, ok := b.rec.IDs[IDTmdb]; ok {
		b.root.AppendElement("tmdbId", fmt.Sprintf("%v", v))
	}
	if v, ok := b.rec.IDs[IDTmdbSet]; ok {
		b.root.AppendElement("tmdbCollectionId", fmt.Sprintf("%v", v))
	}
}

// appendJoined writes multiple values as one delimiter-joined tag, the
// legacy single-tag convention.
func appendJoined(b *builder, tag string, values []string) {
	if len(values) == 0 {
		return
	}
	b.root.AppendElement(tag, strings.Join(values, ", "))
}

func personNames(people []Person) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return names
}
