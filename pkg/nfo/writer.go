package nfo

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/vmunix/nfokit/pkg/xmltree"
)

// Options control a writer's output shape. They come from the application
// settings and must be treated as immutable for the duration of a batch.
type Options struct {
	Dialect Dialect

	// Clean discards passthrough fragments, producing a minimal document
	// from the record alone. The engine trailer block is kept regardless.
	Clean bool

	// RatingOrder is the preference order for filling the legacy flat
	// rating tag. Empty falls back to defaultRatingOrder.
	RatingOrder []string

	// SingleStudio limits output to the first studio, for consumers that
	// show only one.
	SingleStudio bool

	// WriteLockData emits the lockdata flag, which tells some consumers
	// not to overwrite the file's metadata from their own scrapers.
	WriteLockData bool
}

var defaultRatingOrder = []string{RatingImdb, RatingTmdb, RatingDefault}

// Writer renders Records as sidecar documents. A Writer is built once per
// dialect and is safe for concurrent use; each Write call owns its output
// tree exclusively.
type Writer struct {
	opts  Options
	steps map[string]writeStep
	log   *slog.Logger
}

// NewWriter creates a writer for the dialect in opts. A nil logger falls
// back to slog.Default.
func NewWriter(opts Options, log *slog.Logger) (*Writer, error) {
	steps, err := stepsFor(opts.Dialect)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Writer{opts: opts, steps: steps, log: log}, nil
}

// builder carries the output tree through the append steps. Steps receive it
// explicitly; there is no hidden cross-step state.
type builder struct {
	root *xmltree.Node
	rec  *Record
	opts Options
}

// writeStep appends one field's representation to the output tree.
type writeStep func(b *builder)

// stepOrder is the fixed sequence every dialect follows. Dialects override
// individual entries of the step table, never the order.
var stepOrder = []string{
	"title",
	"originaltitle",
	"sorttitle",
	"year",
	"rating",
	"userrating",
	"votes",
	"set",
	"plot",
	"outline",
	"tagline",
	"runtime",
	"artwork",
	"mpaa",
	"certification",
	"ids",
	"country",
	"releasedate",
	"watched",
	"genres",
	"studios",
	"credits",
	"directors",
	"tags",
	"actors",
	"producers",
	"trailer",
	"languages",
	"showlinks",
	"dateadded",
	"lockdata",
}

// Write renders the record as a complete document: the dialect's append
// steps in fixed order, then the retained passthrough fragments (unless a
// clean rewrite was requested), then the engine trailer block.
func (w *Writer) Write(rec *Record) ([]byte, error) {
	// Recordings are normalized to the movie shape on rewrite; collections
	// keep their own root so the document stays a collection.
	rootTag := "movie"
	if rec.Kind == KindCollection {
		rootTag = "collection"
	}
	b := &builder{root: xmltree.NewElement(rootTag, ""), rec: rec, opts: w.opts}

	for _, name := range stepOrder {
		if step := w.steps[name]; step != nil {
			step(b)
		}
	}

	if !w.opts.Clean {
		for _, fragment := range rec.Unsupported {
			node, err := xmltree.ParseFragment(fragment)
			if err != nil {
				// A fragment that no longer parses is dropped; it must
				// never abort the whole write.
				w.log.Warn("dropping unparseable passthrough fragment", "fragment", fragment, "error", err)
				continue
			}
			b.root.Append(node)
		}
	}

	w.appendTrailer(b)

	return xmltree.Serialize(b.root), nil
}

// appendTrailer emits the engine-owned bookkeeping block. It survives even a
// clean rewrite, marked with a distinguishing comment.
func (w *Writer) appendTrailer(b *builder) {
	b.root.Append(xmltree.NewComment("managed by nfokit"))
	if b.rec.Source != "" {
		b.root.AppendElement("source", b.rec.Source)
	}
	if b.rec.Edition != "" {
		b.root.AppendElement("edition", b.rec.Edition)
	}
	if b.rec.OriginalFilename != "" {
		b.root.AppendElement("original_filename", b.rec.OriginalFilename)
	}
	if b.rec.Note != "" {
		b.root.AppendElement("user_note", b.rec.Note)
	}
}

// DefaultID resolves which identifier is flagged default on write: the
// primary movie database key first, then the secondary, then the first key
// in sorted order so the choice is deterministic. Exactly one identifier is
// marked default for any non-empty map.
func DefaultID(ids map[string]any) string {
	if len(ids) == 0 {
		return ""
	}
	if _, ok := ids[IDTmdb]; ok {
		return IDTmdb
	}
	if _, ok := ids[IDImdb]; ok {
		return IDImdb
	}
	keys := sortedKeys(ids)
	return keys[0]
}

func sortedKeys(ids map[string]any) []string {
	keys := make([]string, 0, len(ids))
	for k := range ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatRating renders a rating normalized to the 0-10 scale with exactly
// one decimal digit. A non-positive scale leaves the raw value untouched.
func formatRating(rt Rating) string {
	v := rt.Value
	if rt.Max > 0 {
		v = v * 10 / float64(rt.Max)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// pickRating chooses the rating that fills the legacy flat tag, by the
// configured source order, falling back to the first key in sorted order.
func pickRating(rec *Record, order []string) (Rating, bool) {
	if len(order) == 0 {
		order = defaultRatingOrder
	}
	for _, key := range order {
		if rt, ok := rec.Ratings[key]; ok {
			return rt, true
		}
	}
	var keys []string
	for k := range rec.Ratings {
		if k != RatingUser {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return Rating{}, false
	}
	sort.Strings(keys)
	return rec.Ratings[keys[0]], true
}

// defaultSteps returns the common (Kodi-compatible) step table. Dialect
// constructors copy it and replace only the entries their target application
// disagrees with.
func defaultSteps() map[string]writeStep {
	return map[string]writeStep{
		"title": func(b *builder) {
			b.root.AppendElement("title", b.rec.Title)
		},
		"originaltitle": func(b *builder) {
			appendNonEmpty(b, "originaltitle", b.rec.OriginalTitle)
		},
		"sorttitle": func(b *builder) {
			appendNonEmpty(b, "sorttitle", b.rec.SortTitle)
		},
		"year": func(b *builder) {
			if b.rec.Year > 0 {
				b.root.AppendElement("year", strconv.Itoa(b.rec.Year))
			}
		},
		"rating": func(b *builder) {
			if rt, ok := pickRating(b.rec, b.opts.RatingOrder); ok {
				b.root.AppendElement("rating", formatRating(rt))
			}
		},
		"userrating": func(b *builder) {
			if rt, ok := b.rec.Ratings[RatingUser]; ok {
				b.root.AppendElement("userrating", formatRating(rt))
			}
		},
		"votes": func(b *builder) {
			if rt, ok := pickRating(b.rec, b.opts.RatingOrder); ok && rt.Votes > 0 {
				b.root.AppendElement("votes", strconv.Itoa(rt.Votes))
			}
		},
		"set":           writeSetNested,
		"plot":          func(b *builder) { appendNonEmpty(b, "plot", b.rec.Plot) },
		"outline":       func(b *builder) { appendNonEmpty(b, "outline", b.rec.Outline) },
		"tagline":       func(b *builder) { appendNonEmpty(b, "tagline", b.rec.Tagline) },
		"runtime": func(b *builder) {
			if b.rec.Runtime > 0 {
				b.root.AppendElement("runtime", strconv.Itoa(b.rec.Runtime))
			}
		},
		"artwork": writeArtwork,
		"mpaa":    func(b *builder) { appendNonEmpty(b, "mpaa", b.rec.Certification) },
		"certification": func(b *builder) {
			appendNonEmpty(b, "certification", b.rec.Certification)
		},
		"ids": writeTypedIDs,
		"country": func(b *builder) {
			for _, c := range b.rec.Countries {
				b.root.AppendElement("country", c)
			}
		},
		"releasedate": func(b *builder) {
			appendNonEmpty(b, "premiered", b.rec.ReleaseDate)
		},
		"watched": func(b *builder) {
			b.root.AppendElement("watched", strconv.FormatBool(b.rec.Watched))
			if b.rec.PlayCount > 0 {
				b.root.AppendElement("playcount", strconv.Itoa(b.rec.PlayCount))
			}
		},
		"genres": func(b *builder) {
			for _, g := range b.rec.Genres {
				b.root.AppendElement("genre", g)
			}
		},
		"studios": func(b *builder) {
			for _, s := range b.rec.Studios {
				b.root.AppendElement("studio", s)
				if b.opts.SingleStudio {
					break
				}
			}
		},
		"credits":   func(b *builder) { writePersonTags(b, "credits", b.rec.Credits) },
		"directors": func(b *builder) { writePersonTags(b, "director", b.rec.Directors) },
		"tags": func(b *builder) {
			for _, t := range b.rec.Tags {
				b.root.AppendElement("tag", t)
			}
		},
		"actors":    func(b *builder) { writePersonBlocks(b, "actor", b.rec.Actors) },
		"producers": func(b *builder) { writePersonBlocks(b, "producer", b.rec.Producers) },
		"trailer": func(b *builder) {
			if len(b.rec.Trailers) > 0 {
				b.root.AppendElement("trailer", b.rec.Trailers[0])
			}
		},
		"languages": func(b *builder) {
			appendNonEmpty(b, "languages", b.rec.Languages)
		},
		"showlinks": func(b *builder) {
			for _, s := range b.rec.ShowLinks {
				b.root.AppendElement("showlink", s)
			}
		},
		"dateadded": func(b *builder) {
			appendNonEmpty(b, "dateadded", b.rec.DateAdded)
		},
		"lockdata": func(b *builder) {
			if b.opts.WriteLockData {
				b.root.AppendElement("lockdata", strconv.FormatBool(b.rec.Locked))
			}
		},
	}
}

func appendNonEmpty(b *builder, tag, value string) {
	if value != "" {
		b.root.AppendElement(tag, value)
	}
}

// writeSetNested emits the parent set in the nested name/overview shape with
// the external-id attribute. Only the first candidate is written; the
// mapping layer has already picked the best one.
func writeSetNested(b *builder) {
	if len(b.rec.Sets) == 0 {
		return
	}
	cand := b.rec.Sets[0]
	node := b.root.AppendElement("set", "")
	if cand.TmdbID > 0 {
		node.SetAttr("tmdbcolid", strconv.Itoa(cand.TmdbID))
	}
	node.AppendElement("name", cand.Name)
	if cand.Overview != "" {
		node.AppendElement("overview", cand.Overview)
	}
}

func writeArtwork(b *builder) {
	appendThumbs(b, "poster", b.rec.Posters)
	appendThumbs(b, "banner", b.rec.Banners)
	appendThumbs(b, "clearart", b.rec.ClearArt)
	appendThumbs(b, "clearlogo", b.rec.ClearLogos)
	appendThumbs(b, "discart", b.rec.DiscArt)
	appendThumbs(b, "landscape", b.rec.Landscapes)
	appendThumbs(b, "keyart", b.rec.KeyArt)
	appendThumbs(b, "logo", b.rec.Logos)
	if len(b.rec.Fanart) > 0 {
		fanart := b.root.AppendElement("fanart", "")
		for _, u := range b.rec.Fanart {
			fanart.AppendElement("thumb", u)
		}
	}
}

func appendThumbs(b *builder, aspect string, urls []string) {
	for _, u := range urls {
		thumb := b.root.AppendElement("thumb", u)
		thumb.SetAttr("aspect", aspect)
	}
}

// writeTypedIDs emits the typed uniqueid block, keys in sorted order, with
// exactly one entry flagged default.
func writeTypedIDs(b *builder) {
	def := DefaultID(b.rec.IDs)
	for _, key := range sortedKeys(b.rec.IDs) {
		node := b.root.AppendElement("uniqueid", fmt.Sprintf("%v", b.rec.IDs[key]))
		node.SetAttr("type", key)
		if key == def {
			node.SetAttr("default", "true")
		}
	}
}

func writePersonTags(b *builder, tag string, people []Person) {
	for _, person := range people {
		node := b.root.AppendElement(tag, person.Name)
		if person.TmdbID > 0 {
			node.SetAttr("tmdbid", strconv.Itoa(person.TmdbID))
		}
		if person.ImdbID != "" {
			node.SetAttr("imdbid", person.ImdbID)
		}
		if person.TvdbID != "" {
			node.SetAttr("tvdbid", person.TvdbID)
		}
	}
}

func writePersonBlocks(b *builder, tag string, people []Person) {
	for _, person := range people {
		node := b.root.AppendElement(tag, "")
		node.AppendElement("name", person.Name)
		if person.Role != "" {
			node.AppendElement("role", person.Role)
		}
		if person.Thumb != "" {
			node.AppendElement("thumb", person.Thumb)
		}
		if person.Profile != "" {
			node.AppendElement("profile", person.Profile)
		}
		if person.TmdbID > 0 {
			node.AppendElement("tmdbid", strconv.Itoa(person.TmdbID))
		}
		if person.ImdbID != "" {
			node.AppendElement("imdbid", person.ImdbID)
		}
		if person.TvdbID != "" {
			node.AppendElement("tvdbid", person.TvdbID)
		}
	}
}
