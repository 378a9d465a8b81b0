package nfo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/nfokit/pkg/xmltree"
)

// Reader parses sidecar documents into Records. It is stateless and safe for
// concurrent use; each Parse call owns its document tree exclusively.
type Reader struct {
	log *slog.Logger
}

// NewReader creates a reader. A nil logger falls back to slog.Default.
func NewReader(log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{log: log}
}

// Parse decodes a sidecar document. The root element selects the extraction
// pipeline: movie/collection documents get the full pipeline, recording
// documents (DVR dialect) a reduced one. It returns an error only when the
// input is not parseable XML or the root is unknown; malformed individual
// fields are logged and skipped, never fatal.
func (r *Reader) Parse(data []byte) (*Record, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}

	rec := NewRecord()
	var pipeline []readStep
	switch strings.ToLower(root.Tag) {
	case "movie":
		pipeline = movieSteps
	case "collection":
		rec.Kind = KindCollection
		pipeline = movieSteps
	case "recording":
		rec.Kind = KindRecording
		pipeline = recordingSteps
	default:
		return nil, fmt.Errorf("%w: <%s>", ErrUnknownRoot, root.Tag)
	}

	p := &parser{root: root, rec: rec, consumed: make(map[string]bool)}
	for _, step := range pipeline {
		r.runStep(p, step)
	}
	return p.rec, nil
}

// readStep is one independent field extraction. tags lists every tag name the
// step claims; claiming happens unconditionally, before extraction, so a
// malformed field still counts as recognized and is regenerated rather than
// passed through.
type readStep struct {
	name string
	tags []string
	fn   func(p *parser) error
}

type parser struct {
	root     *xmltree.Node
	rec      *Record
	consumed map[string]bool
}

// runStep executes one step in isolation. A failure, including a panic,
// never prevents the remaining steps from running.
func (r *Reader) runStep(p *parser, step readStep) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Warn("field extraction failed", "step", step.name, "error", v)
		}
	}()
	for _, tag := range step.tags {
		p.consumed[strings.ToLower(tag)] = true
	}
	if err := step.fn(p); err != nil {
		r.log.Warn("field extraction failed", "step", step.name, "error", err)
	}
}

// text returns the text of the unique direct child with the given tag, or "".
func (p *parser) text(tag string) string {
	if c := p.root.Child(tag); c != nil {
		return c.OwnText()
	}
	return ""
}

var movieSteps = []readStep{
	{"title", []string{"title"}, readTitle},
	{"originaltitle", []string{"originaltitle"}, readOriginalTitle},
	{"sorttitle", []string{"sorttitle"}, readSortTitle},
	{"year", []string{"year"}, readYear},
	{"rating", []string{"rating", "votes"}, readLegacyRating},
	{"userrating", []string{"userrating"}, readUserRating},
	{"ratings", []string{"ratings"}, readRatingsBlock},
	{"criticrating", []string{"criticrating"}, readCriticRating},
	{"top250", []string{"top250"}, readTop250},
	{"set", []string{"set", "sets"}, readSets},
	{"plot", []string{"plot"}, readPlot},
	{"outline", []string{"outline"}, readOutline},
	{"tagline", []string{"tagline"}, readTagline},
	{"runtime", []string{"runtime"}, readRuntime},
	{"thumb", []string{"thumb"}, readThumbs},
	{"fanart", []string{"fanart"}, readFanart},
	{"certification", []string{"mpaa", "certification"}, readCertification},
	{"ids", []string{"id", "imdb", "imdbid", "tmdbid", "uniqueid", "ids", "tmdbcollectionid"}, readIDs},
	{"country", []string{"country"}, readCountries},
	{"releasedate", []string{"premiered", "aired", "releasedate"}, readReleaseDate},
	{"watched", []string{"watched", "playcount"}, readWatched},
	{"genre", []string{"genre", "genres"}, readGenres},
	{"studio", []string{"studio"}, readStudios},
	{"credits", []string{"credits"}, readCredits},
	{"director", []string{"director"}, readDirectors},
	{"tag", []string{"tag"}, readTags},
	{"actor", []string{"actor"}, readActors},
	{"producer", []string{"producer"}, readProducers},
	{"trailer", []string{"trailer"}, readTrailers},
	{"languages", []string{"languages", "language"}, readLanguages},
	{"source", []string{"source"}, readSource},
	{"edition", []string{"edition"}, readEdition},
	{"original_filename", []string{"original_filename"}, readOriginalFilename},
	{"user_note", []string{"user_note"}, readNote},
	{"showlink", []string{"showlink"}, readShowLinks},
	{"dateadded", []string{"dateadded"}, readDateAdded},
	{"lockdata", []string{"lockdata"}, readLockData},
	// Must run last: everything not claimed above becomes a passthrough
	// fragment.
	{"unsupported", nil, readUnsupported},
}

// recordingSteps is the reduced pipeline for the DVR recording dialect, which
// only carries a handful of fields and uses <rating> for the certification.
var recordingSteps = []readStep{
	{"title", []string{"title"}, readTitle},
	{"plot", []string{"description"}, func(p *parser) error {
		p.rec.Plot = p.text("description")
		return nil
	}},
	{"certification", []string{"rating"}, func(p *parser) error {
		p.rec.Certification = p.text("rating")
		return nil
	}},
	{"genre", []string{"genre", "genres"}, readGenres},
	{"unsupported", nil, readUnsupported},
}

func readTitle(p *parser) error {
	p.rec.Title = p.text("title")
	return nil
}

func readOriginalTitle(p *parser) error {
	p.rec.OriginalTitle = p.text("originaltitle")
	return nil
}

func readSortTitle(p *parser) error {
	p.rec.SortTitle = p.text("sorttitle")
	return nil
}

func readYear(p *parser) error {
	v := p.text("year")
	if v == "" {
		return nil
	}
	n, ok := parseInt(v)
	if !ok {
		return fmt.Errorf("bad year %q", v)
	}
	p.rec.Year = n
	return nil
}

// readLegacyRating handles the flat rating/votes pair. The nested ratings
// block runs later and wins on key collision; see readRatingsBlock.
func readLegacyRating(p *parser) error {
	v := p.text("rating")
	if v == "" {
		return nil
	}
	f, ok := parseFloat(v)
	if !ok {
		return fmt.Errorf("bad rating %q", v)
	}
	votes, _ := parseInt(p.text("votes"))
	p.rec.SetRating(Rating{ID: RatingDefault, Value: f, Votes: votes, Max: 10})
	return nil
}

func readUserRating(p *parser) error {
	v := p.text("userrating")
	if v == "" {
		return nil
	}
	f, ok := parseFloat(v)
	if !ok {
		return fmt.Errorf("bad userrating %q", v)
	}
	p.rec.SetRating(Rating{ID: RatingUser, Value: f, Max: 10})
	return nil
}

// ratingAliases remaps rating source names some tools use to the provider
// keys the engine stores.
var ratingAliases = map[string]string{
	"themoviedb":     RatingTmdb,
	"rottentomatoes": RatingTomatoes,
	"metascore":      RatingMetacritic,
}

func readRatingsBlock(p *parser) error {
	block := p.root.Child("ratings")
	if block == nil {
		return nil
	}
	for _, node := range block.ChildList("rating") {
		key := strings.TrimSpace(node.Attr("name"))
		if alias, ok := ratingAliases[strings.ToLower(key)]; ok {
			key = alias
		}
		if key == "" {
			key = RatingDefault
		}

		raw := node.OwnText()
		if c := node.Child("value"); c != nil {
			raw = c.OwnText()
		}
		value, ok := parseFloat(raw)
		if !ok {
			continue
		}
		max, _ := parseInt(node.Attr("max"))
		votes := 0
		if c := node.Child("votes"); c != nil {
			votes, _ = parseInt(c.OwnText())
		}
		p.rec.SetRating(Rating{ID: key, Value: value, Votes: votes, Max: max})
	}
	return nil
}

// readCriticRating handles the 0-100 critic rating tag one dialect writes.
func readCriticRating(p *parser) error {
	v := p.text("criticrating")
	if v == "" {
		return nil
	}
	f, ok := parseFloat(v)
	if !ok {
		return fmt.Errorf("bad criticrating %q", v)
	}
	p.rec.SetRating(Rating{ID: RatingMetacritic, Value: f, Max: 100})
	return nil
}

func readTop250(p *parser) error {
	if n, ok := parseInt(p.text("top250")); ok {
		p.rec.Top250 = n
	}
	return nil
}

// readSets collects parent-set candidates from all three shapes in the wild:
// a <sets> wrapper of simple-name children, a <set> with nested name/overview
// children and an optional external-id attribute, and a bare <set> whose own
// text is the name.
func readSets(p *parser) error {
	if wrapper := p.root.Child("sets"); wrapper != nil {
		for _, node := range wrapper.ChildList("set") {
			name := node.OwnText()
			if c := node.Child("name"); c != nil {
				name = c.OwnText()
			}
			if name != "" {
				p.rec.Sets = append(p.rec.Sets, SetCandidate{Name: name})
			}
		}
	}

	for _, node := range p.root.ChildList("set") {
		cand := SetCandidate{}
		if id, ok := parseInt(node.Attr("tmdbcolid")); ok {
			cand.TmdbID = id
		}
		if c := node.Child("name"); c != nil {
			cand.Name = c.OwnText()
		} else if c := node.Child("setname"); c != nil {
			cand.Name = c.OwnText()
		} else {
			cand.Name = node.OwnText()
		}
		if c := node.Child("overview"); c != nil {
			cand.Overview = c.OwnText()
		} else if c := node.Child("setoverview"); c != nil {
			cand.Overview = c.OwnText()
		}
		if cand.Name != "" {
			p.rec.Sets = append(p.rec.Sets, cand)
		}
	}
	return nil
}

func readPlot(p *parser) error {
	p.rec.Plot = p.text("plot")
	return nil
}

func readOutline(p *parser) error {
	p.rec.Outline = p.text("outline")
	return nil
}

func readTagline(p *parser) error {
	p.rec.Tagline = p.text("tagline")
	return nil
}

func readRuntime(p *parser) error {
	v := p.text("runtime")
	if v == "" {
		return nil
	}
	// Some tools write "134 min".
	v = strings.TrimSuffix(strings.TrimSpace(v), " min")
	n, ok := parseInt(v)
	if !ok {
		return fmt.Errorf("bad runtime %q", v)
	}
	p.rec.Runtime = n
	return nil
}

// readThumbs routes <thumb> tags into artwork buckets by aspect attribute.
// A thumb without an aspect is a poster by convention.
func readThumbs(p *parser) error {
	for _, node := range p.root.ChildList("thumb") {
		u := node.OwnText()
		if !isHTTPURL(u) {
			continue
		}
		switch strings.ToLower(node.Attr("aspect")) {
		case "", "poster":
			p.rec.Posters = append(p.rec.Posters, u)
		case "banner":
			p.rec.Banners = append(p.rec.Banners, u)
		case "clearart":
			p.rec.ClearArt = append(p.rec.ClearArt, u)
		case "clearlogo":
			p.rec.ClearLogos = append(p.rec.ClearLogos, u)
		case "discart":
			p.rec.DiscArt = append(p.rec.DiscArt, u)
		case "landscape":
			p.rec.Landscapes = append(p.rec.Landscapes, u)
		case "keyart":
			p.rec.KeyArt = append(p.rec.KeyArt, u)
		case "logo":
			p.rec.Logos = append(p.rec.Logos, u)
		}
	}
	return nil
}

func readFanart(p *parser) error {
	node := p.root.Child("fanart")
	if node == nil {
		return nil
	}
	for _, thumb := range node.ChildList("thumb") {
		if u := thumb.OwnText(); isHTTPURL(u) {
			p.rec.Fanart = append(p.rec.Fanart, u)
		}
	}
	if u := node.OwnText(); isHTTPURL(u) {
		p.rec.Fanart = append(p.rec.Fanart, u)
	}
	return nil
}

func readCertification(p *parser) error {
	cert := p.text("mpaa")
	if cert == "" {
		cert = p.text("certification")
	}
	p.rec.Certification = cert
	return nil
}

// readIDs merges every identifier shape: typed <uniqueid> (preferred,
// iterated for all occurrences), provider-named tags, the legacy
// entry/key/value block, the new-style block of named children, and a bare
// <id> accepted only when it matches the IMDB pattern.
func readIDs(p *parser) error {
	for _, node := range p.root.ChildList("uniqueid") {
		key := strings.TrimSpace(node.Attr("type"))
		if key == "" {
			key = "unknown"
		}
		p.rec.SetID(key, node.OwnText())
	}

	if v := p.text("id"); isImdbID(v) {
		p.rec.SetID(IDImdb, v)
	}
	for _, tag := range []string{"imdb", "imdbid"} {
		if v := p.text(tag); isImdbID(v) {
			p.rec.SetID(IDImdb, v)
		}
	}
	if v := p.text("tmdbid"); v != "" {
		p.rec.SetID(IDTmdb, v)
	}
	if v := p.text("tmdbcollectionid"); v != "" {
		p.rec.SetID(IDTmdbSet, v)
	}

	if block := p.root.Child("ids"); block != nil {
		for _, node := range block.Children {
			if node.IsComment() {
				continue
			}
			if strings.EqualFold(node.Tag, "entry") {
				key, value := "", ""
				if c := node.Child("key"); c != nil {
					key = c.OwnText()
				}
				if c := node.Child("value"); c != nil {
					value = c.OwnText()
				}
				p.rec.SetID(key, value)
				continue
			}
			p.rec.SetID(node.Tag, node.OwnText())
		}
	}
	return nil
}

// readSplittable implements the single-vs-multi tag convention: exactly one
// tag instance is split on delimiters (legacy), several instances are taken
// verbatim one value each (modern).
func readSplittable(p *parser, tag string) []string {
	nodes := p.root.ChildList(tag)
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return splitMultiValue(nodes[0].OwnText())
	default:
		var out []string
		for _, n := range nodes {
			if v := n.OwnText(); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
}

func readCountries(p *parser) error {
	p.rec.Countries = readSplittable(p, "country")
	return nil
}

func readReleaseDate(p *parser) error {
	var badDate error
	for _, tag := range []string{"premiered", "aired", "releasedate"} {
		v := p.text(tag)
		if v == "" {
			continue
		}
		date, ok := parseDate(v)
		if !ok {
			// Keep trying the lower-priority tags; a bad value in one
			// must not discard a good value in the next.
			if badDate == nil {
				badDate = fmt.Errorf("bad date %q in <%s>", v, tag)
			}
			continue
		}
		p.rec.ReleaseDate = date
		if p.rec.Year == 0 {
			if y, ok := parseInt(date[:4]); ok {
				p.rec.Year = y
			}
		}
		return nil
	}
	return badDate
}

func readWatched(p *parser) error {
	p.rec.Watched = strings.EqualFold(p.text("watched"), "true")
	if n, ok := parseInt(p.text("playcount")); ok {
		p.rec.PlayCount = n
		if n > 0 {
			p.rec.Watched = true
		}
	}
	return nil
}

func readGenres(p *parser) error {
	nodes := p.root.ChildList("genre")
	if wrapper := p.root.Child("genres"); wrapper != nil {
		nodes = append(nodes, wrapper.ChildList("genre")...)
	}
	if len(nodes) == 1 {
		p.rec.Genres = splitMultiValue(nodes[0].OwnText())
		return nil
	}
	for _, n := range nodes {
		if v := n.OwnText(); v != "" {
			p.rec.Genres = append(p.rec.Genres, v)
		}
	}
	return nil
}

func readStudios(p *parser) error {
	p.rec.Studios = readSplittable(p, "studio")
	return nil
}

// readPersonTags reads credits/director style tags: plain text, possibly
// delimiter-joined. Identifier attributes are attached only when one tag
// yields exactly one person; spreading a single tag's ids over several split
// names would be ambiguous.
func readPersonTags(p *parser, tag string) []Person {
	var out []Person
	for _, node := range p.root.ChildList(tag) {
		names := splitMultiValue(node.OwnText())
		if len(names) == 1 {
			person := Person{Name: names[0], ImdbID: node.Attr("imdbid"), TvdbID: node.Attr("tvdbid")}
			if id, ok := parseInt(node.Attr("tmdbid")); ok {
				person.TmdbID = id
			}
			out = append(out, person)
			continue
		}
		for _, name := range names {
			out = append(out, Person{Name: name})
		}
	}
	return out
}

func readCredits(p *parser) error {
	p.rec.Credits = readPersonTags(p, "credits")
	return nil
}

func readDirectors(p *parser) error {
	p.rec.Directors = readPersonTags(p, "director")
	return nil
}

func readTags(p *parser) error {
	for _, node := range p.root.ChildList("tag") {
		if v := node.OwnText(); v != "" {
			p.rec.Tags = append(p.rec.Tags, v)
		}
	}
	return nil
}

func readPersonBlocks(p *parser, tag string) []Person {
	var out []Person
	for _, node := range p.root.ChildList(tag) {
		person := Person{}
		if c := node.Child("name"); c != nil {
			person.Name = c.OwnText()
		}
		if c := node.Child("role"); c != nil {
			person.Role = c.OwnText()
		}
		if c := node.Child("thumb"); c != nil {
			person.Thumb = c.OwnText()
		}
		if c := node.Child("profile"); c != nil {
			person.Profile = c.OwnText()
		}
		if c := node.Child("tmdbid"); c != nil {
			person.TmdbID, _ = parseInt(c.OwnText())
		}
		if c := node.Child("imdbid"); c != nil {
			person.ImdbID = c.OwnText()
		}
		if c := node.Child("tvdbid"); c != nil {
			person.TvdbID = c.OwnText()
		}
		if person.Name != "" {
			out = append(out, person)
		}
	}
	return out
}

func readActors(p *parser) error {
	p.rec.Actors = readPersonBlocks(p, "actor")
	return nil
}

func readProducers(p *parser) error {
	p.rec.Producers = readPersonBlocks(p, "producer")
	return nil
}

func readTrailers(p *parser) error {
	for _, node := range p.root.ChildList("trailer") {
		if u, ok := normalizeTrailer(node.OwnText()); ok {
			p.rec.Trailers = append(p.rec.Trailers, u)
		}
	}
	return nil
}

func readLanguages(p *parser) error {
	v := p.text("languages")
	if v == "" {
		v = p.text("language")
	}
	if v == "" {
		return nil
	}
	parts := splitMultiValue(v)
	for i, part := range parts {
		parts[i] = normalizeLanguage(part)
	}
	p.rec.Languages = strings.Join(parts, ", ")
	return nil
}

func readSource(p *parser) error {
	p.rec.Source = p.text("source")
	return nil
}

func readEdition(p *parser) error {
	p.rec.Edition = p.text("edition")
	return nil
}

func readOriginalFilename(p *parser) error {
	p.rec.OriginalFilename = p.text("original_filename")
	return nil
}

func readNote(p *parser) error {
	p.rec.Note = p.text("user_note")
	return nil
}

func readShowLinks(p *parser) error {
	for _, node := range p.root.ChildList("showlink") {
		if v := node.OwnText(); v != "" {
			p.rec.ShowLinks = append(p.rec.ShowLinks, v)
		}
	}
	return nil
}

func readDateAdded(p *parser) error {
	p.rec.DateAdded = p.text("dateadded")
	return nil
}

func readLockData(p *parser) error {
	p.rec.Locked = strings.EqualFold(p.text("lockdata"), "true")
	return nil
}

// readUnsupported retains every direct child of the root whose tag no step
// claimed. It must run after every other step.
func readUnsupported(p *parser) error {
	for _, node := range p.root.Children {
		if node.IsComment() {
			continue
		}
		if p.consumed[strings.ToLower(node.Tag)] {
			continue
		}
		p.rec.Unsupported = append(p.rec.Unsupported, xmltree.SerializeFragment(node))
	}
	return nil
}
