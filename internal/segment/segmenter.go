package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/catalog"
	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Segmenter splits normalized manual text into (title, category, body)
// segments. The manual is laid out in category zones (Adult, Pediatric,
// Procedures, Operations, Formulary); each zone is scanned only with its own
// category's titles, so a drug name mentioned inside a protocol body never
// splits that body, and a title shared across categories takes the category
// of the zone it appears in. Longest-title-first precedence within a scan is
// load-bearing: "General Adult Trauma Assessment" has to win over its
// substring "General Adult Assessment" at the same position.
type Segmenter struct {
	cat       *catalog.Catalog
	opts      model.SegmenterConfig
	zoneRes   map[model.Category]*regexp.Regexp
	unzonedRe *regexp.Regexp
}

// Report summarizes what a segmentation pass saw, for the post-run summary.
// Misses are warnings, never errors.
type Report struct {
	Matches       int      // raw title occurrences located
	TOCRejected   int      // segments dropped as table-of-contents noise
	Uncategorized int      // segments from extra (non-catalog) titles
	MissingTitles []string // catalog titles never seen in the source
}

// Zone headers tried before the category's first declared title when
// anchoring that category's zone. The protocol sections open with their
// first protocol; these sections open with a banner line instead.
var zoneHeaders = map[model.Category]string{
	model.CategoryOperations: "OPERATIONS PROTOCOLS",
	model.CategoryProcedures: "PROCEDURES PROTOCOLS",
	model.CategoryFormulary:  "FORMULARY",
}

// appendixHeader closes the last zone when present
const appendixHeader = "APPENDICES"

// New builds a segmenter over the given catalog. Extra titles from the
// options are matched in every scan and yield Uncategorized segments.
func New(cat *catalog.Catalog, opts model.SegmenterConfig) *Segmenter {
	if opts.MinBody <= 0 {
		opts.MinBody = 100
	}
	if opts.FrontMatterLen <= 0 {
		opts.FrontMatterLen = 5000
	}

	extras := make([]string, 0, len(opts.ExtraTitles))
	for _, t := range opts.ExtraTitles {
		if strings.TrimSpace(t) != "" {
			extras = append(extras, t)
		}
	}

	zoneRes := make(map[model.Category]*regexp.Regexp)
	for _, zc := range model.Categories() {
		if zc == model.CategoryDefinitions {
			continue
		}
		zoneRes[zc] = compilePattern(append(cat.TitlesLongestFirstIn(zc), extras...))
	}

	// The zone-less fallback scan matches every title except the formulary's:
	// drug names occur all over protocol bodies and only open a section of
	// their own inside the formulary zone.
	var general []string
	seen := make(map[string]bool, cat.Len())
	for _, e := range cat.Entries() {
		if e.Category == model.CategoryFormulary {
			continue
		}
		key := strings.ToUpper(e.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		general = append(general, e.Title)
	}

	return &Segmenter{
		cat:       cat,
		opts:      opts,
		zoneRes:   zoneRes,
		unzonedRe: compilePattern(append(general, extras...)),
	}
}

// compilePattern builds the case-insensitive alternation for one scan's
// title set. Go's regexp prefers the leftmost alternative at a given
// position, so the longest-first ordering of the alternation decides
// equal-position ties exactly as required.
func compilePattern(titles []string) *regexp.Regexp {
	escaped := make([]string, 0, len(titles))
	for _, t := range sortedLongestFirst(titles) {
		if strings.TrimSpace(t) == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(t))
	}
	if len(escaped) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(escaped, "|") + `)`)
}

// Segment resolves the manual's category zones and scans each with that
// category's titles. When no zone anchor resolves (small or single-section
// sources) the whole text is scanned once with every non-formulary title
// instead. Text ahead of the first zone is discarded, except for the
// optional definitions pass.
func (s *Segmenter) Segment(text string) ([]model.Segment, *Report) {
	report := &Report{}
	zones := s.resolveZones(text)

	var segs []model.Segment
	defBoundary := len(text)

	if len(zones) == 0 {
		var first int
		segs, first = s.scan(text, s.unzonedRe, "", report)
		if first >= 0 {
			defBoundary = first
		}
	} else {
		defBoundary = zones[0].start
		for _, z := range zones {
			zoneSegs, _ := s.scan(text[z.start:z.end], s.zoneRes[z.cat], z.cat, report)
			segs = append(segs, zoneSegs...)
		}
	}

	if s.opts.Definitions {
		segs = append(segs, s.scanDefinitions(text[:defBoundary])...)
	}

	report.MissingTitles = s.missingTitles(segs)
	return segs, report
}

// scan splits one span of text at title occurrences. A non-empty zoneCat
// pins matched catalog titles to that category; the empty category marks the
// zone-less fallback, where the catalog's first declared entry decides.
// Returns the segments and the offset of the first match, -1 when none.
func (s *Segmenter) scan(text string, re *regexp.Regexp, zoneCat model.Category, report *Report) ([]model.Segment, int) {
	if re == nil {
		return nil, -1
	}
	locs := re.FindAllStringIndex(text, -1)
	report.Matches += len(locs)
	if len(locs) == 0 {
		return nil, -1
	}

	segs := make([]model.Segment, 0, len(locs))
	for i, loc := range locs {
		raw := text[loc[0]:loc[1]]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])

		// A bare title with almost no following content is a TOC line or an
		// index entry, not a section. Dropping it even when it is the
		// title's only occurrence is a deliberate lossy policy.
		if len(body) < s.opts.MinBody {
			report.TOCRejected++
			continue
		}

		var cat model.Category
		var title string
		if zoneCat != "" {
			if entry, ok := s.cat.TitleIn(raw, zoneCat); ok {
				cat = zoneCat
				title = entry.Title
			} else {
				cat = model.CategoryUncategorized
				title = model.DisplayTitle(raw)
				report.Uncategorized++
			}
		} else {
			var known bool
			cat, known = s.cat.CategoryFor(raw)
			title = s.cat.CanonicalTitle(raw)
			if !known {
				report.Uncategorized++
			}
		}

		segs = append(segs, model.Segment{
			RawTitle: raw,
			Title:    title,
			Category: cat,
			Body:     body,
		})
	}
	return segs, locs[0][0]
}

// zoneSpan is one category's slice of the manual
type zoneSpan struct {
	cat   model.Category
	start int
	end   int
}

// resolveZones anchors each category's zone: the zone's banner header when
// the manual carries one, otherwise the first occurrence of the category's
// first declared title past the front-matter span (occurrences inside it
// are table-of-contents lines). Zones run until the next zone's anchor; the
// last runs to the appendix header or end of text. A category whose anchor
// never resolves has no zone and its titles are never scanned for.
func (s *Segmenter) resolveZones(text string) []zoneSpan {
	upper := strings.ToUpper(text)

	var zones []zoneSpan
	for _, cat := range model.Categories() {
		if cat == model.CategoryDefinitions {
			continue
		}
		idx := -1
		if header, ok := zoneHeaders[cat]; ok {
			// banner headers are all caps in the source, match them exactly
			idx = s.pastFrontMatter(text, header)
		}
		if idx < 0 {
			if anchor, ok := s.cat.FirstTitleIn(cat); ok {
				idx = s.pastFrontMatter(upper, strings.ToUpper(anchor))
			}
		}
		if idx >= 0 {
			zones = append(zones, zoneSpan{cat: cat, start: idx})
		}
	}
	if len(zones) == 0 {
		return nil
	}

	sort.SliceStable(zones, func(i, j int) bool { return zones[i].start < zones[j].start })

	end := len(text)
	if ai := s.pastFrontMatter(text, appendixHeader); ai > zones[len(zones)-1].start {
		end = ai
	}
	for i := range zones {
		if i+1 < len(zones) {
			zones[i].end = zones[i+1].start
		} else {
			zones[i].end = end
		}
	}
	return zones
}

// pastFrontMatter finds the first occurrence of needle at or past the
// front-matter span, -1 when there is none.
func (s *Segmenter) pastFrontMatter(haystack, needle string) int {
	from := s.opts.FrontMatterLen
	if from >= len(haystack) {
		return -1
	}
	idx := strings.Index(haystack[from:], needle)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func (s *Segmenter) missingTitles(segs []model.Segment) []string {
	seen := make(map[string]bool, len(segs))
	for _, seg := range segs {
		seen[strings.ToUpper(seg.RawTitle)] = true
	}
	var missing []string
	for _, e := range s.cat.Entries() {
		if !seen[strings.ToUpper(e.Title)] {
			missing = append(missing, e.Title)
		}
	}
	return missing
}

func sortedLongestFirst(titles []string) []string {
	out := make([]string, len(titles))
	copy(out, titles)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
