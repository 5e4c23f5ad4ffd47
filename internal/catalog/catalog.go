package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Catalog is the authoritative, ordered list of known section titles grouped
// by category. It is pure data: loaded once, never mutated afterwards.
type Catalog struct {
	entries []model.TitleEntry
	// byTitle maps uppercased title to every entry carrying it. Cross-category
	// duplicates are expected (e.g. "Seizure" Adult and Pediatric).
	byTitle map[string][]model.TitleEntry
}

// New builds a catalog from explicit entries
func New(entries []model.TitleEntry) *Catalog {
	c := &Catalog{
		entries: entries,
		byTitle: make(map[string][]model.TitleEntry, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToUpper(e.Title)
		c.byTitle[key] = append(c.byTitle[key], e)
	}
	return c
}

// catalogFile is the YAML shape accepted by Load
type catalogFile struct {
	Titles []model.TitleEntry `yaml:"titles"`
}

// Load reads a catalog override from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Titles) == 0 {
		return nil, fmt.Errorf("catalog %s contains no titles", path)
	}
	c := New(f.Titles)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Entries returns the catalog rows in declaration order
func (c *Catalog) Entries() []model.TitleEntry {
	return c.entries
}

// Len returns the number of catalog rows
func (c *Catalog) Len() int { return len(c.entries) }

// Lookup finds the entries for a title, case-insensitively. More than one
// entry means the title collides across categories.
func (c *Catalog) Lookup(title string) ([]model.TitleEntry, bool) {
	entries, ok := c.byTitle[strings.ToUpper(strings.TrimSpace(title))]
	return entries, ok
}

// CategoryFor resolves the category of a matched title. Used by the
// zone-less fallback scan, where a title colliding across categories
// resolves to its first declared entry; zone scans assign the zone's own
// category through TitleIn instead.
func (c *Catalog) CategoryFor(title string) (model.Category, bool) {
	entries, ok := c.Lookup(title)
	if !ok {
		return model.CategoryUncategorized, false
	}
	return entries[0].Category, true
}

// TitleIn returns the catalog entry for a title under a specific category.
// This is how a zone scan tells a title that belongs to its zone from an
// extra (uncatalogued) title.
func (c *Catalog) TitleIn(title string, cat model.Category) (model.TitleEntry, bool) {
	entries, ok := c.Lookup(title)
	if !ok {
		return model.TitleEntry{}, false
	}
	for _, e := range entries {
		if e.Category == cat {
			return e, true
		}
	}
	return model.TitleEntry{}, false
}

// CanonicalTitle returns the catalog's display casing for a matched title
func (c *Catalog) CanonicalTitle(title string) string {
	if entries, ok := c.Lookup(title); ok {
		return entries[0].Title
	}
	return model.DisplayTitle(title)
}

// TitlesLongestFirst returns every catalog title sorted by descending length.
// This ordering is the segmentation tie-break: longer, more specific titles
// must match before their shorter substrings ("General Adult Trauma
// Assessment" before "General Adult Assessment"). Ties keep declaration
// order.
func (c *Catalog) TitlesLongestFirst() []string {
	seen := make(map[string]bool, len(c.entries))
	titles := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		key := strings.ToUpper(e.Title)
		if !seen[key] {
			seen[key] = true
			titles = append(titles, e.Title)
		}
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return len(titles[i]) > len(titles[j])
	})
	return titles
}

// TitlesLongestFirstIn returns one category's titles sorted by descending
// length, with the same tie-break as TitlesLongestFirst. Zone scans are
// built from these so that one category's titles never match inside
// another category's zone.
func (c *Catalog) TitlesLongestFirstIn(cat model.Category) []string {
	var titles []string
	for _, e := range c.entries {
		if e.Category == cat {
			titles = append(titles, e.Title)
		}
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return len(titles[i]) > len(titles[j])
	})
	return titles
}

// FirstTitleIn returns the first declared title of a category, used as the
// zone anchor when skipping the table-of-contents region.
func (c *Catalog) FirstTitleIn(cat model.Category) (string, bool) {
	for _, e := range c.entries {
		if e.Category == cat {
			return e.Title, true
		}
	}
	return "", false
}

// Validate enforces the catalog invariant: titles unique within a category.
// Cross-category collisions are allowed and expected.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		if e.Category == "" {
			return fmt.Errorf("title %q has no category", e.Title)
		}
		key := strings.ToUpper(e.Title) + "\x00" + string(e.Category)
		if seen[key] {
			return fmt.Errorf("duplicate title %q in category %s", e.Title, e.Category)
		}
		seen[key] = true
	}
	return nil
}
