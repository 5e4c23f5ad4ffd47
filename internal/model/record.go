package model

import (
	"regexp"
	"strings"
)

// Category classifies a protocol record by manual section
type Category string

const (
	CategoryAdult         Category = "Adult"
	CategoryPediatric     Category = "Pediatric"
	CategoryProcedures    Category = "Procedures"
	CategoryOperations    Category = "Operations"
	CategoryFormulary     Category = "Formulary"
	CategoryDefinitions   Category = "Definitions"
	CategoryUncategorized Category = "Uncategorized"
)

// Categories lists every known category in manual order
func Categories() []Category {
	return []Category{
		CategoryAdult,
		CategoryPediatric,
		CategoryProcedures,
		CategoryOperations,
		CategoryFormulary,
		CategoryDefinitions,
	}
}

// TitleEntry is one row of the title catalog. Titles are unique per
// category; the same title may appear under two categories (e.g. "Seizure"
// under both Adult and Pediatric) and is disambiguated at merge time.
type TitleEntry struct {
	Title    string   `json:"title" yaml:"title"`
	Category Category `json:"category" yaml:"category"`
}

// Segment is a raw, pre-merge slice of source text attributed to one title
// match. Produced by the segmenter, consumed by the merger; never persisted.
type Segment struct {
	RawTitle string // title text as matched in the source
	Title    string // canonical display form
	Category Category
	Body     string
}

// Medication is one detected drug administration within a protocol body
type Medication struct {
	Name       string `json:"name"`
	DosageText string `json:"dosage_text"`
	Route      string `json:"route,omitempty"`
}

// DecisionPoint is an inferred Yes/No branch from flowchart-derived text.
// Approximate structural cue, not a faithful decision-tree reconstruction.
type DecisionPoint struct {
	Decision string `json:"decision"`
	Action   string `json:"action"`
}

// FormularyInfo holds the labeled fields of a formulary drug entry
type FormularyInfo struct {
	Class             string   `json:"class,omitempty"`
	Action            string   `json:"action,omitempty"`
	Dose              string   `json:"dose,omitempty"`
	Routes            []string `json:"routes,omitempty"`
	RepeatDoseAllowed bool     `json:"repeat_dose_allowed"`
}

// FieldSet carries the per-record extracted clinical sub-fields. Every field
// is best effort: a nil slice means "not detected", never "confirmed absent".
// Contraindications and AdverseReactions use an empty non-nil slice when the
// source explicitly states "None" for the labeled section.
type FieldSet struct {
	History           []string        `json:"history,omitempty"`
	SignsSymptoms     []string        `json:"signs_symptoms,omitempty"`
	Differential      []string        `json:"differential,omitempty"`
	Pearls            []string        `json:"pearls,omitempty"`
	QIMetrics         []string        `json:"qi_metrics,omitempty"`
	Disposition       []string        `json:"disposition,omitempty"`
	Medications       []Medication    `json:"medications,omitempty"`
	Contraindications []string        `json:"contraindications,omitempty"`
	AdverseReactions  []string        `json:"adverse_reactions,omitempty"`
	Decisions         []DecisionPoint `json:"decision_tree,omitempty"`
	RequiresTelemetry bool            `json:"requires_telemetry"`
	HasDosages        bool            `json:"has_dosages"`
	HasVitals         bool            `json:"has_vitals"`
	AdvancedAirway    bool            `json:"requires_advanced_airway"`
	LifeThreatening   bool            `json:"is_life_threatening"`
	ProviderLevels    []string        `json:"provider_level,omitempty"`
	Formulary         *FormularyInfo  `json:"formulary,omitempty"`
}

// Record is the durable unit of the store: one protocol, procedure,
// formulary drug, or definition extracted from the manual.
type Record struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Category           Category `json:"category"`
	Body               string   `json:"raw_text"`
	Fields             FieldSet `json:"fields"`
	WordCount          int      `json:"word_count"`
	FlowchartNarrative string   `json:"flowchart_narrative,omitempty"`
}

var (
	idStripRe    = regexp.MustCompile(`[^\w\s/-]`)
	idCollapseRe = regexp.MustCompile(`[/\s-]+`)
)

// MakeID derives the stable record key from a display title: lowercase,
// punctuation stripped, slash/space/hyphen runs collapsed to underscores.
// Same title always yields the same id across ingestion runs.
func MakeID(title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	id = idStripRe.ReplaceAllString(id, "")
	id = idCollapseRe.ReplaceAllString(id, "_")
	return strings.Trim(id, "_")
}

// DisambiguatedID mints the distinct key used when the same title appears
// under a second category (e.g. seizure vs seizure_pediatric).
func DisambiguatedID(title string, cat Category) string {
	return MakeID(title) + "_" + strings.ToLower(string(cat))
}

// acronyms restored after title-casing an ALL CAPS source match
var titleAcronyms = [][2]string{
	{"Cva", "CVA"},
	{"Chf", "CHF"},
	{"Stemi", "STEMI"},
	{"Dnr", "DNR"},
	{"Polst", "POLST"},
	{"Nippv", "NIPPV"},
	{"Ems", "EMS"},
	{"Ob-", "OB-"},
}

// DisplayTitle converts a raw matched title into its display form. Catalog
// matches should prefer the catalog's canonical casing; this handles
// uncatalogued matches and definitions terms.
func DisplayTitle(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.Title(strings.ToLower(t)) //nolint:staticcheck // ASCII titles only
	for _, a := range titleAcronyms {
		t = strings.ReplaceAll(t, a[0], a[1])
	}
	return t
}
