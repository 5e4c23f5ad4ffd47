package extract

import (
	"regexp"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Extractor populates a FieldSet from one record's body text. Pure function
// of the body; each sub-extraction is independent and tolerant of absence,
// so a failed pattern yields an empty value for that field only and never an
// error.
type Extractor struct {
	opts        model.ExtractorConfig
	medMatchers []medMatcher
}

// New creates an extractor with the given tunables
func New(opts model.ExtractorConfig) *Extractor {
	if opts.MaxPearls <= 0 {
		opts.MaxPearls = 15
	}
	if opts.MaxDecisions <= 0 {
		opts.MaxDecisions = 10
	}
	return &Extractor{
		opts:        opts,
		medMatchers: buildMedMatchers(opts.Medications),
	}
}

// Extract runs every sub-extraction over the record body and fills the
// record's field set. Formulary records additionally get the labeled
// CLASS/ACTION/DOSE parse.
func (e *Extractor) Extract(rec *model.Record) {
	text := rec.Body

	fs := model.FieldSet{
		History:           sectionList(text, "History"),
		SignsSymptoms:     sectionList(text, "Signs and Symptoms"),
		Differential:      sectionList(text, "Differential"),
		QIMetrics:         sectionList(text, "QI Metrics"),
		Disposition:       sectionList(text, "Disposition"),
		Pearls:            capStrings(sectionList(text, "Pearls"), e.opts.MaxPearls),
		Medications:       e.extractMedications(text),
		Contraindications: e.extractNoneAware(text, "CONTRAINDICATIONS"),
		AdverseReactions:  e.extractNoneAware(text, "ADVERSE REACTIONS"),
		Decisions:         e.extractDecisions(text),
		RequiresTelemetry: telemetryRe.MatchString(text),
		HasDosages:        dosageRe.MatchString(text),
		HasVitals:         vitalsRe.MatchString(text),
		AdvancedAirway:    airwayRe.MatchString(text),
		LifeThreatening:   lifeThreatRe.MatchString(text),
		ProviderLevels:    providerLevels(text),
	}

	if rec.Category == model.CategoryFormulary {
		fs.Formulary = parseFormulary(text)
	}

	rec.Fields = fs
}

// extractNoneAware pulls a labeled list section. A body that literally says
// "None" becomes an explicit empty (non-nil) list; an absent section stays
// nil, meaning "not detected".
func (e *Extractor) extractNoneAware(text, label string) []string {
	body := extractSection(text, label)
	if body == "" {
		return nil
	}
	if explicitNone(body) {
		return []string{}
	}
	if items := extractBullets(body); len(items) > 0 {
		return items
	}
	return splitItems(body, 5)
}

// decisionRe recognizes Yes/No tokens followed by a short action run, the
// structural residue of flowchart text. Best-effort signal only.
var decisionRe = regexp.MustCompile(`(?i)\b(Yes|No)\b[ \t:]+([^\n]{20,100})`)

func (e *Extractor) extractDecisions(text string) []model.DecisionPoint {
	var decisions []model.DecisionPoint
	for _, m := range decisionRe.FindAllStringSubmatch(text, -1) {
		decisions = append(decisions, model.DecisionPoint{
			Decision: m[1],
			Action:   m[2],
		})
		if len(decisions) >= e.opts.MaxDecisions {
			break
		}
	}
	return decisions
}

var (
	telemetryRe  = regexp.MustCompile(`(?i)telemetry.{0,40}required|contact.{0,30}physician|physician order|medical control|telemetry contact shall be established`)
	dosageRe     = regexp.MustCompile(`(?i)\d+\.?\d*\s*(mg|mcg|g|ml|L)\b`)
	vitalsRe     = regexp.MustCompile(`\b(BP|HR|RR|SpO2|ETCO2|GCS)\b`)
	airwayRe     = regexp.MustCompile(`(?i)intubat|\bETT\b|extraglottic`)
	lifeThreatRe = regexp.MustCompile(`(?i)cardiac arrest|respiratory arrest|shock|sepsis|STEMI|stroke`)

	emtRe       = regexp.MustCompile(`\bE\b.*EMT`)
	aemtRe      = regexp.MustCompile(`\bA\b.*AEMT`)
	paramedicRe = regexp.MustCompile(`\bP\b.*Paramedic`)
)

// providerLevels infers which provider tiers a record addresses from the
// manual's E/A/P scope markers. Default is All when none are present.
func providerLevels(text string) []string {
	var levels []string
	if emtRe.MatchString(text) {
		levels = append(levels, "EMT")
	}
	if aemtRe.MatchString(text) {
		levels = append(levels, "AEMT")
	}
	if paramedicRe.MatchString(text) {
		levels = append(levels, "Paramedic")
	}
	if len(levels) == 0 {
		return []string{"All"}
	}
	return levels
}

func capStrings(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
