package extract

import (
	"regexp"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// defaultMedications is the fixed vocabulary searched in protocol bodies.
// Names come from the manual's formulary; the list is a search vocabulary,
// not a statement of what any protocol may administer.
var defaultMedications = []string{
	"EPINEPHRINE",
	"ATROPINE",
	"NALOXONE",
	"ALBUTEROL",
	"LEVALBUTEROL",
	"NITROGLYCERIN",
	"ASPIRIN",
	"ACETYLSALICYLIC ACID",
	"MORPHINE",
	"FENTANYL",
	"MIDAZOLAM",
	"DIAZEPAM",
	"DIPHENHYDRAMINE",
	"ONDANSETRON",
	"ADENOSINE",
	"AMIODARONE",
	"LIDOCAINE",
	"MAGNESIUM SULFATE",
	"CALCIUM CHLORIDE",
	"SODIUM BICARBONATE",
	"GLUCOSE",
	"D10",
	"DEXTROSE",
	"GLUCAGON",
	"KETAMINE",
	"ETOMIDATE",
	"ACETAMINOPHEN",
	"HYDROMORPHONE",
	"METOCLOPRAMIDE",
	"DROPERIDOL",
	"PROCHLORPERAZINE",
	"HYDROXOCOBALAMIN",
	"IPRATROPIUM",
	"PHENYLEPHRINE",
	"OXYMETAZOLINE",
}

// routeTokens are administration routes matched as whole words inside a
// dosage clause
var routeTokens = []string{"IV", "IM", "IO", "IN", "PO", "SL", "PR", "SQ", "SC"}

type medMatcher struct {
	name string
	re   *regexp.Regexp
}

func buildMedMatchers(vocab []string) []medMatcher {
	if len(vocab) == 0 {
		vocab = defaultMedications
	}
	matchers := make([]medMatcher, 0, len(vocab))
	for _, name := range vocab {
		// the drug name followed by its dosage clause up to line end
		re := regexp.MustCompile(`(?im)\b` + regexp.QuoteMeta(name) + `\b[ \t]*[,:]?[ \t]*([^\n]+)`)
		matchers = append(matchers, medMatcher{name: name, re: re})
	}
	return matchers
}

var routeRes = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(routeTokens))
	for _, r := range routeTokens {
		m[r] = regexp.MustCompile(`(?i)\b` + r + `\b`)
	}
	return m
}()

// inferRoute picks the first administration route named in a dosage clause
func inferRoute(clause string) string {
	for _, token := range routeTokens {
		if routeRes[token].MatchString(clause) {
			if token == "SC" {
				return "SQ"
			}
			return token
		}
	}
	return ""
}

// extractMedications scans a record body for every vocabulary drug and its
// trailing dosage clause. Duplicate (name, clause) pairs are collapsed.
func (e *Extractor) extractMedications(text string) []model.Medication {
	var meds []model.Medication
	seen := make(map[string]bool)

	for _, m := range e.medMatchers {
		for _, match := range m.re.FindAllStringSubmatch(text, -1) {
			clause := strings.TrimSpace(match[1])
			if clause == "" {
				continue
			}
			name := displayMedName(m.name)
			key := strings.ToLower(name + "\x00" + clause)
			if seen[key] {
				continue
			}
			seen[key] = true
			meds = append(meds, model.Medication{
				Name:       name,
				DosageText: clause,
				Route:      inferRoute(clause),
			})
		}
	}
	return meds
}

func displayMedName(name string) string {
	if name == "D10" {
		return name
	}
	return strings.Title(strings.ToLower(name)) //nolint:staticcheck // ASCII vocabulary
}
