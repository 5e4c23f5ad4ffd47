package extract

import (
	"regexp"
	"strings"
)

// Section extraction locates a labeled subsection by its header and scopes
// it until the next header-looking line or a blank-line boundary. Formats in
// the manual vary ("Pearls", "PEARLS", "* Pearls:"), so several shapes are
// tried in order and the first hit wins.

func sectionPatterns(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?s)(?i:` + quoted + `)\s*:?\s*\n(.*?)(?:\n[A-Z][A-Z &/-]{2,}\s*\n|\n\n[A-Z]|\z)`),
		regexp.MustCompile(`(?is)` + quoted + `\s*:\s*(.*?)(?:\n\n|\z)`),
	}
}

// extractSection returns the body of the named labeled section, or "" when
// the section is absent. Case-insensitive; never fails.
func extractSection(text, name string) string {
	for _, re := range sectionPatterns(name) {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var bulletRe = regexp.MustCompile(`^[\*\-•·]\s*`)

// extractBullets splits a section body into bullet items. Lines starting
// with a bullet glyph open an item; unmarked following lines are wrapped
// continuations of the previous item.
func extractBullets(text string) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletRe.MatchString(line) {
			items = append(items, bulletRe.ReplaceAllString(line, ""))
		} else if len(items) > 0 {
			items[len(items)-1] += " " + line
		}
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

// sectionList pulls a labeled section and returns its bullet items
func sectionList(text, name string) []string {
	return extractBullets(extractSection(text, name))
}

// explicitNone reports whether a section body is a literal "None" statement,
// which the data model represents as an explicit empty (non-nil) list.
func explicitNone(body string) bool {
	b := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), ".")))
	return b == "none" || b == "none known" || b == "none reported"
}

// splitItems breaks a dense section body on semicolons, bullets, and line
// breaks, dropping fragments too short to mean anything. Used for sections
// written as run-on lists rather than bulleted ones.
var itemSplitRe = regexp.MustCompile(`[;•\n]`)

func splitItems(body string, minLen int) []string {
	var items []string
	for _, part := range itemSplitRe.Split(body, -1) {
		part = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(part), ""))
		if len(part) > minLen {
			items = append(items, part)
		}
	}
	return items
}
