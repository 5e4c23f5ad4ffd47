package segment

import (
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

const termsHeader = "TERMS AND CONVENTIONS"

// maxTermLen bounds a definitions term line; real terms are short
// abbreviations like "AED" or "ALS", not sentences.
const maxTermLen = 15

// scanDefinitions walks the terms-and-conventions zone of the preamble and
// emits one Definitions segment per "TERM" / "means ..." line pair.
func (s *Segmenter) scanDefinitions(preamble string) []model.Segment {
	start := strings.Index(strings.ToUpper(preamble), termsHeader)
	if start < 0 {
		return nil
	}
	zone := preamble[start+len(termsHeader):]

	lines := strings.Split(zone, "\n")
	var segs []model.Segment
	for i := 0; i+1 < len(lines); i++ {
		term := strings.TrimSpace(lines[i])
		next := strings.TrimSpace(lines[i+1])
		if term == "" || len(term) >= maxTermLen {
			continue
		}
		if term != strings.ToUpper(term) || !hasLetter(term) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(next), "means") {
			continue
		}
		definition := strings.TrimSpace(next[len("means"):])
		if definition == "" {
			continue
		}
		segs = append(segs, model.Segment{
			RawTitle: term,
			Title:    term,
			Category: model.CategoryDefinitions,
			Body:     definition,
		})
	}
	return segs
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
