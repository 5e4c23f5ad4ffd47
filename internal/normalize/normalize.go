package normalize

import (
	"regexp"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Normalizer cleans raw extracted manual text ahead of segmentation. Pure
// function of its input; no state beyond the configured options.
type Normalizer struct {
	opts model.NormalizerConfig
}

// New creates a normalizer with the given options
func New(opts model.NormalizerConfig) *Normalizer {
	if opts.MinLineLen <= 0 {
		opts.MinLineLen = 3
	}
	return &Normalizer{opts: opts}
}

var pageNumberRe = regexp.MustCompile(`^\d+$`)

// Clean strips page-number lines, artifact lines, and boilerplate header or
// footer lines, and optionally repairs doubled OCR glyphs.
func (n *Normalizer) Clean(text string) string {
	if n.opts.CollapseDoubled {
		text = CollapseDoubled(text)
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if l == "" {
			// blank lines delimit sections downstream, keep them
			cleaned = append(cleaned, "")
			continue
		}
		if pageNumberRe.MatchString(l) {
			continue
		}
		if len(l) < n.opts.MinLineLen {
			continue
		}
		if n.isBoilerplate(l) {
			continue
		}
		cleaned = append(cleaned, l)
	}
	return strings.Join(cleaned, "\n")
}

func (n *Normalizer) isBoilerplate(line string) bool {
	for _, b := range n.opts.Boilerplate {
		if b != "" && strings.Contains(line, b) {
			return true
		}
	}
	return false
}

// CollapseDoubled repairs extraction output where every glyph appears twice
// ("CCaarrddiiaacc" becomes "Cardiac"). It cannot distinguish OCR doubling
// from legitimately doubled letters ("committee" loses an m), which is why
// callers must only enable it for the known-faulty extraction path.
// Go's regexp package rejects the backreference pattern `(.)\1`, so the
// collapse is done with an explicit scan with the same semantics: leftmost
// non-overlapping pairs, newlines exempt.
func CollapseDoubled(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if runes[i] != '\n' && i+1 < len(runes) && runes[i+1] == runes[i] {
			i++
		}
	}
	return b.String()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Flatten collapses all whitespace runs, including newlines, into single
// spaces. Used where field regexes expect single-line text and by the radio
// script formatter.
func Flatten(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
