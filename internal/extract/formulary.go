package extract

import (
	"regexp"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Formulary drug entries carry labeled single-line fields the protocol pages
// do not have. They are parsed in addition to the generic sub-extractions.

var (
	classRe  = regexp.MustCompile(`(?i)CLASS:\s*([^\n]+)`)
	actionRe = regexp.MustCompile(`(?i)ACTION:\s*([^\n]+)`)
	doseRe   = regexp.MustCompile(`(?i)DOSE:\s*([^\n]+)`)
	repeatRe = regexp.MustCompile(`(?i)may repeat|repeat dose`)
)

func labeledField(text string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseFormulary extracts the CLASS/ACTION/DOSE block, the routes named
// anywhere in the entry, and whether repeat dosing is permitted.
func parseFormulary(text string) *model.FormularyInfo {
	info := &model.FormularyInfo{
		Class:             labeledField(text, classRe),
		Action:            labeledField(text, actionRe),
		Dose:              labeledField(text, doseRe),
		RepeatDoseAllowed: repeatRe.MatchString(text),
	}
	for _, token := range routeTokens {
		if routeRes[token].MatchString(text) {
			route := token
			if route == "SC" {
				route = "SQ"
			}
			if !containsString(info.Routes, route) {
				info.Routes = append(info.Routes, route)
			}
		}
	}
	return info
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
