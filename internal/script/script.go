package script

import (
	"fmt"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/normalize"
)

// Build formats one record into a spoken-style radio script: a
// category-dependent intro line followed by the whitespace-flattened body.
// When a flowchart narrative was captured during enrichment it is appended
// after the body so the narration covers the decision flow too.
func Build(rec *model.Record, mode string) string {
	var intro string
	switch rec.Category {
	case model.CategoryFormulary:
		intro = fmt.Sprintf("Formulary Drug: %s.", rec.Title)
	case model.CategoryDefinitions:
		intro = fmt.Sprintf("Definition: %s.", rec.Title)
	default:
		intro = fmt.Sprintf("You are listening to the %s breakdown of %s.", strings.ToUpper(mode), rec.Title)
	}

	body := normalize.Flatten(rec.Body)
	if rec.FlowchartNarrative != "" {
		body += " " + normalize.Flatten(rec.FlowchartNarrative)
	}

	return intro + "\n\n" + body
}
