package segment

import (
	"strings"
	"testing"

	"github.com/bree-jeune/ems-protocols-radio/internal/catalog"
	"github.com/bree-jeune/ems-protocols-radio/internal/merge"
	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.TitleEntry{
		{Title: "General Adult Assessment", Category: model.CategoryAdult},
		{Title: "General Adult Trauma Assessment", Category: model.CategoryAdult},
		{Title: "Bradycardia", Category: model.CategoryAdult},
		{Title: "Cardiac Arrest", Category: model.CategoryAdult},
		{Title: "Cardiac Arrest (Non-Traumatic)", Category: model.CategoryAdult},
		{Title: "Pediatric Bradycardia", Category: model.CategoryPediatric},
	})
}

// body long enough to clear the minimum-body threshold
func longBody(marker string) string {
	return marker + " " + strings.Repeat("assess the patient and monitor vital signs closely. ", 4)
}

func TestSegment_Basic(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "BRADYCARDIA\n" + longBody("slow heart rate")
	segs, report := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Title != "Bradycardia" {
		t.Errorf("title = %q, want Bradycardia", segs[0].Title)
	}
	if segs[0].Category != model.CategoryAdult {
		t.Errorf("category = %s, want Adult", segs[0].Category)
	}
	if !strings.EqualFold(segs[0].RawTitle, "Bradycardia") {
		t.Errorf("raw title = %q", segs[0].RawTitle)
	}
	if !strings.Contains(segs[0].Body, "slow heart rate") {
		t.Errorf("body lost: %q", segs[0].Body)
	}
	if report.Matches != 1 {
		t.Errorf("matches = %d, want 1", report.Matches)
	}
}

func TestSegment_OverlappingAssessmentTitles(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "GENERAL ADULT TRAUMA ASSESSMENT\n" + longBody("control hemorrhage first")
	segs, _ := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Title != "General Adult Trauma Assessment" {
		t.Errorf("matched %q, want the longer trauma title", segs[0].Title)
	}
}

func TestSegment_LongestTitleWinsAtSamePosition(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "CARDIAC ARREST (NON-TRAUMATIC)\n" + longBody("begin compressions")
	segs, _ := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Title != "Cardiac Arrest (Non-Traumatic)" {
		t.Errorf("shorter title shadowed the longer one: %q", segs[0].Title)
	}
}

func TestSegment_TitleInsideLongerTitleNotSplit(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "PEDIATRIC BRADYCARDIA\n" + longBody("pediatric rates differ")
	segs, _ := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Category != model.CategoryPediatric {
		t.Errorf("category = %s, want Pediatric", segs[0].Category)
	}
}

func TestSegment_TOCRejection(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	// a bare title followed by almost nothing is a table-of-contents line
	text := "BRADYCARDIA\n12\nCARDIAC ARREST\n" + longBody("begin compressions")
	segs, report := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Title != "Cardiac Arrest" {
		t.Errorf("kept segment = %q", segs[0].Title)
	}
	if report.TOCRejected != 1 {
		t.Errorf("TOCRejected = %d, want 1", report.TOCRejected)
	}
}

func TestSegment_SpanEndsAtNextTitle(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "BRADYCARDIA\n" + longBody("atropine first") +
		"\nCARDIAC ARREST\n" + longBody("begin compressions")
	segs, _ := s.Segment(text)

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if strings.Contains(segs[0].Body, "begin compressions") {
		t.Errorf("first body bleeds into second section: %q", segs[0].Body)
	}
}

func TestSegment_ExtraTitlesUncategorized(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{
		ExtraTitles: []string{"Special Event Standby"},
	})

	text := "SPECIAL EVENT STANDBY\n" + longBody("staffing details")
	segs, report := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Category != model.CategoryUncategorized {
		t.Errorf("category = %s, want Uncategorized", segs[0].Category)
	}
	if report.Uncategorized != 1 {
		t.Errorf("Uncategorized = %d, want 1", report.Uncategorized)
	}
}

func TestSegment_MissingTitlesReported(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{})

	text := "BRADYCARDIA\n" + longBody("slow heart rate")
	_, report := s.Segment(text)

	found := false
	for _, title := range report.MissingTitles {
		if title == "Pediatric Bradycardia" {
			found = true
		}
	}
	if !found {
		t.Errorf("Pediatric Bradycardia should be reported missing: %v", report.MissingTitles)
	}
}

func TestSegment_FrontMatterSkipped(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{FrontMatterLen: 5000})

	// a TOC occurrence early in the document with a long trailing span, then
	// padding past the front-matter region, then the real sections anchored
	// by the catalog's first adult title
	var b strings.Builder
	b.WriteString("BRADYCARDIA\n")
	b.WriteString(longBody("table of contents run-on entry text"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("introduction and policy filler line\n", 160))
	b.WriteString("GENERAL ADULT ASSESSMENT\n")
	b.WriteString(longBody("primary survey"))
	b.WriteString("\nBRADYCARDIA\n")
	b.WriteString(longBody("atropine first"))

	segs, _ := s.Segment(b.String())

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Title != "General Adult Assessment" {
		t.Errorf("first segment = %q, want the zone anchor", segs[0].Title)
	}
	if !strings.Contains(segs[1].Body, "atropine first") {
		t.Errorf("real section body lost: %q", segs[1].Body)
	}
}

func TestSegment_Definitions(t *testing.T) {
	s := New(testCatalog(), model.SegmenterConfig{Definitions: true})

	text := "TERMS AND CONVENTIONS\n" +
		"ALS\n" +
		"means Advanced Life Support.\n" +
		"BLS\n" +
		"Means Basic Life Support.\n" +
		"\nBRADYCARDIA\n" + longBody("slow heart rate")

	segs, _ := s.Segment(text)

	var defs []model.Segment
	for _, seg := range segs {
		if seg.Category == model.CategoryDefinitions {
			defs = append(defs, seg)
		}
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Title != "ALS" || !strings.Contains(defs[0].Body, "Advanced Life Support") {
		t.Errorf("first definition = %+v", defs[0])
	}
	if defs[1].Title != "BLS" || !strings.Contains(defs[1].Body, "Basic Life Support") {
		t.Errorf("capitalized Means not handled: %+v", defs[1])
	}
}

// a catalog whose Seizure title is declared under both protocol sections
func zonedCatalog() *catalog.Catalog {
	return catalog.New([]model.TitleEntry{
		{Title: "General Adult Assessment", Category: model.CategoryAdult},
		{Title: "Pain Management", Category: model.CategoryAdult},
		{Title: "Seizure", Category: model.CategoryAdult},
		{Title: "General Pediatric Assessment", Category: model.CategoryPediatric},
		{Title: "Seizure", Category: model.CategoryPediatric},
		{Title: "KETAMINE", Category: model.CategoryFormulary},
	})
}

// seizureManual builds a manual whose adult and pediatric zones each carry a
// SEIZURE section, returning the text and the TOC preamble length.
func seizureManual() (string, int) {
	var b strings.Builder
	b.WriteString("TABLE OF CONTENTS\nGeneral Adult Assessment\nSeizure\nGeneral Pediatric Assessment\nSeizure\n")
	front := b.Len()
	b.WriteString("GENERAL ADULT ASSESSMENT\n")
	b.WriteString(longBody("scene size-up"))
	b.WriteString("\nSEIZURE\n")
	b.WriteString(longBody("midazolam for the actively seizing adult"))
	b.WriteString("\nGENERAL PEDIATRIC ASSESSMENT\n")
	b.WriteString(longBody("pediatric assessment triangle"))
	b.WriteString("\nSEIZURE\n")
	b.WriteString(longBody("weight based midazolam dosing"))
	return b.String(), front
}

func TestSegment_ZoneAssignsCategory(t *testing.T) {
	text, front := seizureManual()
	s := New(zonedCatalog(), model.SegmenterConfig{FrontMatterLen: front})

	segs, _ := s.Segment(text)

	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	if segs[1].Title != "Seizure" || segs[1].Category != model.CategoryAdult {
		t.Errorf("adult zone seizure = %q/%s", segs[1].Title, segs[1].Category)
	}
	if segs[3].Title != "Seizure" || segs[3].Category != model.CategoryPediatric {
		t.Errorf("pediatric zone seizure = %q/%s", segs[3].Title, segs[3].Category)
	}
}

func TestSegment_CrossCategoryTitleYieldsDistinctRecords(t *testing.T) {
	// the same manual driven through the merger: the shared title has to
	// come out as two records, one per zone
	text, front := seizureManual()
	s := New(zonedCatalog(), model.SegmenterConfig{FrontMatterLen: front})

	segs, _ := s.Segment(text)
	res := merge.Merge(segs)

	if len(res.Records) != 4 {
		t.Fatalf("expected 4 records, got %d: %v", len(res.Records), res.Order)
	}
	adult, ok := res.Records["seizure"]
	if !ok || adult.Category != model.CategoryAdult {
		t.Fatalf("adult seizure record missing or miscategorized: %+v", adult)
	}
	peds, ok := res.Records["seizure_pediatric"]
	if !ok || peds.Category != model.CategoryPediatric {
		t.Fatalf("pediatric seizure record missing or miscategorized: %+v", peds)
	}
	if !strings.Contains(adult.Body, "actively seizing adult") ||
		!strings.Contains(peds.Body, "weight based") {
		t.Errorf("bodies crossed: adult=%q peds=%q", adult.Body, peds.Body)
	}
	if res.Disambiguated != 1 {
		t.Errorf("Disambiguated = %d, want 1", res.Disambiguated)
	}
}

func TestSegment_DrugMentionDoesNotSplitProtocol(t *testing.T) {
	s := New(catalog.Default(), model.SegmenterConfig{})

	text := "PAIN MANAGEMENT\n" + longBody("consider KETAMINE 0.5 mg/kg IV for refractory pain")
	segs, _ := s.Segment(text)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Title != "Pain Management" || segs[0].Category != model.CategoryAdult {
		t.Errorf("segment = %q/%s", segs[0].Title, segs[0].Category)
	}
	if !strings.Contains(segs[0].Body, "KETAMINE 0.5") {
		t.Errorf("protocol body split at the drug name: %q", segs[0].Body)
	}
}

func TestSegment_FormularyTitlesScopedToFormularyZone(t *testing.T) {
	var b strings.Builder
	b.WriteString("TABLE OF CONTENTS\nPain Management\nKETAMINE\n")
	front := b.Len()
	b.WriteString("GENERAL ADULT ASSESSMENT\n")
	b.WriteString(longBody("scene size-up"))
	b.WriteString("\nPAIN MANAGEMENT\n")
	b.WriteString(longBody("consider KETAMINE 0.3 mg/kg IV for severe pain"))
	b.WriteString("\nFORMULARY\n")
	b.WriteString("KETAMINE\n")
	b.WriteString("CLASS: Dissociative anesthetic\n")
	b.WriteString(longBody("DOSE: 1-2 mg/kg IV for induction"))
	b.WriteString("\nAPPENDICES\n")
	b.WriteString(longBody("alphabetical index of retired protocols"))

	s := New(zonedCatalog(), model.SegmenterConfig{FrontMatterLen: front})
	segs, _ := s.Segment(b.String())

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	pain := segs[1]
	if pain.Title != "Pain Management" {
		t.Fatalf("second segment = %q", pain.Title)
	}
	if !strings.Contains(pain.Body, "KETAMINE 0.3") {
		t.Errorf("drug mention split the protocol body: %q", pain.Body)
	}
	drug := segs[2]
	if drug.Title != "KETAMINE" || drug.Category != model.CategoryFormulary {
		t.Errorf("formulary segment = %q/%s", drug.Title, drug.Category)
	}
	if !strings.Contains(drug.Body, "CLASS: Dissociative anesthetic") {
		t.Errorf("formulary body lost: %q", drug.Body)
	}
	if strings.Contains(drug.Body, "retired protocols") {
		t.Errorf("formulary body runs into the appendix: %q", drug.Body)
	}
}
