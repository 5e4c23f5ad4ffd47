package merge

import (
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Result is the deduplicated record mapping plus arrival order. Order is
// kept so downstream passes and the persisted store stay deterministic for
// a given segment sequence.
type Result struct {
	Records map[string]*model.Record
	Order   []string
	// Continuations counts segments appended to an existing record
	Continuations int
	// Disambiguated counts records that needed a category-suffixed id
	Disambiguated int
}

// Merge folds the ordered segment sequence into records. Policy:
//   - first occurrence of a (title, category) pair creates the record;
//   - a later occurrence with the same id and same category is a page
//     continuation and appends its body after a blank line;
//   - the same base id under a different category mints a distinct
//     category-suffixed id so both survive.
//
// Merge is idempotent over its input: the same ordered segments always
// produce the same ids with the same concatenated bodies.
func Merge(segs []model.Segment) *Result {
	res := &Result{Records: make(map[string]*model.Record, len(segs))}

	for _, seg := range segs {
		id := model.MakeID(seg.Title)

		existing, ok := res.Records[id]
		if ok && existing.Category != seg.Category {
			id = model.DisambiguatedID(seg.Title, seg.Category)
			existing, ok = res.Records[id]
			if !ok {
				res.Disambiguated++
			}
		}

		if ok && existing != nil && existing.Category == seg.Category {
			existing.Body = existing.Body + "\n\n" + seg.Body
			res.Continuations++
			continue
		}

		res.Records[id] = &model.Record{
			ID:       id,
			Title:    seg.Title,
			Category: seg.Category,
			Body:     seg.Body,
		}
		res.Order = append(res.Order, id)
	}

	for _, rec := range res.Records {
		rec.WordCount = len(strings.Fields(rec.Body))
	}
	return res
}
