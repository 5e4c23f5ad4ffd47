package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/bree-jeune/ems-protocols-radio/internal/catalog"
	"github.com/bree-jeune/ems-protocols-radio/internal/extract"
	"github.com/bree-jeune/ems-protocols-radio/internal/merge"
	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/normalize"
	"github.com/bree-jeune/ems-protocols-radio/internal/segment"
	"github.com/bree-jeune/ems-protocols-radio/internal/store"
	"github.com/bree-jeune/ems-protocols-radio/internal/vision"
)

// Pipeline orchestrates one ingestion run:
// raw text -> normalize -> segment -> merge -> extract -> (enrich) -> store.
// Every stage is a pure transform over the previous stage's complete output.
type Pipeline struct {
	cfg        *model.Config
	cat        *catalog.Catalog
	normalizer *normalize.Normalizer
	segmenter  *segment.Segmenter
	extractor  *extract.Extractor
	narrator   vision.Narrator
}

// IngestSummary is the post-run report for human review. Misses are counted
// here, never raised as errors.
type IngestSummary struct {
	Records       int
	PerCategory   map[model.Category]int
	Medications   int
	Continuations int
	Disambiguated int
	TOCRejected   int
	Uncategorized int
	MissingTitles []string
	Enriched      int
	Warnings      []string
}

// New wires the pipeline from configuration. The title catalog comes from
// the configured YAML override or the built-in default. A narration
// provider that fails to initialize downgrades to a warning: enrichment is
// optional and must never block the deterministic path.
func New(cfg *model.Config) (*Pipeline, error) {
	cat := catalog.Default()
	if cfg.Source.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.Source.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var narrator vision.Narrator
	if cfg.Enrich.Provider != "" {
		n, err := vision.NewNarrator(vision.ConfigFromModel(cfg.Enrich))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: vision narrator unavailable: %v\n", err)
		} else {
			narrator = n
		}
	}

	return &Pipeline{
		cfg:        cfg,
		cat:        cat,
		normalizer: normalize.New(cfg.Normalizer),
		segmenter:  segment.New(cat, cfg.Segmenter),
		extractor:  extract.New(cfg.Extractor),
		narrator:   narrator,
	}, nil
}

// Catalog exposes the resolved title catalog (for the catalog CLI command)
func (p *Pipeline) Catalog() *catalog.Catalog { return p.cat }

// Run executes one ingestion and persists the store. Only a source read or
// store write failure is fatal; everything between accumulates into the
// summary. The store write is replace-on-completion, so a failed run leaves
// any prior store untouched.
func (p *Pipeline) Run(ctx context.Context) (*store.Store, *IngestSummary, error) {
	raw, err := ReadSource(p.cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	cleaned := p.normalizer.Clean(raw)
	segs, segReport := p.segmenter.Segment(cleaned)
	merged := merge.Merge(segs)

	st := store.New(p.cfg.Source.Name, p.cfg.Source.Version)
	summary := &IngestSummary{
		PerCategory:   make(map[model.Category]int),
		Continuations: merged.Continuations,
		Disambiguated: merged.Disambiguated,
		TOCRejected:   segReport.TOCRejected,
		Uncategorized: segReport.Uncategorized,
		MissingTitles: segReport.MissingTitles,
	}

	for _, id := range merged.Order {
		rec := merged.Records[id]
		p.extractor.Extract(rec)
		if err := st.Put(rec); err != nil {
			return nil, nil, fmt.Errorf("store record: %w", err)
		}
		summary.PerCategory[rec.Category]++
		summary.Medications += len(rec.Fields.Medications)
	}
	summary.Records = st.Len()

	if p.narrator != nil && p.cfg.Enrich.ImagesDir != "" {
		p.enrich(ctx, st, summary)
	}

	if err := st.Save(p.cfg.Store.Path); err != nil {
		return nil, nil, err
	}
	return st, summary, nil
}

// Print writes the human-review summary to w-style stderr output
func (s *IngestSummary) Print(verbose bool) {
	fmt.Fprintf(os.Stderr, "Ingested %d records", s.Records)
	for _, cat := range model.Categories() {
		if n := s.PerCategory[cat]; n > 0 {
			fmt.Fprintf(os.Stderr, " %s=%d", cat, n)
		}
	}
	if n := s.PerCategory[model.CategoryUncategorized]; n > 0 {
		fmt.Fprintf(os.Stderr, " Uncategorized=%d", n)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Fprintf(os.Stderr, "Continuations merged: %d, cross-category ids minted: %d, TOC matches dropped: %d\n",
		s.Continuations, s.Disambiguated, s.TOCRejected)
	fmt.Fprintf(os.Stderr, "Medication references extracted: %d\n", s.Medications)
	if s.Enriched > 0 {
		fmt.Fprintf(os.Stderr, "Flowchart narratives added: %d\n", s.Enriched)
	}
	if len(s.MissingTitles) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d catalog titles never found in source\n", len(s.MissingTitles))
		if verbose {
			for _, t := range s.MissingTitles {
				fmt.Fprintf(os.Stderr, "  missing: %s\n", t)
			}
		}
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}
