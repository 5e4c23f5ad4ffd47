package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bree-jeune/ems-protocols-radio/internal/store"
	"github.com/bree-jeune/ems-protocols-radio/internal/worker"
)

// enrichResult reports one narration attempt back through the pool
type enrichResult struct {
	id        string
	narrative string
	err       error
}

func (r enrichResult) GetError() error { return r.err }

// enrich runs the optional vision pass: for every record with a page image
// named <id>.jpg in the configured directory, ask the narrator to describe
// the flowchart and attach the narrative. Calls run through a worker pool
// under a shared rate limiter. Any per-record failure becomes a summary
// warning; the records themselves are already complete.
func (p *Pipeline) enrich(ctx context.Context, st *store.Store, summary *IngestSummary) {
	limiter := worker.NewLimiter(p.cfg.Enrich.RequestsPerSecond, 1)
	pool := worker.NewPool(ctx, p.cfg.Enrich.Workers)
	pool.Start()

	submitted := 0
	for _, rec := range st.Records {
		imgPath := filepath.Join(p.cfg.Enrich.ImagesDir, rec.ID+".jpg")
		if _, err := os.Stat(imgPath); err != nil {
			continue
		}
		id := rec.ID
		pool.Submit(func(ctx context.Context) worker.Result {
			if err := limiter.Wait(ctx); err != nil {
				return enrichResult{id: id, err: err}
			}
			jpeg, err := os.ReadFile(imgPath)
			if err != nil {
				return enrichResult{id: id, err: fmt.Errorf("read image: %w", err)}
			}
			narrative, err := p.narrator.Narrate(ctx, jpeg)
			if err != nil {
				return enrichResult{id: id, err: err}
			}
			return enrichResult{id: id, narrative: narrative}
		})
		submitted++
	}

	if submitted == 0 {
		pool.Shutdown()
		return
	}

	for _, res := range pool.Wait() {
		er := res.(enrichResult)
		if er.err != nil {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("narration failed for %s: %v", er.id, er.err))
			continue
		}
		if rec, err := st.Get(er.id); err == nil {
			rec.FlowchartNarrative = er.narrative
			summary.Enriched++
		}
	}
}
