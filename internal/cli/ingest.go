package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	storePath       string
	sourceFormat    string
	catalogPath     string
	sourceName      string
	sourceVersion   string
	collapseDoubled bool
	minBody         int
	ingestTimeout   time.Duration

	enrichProvider string
	enrichModel    string
	imagesDir      string
	enrichWorkers  int
	enrichRPS      float64
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <manual.txt>",
	Short: "Ingest a protocol manual into the record store",
	Long: `Ingest runs the full pipeline over a decoded manual:
- Normalize text (page numbers, boilerplate, optional OCR glyph repair)
- Segment against the title catalog, longest titles first
- Merge multi-page continuations and disambiguate duplicate titles
- Extract clinical sub-fields per record
- Optionally narrate flowchart page images through a vision model
- Write the JSON record store atomically (replace on completion)

Example:
  emsradio ingest ems-protocol-manual.txt
  emsradio ingest manual.txt --store ems_protocols.json --catalog titles.yaml
  emsradio ingest ocr-dump.txt --collapse-doubled
  emsradio ingest manual.txt --vision openai --images-dir ./pages`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&storePath, "store", "ems_protocols.json", "output record store path")
	ingestCmd.Flags().StringVar(&sourceFormat, "format", "text", "source format (text, html)")
	ingestCmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML title catalog (default: built-in)")
	ingestCmd.Flags().StringVar(&sourceName, "source-name", "EMS Protocol Manual", "source name recorded in store metadata")
	ingestCmd.Flags().StringVar(&sourceVersion, "source-version", "unversioned", "source version recorded in store metadata")
	ingestCmd.Flags().BoolVar(&collapseDoubled, "collapse-doubled", false, "repair OCR output that doubles every glyph (destructive, off by default)")
	ingestCmd.Flags().IntVar(&minBody, "min-body", 100, "minimum segment body length; shorter matches are dropped as TOC noise")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "overall ingestion timeout (matters only with vision enrichment)")

	ingestCmd.Flags().StringVar(&enrichProvider, "vision", "", "vision provider for flowchart narration (openai; empty disables)")
	ingestCmd.Flags().StringVar(&enrichModel, "vision-model", "gpt-4o", "vision model name")
	ingestCmd.Flags().StringVar(&imagesDir, "images-dir", "", "directory of <record-id>.jpg flowchart page images")
	ingestCmd.Flags().IntVar(&enrichWorkers, "vision-workers", 2, "concurrent narration calls")
	ingestCmd.Flags().Float64Var(&enrichRPS, "vision-rps", 0.5, "narration requests per second")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Source.Path = args[0]
	cfg.Source.Format = sourceFormat
	cfg.Source.CatalogPath = catalogPath
	cfg.Source.Name = sourceName
	cfg.Source.Version = sourceVersion
	cfg.Store.Path = storePath
	cfg.Normalizer.CollapseDoubled = collapseDoubled
	cfg.Segmenter.MinBody = minBody
	cfg.Verbose = verbose

	if enrichProvider != "" {
		cfg.Enrich.Provider = enrichProvider
		cfg.Enrich.Model = enrichModel
		cfg.Enrich.ImagesDir = imagesDir
		cfg.Enrich.Workers = enrichWorkers
		cfg.Enrich.RequestsPerSecond = enrichRPS

		switch enrichProvider {
		case "openai":
			cfg.Enrich.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Enrich.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
		if imagesDir == "" {
			return fmt.Errorf("--images-dir is required when vision enrichment is enabled")
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting: %s\n", cfg.Source.Path)
		fmt.Fprintf(os.Stderr, "Store: %s\n", cfg.Store.Path)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	_, summary, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	summary.Print(verbose)
	fmt.Printf("Wrote %d records to %s\n", summary.Records, cfg.Store.Path)
	return nil
}
