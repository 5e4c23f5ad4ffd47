package model

import "time"

// Config is the full pipeline and service configuration. Everything the
// legacy scripts kept as module-level constants lives here and is passed
// explicitly into the pipeline entry point.
type Config struct {
	Source     SourceConfig     `yaml:"source" mapstructure:"source"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Normalizer NormalizerConfig `yaml:"normalizer" mapstructure:"normalizer"`
	Segmenter  SegmenterConfig  `yaml:"segmenter" mapstructure:"segmenter"`
	Extractor  ExtractorConfig  `yaml:"extractor" mapstructure:"extractor"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Verbose    bool             `yaml:"verbose" mapstructure:"verbose"`
}

// SourceConfig describes the manual being ingested
type SourceConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
	// Format is "text" or "html" (an HTML export of the manual)
	Format string `yaml:"format" mapstructure:"format"`
	// CatalogPath optionally overrides the built-in title catalog
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
	Name        string `yaml:"name" mapstructure:"name"`
	Version     string `yaml:"version" mapstructure:"version"`
}

// StoreConfig describes the persisted record store
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// NormalizerConfig holds text cleanup tunables
type NormalizerConfig struct {
	// CollapseDoubled repairs OCR output that doubles every glyph
	// ("CCaarrddiiaacc"). Destructive to legitimately doubled letters, so
	// it must stay off for fault-free extraction paths.
	CollapseDoubled bool `yaml:"collapse_doubled" mapstructure:"collapse_doubled"`
	// MinLineLen drops artifact lines shorter than this many characters
	MinLineLen int `yaml:"min_line_len" mapstructure:"min_line_len"`
	// Boilerplate lists literal header/footer lines stripped wherever seen
	Boilerplate []string `yaml:"boilerplate" mapstructure:"boilerplate"`
}

// SegmenterConfig holds title-scan tunables
type SegmenterConfig struct {
	// FrontMatterLen is the leading span treated as the table-of-contents
	// region when resolving zone anchors
	FrontMatterLen int `yaml:"front_matter_len" mapstructure:"front_matter_len"`
	// MinBody drops segments shorter than this (spurious TOC matches)
	MinBody int `yaml:"min_body" mapstructure:"min_body"`
	// ExtraTitles are matched in addition to the catalog; segments produced
	// from them carry the Uncategorized category
	ExtraTitles []string `yaml:"extra_titles" mapstructure:"extra_titles"`
	// Definitions toggles the terms-and-conventions zone pass
	Definitions bool `yaml:"definitions" mapstructure:"definitions"`
}

// ExtractorConfig holds heuristic extraction tunables. The caps bound noisy
// pattern matches and do not reflect a domain constant.
type ExtractorConfig struct {
	MaxPearls    int `yaml:"max_pearls" mapstructure:"max_pearls"`
	MaxDecisions int `yaml:"max_decisions" mapstructure:"max_decisions"`
	// Medications overrides the built-in drug vocabulary when non-empty
	Medications []string `yaml:"medications" mapstructure:"medications"`
}

// EnrichConfig configures the optional vision narration of flowchart pages
type EnrichConfig struct {
	Provider          string        `yaml:"provider" mapstructure:"provider"`
	Model             string        `yaml:"model" mapstructure:"model"`
	APIKey            string        `yaml:"-" mapstructure:"-"`
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	ImagesDir         string        `yaml:"images_dir" mapstructure:"images_dir"`
	Workers           int           `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens         int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the query service
type ServerConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// DefaultConfig returns the standard tunables. The front-matter and minimum
// body thresholds mirror what reliably separated table-of-contents matches
// from real sections in the source manual.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Format:  "text",
			Name:    "EMS Protocol Manual",
			Version: "unversioned",
		},
		Store: StoreConfig{
			Path: "ems_protocols.json",
		},
		Normalizer: NormalizerConfig{
			CollapseDoubled: false,
			MinLineLen:      3,
			Boilerplate:     []string{"Clark County EMS System"},
		},
		Segmenter: SegmenterConfig{
			FrontMatterLen: 5000,
			MinBody:        100,
			Definitions:    true,
		},
		Extractor: ExtractorConfig{
			MaxPearls:    15,
			MaxDecisions: 10,
		},
		Enrich: EnrichConfig{
			Provider:          "",
			Model:             "gpt-4o",
			Workers:           2,
			RequestsPerSecond: 0.5,
			Timeout:           60 * time.Second,
			MaxTokens:         2000,
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			CacheTTL: 10 * time.Minute,
		},
	}
}
