package vision

import (
	"fmt"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// NewNarrator creates a narration provider from configuration. An empty
// provider name means narration is disabled and returns (nil, nil).
func NewNarrator(config Config) (Narrator, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAINarrator(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown vision provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts the pipeline's enrichment config
func ConfigFromModel(cfg model.EnrichConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}
