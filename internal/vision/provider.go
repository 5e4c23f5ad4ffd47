package vision

import (
	"context"
	"time"
)

// Narrator converts a protocol flowchart page image into a linear textual
// explanation suitable for reading aloud. It is an optional enrichment
// collaborator outside the deterministic pipeline: a Narrator failure must
// never block extraction.
type Narrator interface {
	// Name returns the provider name
	Name() string

	// Narrate describes one JPEG page image
	Narrate(ctx context.Context, jpeg []byte) (string, error)
}

// Config holds narration provider settings
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model is the vision-capable model name
	Model string

	// APIKey authenticates against the provider
	APIKey string

	// BaseURL overrides the provider endpoint (e.g. a proxy)
	BaseURL string

	// Timeout bounds one narration call
	Timeout time.Duration

	// MaxTokens limits the response length
	MaxTokens int
}

// DefaultConfig returns sensible defaults with narration disabled
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "gpt-4o",
		Timeout:   60 * time.Second,
		MaxTokens: 2000,
	}
}

// narratePrompt asks for a readable linear walk of the flowchart. Doses and
// steps must come through verbatim; formatting is stripped because the
// output is fed to a text-to-speech reader.
const narratePrompt = "You are an expert EMS instructor. Look at this protocol flowchart. " +
	"Convert it into a clear, linear textual explanation. Describe the flow of decisions logically. " +
	"Capture every drug dose and step accurately. Return ONLY the raw text explanation."
