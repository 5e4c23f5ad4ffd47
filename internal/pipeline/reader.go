package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/normalize"
)

// ReadSource loads the manual text. Undecodable byte sequences are replaced
// rather than failing: the manual passes through enough OCR and export
// tooling that stray bytes are routine. A read failure here is the one
// fatal error of an ingestion run.
func ReadSource(cfg model.SourceConfig) (string, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", cfg.Path, err)
	}

	text := strings.ToValidUTF8(string(data), "�")

	if strings.EqualFold(cfg.Format, "html") {
		text, err = normalize.FromHTML(text)
		if err != nil {
			return "", fmt.Errorf("parse html source %s: %w", cfg.Path, err)
		}
	}
	return text, nil
}
