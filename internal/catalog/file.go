package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// FileSource reads a catalog file. Files ending in .yaml or .yml are decoded
// as YAML, anything else as JSON.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return SourceLocal }

func (f *FileSource) Load(_ context.Context) ([]domain.Card, error) {
	if f.path == "" {
		return nil, fmt.Errorf("%w: no catalog file configured", ErrSourceUnavailable)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	payload, err := decodeCatalog(f.path, data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", f.path, err)
	}
	return NormalizeRecords(ExtractCardsArray(payload)), nil
}

func decodeCatalog(path string, data []byte) (any, error) {
	var payload any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}
