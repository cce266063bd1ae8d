package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// CatalogFileName is the file written by WriteCatalog.
const CatalogFileName = "cards.json"

// WriteCatalog serializes the cards into cards.json under the provided
// directory and returns the written path.
func WriteCatalog(cards []domain.Card, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, CatalogFileName)
	if err := writeJSON(path, cards); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
