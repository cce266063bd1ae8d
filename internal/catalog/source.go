// Package catalog loads the credit card catalog from a local file, a remote
// cards API or the graph store, and caches it for the life of the process.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// Source names reported to API clients.
const (
	SourceLocal    = "local"
	SourceExternal = "external"
	SourceGraph    = "graph"
)

// ErrSourceUnavailable reports that a source is not configured or returned no
// cards.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Source loads the full catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Card, error)
}

// FallbackSource tries the primary source and falls back to the secondary one
// when the primary fails or is empty.
type FallbackSource struct {
	primary   Source
	secondary Source
	logger    *zap.Logger
	last      string
}

// NewFallbackSource builds the "auto" source. A nil primary means the
// secondary is used directly.
func NewFallbackSource(primary, secondary Source, logger *zap.Logger) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{primary: primary, secondary: secondary, logger: logger}
}

// Name reports the source that served the last successful load.
func (f *FallbackSource) Name() string {
	if f.last != "" {
		return f.last
	}
	if f.primary != nil {
		return f.primary.Name()
	}
	return f.secondary.Name()
}

func (f *FallbackSource) Load(ctx context.Context) ([]domain.Card, error) {
	if f.primary != nil {
		cards, err := f.primary.Load(ctx)
		if err == nil && len(cards) > 0 {
			f.last = f.primary.Name()
			return cards, nil
		}
		if err == nil {
			err = ErrSourceUnavailable
		}
		f.logger.Warn("primary catalog source failed, using fallback",
			zap.String("primary", f.primary.Name()),
			zap.String("fallback", f.secondary.Name()),
			zap.Error(err),
		)
	}

	cards, err := f.secondary.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", f.secondary.Name(), err)
	}
	f.last = f.secondary.Name()
	return cards, nil
}
