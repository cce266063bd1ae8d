package catalog

import (
	"context"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// CardLister is the slice of the card repository the graph source needs.
type CardLister interface {
	AllCards(ctx context.Context) ([]domain.Card, error)
}

// GraphSource reads cards previously ingested into the graph store.
type GraphSource struct {
	repo CardLister
}

func NewGraphSource(repo CardLister) *GraphSource {
	return &GraphSource{repo: repo}
}

func (g *GraphSource) Name() string { return SourceGraph }

func (g *GraphSource) Load(ctx context.Context) ([]domain.Card, error) {
	return g.repo.AllCards(ctx)
}
