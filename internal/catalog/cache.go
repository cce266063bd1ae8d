package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

const defaultLoadTimeout = 15 * time.Second

// Cache loads the catalog from its source on first use and serves it for
// the life of the process. A failed load leaves an empty catalog.
type Cache struct {
	source      Source
	logger      *zap.Logger
	loadTimeout time.Duration
	onLoad      func(source string, count int)

	once   sync.Once
	cards  []domain.Card
	bySlug map[string]int
	name   string
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithLoadTimeout bounds the one-time load.
func WithLoadTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// WithLoadHook registers fn to run once after the catalog is loaded.
func WithLoadHook(fn func(source string, count int)) CacheOption {
	return func(c *Cache) { c.onLoad = fn }
}

func NewCache(source Source, logger *zap.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{source: source, logger: logger, loadTimeout: defaultLoadTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the catalog, loading it on the first call. Callers must not
// modify the returned slice.
func (c *Cache) Get(ctx context.Context) []domain.Card {
	c.once.Do(func() { c.load(ctx) })
	return c.cards
}

// SourceName reports which source served the catalog.
func (c *Cache) SourceName(ctx context.Context) string {
	c.Get(ctx)
	return c.name
}

// Find returns the card with the given slug.
func (c *Cache) Find(ctx context.Context, slug string) (domain.Card, bool) {
	cards := c.Get(ctx)
	idx, ok := c.bySlug[slug]
	if !ok {
		return domain.Card{}, false
	}
	return cards[idx], true
}

func (c *Cache) load(ctx context.Context) {
	// The load outlives the request that triggered it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
	defer cancel()

	started := time.Now()
	c.name = c.source.Name()
	cards, err := c.source.Load(ctx)
	if err != nil {
		c.logger.Warn("catalog load failed, serving empty catalog",
			zap.String("source", c.name),
			zap.Error(err),
		)
		cards = nil
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	c.name = c.source.Name()

	// Every record is served; a repeated slug resolves to its first card.
	c.cards = cards
	c.bySlug = make(map[string]int, len(cards))
	for i, card := range cards {
		if _, seen := c.bySlug[card.Slug]; !seen {
			c.bySlug[card.Slug] = i
		}
	}

	c.logger.Info("catalog loaded",
		zap.String("source", c.name),
		zap.Int("cards", len(c.cards)),
		zap.Duration("elapsed", time.Since(started)),
	)
	if c.onLoad != nil {
		c.onLoad(c.name, len(c.cards))
	}
}
