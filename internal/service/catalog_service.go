package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/advisor"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/metrics"
)

const (
	defaultPageSize        = 12
	maxPageSize            = 30
	maxRecommendationLimit = 10
)

// CardCatalog is the read contract over the loaded card catalog.
type CardCatalog interface {
	Get(ctx context.Context) []domain.Card
	SourceName(ctx context.Context) string
	Find(ctx context.Context, slug string) (domain.Card, bool)
}

// CatalogService serves listing, lookup and stateless recommendations.
type CatalogService struct {
	catalog CardCatalog
	metrics *metrics.Metrics
}

// NewCatalogService wires a CatalogService. m may be nil.
func NewCatalogService(catalog CardCatalog, m *metrics.Metrics) *CatalogService {
	return &CatalogService{catalog: catalog, metrics: m}
}

// ListCards filters, sorts and paginates the catalog.
func (s *CatalogService) ListCards(ctx context.Context, params ListCardsParams) CardsPage {
	cards := filterCards(s.catalog.Get(ctx), params.Query, params.RewardType)
	sortCards(cards, params.SortBy, params.SortOrder)

	page, pageSize := normalizePagination(params.Page, params.PageSize)
	meta := buildPaginationMeta(page, pageSize, len(cards))

	start := (meta.Page - 1) * pageSize
	end := start + pageSize
	if start > len(cards) {
		start = len(cards)
	}
	if end > len(cards) {
		end = len(cards)
	}
	return CardsPage{
		Source:     s.catalog.SourceName(ctx),
		Items:      cards[start:end],
		Pagination: meta,
	}
}

// FindCard looks a card up by slug and reports the catalog source.
func (s *CatalogService) FindCard(ctx context.Context, slug string) (domain.Card, string, bool) {
	card, ok := s.catalog.Find(ctx, strings.TrimSpace(slug))
	return card, s.catalog.SourceName(ctx), ok
}

// Recommend ranks the catalog for a client-supplied profile of any shape.
func (s *CatalogService) Recommend(ctx context.Context, rawProfile any, limit int) []Recommendation {
	switch {
	case limit <= 0:
		limit = advisor.DefaultRecommendationLimit
	case limit > maxRecommendationLimit:
		limit = maxRecommendationLimit
	}
	profile := advisor.CoerceProfile(rawProfile)
	recs := toRecommendations(advisor.RankCards(s.catalog.Get(ctx), profile, limit))
	s.metrics.Recommendations(len(recs))
	return recs
}

// ExtractProfile runs the heuristic extractor over text regardless of the
// conversation mode and merges the result onto rawProfile.
func ExtractProfile(text string, rawProfile any) ProfileExtraction {
	patch := advisor.ExtractProfilePatch(text)
	merged := advisor.MergeProfiles(advisor.CoerceProfile(rawProfile), patch)
	return ProfileExtraction{
		Patch:         patch,
		MergedProfile: merged,
		Complete:      advisor.IsProfileComplete(merged),
		NextQuestion:  advisor.MissingProfileQuestion(merged),
	}
}

func filterCards(cards []domain.Card, query, rewardType string) []domain.Card {
	search := strings.ToLower(strings.TrimSpace(query))
	reward := strings.ToLower(strings.TrimSpace(rewardType))
	if reward == "all" {
		reward = ""
	}

	out := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if search != "" && !strings.Contains(searchText(card), search) {
			continue
		}
		if reward != "" && !strings.Contains(strings.ToLower(card.RewardType), reward) {
			continue
		}
		out = append(out, card)
	}
	return out
}

func searchText(card domain.Card) string {
	parts := append([]string{card.Name, card.Issuer, card.RewardType, card.RewardRate}, card.Perks...)
	return strings.ToLower(strings.Join(parts, " "))
}

func sortCards(cards []domain.Card, sortBy, sortOrder string) {
	desc := strings.EqualFold(strings.TrimSpace(sortOrder), "desc")
	var less func(a, b domain.Card) bool
	switch strings.TrimSpace(sortBy) {
	case "annual_fee":
		less = func(a, b domain.Card) bool { return a.AnnualFee < b.AnnualFee }
	case "issuer":
		less = func(a, b domain.Card) bool { return strings.ToLower(a.Issuer) < strings.ToLower(b.Issuer) }
	default:
		less = func(a, b domain.Card) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if desc {
			return less(cards[j], cards[i])
		}
		return less(cards[i], cards[j])
	})
}

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// buildPaginationMeta reports at least one page and clamps page into range.
func buildPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
