package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
)

// Repository persists the card catalog as (:Card)-[:ISSUED_BY]->(:Issuer) and
// (:Card)-[:HAS_PERK]->(:Perk) graphs.
type Repository struct {
	client graph.Client
	nowFn  func() time.Time
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client, nowFn: time.Now}
}

// WithClock overrides the timestamp source, for tests.
func (r *Repository) WithClock(fn func() time.Time) {
	if fn != nil {
		r.nowFn = fn
	}
}

// EnsureSchema creates the uniqueness constraints the upserts rely on.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertCard writes the card node and refreshes its issuer and perk edges.
func (r *Repository) UpsertCard(ctx context.Context, card domain.Card) error {
	if card.Slug == "" {
		return errors.New("card slug is required")
	}

	params := map[string]any{
		"slug":   card.Slug,
		"issuer": card.Issuer,
		"perks":  nonNilStrings(card.Perks),
		"props":  cardProperties(card, r.nowFn()),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertCardCypher, params); err != nil {
		return fmt.Errorf("upsert card %s: %w", card.Slug, err)
	}
	return nil
}

// AllCards returns every stored card ordered by name.
func (r *Repository) AllCards(ctx context.Context) ([]domain.Card, error) {
	res, err := r.client.ExecuteRead(ctx, allCardsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list cards query: %w", err)
	}

	cards := make([]domain.Card, 0, len(res.Records))
	for _, record := range res.Records {
		cards = append(cards, cardFromRecord(record))
	}
	return cards, nil
}

// FindCard looks a card up by slug. The boolean is false when no card matches.
func (r *Repository) FindCard(ctx context.Context, slug string) (domain.Card, bool, error) {
	if slug == "" {
		return domain.Card{}, false, errors.New("card slug is required")
	}
	res, err := r.client.ExecuteRead(ctx, findCardCypher, map[string]any{"slug": slug})
	if err != nil {
		return domain.Card{}, false, fmt.Errorf("find card %s: %w", slug, err)
	}
	record := res.First()
	if record == nil {
		return domain.Card{}, false, nil
	}
	return cardFromRecord(record), true, nil
}

// CountCards returns the number of stored cards.
func (r *Repository) CountCards(ctx context.Context) (int, error) {
	res, err := r.client.ExecuteRead(ctx, countCardsCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count cards query: %w", err)
	}
	record := res.First()
	if record == nil {
		return 0, nil
	}
	return int(toFloat64(record["total"])), nil
}

func cardProperties(c domain.Card, now time.Time) map[string]any {
	return map[string]any{
		"name":              c.Name,
		"issuer":            c.Issuer,
		"joiningFee":        c.JoiningFee,
		"annualFee":         c.AnnualFee,
		"rewardType":        c.RewardType,
		"rewardRate":        c.RewardRate,
		"eligibility":       c.Eligibility,
		"perks":             nonNilStrings(c.Perks),
		"image":             c.Image,
		"affiliateLink":     c.AffiliateLink,
		"joiningFeeWaiver":  c.JoiningFeeWaiver,
		"annualFeeWaiver":   c.AnnualFeeWaiver,
		"milestoneBenefits": c.MilestoneBenefits,
		"welcomeBenefits":   c.WelcomeBenefits,
		"updatedAt":         now.UTC().Format(time.RFC3339Nano),
	}
}

func cardFromRecord(record graph.Record) domain.Card {
	return domain.Card{
		Name:              toString(record["name"]),
		Slug:              toString(record["slug"]),
		Issuer:            toString(record["issuer"]),
		JoiningFee:        toFloat64(record["joiningFee"]),
		AnnualFee:         toFloat64(record["annualFee"]),
		RewardType:        toString(record["rewardType"]),
		RewardRate:        toString(record["rewardRate"]),
		Eligibility:       toString(record["eligibility"]),
		Perks:             toStringSlice(record["perks"]),
		Image:             toString(record["image"]),
		AffiliateLink:     toString(record["affiliateLink"]),
		JoiningFeeWaiver:  toString(record["joiningFeeWaiver"]),
		AnnualFeeWaiver:   toString(record["annualFeeWaiver"]),
		MilestoneBenefits: toString(record["milestoneBenefits"]),
		WelcomeBenefits:   toString(record["welcomeBenefits"]),
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

var schemaStatements = []string{
	`CREATE CONSTRAINT card_slug IF NOT EXISTS FOR (c:Card) REQUIRE c.slug IS UNIQUE`,
	`CREATE CONSTRAINT issuer_name IF NOT EXISTS FOR (i:Issuer) REQUIRE i.name IS UNIQUE`,
	`CREATE CONSTRAINT perk_name IF NOT EXISTS FOR (p:Perk) REQUIRE p.name IS UNIQUE`,
}

const upsertCardCypher = `
MERGE (c:Card {slug: $slug})
SET c += $props
WITH c
OPTIONAL MATCH (c)-[stale:ISSUED_BY|HAS_PERK]->()
DELETE stale
WITH DISTINCT c
MERGE (i:Issuer {name: $issuer})
MERGE (c)-[:ISSUED_BY]->(i)
FOREACH (perk IN $perks |
	MERGE (p:Perk {name: perk})
	MERGE (c)-[:HAS_PERK]->(p)
)
RETURN c.slug AS slug
`

const cardColumns = `
RETURN c.slug AS slug,
       c.name AS name,
       coalesce(i.name, c.issuer) AS issuer,
       c.joiningFee AS joiningFee,
       c.annualFee AS annualFee,
       c.rewardType AS rewardType,
       c.rewardRate AS rewardRate,
       c.eligibility AS eligibility,
       c.perks AS perks,
       c.image AS image,
       c.affiliateLink AS affiliateLink,
       c.joiningFeeWaiver AS joiningFeeWaiver,
       c.annualFeeWaiver AS annualFeeWaiver,
       c.milestoneBenefits AS milestoneBenefits,
       c.welcomeBenefits AS welcomeBenefits
`

const allCardsCypher = `
MATCH (c:Card)
OPTIONAL MATCH (c)-[:ISSUED_BY]->(i:Issuer)
` + cardColumns + `
ORDER BY toLower(c.name), c.slug
`

const findCardCypher = `
MATCH (c:Card {slug: $slug})
OPTIONAL MATCH (c)-[:ISSUED_BY]->(i:Issuer)
` + cardColumns + `
LIMIT 1
`

const countCardsCypher = `
MATCH (c:Card)
RETURN count(c) AS total
`
