package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/catalog"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// Generator produces a synthetic card catalog whose wording exercises the
// scorer's keyword tables.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments cardFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumCards <= 0 {
		cfg.NumCards = DefaultConfig().NumCards
	}
	if cfg.ZeroFeeChance < 0 || cfg.ZeroFeeChance > 1 {
		cfg.ZeroFeeChance = DefaultConfig().ZeroFeeChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultCardFragments(),
	}
}

// Generate synthesises cards with unique slugs. It respects context
// cancellation.
func (g *Generator) Generate(ctx context.Context) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, g.cfg.NumCards)
	seen := make(map[string]int, g.cfg.NumCards)

	for i := 0; i < g.cfg.NumCards; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		issuer := pick(g.rand, g.fragments.issuers)
		family := g.fragments.families[g.rand.Intn(len(g.fragments.families))]
		tier := pick(g.rand, g.fragments.tiers)

		name := fmt.Sprintf("%s %s %s", issuer, family.name, tier)
		slug := catalog.Slugify(name)
		if n := seen[slug]; n > 0 {
			name = fmt.Sprintf("%s %d", name, n+1)
			slug = catalog.Slugify(name)
		}
		seen[catalog.Slugify(fmt.Sprintf("%s %s %s", issuer, family.name, tier))]++

		annualFee := g.randomFee()
		cards = append(cards, domain.Card{
			Name:              name,
			Slug:              slug,
			Issuer:            issuer + " Bank",
			JoiningFee:        annualFee,
			AnnualFee:         annualFee,
			RewardType:        family.rewardType,
			RewardRate:        fmt.Sprintf(family.rateFormat, 1+g.rand.Intn(5)),
			Eligibility:       g.randomEligibility(annualFee),
			Perks:             g.randomPerks(family.perks),
			Image:             "/cardxpert-card.svg",
			AffiliateLink:     "#",
			JoiningFeeWaiver:  g.feeWaiver(annualFee),
			AnnualFeeWaiver:   g.feeWaiver(annualFee),
			MilestoneBenefits: pick(g.rand, g.fragments.milestones),
			WelcomeBenefits:   pick(g.rand, g.fragments.welcomes),
		})
	}
	return cards, nil
}

func (g *Generator) randomFee() float64 {
	if g.rand.Float64() < g.cfg.ZeroFeeChance {
		return 0
	}
	return g.fragments.fees[g.rand.Intn(len(g.fragments.fees))]
}

// randomEligibility ties the income bar loosely to the fee so premium cards
// ask for more.
func (g *Generator) randomEligibility(fee float64) string {
	switch {
	case fee >= 5000:
		return fmt.Sprintf("Salaried, minimum income %.1f lakh/month", 1+float64(g.rand.Intn(3))*0.5)
	case fee >= 1000:
		return fmt.Sprintf("Minimum income %dk/month", 40+5*g.rand.Intn(8))
	case g.rand.Intn(4) == 0:
		return fmt.Sprintf("Annual income above %d LPA", 3+g.rand.Intn(4))
	default:
		return fmt.Sprintf("Minimum income %dk/month", 15+5*g.rand.Intn(4))
	}
}

func (g *Generator) randomPerks(pool []string) []string {
	n := 2 + g.rand.Intn(2)
	if n > len(pool) {
		n = len(pool)
	}
	perm := g.rand.Perm(len(pool))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}

func (g *Generator) feeWaiver(fee float64) string {
	if fee == 0 {
		return "Lifetime free"
	}
	return fmt.Sprintf("Waived on annual spend of Rs. %d", (2+g.rand.Intn(4))*50000)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}

type cardFamily struct {
	name       string
	rewardType string
	rateFormat string
	perks      []string
}

type cardFragments struct {
	issuers    []string
	tiers      []string
	fees       []float64
	families   []cardFamily
	milestones []string
	welcomes   []string
}

func defaultCardFragments() cardFragments {
	return cardFragments{
		issuers: []string{"Harbor", "Skyline", "Summit", "Lotus", "Meridian", "Banyan", "Coral", "Everest"},
		tiers:   []string{"Classic", "Select", "Plus", "Signature", "Infinite", "Prime"},
		fees:    []float64{199, 499, 999, 1500, 2500, 5000, 10000},
		families: []cardFamily{
			{"Cashback", "Cashback", "%d%% cashback on online shopping", []string{
				"Cashback on Amazon and Flipkart", "Cashback on utility bill payments", "1% cashback on all spends", "Grocery cashback at supermarkets",
			}},
			{"Rewards", "Reward Points", "%d reward points per Rs. 100", []string{
				"Accelerated reward points on dining", "Bonus points on online shopping", "Reward points on restaurant bills", "Points on electricity and recharge bills",
			}},
			{"Voyager", "Travel Points", "%d air miles per Rs. 100", []string{
				"Complimentary airport lounge access", "Air miles on flight bookings", "Hotel discounts", "Travel insurance cover",
			}},
			{"Fuel", "Fuel Surcharge Waiver", "%d%% fuel surcharge waiver", []string{
				"Fuel surcharge waiver at petrol pumps", "Points on diesel and petrol", "Cashback on grocery spends",
			}},
			{"Freedom", "Low Interest", "%d.5%% monthly interest rate", []string{
				"Low interest on revolving credit", "EMI conversion on large purchases", "Balance transfer at low interest",
			}},
		},
		milestones: []string{"NA", "Bonus 5,000 points on Rs. 2 lakh annual spend", "Gift voucher on Rs. 1 lakh quarterly spend"},
		welcomes:   []string{"NA", "Welcome voucher worth Rs. 500", "2,000 bonus points on first transaction"},
	}
}
