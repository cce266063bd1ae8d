package advisor

import (
	"sort"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

const (
	baseScore          = 10
	unsetFeeScore      = 8
	incomeMatchBonus   = 18
	incomeShortPenalty = 8
	incomeOnlyBonus    = 8
	spendingMatchBonus = 12
	benefitMatchBonus  = 14
	zeroFeeBonus       = 5
	minScore           = 0
	maxScore           = 100

	// DefaultRecommendationLimit is the number of cards presented to the user.
	DefaultRecommendationLimit = 3

	genericReason = "Balanced option for general spending and value"
)

// Score is the result of matching one card against a profile.
type Score struct {
	Value   int
	Reasons []string
}

// ScoreCard computes a match score in [0,100] and the reasons behind it. The
// reasons list is never empty.
func ScoreCard(card domain.Card, profile domain.UserProfile) Score {
	annualFee := card.AnnualFee
	if annualFee < 0 {
		annualFee = 0
	}
	text := cardText(card)

	score := baseScore
	var reasons []string

	score += feeFit(annualFee, profile.FeePreference)
	if profile.FeePreference != "" {
		reasons = append(reasons, "Fee fit: "+string(profile.FeePreference)+" preference")
	}

	userIncome, hasIncome := EstimateMonthlyIncome(profile.Income)
	minIncome, hasMinimum := MinimumIncomeFromEligibility(card.Eligibility)
	switch {
	case hasIncome && hasMinimum && userIncome >= minIncome:
		score += incomeMatchBonus
		reasons = append(reasons, "Income likely matches eligibility")
	case hasIncome && hasMinimum:
		score -= incomeShortPenalty
		reasons = append(reasons, "Income may be below target eligibility")
	case hasIncome:
		score += incomeOnlyBonus
	}

	if matched := matchProfileTags(profile.Spending, cardSpendingKeywords, text); len(matched) > 0 {
		score += spendingMatchBonus * len(matched)
		reasons = append(reasons, "Spend match: "+strings.Join(matched, ", "))
	}
	if matched := matchProfileTags(profile.Benefits, cardBenefitKeywords, text); len(matched) > 0 {
		score += benefitMatchBonus * len(matched)
		reasons = append(reasons, "Benefit match: "+strings.Join(matched, ", "))
	}

	if annualFee == 0 {
		score += zeroFeeBonus
	}

	if len(reasons) == 0 {
		reasons = []string{genericReason}
	}
	return Score{Value: clamp(score, minScore, maxScore), Reasons: reasons}
}

// RankCards scores every card and returns the best limit cards, highest score
// first. Ties keep catalog order. A non-positive limit returns all cards.
func RankCards(cards []domain.Card, profile domain.UserProfile, limit int) []domain.ScoredCard {
	if len(cards) == 0 {
		return []domain.ScoredCard{}
	}

	scored := make([]domain.ScoredCard, 0, len(cards))
	for _, card := range cards {
		s := ScoreCard(card, profile)
		scored = append(scored, domain.ScoredCard{Card: card, Score: s.Value, Reasons: s.Reasons})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func feeFit(fee float64, pref domain.FeePreference) int {
	switch pref {
	case domain.FeeFree:
		if fee == 0 {
			return 28
		}
		return 0
	case domain.FeeLow:
		switch {
		case fee <= 1000:
			return 24
		case fee <= 2500:
			return 10
		default:
			return 0
		}
	case domain.FeeMedium:
		switch {
		case fee > 1000 && fee <= 5000:
			return 20
		case fee <= 1000:
			return 12
		default:
			return 6
		}
	case domain.FeeHigh:
		if fee > 2000 {
			return 16
		}
		return 8
	default:
		return unsetFeeScore
	}
}

// matchProfileTags returns the profile tags, in profile order, whose keywords
// appear in text.
func matchProfileTags[T ~string](tags domain.Set[T], keywords []aliasEntry[T], text string) []string {
	var matched []string
	for _, tag := range tags {
		for _, entry := range keywords {
			if entry.tag == tag && containsAny(text, entry.aliases) {
				matched = append(matched, string(tag))
				break
			}
		}
	}
	return matched
}

func cardText(card domain.Card) string {
	parts := make([]string, 0, 3+len(card.Perks))
	for _, p := range append([]string{card.RewardType, card.RewardRate, card.Eligibility}, card.Perks...) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
