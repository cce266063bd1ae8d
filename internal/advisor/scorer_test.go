package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

func travelProfile() domain.UserProfile {
	return domain.UserProfile{
		Income:        domain.IncomeAbove1Lakh,
		Spending:      domain.NewSet(domain.SpendingTravel),
		Benefits:      domain.NewSet(domain.BenefitLounge),
		FeePreference: domain.FeeFree,
	}
}

func TestScoreCard_TravelScenario(t *testing.T) {
	card := domain.Card{
		Name:        "Voyager Zero",
		AnnualFee:   0,
		RewardType:  "Travel Points",
		Eligibility: "Salaried, minimum income 50k/month. Complimentary lounge access.",
	}

	got := ScoreCard(card, travelProfile())

	// 10 base + 28 free fee + 18 income + 12 travel + 14 lounge + 5 zero fee.
	assert.Equal(t, 87, got.Value)
	assert.Equal(t, []string{
		"Fee fit: free preference",
		"Income likely matches eligibility",
		"Spend match: travel",
		"Benefit match: lounge access",
	}, got.Reasons)
}

// Eligibility worded without a k, lakh or LPA unit carries no parsable
// minimum, so only the income-known bonus applies.
func TestScoreCard_UnitlessEligibilityGetsIncomeOnlyBonus(t *testing.T) {
	card := domain.Card{
		Name:        "Voyager Zero",
		AnnualFee:   0,
		RewardType:  "Travel Points",
		Eligibility: "Salaried, minimum monthly income of 50000",
		Perks:       []string{"Complimentary lounge access"},
	}

	_, parsed := MinimumIncomeFromEligibility(card.Eligibility)
	require.False(t, parsed)

	got := ScoreCard(card, travelProfile())

	// 10 base + 28 free fee + 8 income known + 12 travel + 14 lounge + 5 zero fee.
	assert.Equal(t, 77, got.Value)
	assert.Equal(t, []string{
		"Fee fit: free preference",
		"Spend match: travel",
		"Benefit match: lounge access",
	}, got.Reasons)
}

func TestScoreCard_ClampsToHundred(t *testing.T) {
	profile := domain.UserProfile{
		Income:        domain.IncomeAbove1Lakh,
		Spending:      domain.NewSet(domain.SpendingCategories...),
		Benefits:      domain.NewSet(domain.Benefits...),
		FeePreference: domain.FeeFree,
	}
	card := domain.Card{
		RewardType:  "Cashback and reward points",
		RewardRate:  "5% on fuel, travel, groceries, dining, shopping and bill payments",
		Eligibility: "Income 30k/month",
		Perks:       []string{"Air miles", "Lounge visits", "Low interest EMI"},
	}

	assert.Equal(t, 100, ScoreCard(card, profile).Value)
}

func TestScoreCard_IncomeBelowEligibility(t *testing.T) {
	profile := domain.UserProfile{Income: domain.IncomeUnder20K, FeePreference: domain.FeeFree}
	card := domain.Card{AnnualFee: 4999, Eligibility: "Minimum 1 lakh/month"}

	got := ScoreCard(card, profile)

	// 10 base + 0 fee fit - 8 income.
	assert.Equal(t, 2, got.Value)
	assert.Contains(t, got.Reasons, "Income may be below target eligibility")
}

func TestScoreCard_EmptyProfileUsesGenericReason(t *testing.T) {
	got := ScoreCard(domain.Card{AnnualFee: 500}, domain.UserProfile{})

	assert.Equal(t, 18, got.Value)
	assert.Equal(t, []string{"Balanced option for general spending and value"}, got.Reasons)
}

func TestScoreCard_IncomeWithoutHint(t *testing.T) {
	got := ScoreCard(domain.Card{AnnualFee: 500}, domain.UserProfile{Income: domain.Income20KTo50K})

	// Known income with no eligibility hint adds 8 and no reason.
	assert.Equal(t, 26, got.Value)
	assert.Equal(t, []string{genericReason}, got.Reasons)
}

func TestFeeFit(t *testing.T) {
	cases := []struct {
		pref domain.FeePreference
		fee  float64
		want int
	}{
		{"", 10000, 8},
		{domain.FeeFree, 0, 28},
		{domain.FeeFree, 1, 0},
		{domain.FeeLow, 1000, 24},
		{domain.FeeLow, 2500, 10},
		{domain.FeeLow, 2501, 0},
		{domain.FeeMedium, 1000, 12},
		{domain.FeeMedium, 5000, 20},
		{domain.FeeMedium, 5001, 6},
		{domain.FeeHigh, 2000, 8},
		{domain.FeeHigh, 10000, 16},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, feeFit(tc.fee, tc.pref), "%s/%v", tc.pref, tc.fee)
	}
}

func TestScoreCard_Bounds(t *testing.T) {
	cards := []domain.Card{
		{},
		{AnnualFee: -50},
		{AnnualFee: 12000, Eligibility: "20 LPA"},
		{RewardType: "lounge miles cashback fuel", Perks: []string{"emi", "dining"}},
	}
	profiles := append(sampleProfiles(), travelProfile())
	for _, c := range cards {
		for _, p := range profiles {
			got := ScoreCard(c, p)
			assert.GreaterOrEqual(t, got.Value, 0)
			assert.LessOrEqual(t, got.Value, 100)
			assert.NotEmpty(t, got.Reasons)
		}
	}
}

func TestRankCards(t *testing.T) {
	cards := []domain.Card{
		{Name: "Plain A", AnnualFee: 3000},
		{Name: "Lounge", AnnualFee: 0, RewardType: "Travel", Perks: []string{"Lounge access"}},
		{Name: "Plain B", AnnualFee: 3000},
		{Name: "Plain C", AnnualFee: 3000},
	}

	ranked := RankCards(cards, travelProfile(), 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Lounge", ranked[0].Name)
	// Equal scores keep catalog order.
	assert.Equal(t, "Plain A", ranked[1].Name)
	assert.Equal(t, "Plain B", ranked[2].Name)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)

	assert.Len(t, RankCards(cards, travelProfile(), 0), len(cards))
	assert.Empty(t, RankCards(nil, travelProfile(), DefaultRecommendationLimit))
}
