package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hdfc-regalia-gold", Slugify("HDFC  Regalia Gold!"))
	assert.Equal(t, "amazon-pay-icici", Slugify("--Amazon Pay (ICICI)--"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestNormalizeRecord_Aliases(t *testing.T) {
	raw := map[string]any{
		"card_name":       " SBI SimplyCLICK ",
		"bank":            "SBI Card",
		"fees":            map[string]any{"joining": "499", "annual": 499.0},
		"rewardType":      "Reward Points",
		"rewardRate":      "10X on partner sites",
		"eligibility":     "Income 20k/month",
		"features":        "Amazon vouchers, Fuel surcharge waiver, ",
		"welcomeBenefits": "Gift card worth 500",
	}

	want := domain.Card{
		Name:              "SBI SimplyCLICK",
		Slug:              "sbi-simplyclick",
		Issuer:            "SBI Card",
		JoiningFee:        499,
		AnnualFee:         499,
		RewardType:        "Reward Points",
		RewardRate:        "10X on partner sites",
		Eligibility:       "Income 20k/month",
		Perks:             []string{"Amazon vouchers", "Fuel surcharge waiver"},
		Image:             "/cardxpert-card.svg",
		AffiliateLink:     "#",
		JoiningFeeWaiver:  "NA",
		AnnualFeeWaiver:   "NA",
		MilestoneBenefits: "NA",
		WelcomeBenefits:   "Gift card worth 500",
	}
	if diff := cmp.Diff(want, NormalizeRecord(raw)); diff != "" {
		t.Fatalf("unexpected card (-want +got):\n%s", diff)
	}
}

func TestNormalizeRecord_Defaults(t *testing.T) {
	card := NormalizeRecord(map[string]any{
		"annual_fee": -200,
		"joiningFee": "free",
		"slug":       "custom-slug",
		"perks":      []any{"Lounge", 3, nil, ""},
	})

	assert.Equal(t, "Unknown Card", card.Name)
	assert.Equal(t, "custom-slug", card.Slug)
	assert.Equal(t, "Unknown", card.Issuer)
	assert.Zero(t, card.AnnualFee)
	assert.Zero(t, card.JoiningFee)
	assert.Equal(t, "Reward Points", card.RewardType)
	assert.Equal(t, "N/A", card.RewardRate)
	assert.Equal(t, "N/A", card.Eligibility)
	assert.Equal(t, []string{"Lounge", "3"}, card.Perks)

	empty := NormalizeRecord(nil)
	assert.Equal(t, "unknown-card", empty.Slug)
	assert.Equal(t, []string{}, empty.Perks)
}

func TestNormalizeRecord_NonFiniteFee(t *testing.T) {
	for _, raw := range []any{"NaN", "Infinity", "-Infinity", "inf", math.NaN(), math.Inf(1)} {
		card := NormalizeRecord(map[string]any{"name": "Odd", "annual_fee": raw, "joining_fee": raw})
		assert.Zero(t, card.AnnualFee, "%v", raw)
		assert.Zero(t, card.JoiningFee, "%v", raw)

		_, err := json.Marshal(card)
		require.NoError(t, err, "%v", raw)
	}
}

func TestExtractCardsArray(t *testing.T) {
	items := []any{map[string]any{"name": "A"}}

	assert.Equal(t, items, ExtractCardsArray(items))
	assert.Equal(t, items, ExtractCardsArray(map[string]any{"cards": items}))
	assert.Equal(t, items, ExtractCardsArray(map[string]any{"data": map[string]any{"results": items}}))
	assert.Equal(t, items, ExtractCardsArray(map[string]any{"meta": 1, "items": items}))
	assert.Nil(t, ExtractCardsArray(map[string]any{"data": map[string]any{"data": map[string]any{"cards": items}}}))
	assert.Nil(t, ExtractCardsArray("nope"))
	assert.Nil(t, ExtractCardsArray(nil))
}

func TestNormalizeRecords_SkipsNonObjects(t *testing.T) {
	cards := NormalizeRecords([]any{"junk", map[string]any{"name": "Only"}, 7})

	assert.Len(t, cards, 1)
	assert.Equal(t, "only", cards[0].Slug)
}
