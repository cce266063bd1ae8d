package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet_DedupesAndDropsEmpty(t *testing.T) {
	s := NewSet(SpendingFuel, "", SpendingTravel, SpendingFuel)

	assert.Equal(t, Set[SpendingCategory]{SpendingFuel, SpendingTravel}, s)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(SpendingTravel))
	assert.False(t, s.Contains(SpendingBills))
}

func TestSet_UnionKeepsFirstSeenOrder(t *testing.T) {
	a := NewSet(BenefitLounge, BenefitCashback)
	b := NewSet(BenefitCashback, BenefitLowInterest)

	assert.Equal(t, Set[Benefit]{BenefitLounge, BenefitCashback, BenefitLowInterest}, a.Union(b))
	assert.Nil(t, Set[Benefit](nil).Union(Set[Benefit]{}))
	assert.Equal(t, []string{"lounge access", "cashback"}, a.Strings())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	a := NewSet(SpendingDining)
	c := a.Clone()
	c[0] = SpendingBills

	assert.Equal(t, SpendingDining, a[0])
	assert.Nil(t, Set[SpendingCategory](nil).Clone())
}

func TestUserProfile_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(UserProfile{Income: Income20KTo50K})
	require.NoError(t, err)
	assert.JSONEq(t, `{"income":"20k-50k"}`, string(data))

	var p UserProfile
	require.NoError(t, json.Unmarshal([]byte(`{"spending":["fuel"],"feePreference":"low"}`), &p))
	assert.Equal(t, Set[SpendingCategory]{SpendingFuel}, p.Spending)
	assert.Equal(t, FeeLow, p.FeePreference)
}

func TestUserProfile_IsComplete(t *testing.T) {
	p := UserProfile{
		Income:        IncomeAbove1Lakh,
		Spending:      NewSet(SpendingTravel),
		Benefits:      NewSet(BenefitLounge),
		FeePreference: FeeHigh,
	}
	assert.True(t, p.IsComplete())
	assert.False(t, p.IsEmpty())

	p.Benefits = nil
	assert.False(t, p.IsComplete())
	assert.True(t, UserProfile{}.IsEmpty())
}

func TestVocabularyValidation(t *testing.T) {
	assert.True(t, Income50KTo1L.Valid())
	assert.False(t, IncomeBucket("50k-1l").Valid())
	assert.True(t, SpendingGroceries.Valid())
	assert.False(t, SpendingCategory("rent").Valid())
	assert.True(t, BenefitTravelPoints.Valid())
	assert.False(t, FeePreference("none").Valid())
}

func TestParseChatModeAndIntent(t *testing.T) {
	assert.Equal(t, ModeCards, ParseChatMode("cards"))
	assert.Equal(t, ModeAuto, ParseChatMode("CARDS"))
	assert.Equal(t, IntentProfileCollection, ParseIntent("profile_collection"))
	assert.Equal(t, IntentGeneralChat, ParseIntent("other"))
}
