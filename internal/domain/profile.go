package domain

// IncomeBucket is an ordinal monthly income range.
type IncomeBucket string

const (
	IncomeUnder20K   IncomeBucket = "<20k"
	Income20KTo50K   IncomeBucket = "20k-50k"
	Income50KTo1L    IncomeBucket = "50k-1L"
	IncomeAbove1Lakh IncomeBucket = "1L+"
)

// IncomeBuckets lists the buckets in ascending order.
var IncomeBuckets = []IncomeBucket{IncomeUnder20K, Income20KTo50K, Income50KTo1L, IncomeAbove1Lakh}

// Valid reports whether b is one of the known buckets.
func (b IncomeBucket) Valid() bool {
	for _, known := range IncomeBuckets {
		if b == known {
			return true
		}
	}
	return false
}

// SpendingCategory is a spending tag from the closed vocabulary.
type SpendingCategory string

const (
	SpendingFuel      SpendingCategory = "fuel"
	SpendingTravel    SpendingCategory = "travel"
	SpendingGroceries SpendingCategory = "groceries"
	SpendingDining    SpendingCategory = "dining"
	SpendingShopping  SpendingCategory = "shopping"
	SpendingBills     SpendingCategory = "bills"
)

// SpendingCategories lists the vocabulary in canonical order.
var SpendingCategories = []SpendingCategory{
	SpendingFuel, SpendingTravel, SpendingGroceries, SpendingDining, SpendingShopping, SpendingBills,
}

// Valid reports whether c belongs to the vocabulary.
func (c SpendingCategory) Valid() bool {
	for _, known := range SpendingCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Benefit is a benefit-preference tag from the closed vocabulary.
type Benefit string

const (
	BenefitCashback     Benefit = "cashback"
	BenefitRewardPoints Benefit = "reward points"
	BenefitTravelPoints Benefit = "travel points"
	BenefitLounge       Benefit = "lounge access"
	BenefitLowInterest  Benefit = "low interest"
)

// Benefits lists the vocabulary in canonical order.
var Benefits = []Benefit{
	BenefitCashback, BenefitRewardPoints, BenefitTravelPoints, BenefitLounge, BenefitLowInterest,
}

// Valid reports whether b belongs to the vocabulary.
func (b Benefit) Valid() bool {
	for _, known := range Benefits {
		if b == known {
			return true
		}
	}
	return false
}

// FeePreference is the tolerated annual fee tier.
type FeePreference string

const (
	FeeFree   FeePreference = "free"
	FeeLow    FeePreference = "low"
	FeeMedium FeePreference = "medium"
	FeeHigh   FeePreference = "high"
)

// FeePreferences lists the tiers in extraction priority order.
var FeePreferences = []FeePreference{FeeFree, FeeLow, FeeMedium, FeeHigh}

// Valid reports whether f is one of the known tiers.
func (f FeePreference) Valid() bool {
	for _, known := range FeePreferences {
		if f == known {
			return true
		}
	}
	return false
}

// UserProfile is the cumulative set of preference facts collected during a
// session. Empty scalar values mean "unset"; nil sets mean "absent".
type UserProfile struct {
	Income        IncomeBucket          `json:"income,omitempty"`
	Spending      Set[SpendingCategory] `json:"spending,omitempty"`
	Benefits      Set[Benefit]          `json:"benefits,omitempty"`
	FeePreference FeePreference         `json:"feePreference,omitempty"`
}

// IsComplete reports whether every field needed for a recommendation is known.
func (p UserProfile) IsComplete() bool {
	return p.Income != "" && p.FeePreference != "" && p.Spending.Len() > 0 && p.Benefits.Len() > 0
}

// IsEmpty reports whether no fact is known.
func (p UserProfile) IsEmpty() bool {
	return p.Income == "" && p.FeePreference == "" && p.Spending.Len() == 0 && p.Benefits.Len() == 0
}

// AsPatch returns the profile as a patch carrying every known field.
func (p UserProfile) AsPatch() ProfilePatch {
	return ProfilePatch{
		Income:        p.Income,
		Spending:      p.Spending.Clone(),
		Benefits:      p.Benefits.Clone(),
		FeePreference: p.FeePreference,
	}
}

// ProfilePatch is a partial profile derived from a single utterance. A field
// is present only when a value was detected.
type ProfilePatch struct {
	Income        IncomeBucket          `json:"income,omitempty"`
	Spending      Set[SpendingCategory] `json:"spending,omitempty"`
	Benefits      Set[Benefit]          `json:"benefits,omitempty"`
	FeePreference FeePreference         `json:"feePreference,omitempty"`
}

// IsEmpty reports whether the patch carries no field.
func (p ProfilePatch) IsEmpty() bool {
	return p.Income == "" && p.FeePreference == "" && p.Spending.Len() == 0 && p.Benefits.Len() == 0
}
