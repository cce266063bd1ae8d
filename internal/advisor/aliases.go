// Package advisor holds the conversational profile and card recommendation
// engine: alias matching, profile extraction and merging, card-mode detection,
// card scoring and reply formatting. Every function is pure and total.
package advisor

import "github.com/Ankit6149/credit-card-recommendation-system/internal/domain"

// aliasEntry pairs a canonical tag with the lowercase surface phrases that
// imply it.
type aliasEntry[T ~string] struct {
	tag     T
	aliases []string
}

// spendingAliases drives profile extraction. Order is the canonical key order
// used for patch output.
var spendingAliases = []aliasEntry[domain.SpendingCategory]{
	{domain.SpendingFuel, []string{"fuel", "petrol", "diesel", "gas station"}},
	{domain.SpendingTravel, []string{"travel", "flight", "airline", "hotel", "trip", "vacation"}},
	{domain.SpendingGroceries, []string{"grocery", "groceries", "supermarket", "bigbasket", "blinkit"}},
	{domain.SpendingDining, []string{"dining", "restaurant", "food", "eating out", "swiggy", "zomato"}},
	{domain.SpendingShopping, []string{"shopping", "shop", "e-commerce", "ecommerce", "amazon", "flipkart"}},
	{domain.SpendingBills, []string{"bill", "utility", "utilities", "electricity", "recharge", "rent"}},
}

var benefitAliases = []aliasEntry[domain.Benefit]{
	{domain.BenefitCashback, []string{"cashback", "cash back"}},
	{domain.BenefitRewardPoints, []string{"reward point", "rewards", "reward"}},
	{domain.BenefitTravelPoints, []string{"travel point", "air miles", "miles"}},
	{domain.BenefitLounge, []string{"lounge"}},
	{domain.BenefitLowInterest, []string{"low interest", "low apr", "interest rate", "emi"}},
}

// feeAliases is checked in priority order; the first tier with a match wins.
var feeAliases = []aliasEntry[domain.FeePreference]{
	{domain.FeeFree, []string{"no annual fee", "no fee", "zero fee", "lifetime free", "free"}},
	{domain.FeeLow, []string{"low fee", "low annual fee", "low cost", "cheap", "budget", "under 1000"}},
	{domain.FeeMedium, []string{"medium", "moderate", "mid-range", "mid range", "1000-5000"}},
	{domain.FeeHigh, []string{"high fee", "high annual fee", "premium", "don't mind paying", "5000+"}},
}

// The scorer matches card text with its own keyword maps. They overlap with
// the extraction tables but are tuned to catalog wording rather than user
// wording.
var cardSpendingKeywords = []aliasEntry[domain.SpendingCategory]{
	{domain.SpendingFuel, []string{"fuel", "petrol", "diesel"}},
	{domain.SpendingTravel, []string{"travel", "flight", "airline", "hotel", "lounge"}},
	{domain.SpendingGroceries, []string{"grocery", "groceries", "supermarket"}},
	{domain.SpendingDining, []string{"dining", "restaurant", "food"}},
	{domain.SpendingShopping, []string{"shopping", "online", "amazon", "flipkart", "myntra"}},
	{domain.SpendingBills, []string{"bill", "utility", "electricity", "recharge"}},
}

var cardBenefitKeywords = []aliasEntry[domain.Benefit]{
	{domain.BenefitCashback, []string{"cashback", "cash back"}},
	{domain.BenefitRewardPoints, []string{"reward", "points"}},
	{domain.BenefitTravelPoints, []string{"miles", "travel points"}},
	{domain.BenefitLounge, []string{"lounge"}},
	{domain.BenefitLowInterest, []string{"low interest", "emi", "interest"}},
}
