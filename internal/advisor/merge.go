package advisor

import "github.com/Ankit6149/credit-card-recommendation-system/internal/domain"

// MergeProfiles applies patch on top of base and returns a new profile.
// Scalars in the patch override; sets are unioned in first-seen order and
// dropped when empty. Neither argument is modified.
func MergeProfiles(base domain.UserProfile, patch domain.ProfilePatch) domain.UserProfile {
	merged := domain.UserProfile{
		Income:        base.Income,
		Spending:      base.Spending.Union(patch.Spending),
		Benefits:      base.Benefits.Union(patch.Benefits),
		FeePreference: base.FeePreference,
	}
	if patch.Income != "" {
		merged.Income = patch.Income
	}
	if patch.FeePreference != "" {
		merged.FeePreference = patch.FeePreference
	}
	return merged
}

// UnionPatches combines two patches as if they came from one utterance, with
// b winning on scalar fields.
func UnionPatches(a, b domain.ProfilePatch) domain.ProfilePatch {
	out := domain.ProfilePatch{
		Income:        a.Income,
		Spending:      a.Spending.Union(b.Spending),
		Benefits:      a.Benefits.Union(b.Benefits),
		FeePreference: a.FeePreference,
	}
	if b.Income != "" {
		out.Income = b.Income
	}
	if b.FeePreference != "" {
		out.FeePreference = b.FeePreference
	}
	return out
}

// IsProfileComplete reports whether income, fee preference and at least one
// spending and benefit tag are known.
func IsProfileComplete(p domain.UserProfile) bool {
	return p.IsComplete()
}

// MissingProfileQuestion returns the follow-up question for the first unknown
// field, or a ready message when the profile is complete.
func MissingProfileQuestion(p domain.UserProfile) string {
	switch {
	case p.Income == "":
		return "What is your monthly income range (<20k, 20k-50k, 50k-1L, or 1L+)?"
	case p.Spending.Len() == 0:
		return "What are your top spending categories (fuel, travel, groceries, dining, shopping, bills)?"
	case p.Benefits.Len() == 0:
		return "Which benefits do you prefer (cashback, reward points, travel points, lounge access, low interest)?"
	case p.FeePreference == "":
		return "What annual fee do you prefer (free, low, medium, high)?"
	default:
		return "I have enough details. I can recommend the best options now."
	}
}
