package advisor

import (
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// ExtractProfilePatch derives profile facts from a single utterance. Only
// detected fields are set, so merging the patch never erases known facts.
func ExtractProfilePatch(utterance string) domain.ProfilePatch {
	var patch domain.ProfilePatch
	if strings.TrimSpace(utterance) == "" {
		return patch
	}

	if bucket, ok := ResolveIncomeBucket(utterance); ok {
		patch.Income = bucket
	}

	text := strings.ToLower(utterance)
	patch.Spending = matchAll(spendingAliases, text)
	patch.Benefits = matchAll(benefitAliases, text)
	patch.FeePreference = matchFirst(feeAliases, text)
	return patch
}

// matchAll returns every tag with at least one alias present in text, in
// table order.
func matchAll[T ~string](table []aliasEntry[T], text string) domain.Set[T] {
	var out domain.Set[T]
	for _, entry := range table {
		if containsAny(text, entry.aliases) {
			out = out.Union(domain.Set[T]{entry.tag})
		}
	}
	return out
}

// matchFirst returns the first tag in table order with a matching alias.
func matchFirst[T ~string](table []aliasEntry[T], text string) T {
	for _, entry := range table {
		if containsAny(text, entry.aliases) {
			return entry.tag
		}
	}
	var zero T
	return zero
}
