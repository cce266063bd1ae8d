package advisor

import (
	"encoding/json"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// CoerceProfile converts untyped JSON (as decoded into any) into a profile.
// Unknown shapes and values outside the vocabularies are treated as absent.
func CoerceProfile(raw any) domain.UserProfile {
	patch := CoercePatch(raw)
	return domain.UserProfile{
		Income:        patch.Income,
		Spending:      patch.Spending,
		Benefits:      patch.Benefits,
		FeePreference: patch.FeePreference,
	}
}

// CoerceProfileJSON decodes raw JSON bytes leniently. Invalid JSON yields an
// empty profile.
func CoerceProfileJSON(data []byte) domain.UserProfile {
	return CoerceProfile(decodeLenient(data))
}

// CoercePatchJSON decodes raw JSON bytes leniently into a patch.
func CoercePatchJSON(data []byte) domain.ProfilePatch {
	return CoercePatch(decodeLenient(data))
}

// CoercePatch converts untyped JSON into a patch. Both camelCase and
// snake_case keys are accepted for the fee preference.
func CoercePatch(raw any) domain.ProfilePatch {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.ProfilePatch{}
	}

	var patch domain.ProfilePatch
	if v := coerceIncome(obj["income"]); v.Valid() {
		patch.Income = v
	}
	patch.Spending = coerceTags(obj["spending"], func(s string) (domain.SpendingCategory, bool) {
		c := domain.SpendingCategory(strings.ToLower(s))
		return c, c.Valid()
	})
	patch.Benefits = coerceTags(obj["benefits"], func(s string) (domain.Benefit, bool) {
		b := domain.Benefit(strings.ToLower(s))
		return b, b.Valid()
	})

	fee := obj["feePreference"]
	if fee == nil {
		fee = obj["fee_preference"]
	}
	if s, ok := fee.(string); ok {
		if f := domain.FeePreference(strings.ToLower(strings.TrimSpace(s))); f.Valid() {
			patch.FeePreference = f
		}
	}
	return patch
}

func coerceIncome(raw any) domain.IncomeBucket {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if b := domain.IncomeBucket(s); b.Valid() {
		return b
	}
	// Providers sometimes answer with a phrase instead of the bucket label.
	if b, ok := ResolveIncomeBucket(s); ok {
		return b
	}
	return ""
}

func coerceTags[T ~string](raw any, parse func(string) (T, bool)) domain.Set[T] {
	var values []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	case []string:
		values = v
	case string:
		values = strings.Split(v, ",")
	default:
		return nil
	}

	var out domain.Set[T]
	for _, s := range values {
		if tag, ok := parse(strings.TrimSpace(s)); ok {
			out = out.Union(domain.Set[T]{tag})
		}
	}
	return out
}

func decodeLenient(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return raw
}
