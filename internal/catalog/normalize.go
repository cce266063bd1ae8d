package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

const (
	defaultCardName    = "Unknown Card"
	defaultIssuer      = "Unknown"
	defaultRewardType  = "Reward Points"
	defaultNotApplied  = "N/A"
	defaultExtra       = "NA"
	defaultImage       = "/cardxpert-card.svg"
	defaultAffiliateTo = "#"
)

var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// wrapperKeys are the object keys a remote payload may nest its card array under.
var wrapperKeys = []string{"data", "cards", "results", "items"}

// Slugify lowercases name and joins alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(slugSeparatorRegex.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// NormalizeRecord maps a raw catalog record onto a Card, accepting the field
// aliases used by the supported providers and filling defaults.
func NormalizeRecord(raw map[string]any) domain.Card {
	if raw == nil {
		raw = map[string]any{}
	}
	fees, _ := raw["fees"].(map[string]any)

	name := firstString(defaultCardName, raw["name"], raw["card_name"], raw["cardName"], raw["title"])
	return domain.Card{
		Name:              name,
		Slug:              firstString(Slugify(name), raw["slug"]),
		Issuer:            firstString(defaultIssuer, raw["issuer"], raw["bank"], raw["provider"]),
		JoiningFee:        firstFee(raw["joining_fee"], raw["joiningFee"], fees["joining"]),
		AnnualFee:         firstFee(raw["annual_fee"], raw["annualFee"], fees["annual"]),
		RewardType:        firstString(defaultRewardType, raw["reward_type"], raw["rewardType"]),
		RewardRate:        firstString(defaultNotApplied, raw["reward_rate"], raw["rewardRate"]),
		Eligibility:       firstString(defaultNotApplied, raw["eligibility"]),
		Perks:             firstList(raw["perks"], raw["benefits"], raw["features"]),
		Image:             firstString(defaultImage, raw["image"]),
		AffiliateLink:     firstString(defaultAffiliateTo, raw["affiliate_link"], raw["affiliateLink"]),
		JoiningFeeWaiver:  firstString(defaultExtra, raw["joining_fee_waiver"], raw["joiningFeeWaiver"]),
		AnnualFeeWaiver:   firstString(defaultExtra, raw["annual_fee_waiver"], raw["annualFeeWaiver"]),
		MilestoneBenefits: firstString(defaultExtra, raw["milestone_benefits"], raw["milestoneBenefits"]),
		WelcomeBenefits:   firstString(defaultExtra, raw["welcome_benefits"], raw["welcomeBenefits"]),
	}
}

// NormalizeRecords normalizes every object in items and skips anything else.
func NormalizeRecords(items []any) []domain.Card {
	cards := make([]domain.Card, 0, len(items))
	for _, item := range items {
		if raw, ok := asObject(item); ok {
			cards = append(cards, NormalizeRecord(raw))
		}
	}
	return cards
}

// ExtractCardsArray finds the card array in a decoded payload: the payload
// itself, or an array under one of the wrapper keys, at most one level deep.
func ExtractCardsArray(payload any) []any {
	if items, ok := payload.([]any); ok {
		return items
	}
	obj, ok := asObject(payload)
	if !ok {
		return nil
	}
	for _, key := range wrapperKeys {
		switch v := obj[key].(type) {
		case []any:
			return v
		case map[string]any:
			for _, nested := range wrapperKeys {
				if items, ok := v[nested].([]any); ok {
					return items
				}
			}
		}
	}
	return nil
}

// asObject accepts both JSON objects and YAML mappings with non-string keys.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func firstString(fallback string, values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return fallback
}

// firstFee returns the first value present, coerced to a non-negative number.
// Unparsable values count as zero.
func firstFee(values ...any) float64 {
	for _, v := range values {
		if v == nil {
			continue
		}
		n := toNumber(v)
		if n < 0 {
			return 0
		}
		return n
	}
	return 0
}

// toNumber coerces v to a finite float. NaN and infinities count as zero.
func toNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", ""), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func firstList(values ...any) []string {
	for _, v := range values {
		switch list := v.(type) {
		case []any:
			if len(list) == 0 {
				continue
			}
			out := make([]string, 0, len(list))
			for _, item := range list {
				if item == nil {
					continue
				}
				if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
					out = append(out, s)
				}
			}
			return out
		case []string:
			if len(list) > 0 {
				return firstList(toAnySlice(list))
			}
		case string:
			if strings.TrimSpace(list) == "" {
				continue
			}
			out := []string{}
			for _, part := range strings.Split(list, ",") {
				if s := strings.TrimSpace(part); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return []string{}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
