package advisor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

var (
	rangeDashRegex  = regexp.MustCompile(`\s*[-–—]\s*`)
	digitCommaRegex = regexp.MustCompile(`(\d),(\d)`)
	lakhAmountRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:lakhs?|lacs?|l)\b`)
	kiloAmountRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k\b`)
	bareAmountRegex = regexp.MustCompile(`\b(\d{4,7})\b`)

	// Minimum-income hints in card eligibility text.
	eligibilityMonthlyLakhRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*lakh\s*/?\s*month`)
	eligibilityYearlyLPARegex   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*lpa`)
	eligibilityMonthlyKRegex    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k\s*/?\s*month`)
)

// incomeMarkers are checked before any numeric parsing. Each phrase is
// matched against lowercased text with dash spacing removed.
var incomeMarkers = []aliasEntry[domain.IncomeBucket]{
	{domain.IncomeUnder20K, []string{"<20k", "below 20k", "under 20k", "less than 20000", "less than 20k"}},
	{domain.Income20KTo50K, []string{"20k-50k", "20-50k", "20000-50000"}},
	{domain.Income50KTo1L, []string{"50k-1l", "50k-1 l", "50-100k", "50000-100000", "50k-100k"}},
	{domain.IncomeAbove1Lakh, []string{"1l+", "1 lakh+", "above 1 lakh", "over 1 lakh", "more than 1 lakh"}},
}

// bucketMidpoints estimates monthly income for each bucket.
var bucketMidpoints = map[domain.IncomeBucket]float64{
	domain.IncomeUnder20K:   15000,
	domain.Income20KTo50K:   35000,
	domain.Income50KTo1L:    75000,
	domain.IncomeAbove1Lakh: 120000,
}

// ResolveIncomeBucket parses free text into a monthly income bucket. The
// second return value is false when the text carries no income signal.
func ResolveIncomeBucket(text string) (domain.IncomeBucket, bool) {
	normalized := normalizeIncomeText(text)
	if normalized == "" {
		return "", false
	}

	for _, marker := range incomeMarkers {
		if containsAny(normalized, marker.aliases) {
			return marker.tag, true
		}
	}

	if v, ok := firstAmount(lakhAmountRegex, normalized, 100000); ok {
		return BucketForMonthlyIncome(v), true
	}
	if v, ok := firstAmount(kiloAmountRegex, normalized, 1000); ok {
		return BucketForMonthlyIncome(v), true
	}
	if v, ok := firstAmount(bareAmountRegex, normalized, 1); ok {
		return BucketForMonthlyIncome(v), true
	}
	return "", false
}

// BucketForMonthlyIncome buckets a monthly amount.
func BucketForMonthlyIncome(v float64) domain.IncomeBucket {
	switch {
	case v < 20000:
		return domain.IncomeUnder20K
	case v < 50000:
		return domain.Income20KTo50K
	case v < 100000:
		return domain.Income50KTo1L
	default:
		return domain.IncomeAbove1Lakh
	}
}

// EstimateMonthlyIncome returns the bucket midpoint, or false when unset.
func EstimateMonthlyIncome(bucket domain.IncomeBucket) (float64, bool) {
	v, ok := bucketMidpoints[bucket]
	return v, ok
}

// MinimumIncomeFromEligibility extracts a monthly minimum-income hint from
// card eligibility text. Patterns are tried monthly-lakh, yearly-LPA, then
// monthly-thousands.
func MinimumIncomeFromEligibility(eligibility string) (float64, bool) {
	text := strings.ToLower(eligibility)
	if v, ok := firstAmount(eligibilityMonthlyLakhRegex, text, 100000); ok {
		return v, v > 0
	}
	if v, ok := firstAmount(eligibilityYearlyLPARegex, text, 100000); ok {
		return v / 12, v > 0
	}
	if v, ok := firstAmount(eligibilityMonthlyKRegex, text, 1000); ok {
		return v, v > 0
	}
	return 0, false
}

func normalizeIncomeText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = rangeDashRegex.ReplaceAllString(text, "-")
	for digitCommaRegex.MatchString(text) {
		text = digitCommaRegex.ReplaceAllString(text, "$1$2")
	}
	return text
}

func firstAmount(re *regexp.Regexp, text string, multiplier float64) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n * multiplier, true
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
