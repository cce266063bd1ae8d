package domain

// Card is a normalized catalog record. It is read-only to the advisory core.
type Card struct {
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Issuer            string   `json:"issuer"`
	JoiningFee        float64  `json:"joining_fee"`
	AnnualFee         float64  `json:"annual_fee"`
	RewardType        string   `json:"reward_type"`
	RewardRate        string   `json:"reward_rate"`
	Eligibility       string   `json:"eligibility"`
	Perks             []string `json:"perks"`
	Image             string   `json:"image,omitempty"`
	AffiliateLink     string   `json:"affiliate_link,omitempty"`
	JoiningFeeWaiver  string   `json:"joining_fee_waiver,omitempty"`
	AnnualFeeWaiver   string   `json:"annual_fee_waiver,omitempty"`
	MilestoneBenefits string   `json:"milestone_benefits,omitempty"`
	WelcomeBenefits   string   `json:"welcome_benefits,omitempty"`
}

// ScoredCard is a card augmented with a bounded match score and the reasons
// behind it. It exists only for the duration of one ranking call.
type ScoredCard struct {
	Card
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
