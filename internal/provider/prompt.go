package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// maxPromptCards bounds how much of the catalog is serialized into a prompt.
const maxPromptCards = 40

const systemPrompt = `You are CardXpert, a friendly personal-finance assistant for users in India.
You can chat about any topic. When the user wants credit card help, collect their profile one question at a time:
monthly income range (<20k, 20k-50k, 50k-1L, 1L+), spending categories (fuel, travel, groceries, dining, shopping, bills),
preferred benefits (cashback, reward points, travel points, lounge access, low interest) and annual fee preference (free, low, medium, high).
Only recommend cards from the provided catalog. Keep replies short and plain text, without markdown.

Always answer with a single JSON object and nothing else:
{"reply": string, "intent": "general_chat" | "finance_guidance" | "profile_collection" | "card_recommendation",
 "profile_updates": {"income"?: string, "spending"?: [string], "benefits"?: [string], "feePreference"?: string},
 "should_show_recommendations": boolean}`

const strictReminder = `Your previous answer could not be parsed. Respond with ONLY the JSON object described above.
Do not wrap it in code fences and do not add any text before or after it.`

// PromptInput is everything the prompt builder needs for one turn.
type PromptInput struct {
	Messages   []domain.Message
	Profile    domain.UserProfile
	Catalog    []domain.Card
	ActiveMode domain.ChatMode
	Strict     bool
}

type promptCard struct {
	Name       string  `json:"name"`
	Issuer     string  `json:"issuer"`
	AnnualFee  float64 `json:"annual_fee"`
	RewardType string  `json:"reward_type"`
	RewardRate string  `json:"reward_rate"`
}

// BuildPrompt renders the transcript, profile and a compact catalog into a
// completion prompt. Strict appends the JSON-only reminder used on retry.
func BuildPrompt(in PromptInput) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Conversation mode: %s\n\n", modeOrAuto(in.ActiveMode))

	profile, _ := json.Marshal(in.Profile)
	fmt.Fprintf(&b, "Current user profile (JSON): %s\n\n", profile)

	if in.ActiveMode == domain.ModeCards && len(in.Catalog) > 0 {
		fmt.Fprintf(&b, "Card catalog (JSON): %s\n\n", compactCatalog(in.Catalog))
	}

	b.WriteString("Conversation:\n")
	for _, m := range in.Messages {
		speaker := "User"
		if m.Role == domain.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	b.WriteString("\nRespond as the assistant.")

	if in.Strict {
		b.WriteString("\n\n")
		b.WriteString(strictReminder)
	}
	return Prompt{System: systemPrompt, User: b.String()}
}

func compactCatalog(cards []domain.Card) []byte {
	if len(cards) > maxPromptCards {
		cards = cards[:maxPromptCards]
	}
	out := make([]promptCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, promptCard{
			Name:       c.Name,
			Issuer:     c.Issuer,
			AnnualFee:  c.AnnualFee,
			RewardType: c.RewardType,
			RewardRate: c.RewardRate,
		})
	}
	data, _ := json.Marshal(out)
	return data
}

func modeOrAuto(m domain.ChatMode) domain.ChatMode {
	if m == "" {
		return domain.ModeAuto
	}
	return m
}
