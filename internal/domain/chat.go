package domain

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatMode is the conversation mode selected by the client.
type ChatMode string

const (
	ModeAuto    ChatMode = "auto"
	ModeGeneral ChatMode = "general"
	ModeFinance ChatMode = "finance"
	ModeCards   ChatMode = "cards"
)

// ParseChatMode maps free text to a mode, defaulting to ModeAuto.
func ParseChatMode(v string) ChatMode {
	switch ChatMode(v) {
	case ModeGeneral, ModeFinance, ModeCards:
		return ChatMode(v)
	default:
		return ModeAuto
	}
}

// Intent classifies the purpose of an assistant reply.
type Intent string

const (
	IntentGeneralChat        Intent = "general_chat"
	IntentFinanceGuidance    Intent = "finance_guidance"
	IntentProfileCollection  Intent = "profile_collection"
	IntentCardRecommendation Intent = "card_recommendation"
)

// ParseIntent maps provider output to a known intent, defaulting to general chat.
func ParseIntent(v string) Intent {
	switch Intent(v) {
	case IntentFinanceGuidance, IntentProfileCollection, IntentCardRecommendation:
		return Intent(v)
	default:
		return IntentGeneralChat
	}
}
