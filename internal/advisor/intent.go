package advisor

import (
	"regexp"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// RecentTurnWindow is the number of latest user turns inspected for intent.
const RecentTurnWindow = 4

var (
	cardIntentRegex = regexp.MustCompile(`(?i)\b(credit cards?|card recommendations?|card advi[cs]e|best cards?|cashback|cash back|reward points|lounge|annual fee|joining fee|emi card|fuel card|travel card|finance card)\b`)

	financeIntentRegex = regexp.MustCompile(`(?i)\b(credit score|cibil|loans?|emi|budget(ing)?|invest(ing|ment|ments)?|savings?|debt|tax(es)?|insurance|mutual funds?|sip|interest rates?|emergency fund|retirement|credit utili[sz]ation)\b`)
)

// ResolveCardMode decides whether the turn is in card-advisory mode. An
// explicit override wins; in auto mode any of the recent user turns (most
// recent first) mentioning a card topic enables it.
func ResolveCardMode(override domain.ChatMode, recentUserTexts []string) bool {
	switch override {
	case domain.ModeCards:
		return true
	case domain.ModeGeneral, domain.ModeFinance:
		return false
	}
	return anyMatch(cardIntentRegex, recentUserTexts)
}

// ResolveActiveMode reports the effective mode for the turn: cards when card
// mode is active, otherwise the explicit override, otherwise finance when a
// finance topic is detected.
func ResolveActiveMode(override domain.ChatMode, recentUserTexts []string) domain.ChatMode {
	if ResolveCardMode(override, recentUserTexts) {
		return domain.ModeCards
	}
	if override == domain.ModeGeneral || override == domain.ModeFinance {
		return override
	}
	if anyMatch(financeIntentRegex, recentUserTexts) {
		return domain.ModeFinance
	}
	return domain.ModeGeneral
}

// RecentUserTexts returns up to limit user message contents, most recent first.
func RecentUserTexts(messages []domain.Message, limit int) []string {
	var out []string
	for i := len(messages) - 1; i >= 0 && len(out) < limit; i-- {
		if messages[i].Role == domain.RoleUser {
			out = append(out, messages[i].Content)
		}
	}
	return out
}

func anyMatch(re *regexp.Regexp, texts []string) bool {
	for _, text := range texts {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
