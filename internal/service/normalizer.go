package service

import (
	"strings"
	"unicode/utf8"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/advisor"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

const (
	maxMessageRunes   = 2000
	maxMessageHistory = 40
)

// NormalizeMessages turns an untyped transcript into clean messages. Items
// without string content are dropped, roles other than assistant become user,
// content is trimmed and cut to maxMessageRunes, and only the latest
// maxMessageHistory messages are kept.
func NormalizeMessages(raw []any) []domain.Message {
	out := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		content, ok := obj["content"].(string)
		if !ok {
			continue
		}
		content = truncateRunes(strings.TrimSpace(content), maxMessageRunes)
		if content == "" {
			continue
		}
		role := domain.RoleUser
		if r, _ := obj["role"].(string); r == string(domain.RoleAssistant) {
			role = domain.RoleAssistant
		}
		out = append(out, domain.Message{Role: role, Content: content})
	}
	if len(out) > maxMessageHistory {
		out = out[len(out)-maxMessageHistory:]
	}
	return out
}

func latestUserText(messages []domain.Message) string {
	texts := advisor.RecentUserTexts(messages, 1)
	if len(texts) == 0 {
		return ""
	}
	return texts[0]
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
