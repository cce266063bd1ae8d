package service

import (
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// ChatRequest is the inbound payload for one conversation turn. Messages and
// UserProfile stay untyped so malformed client input can be coerced rather
// than rejected.
type ChatRequest struct {
	Messages    []any  `json:"messages"`
	UserProfile any    `json:"userProfile"`
	ChatMode    string `json:"chatMode"`
	SessionID   string `json:"sessionId"`
}

// ChatResponse is the assistant's answer for one turn.
type ChatResponse struct {
	Message                   string              `json:"message"`
	Intent                    domain.Intent       `json:"intent"`
	ProfileUpdates            domain.ProfilePatch `json:"profileUpdates"`
	MergedProfile             domain.UserProfile  `json:"mergedProfile"`
	ShouldShowRecommendations bool                `json:"shouldShowRecommendations"`
	ActiveMode                domain.ChatMode     `json:"activeMode"`
	Recommendations           []Recommendation    `json:"recommendations"`
	SessionID                 string              `json:"sessionId,omitempty"`
	Degraded                  bool                `json:"degraded"`
}

// Recommendation is a scored card with its reasons flattened into one line.
type Recommendation struct {
	domain.ScoredCard
	Reason string `json:"reason"`
}

// PaginationMeta captures pagination metadata returned to API clients.
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListCardsParams defines filters for listing catalog cards.
type ListCardsParams struct {
	Query      string
	RewardType string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// CardsPage represents a page of catalog cards with metadata.
type CardsPage struct {
	Source     string
	Items      []domain.Card
	Pagination PaginationMeta
}

// ProfileExtraction is the outcome of running the heuristic extractor over
// one utterance.
type ProfileExtraction struct {
	Patch         domain.ProfilePatch `json:"patch"`
	MergedProfile domain.UserProfile  `json:"mergedProfile"`
	Complete      bool                `json:"complete"`
	NextQuestion  string              `json:"nextQuestion"`
}

func toRecommendations(scored []domain.ScoredCard) []Recommendation {
	out := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		out = append(out, Recommendation{
			ScoredCard: sc,
			Reason:     strings.Join(sc.Reasons, " | "),
		})
	}
	return out
}
