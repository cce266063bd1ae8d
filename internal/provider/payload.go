package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/advisor"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// ErrUnparsable marks model output that is not a JSON object with a reply.
var ErrUnparsable = errors.New("unparsable provider output")

// Payload is the structured answer requested from the model.
type Payload struct {
	Reply                     string
	Intent                    domain.Intent
	ProfileUpdates            domain.ProfilePatch
	ShouldShowRecommendations bool
}

// ParsePayload extracts the first JSON object from text, tolerating code
// fences and surrounding prose. Fields with the wrong type are treated as
// absent; a missing or empty reply makes the output unparsable.
func ParsePayload(text string) (Payload, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return Payload{}, fmt.Errorf("%w: no JSON object found", ErrUnparsable)
	}

	var raw map[string]any
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	reply, _ := raw["reply"].(string)
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Payload{}, fmt.Errorf("%w: missing reply", ErrUnparsable)
	}

	intent, _ := raw["intent"].(string)
	return Payload{
		Reply:                     reply,
		Intent:                    domain.ParseIntent(strings.TrimSpace(intent)),
		ProfileUpdates:            advisor.CoercePatch(raw["profile_updates"]),
		ShouldShowRecommendations: truthy(raw["should_show_recommendations"]),
	}, nil
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}
