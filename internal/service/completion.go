package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/metrics"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/provider"
)

type completionState int

const (
	stateAttempt completionState = iota
	stateStrictRetry
	stateSettled
	stateDegraded
)

func (s completionState) String() string {
	switch s {
	case stateAttempt:
		return "attempt"
	case stateStrictRetry:
		return "strict_retry"
	case stateSettled:
		return "settled"
	default:
		return "degraded"
	}
}

// completion is the settled outcome of the provider state machine. Degraded
// is set when the provider answered twice without a usable payload.
type completion struct {
	payload  provider.Payload
	degraded bool
	attempts int
}

// complete drives attempt → strict retry → settled|degraded. Transport
// failures end the machine with an error so the caller can fall back to the
// heuristic path.
func (s *ChatService) complete(ctx context.Context, t turn) (completion, error) {
	in := provider.PromptInput{
		Messages:   t.messages,
		Profile:    t.base,
		ActiveMode: t.activeMode,
	}
	if t.activeMode == domain.ModeCards && s.catalog != nil {
		in.Catalog = s.catalog.Get(ctx)
	}

	var result completion
	state := stateAttempt
	for {
		switch state {
		case stateAttempt, stateStrictRetry:
			in.Strict = state == stateStrictRetry
			payload, err := s.attempt(ctx, in, state)
			result.attempts++
			switch {
			case err == nil:
				result.payload = payload
				state = stateSettled
			case !errors.Is(err, provider.ErrUnparsable):
				return result, err
			case state == stateAttempt:
				s.logger.Debug("unparsable completion, retrying with strict reminder")
				state = stateStrictRetry
			default:
				state = stateDegraded
			}
		case stateDegraded:
			result.degraded = true
			return result, nil
		default:
			return result, nil
		}
	}
}

func (s *ChatService) attempt(ctx context.Context, in provider.PromptInput, state completionState) (provider.Payload, error) {
	ctx, span := tracer.Start(ctx, "provider.attempt")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider.name", s.completer.Name()),
		attribute.String("provider.state", state.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	started := time.Now()
	text, err := s.completer.Complete(ctx, provider.BuildPrompt(in))
	elapsed := time.Since(started)
	if err != nil {
		s.metrics.ProviderAttempt(metrics.OutcomeError, elapsed)
		spanError(span, err)
		return provider.Payload{}, err
	}

	payload, err := provider.ParsePayload(text)
	if err != nil {
		s.metrics.ProviderAttempt(metrics.OutcomeUnparsable, elapsed)
		spanError(span, err)
		return provider.Payload{}, err
	}
	s.metrics.ProviderAttempt(metrics.OutcomeOK, elapsed)
	return payload, nil
}
