package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/advisor"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/metrics"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/provider"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/session"
)

const (
	generalFallbackMessage = "I can chat on any topic. If you want credit-card help later, just ask and I will switch to card guidance."
	readyToRecommendReply  = "I can now recommend cards based on your profile. Say 'show my card recommendations' when you are ready."
	degradedReply          = "Sorry, I could not put together a proper answer just now. Could you say that again?"
	errorReply             = "I hit an error. Please retry in a moment."

	defaultProviderTimeout = 20 * time.Second
)

// ErrNoMessages is returned when a turn carries no usable message.
var ErrNoMessages = errors.New("no valid messages")

var tracer = otel.Tracer("github.com/Ankit6149/credit-card-recommendation-system/internal/service")

// ChatService orchestrates one conversation turn: mode resolution, the
// completion provider with its retry and fallback, heuristic profile
// extraction, and recommendations.
type ChatService struct {
	completer       provider.Completer
	catalog         CardCatalog
	sessions        session.Store
	metrics         *metrics.Metrics
	logger          *zap.Logger
	providerTimeout time.Duration
}

// ChatOption customises a ChatService.
type ChatOption func(*ChatService)

// WithSessions enables session-scoped profiles.
func WithSessions(store session.Store) ChatOption {
	return func(s *ChatService) { s.sessions = store }
}

// WithMetrics records turn and provider metrics.
func WithMetrics(m *metrics.Metrics) ChatOption {
	return func(s *ChatService) { s.metrics = m }
}

// WithProviderTimeout bounds each completion attempt.
func WithProviderTimeout(d time.Duration) ChatOption {
	return func(s *ChatService) {
		if d > 0 {
			s.providerTimeout = d
		}
	}
}

// NewChatService builds a chat service. A nil completer runs every turn on
// the heuristic path.
func NewChatService(completer provider.Completer, catalog CardCatalog, logger *zap.Logger, opts ...ChatOption) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ChatService{
		completer:       completer,
		catalog:         catalog,
		logger:          logger,
		providerTimeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// turn carries the resolved inputs of one request.
type turn struct {
	messages   []domain.Message
	latestUser string
	base       domain.UserProfile
	override   domain.ChatMode
	cardMode   bool
	activeMode domain.ChatMode
	sessionID  string
}

// Chat handles one turn. It only fails on requests without messages; provider
// and session failures degrade instead.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	ctx, span := tracer.Start(ctx, "chat.turn")
	defer span.End()

	t, err := s.prepare(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return ChatResponse{}, err
	}
	span.SetAttributes(
		attribute.String("chat.active_mode", string(t.activeMode)),
		attribute.Bool("chat.card_mode", t.cardMode),
		attribute.Int("chat.messages", len(t.messages)),
	)

	var (
		resp ChatResponse
		path string
	)
	if s.completer == nil {
		resp, path = s.heuristicTurn(t), metrics.PathHeuristic
	} else {
		result, err := s.complete(ctx, t)
		switch {
		case err != nil:
			s.logger.Warn("completion provider failed, using heuristic reply",
				zap.String("provider", s.completer.Name()),
				zap.Error(err),
			)
			resp, path = s.heuristicTurn(t), metrics.PathHeuristic
		case result.degraded:
			s.logger.Warn("completion provider returned unparsable output twice",
				zap.String("provider", s.completer.Name()),
				zap.Int("attempts", result.attempts),
			)
			resp, path = s.degradedTurn(t), metrics.PathDegraded
		default:
			resp, path = s.providerTurn(t, result.payload), metrics.PathProvider
		}
	}

	if resp.ShouldShowRecommendations {
		resp.Recommendations = s.recommend(ctx, resp.MergedProfile, advisor.DefaultRecommendationLimit)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []Recommendation{}
	}
	resp.Message = advisor.FormatReply(resp.Message, t.latestUser)
	resp.ActiveMode = t.activeMode
	resp.SessionID = t.sessionID

	s.saveSession(ctx, t.sessionID, resp.MergedProfile)
	s.metrics.ChatTurn(path)
	span.SetAttributes(
		attribute.String("chat.path", path),
		attribute.String("chat.intent", string(resp.Intent)),
		attribute.Int("chat.recommendations", len(resp.Recommendations)),
	)
	return resp, nil
}

// FallbackResponse is returned to clients when a turn fails unexpectedly.
func FallbackResponse() ChatResponse {
	return ChatResponse{
		Message:         errorReply,
		Intent:          domain.IntentGeneralChat,
		ActiveMode:      domain.ModeGeneral,
		Recommendations: []Recommendation{},
	}
}

func (s *ChatService) prepare(ctx context.Context, req ChatRequest) (turn, error) {
	messages := NormalizeMessages(req.Messages)
	if len(messages) == 0 {
		return turn{}, ErrNoMessages
	}

	override := domain.ParseChatMode(req.ChatMode)
	recent := advisor.RecentUserTexts(messages, advisor.RecentTurnWindow)
	t := turn{
		messages:   messages,
		latestUser: latestUserText(messages),
		override:   override,
		cardMode:   advisor.ResolveCardMode(override, recent),
		activeMode: advisor.ResolveActiveMode(override, recent),
	}

	client := advisor.CoerceProfile(req.UserProfile)
	if s.sessions == nil {
		t.base = client
		return t, nil
	}

	t.sessionID = req.SessionID
	if !session.ValidID(t.sessionID) {
		t.sessionID = session.NewID()
	}
	stored, err := s.sessions.Load(ctx, t.sessionID)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		s.logger.Warn("session load failed", zap.String("session_id", t.sessionID), zap.Error(err))
	}
	t.base = advisor.MergeProfiles(stored, client.AsPatch())
	return t, nil
}

func (s *ChatService) providerTurn(t turn, payload provider.Payload) ChatResponse {
	if !t.cardMode {
		return ChatResponse{
			Message:       payload.Reply,
			Intent:        nonCardIntent(payload.Intent, t.activeMode),
			MergedProfile: t.base,
		}
	}
	extracted := advisor.ExtractProfilePatch(t.latestUser)
	merged := advisor.MergeProfiles(advisor.MergeProfiles(t.base, payload.ProfileUpdates), extracted)
	return ChatResponse{
		Message:                   payload.Reply,
		Intent:                    payload.Intent,
		ProfileUpdates:            advisor.UnionPatches(payload.ProfileUpdates, extracted),
		MergedProfile:             merged,
		ShouldShowRecommendations: payload.ShouldShowRecommendations,
	}
}

func (s *ChatService) heuristicTurn(t turn) ChatResponse {
	if !t.cardMode {
		return ChatResponse{
			Message:       generalFallbackMessage,
			Intent:        domain.IntentGeneralChat,
			MergedProfile: t.base,
		}
	}
	patch := advisor.ExtractProfilePatch(t.latestUser)
	merged := advisor.MergeProfiles(t.base, patch)
	resp := ChatResponse{
		Intent:         domain.IntentProfileCollection,
		ProfileUpdates: patch,
		MergedProfile:  merged,
	}
	if advisor.IsProfileComplete(merged) {
		resp.Message = readyToRecommendReply
		resp.Intent = domain.IntentCardRecommendation
		resp.ShouldShowRecommendations = true
	} else {
		resp.Message = advisor.MissingProfileQuestion(merged)
	}
	return resp
}

func (s *ChatService) degradedTurn(t turn) ChatResponse {
	return ChatResponse{
		Message:       degradedReply,
		Intent:        domain.IntentGeneralChat,
		MergedProfile: t.base,
		Degraded:      true,
	}
}

func (s *ChatService) recommend(ctx context.Context, profile domain.UserProfile, limit int) []Recommendation {
	var cards []domain.Card
	if s.catalog != nil {
		cards = s.catalog.Get(ctx)
	}
	recs := toRecommendations(advisor.RankCards(cards, profile, limit))
	s.metrics.Recommendations(len(recs))
	return recs
}

func (s *ChatService) saveSession(ctx context.Context, id string, profile domain.UserProfile) {
	if s.sessions == nil || id == "" {
		return
	}
	if err := s.sessions.Save(ctx, id, profile); err != nil {
		s.logger.Warn("session save failed", zap.String("session_id", id), zap.Error(err))
	}
}

// ResetSession forgets the stored profile for id.
func (s *ChatService) ResetSession(ctx context.Context, id string) error {
	if s.sessions == nil {
		return session.ErrNotFound
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

// nonCardIntent keeps card-specific intents out of turns that are not in
// card mode.
func nonCardIntent(intent domain.Intent, active domain.ChatMode) domain.Intent {
	switch intent {
	case domain.IntentProfileCollection, domain.IntentCardRecommendation:
		if active == domain.ModeFinance {
			return domain.IntentFinanceGuidance
		}
		return domain.IntentGeneralChat
	default:
		return intent
	}
}

func spanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
