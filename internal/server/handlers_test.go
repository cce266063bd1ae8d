package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/metrics"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/provider"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/service"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalog struct {
	cards []domain.Card
}

func (s stubCatalog) Get(context.Context) []domain.Card { return append([]domain.Card(nil), s.cards...) }

func (s stubCatalog) SourceName(context.Context) string { return "local" }

func (s stubCatalog) Find(_ context.Context, slug string) (domain.Card, bool) {
	for _, c := range s.cards {
		if c.Slug == slug {
			return c, true
		}
	}
	return domain.Card{}, false
}

func sampleCards() []domain.Card {
	return []domain.Card{
		{Name: "Voyager Zero", Slug: "voyager-zero", Issuer: "Skyline Bank", RewardType: "Travel Points",
			Eligibility: "Minimum income 50k/month", Perks: []string{"Lounge access"}},
		{Name: "Grocer Cash", Slug: "grocer-cash", Issuer: "Harbor Bank", AnnualFee: 499, RewardType: "Cashback",
			RewardRate: "5% on groceries", Perks: []string{}},
	}
}

type testEnv struct {
	router   *gin.Engine
	sessions *session.MemoryStore
}

func newTestEnv(t *testing.T, completer provider.Completer, health HealthService) testEnv {
	t.Helper()
	catalog := stubCatalog{cards: sampleCards()}
	store := session.NewMemoryStore(time.Minute, 0)
	t.Cleanup(func() { _ = store.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	chat := service.NewChatService(completer, catalog, nil, service.WithSessions(store), service.WithMetrics(m))
	api := NewAPIHandlers(nil, chat, service.NewCatalogService(catalog, m))

	router := NewRouter(nil, RouterDependencies{
		Health:         health,
		API:            api,
		Metrics:        reg,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return testEnv{router: router, sessions: store}
}

func (e testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandleChat_Heuristic(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/chat",
		`{"messages":[{"role":"user","content":"I need a credit card for fuel"}],"chatMode":"auto"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decode[map[string]any](t, rec)
	assert.Equal(t, "profile_collection", payload["intent"])
	assert.Equal(t, "cards", payload["activeMode"])
	assert.Equal(t, false, payload["shouldShowRecommendations"])
	assert.Equal(t, map[string]any{"spending": []any{"fuel"}}, payload["profileUpdates"])
	assert.Equal(t, []any{}, payload["recommendations"])
	assert.NotEmpty(t, payload["sessionId"])
	assert.Equal(t, 1, env.sessions.Len())
}

func TestHandleChat_ProviderRecommendations(t *testing.T) {
	fake := provider.NewFake(`{"reply":"Here you go.","intent":"card_recommendation","profile_updates":{},"should_show_recommendations":true}`)
	env := newTestEnv(t, fake, nil)

	rec := env.do(t, http.MethodPost, "/api/chat", `{
		"messages":[{"role":"user","content":"show my card recommendations"}],
		"userProfile":{"income":"1L+","spending":["travel"],"benefits":["lounge access"],"feePreference":"free"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[service.ChatResponse](t, rec)
	assert.True(t, resp.ShouldShowRecommendations)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "voyager-zero", resp.Recommendations[0].Slug)
	assert.Equal(t, strings.Join(resp.Recommendations[0].Reasons, " | "), resp.Recommendations[0].Reason)
}

func TestHandleChat_InvalidBodies(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	for _, body := range []string{
		`{"messages":[]}`,
		`{"messages":[{"role":"user","content":""}]}`,
		`{"messages":"hello"}`,
		`not json`,
	} {
		rec := env.do(t, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Invalid message format"}`, rec.Body.String())
	}
}

func TestListCards(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/cards?sortBy=annual_fee&sortOrder=desc&pageSize=1&page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload cardsListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "local", payload.Source)
	require.Len(t, payload.Cards, 1)
	assert.Equal(t, "grocer-cash", payload.Cards[0].Slug)
	assert.Equal(t, service.PaginationMeta{Page: 1, PageSize: 1, Total: 2, TotalPages: 2}, payload.Pagination)

	rec = env.do(t, http.MethodGet, "/api/cards?q=nothing-matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cards":[]`)
}

func TestGetCard(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/cards/voyager-zero", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload cardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Voyager Zero", payload.Card.Name)
	assert.Equal(t, "local", payload.Source)

	rec = env.do(t, http.MethodGet, "/api/cards?cardId=grocer-cash", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"grocer-cash"`)

	rec = env.do(t, http.MethodGet, "/api/cards/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Card not found"}`, rec.Body.String())
}

func TestRecommend(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/recommendations",
		`{"userProfile":{"income":"50k-1L","spending":["groceries"],"benefits":["cashback"],"feePreference":"low"},"limit":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload recommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Recommendations, 1)
	assert.Equal(t, "grocer-cash", payload.Recommendations[0].Slug)
	assert.NotEmpty(t, payload.Recommendations[0].Reason)

	rec = env.do(t, http.MethodPost, "/api/recommendations", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractProfile(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/profile/extract", `{"text":"I spend on petrol and want cashback, income 30k"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload service.ProfileExtraction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, domain.Income20KTo50K, payload.Patch.Income)
	assert.Equal(t, domain.NewSet(domain.SpendingFuel), payload.MergedProfile.Spending)
	assert.False(t, payload.Complete)
	assert.NotEmpty(t, payload.NextQuestion)

	rec = env.do(t, http.MethodPost, "/api/profile/extract", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"credit card for travel"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[service.ChatResponse](t, rec).SessionID

	rec = env.do(t, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil, GraphHealthService{Client: graph.NewMemoryClient()})
	rec := env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	failing := graph.NewMemoryClient().WithConnectivityError(errors.New("connection refused"))
	env = newTestEnv(t, nil, GraphHealthService{Client: failing})
	rec = env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","error":"connection refused"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.do(t, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hello"}]}`)

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cardxpert_chat_turns_total{path="heuristic"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
