package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/service"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/session"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *zap.Logger
	chat    *service.ChatService
	catalog *service.CatalogService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *zap.Logger, chat *service.ChatService, catalog *service.CatalogService) *APIHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandlers{
		logger:  logger,
		chat:    chat,
		catalog: catalog,
	}
}

func (h *APIHandlers) handleChat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid message format")
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrNoMessages):
		writeError(c, http.StatusBadRequest, "Invalid message format")
	case err != nil:
		h.logger.Error("chat turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, service.FallbackResponse())
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (h *APIHandlers) listCards(c *gin.Context) {
	ctx := c.Request.Context()

	if cardID := strings.TrimSpace(c.Query("cardId")); cardID != "" {
		h.respondCard(c, cardID)
		return
	}

	page := h.catalog.ListCards(ctx, service.ListCardsParams{
		Query:      c.Query("q"),
		RewardType: c.DefaultQuery("rewardType", "all"),
		SortBy:     c.DefaultQuery("sortBy", "name"),
		SortOrder:  c.DefaultQuery("sortOrder", "asc"),
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "pageSize"),
	})

	items := page.Items
	if items == nil {
		items = []domain.Card{}
	}
	c.JSON(http.StatusOK, cardsListResponse{
		Source:     page.Source,
		Cards:      items,
		Pagination: page.Pagination,
	})
}

func (h *APIHandlers) getCard(c *gin.Context) {
	h.respondCard(c, c.Param("slug"))
}

func (h *APIHandlers) respondCard(c *gin.Context, slug string) {
	card, source, ok := h.catalog.FindCard(c.Request.Context(), slug)
	if !ok {
		writeError(c, http.StatusNotFound, "Card not found")
		return
	}
	c.JSON(http.StatusOK, cardResponse{Card: card, Source: source})
}

func (h *APIHandlers) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	recs := h.catalog.Recommend(c.Request.Context(), req.UserProfile, req.Limit)
	c.JSON(http.StatusOK, recommendResponse{Recommendations: recs})
}

func (h *APIHandlers) extractProfile(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(c, http.StatusBadRequest, "text is required")
		return
	}
	c.JSON(http.StatusOK, service.ExtractProfile(req.Text, req.UserProfile))
}

func (h *APIHandlers) deleteSession(c *gin.Context) {
	id := c.Param("id")
	if !session.ValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	err := h.chat.ResetSession(c.Request.Context(), id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, "Session not found")
	case err != nil:
		h.logger.Error("session reset failed", zap.String("session_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to reset session")
	default:
		c.Status(http.StatusNoContent)
	}
}

type cardsListResponse struct {
	Source     string                 `json:"source"`
	Cards      []domain.Card          `json:"cards"`
	Pagination service.PaginationMeta `json:"pagination"`
}

type cardResponse struct {
	Card   domain.Card `json:"card"`
	Source string      `json:"source"`
}

type recommendRequest struct {
	UserProfile any `json:"userProfile"`
	Limit       int `json:"limit"`
}

type recommendResponse struct {
	Recommendations []service.Recommendation `json:"recommendations"`
}

type extractRequest struct {
	Text        string `json:"text"`
	UserProfile any    `json:"userProfile"`
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
