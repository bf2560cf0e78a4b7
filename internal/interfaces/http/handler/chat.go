package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	chatapp "github.com/fintrack/backend/internal/application/chat"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the AI assistant endpoints. Chat turns stream their
// reply over server-sent events.
type ChatHandler struct {
	service *chatapp.ChatService
}

// NewChatHandler creates a chat handler
func NewChatHandler(service *chatapp.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// ChatRouteMiddleware carries the per-tier middleware chains for the AI
// routes. Ingest gets its own chain so it can take a stricter limit and a
// larger body cap.
type ChatRouteMiddleware struct {
	Chat   []gin.HandlerFunc
	Ingest []gin.HandlerFunc
}

// RegisterRoutes registers AI assistant routes without extra middleware
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterRoutesWith(rg, ChatRouteMiddleware{})
}

// RegisterRoutesWith registers AI assistant routes with per-tier middleware
func (h *ChatHandler) RegisterRoutesWith(rg *gin.RouterGroup, mw ChatRouteMiddleware) {
	ai := rg.Group("/ai")
	{
		ai.POST("/chat", append(append([]gin.HandlerFunc{}, mw.Chat...), h.Chat)...)
		ai.POST("/ingest", append(append([]gin.HandlerFunc{}, mw.Ingest...), h.Ingest)...)
		ai.GET("/conversations", append(append([]gin.HandlerFunc{}, mw.Chat...), h.Conversations)...)
	}
}

// Chat runs one assistant turn. The reply streams as "delta" events followed
// by a terminal "done" event carrying the persisted message and citations.
// Failures after streaming has begun surface as an "error" event.
func (h *ChatHandler) Chat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req chatapp.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Streaming unsupported"))
		return
	}

	onDelta := func(delta string) error {
		return sendEvent(c, flusher, "delta", map[string]string{"content": delta})
	}

	result, err := h.service.Turn(c.Request.Context(), owner, req, onDelta)
	if err != nil {
		logger.L(c.Request.Context()).Warn("chat turn failed", zap.Error(err))
		_ = sendEvent(c, flusher, "error", map[string]string{"message": publicErrorMessage(err)})
		return
	}

	_ = sendEvent(c, flusher, "done", result)
}

// Ingest chunks and embeds a document into the assistant's knowledge base
func (h *ChatHandler) Ingest(c *gin.Context) {
	if _, ok := ownerID(c); !ok {
		return
	}

	var req chatapp.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	result, err := h.service.Ingest(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Conversations lists the owner's conversations, most recent first
func (h *ChatHandler) Conversations(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	items, err := h.service.ListConversations(c.Request.Context(), owner)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// sendEvent writes one SSE frame and flushes it to the client
func sendEvent(c *gin.Context, flusher http.Flusher, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
