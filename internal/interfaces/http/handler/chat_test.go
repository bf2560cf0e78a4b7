package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chatapp "github.com/fintrack/backend/internal/application/chat"
	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type memConversationRepo struct {
	conversations map[uuid.UUID]*chat.Conversation
}

func (r *memConversationRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*chat.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok || c.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *memConversationRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID) ([]chat.Conversation, error) {
	var out []chat.Conversation
	for _, c := range r.conversations {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memConversationRepo) Save(_ context.Context, c *chat.Conversation) error {
	r.conversations[c.ID] = c
	return nil
}

type memMessageRepo struct {
	messages []chat.Message
}

func (r *memMessageRepo) FindRecent(_ context.Context, conversationID uuid.UUID, limit int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memMessageRepo) Save(_ context.Context, m *chat.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

type memChunkRepo struct {
	chunks []chat.DocumentChunk
}

func (r *memChunkRepo) FindAllEmbedded(context.Context) ([]chat.DocumentChunk, error) {
	return r.chunks, nil
}

func (r *memChunkRepo) SaveBatch(_ context.Context, chunks []chat.DocumentChunk) error {
	r.chunks = append(r.chunks, chunks...)
	return nil
}

type scriptedGenerator struct {
	reply     string
	streamErr error
}

func (g *scriptedGenerator) EmbedText(context.Context, string) ([]float64, error) {
	return []float64{1, 0}, nil
}

func (g *scriptedGenerator) StreamChat(_ context.Context, _ string, _ []chat.Message, onDelta func(string) error) (string, error) {
	if g.streamErr != nil {
		return "", g.streamErr
	}
	for _, word := range strings.SplitAfter(g.reply, " ") {
		if err := onDelta(word); err != nil {
			return "", err
		}
	}
	return g.reply, nil
}

func (g *scriptedGenerator) ChatModel() string { return "test-model" }

func chatTestRouter(gen chatapp.Generator) (*gin.Engine, uuid.UUID) {
	service := chatapp.NewChatService(
		&memConversationRepo{conversations: make(map[uuid.UUID]*chat.Conversation)},
		&memMessageRepo{},
		&memChunkRepo{},
		gen,
		config.AIConfig{TopK: 5, HistoryLimit: 10, ChunkSize: 3000, ChunkOverlap: 500},
	)

	userID := uuid.New()
	r := newTestRouter()
	NewChatHandler(service).RegisterRoutes(r.Group("/", asUser(userID)))
	return r, userID
}

func TestChat_StreamsDeltasAndDone(t *testing.T) {
	router, _ := chatTestRouter(&scriptedGenerator{reply: "Spend less than you earn."})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/chat",
		strings.NewReader(`{"message":"Any advice?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "event: delta")
	assert.Contains(t, body, "event: done")
	assert.Contains(t, body, `"model":"test-model"`)
	assert.Contains(t, body, "Spend less than you earn.")
}

func TestChat_StreamFailureEmitsErrorEvent(t *testing.T) {
	router, _ := chatTestRouter(&scriptedGenerator{
		streamErr: shared.NewDomainError("AI_UNAVAILABLE", "Assistant is unavailable"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/chat",
		strings.NewReader(`{"message":"Any advice?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.NotContains(t, body, "event: done")
}

func TestChat_MissingMessage(t *testing.T) {
	router, _ := chatTestRouter(&scriptedGenerator{reply: "unused"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestIngest_StoresChunks(t *testing.T) {
	router, _ := chatTestRouter(&scriptedGenerator{reply: "unused"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/ingest",
		strings.NewReader(`{"content":"Compound interest rewards patience.","source":"guide.md"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"chunks_stored":1`)
	assert.Contains(t, w.Body.String(), `"source":"guide.md"`)
}

func TestConversations_EmptyList(t *testing.T) {
	router, _ := chatTestRouter(&scriptedGenerator{reply: "unused"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ai/conversations", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}
