package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*chat.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*chat.Conversation)}
}

func (r *fakeConversationRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*chat.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok || c.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConversationRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID) ([]chat.Conversation, error) {
	var out []chat.Conversation
	for _, c := range r.conversations {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Save(_ context.Context, c *chat.Conversation) error {
	copied := *c
	r.conversations[c.ID] = &copied
	return nil
}

type fakeMessageRepo struct {
	messages []chat.Message
}

func (r *fakeMessageRepo) FindRecent(_ context.Context, conversationID uuid.UUID, limit int) ([]chat.Message, error) {
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

func (r *fakeMessageRepo) Save(_ context.Context, m *chat.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

type fakeChunkRepo struct {
	chunks  []chat.DocumentChunk
	findErr error
}

func (r *fakeChunkRepo) FindAllEmbedded(context.Context) ([]chat.DocumentChunk, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.chunks, nil
}

func (r *fakeChunkRepo) SaveBatch(_ context.Context, chunks []chat.DocumentChunk) error {
	r.chunks = append(r.chunks, chunks...)
	return nil
}

type fakeGenerator struct {
	embedding   []float64
	embedErr    error
	reply       string
	streamErr   error
	lastSystem  string
	lastHistory []chat.Message
}

func (g *fakeGenerator) EmbedText(context.Context, string) ([]float64, error) {
	if g.embedErr != nil {
		return nil, g.embedErr
	}
	return g.embedding, nil
}

func (g *fakeGenerator) StreamChat(_ context.Context, system string, history []chat.Message, onDelta func(string) error) (string, error) {
	g.lastSystem = system
	g.lastHistory = history
	if g.streamErr != nil {
		return "", g.streamErr
	}
	if onDelta != nil {
		for _, word := range strings.SplitAfter(g.reply, " ") {
			if err := onDelta(word); err != nil {
				return "", err
			}
		}
	}
	return g.reply, nil
}

func (g *fakeGenerator) ChatModel() string { return "test-model" }

func testAIConfig() config.AIConfig {
	return config.AIConfig{
		TopK:         5,
		HistoryLimit: 10,
		ChunkSize:    3000,
		ChunkOverlap: 500,
	}
}

func setupChatService(gen *fakeGenerator) (*ChatService, *fakeConversationRepo, *fakeMessageRepo, *fakeChunkRepo) {
	convRepo := newFakeConversationRepo()
	msgRepo := &fakeMessageRepo{}
	chunkRepo := &fakeChunkRepo{}
	svc := NewChatService(convRepo, msgRepo, chunkRepo, gen, testAIConfig())
	return svc, convRepo, msgRepo, chunkRepo
}

func TestChatService_Turn_NewConversation(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1, 0}, reply: "Track your spending weekly."}
	svc, convRepo, msgRepo, _ := setupChatService(gen)
	ownerID := uuid.New()

	var streamed strings.Builder
	result, err := svc.Turn(context.Background(), ownerID, ChatRequest{Message: "How should I budget?"}, func(delta string) error {
		streamed.WriteString(delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Track your spending weekly.", result.Content)
	assert.Equal(t, "Track your spending weekly.", streamed.String())
	assert.Equal(t, "test-model", result.Model)
	assert.Len(t, convRepo.conversations, 1)

	// User message then assistant message, both persisted.
	require.Len(t, msgRepo.messages, 2)
	assert.Equal(t, chat.RoleUser, msgRepo.messages[0].Role)
	assert.Equal(t, chat.RoleAssistant, msgRepo.messages[1].Role)
	require.NotNil(t, msgRepo.messages[1].Metadata)
	assert.Equal(t, "test-model", msgRepo.messages[1].Metadata.Model)
}

func TestChatService_Turn_TitleTruncated(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1}, reply: "ok"}
	svc, convRepo, _, _ := setupChatService(gen)
	ownerID := uuid.New()

	long := strings.Repeat("a", 80)
	result, err := svc.Turn(context.Background(), ownerID, ChatRequest{Message: long}, nil)
	require.NoError(t, err)

	conv := convRepo.conversations[result.ConversationID]
	require.NotNil(t, conv)
	assert.Len(t, conv.Title, 50)
}

func TestChatService_Turn_ExistingConversationOwnership(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1}, reply: "ok"}
	svc, convRepo, _, _ := setupChatService(gen)
	ownerID := uuid.New()

	conv := chat.NewConversation(ownerID, "budgeting")
	require.NoError(t, convRepo.Save(context.Background(), conv))

	// Another owner cannot continue the conversation.
	_, err := svc.Turn(context.Background(), uuid.New(), ChatRequest{ConversationID: &conv.ID, Message: "hi"}, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	result, err := svc.Turn(context.Background(), ownerID, ChatRequest{ConversationID: &conv.ID, Message: "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, result.ConversationID)
}

func TestChatService_Turn_PromptCarriesFullHistoryWindow(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1}, reply: "ok"}
	svc, convRepo, msgRepo, _ := setupChatService(gen)
	ownerID := uuid.New()

	conv := chat.NewConversation(ownerID, "budgeting")
	require.NoError(t, convRepo.Save(context.Background(), conv))

	for i := 0; i < 12; i++ {
		m, err := chat.NewMessage(conv.ID, chat.RoleUser, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		require.NoError(t, msgRepo.Save(context.Background(), m))
	}

	_, err := svc.Turn(context.Background(), ownerID, ChatRequest{ConversationID: &conv.ID, Message: "newest question"}, nil)
	require.NoError(t, err)

	// The ten most recent prior messages plus the new user turn.
	require.Len(t, gen.lastHistory, 11)
	assert.Equal(t, "msg 2", gen.lastHistory[0].Content)
	assert.Equal(t, "newest question", gen.lastHistory[10].Content)
}

func TestChatService_Turn_RetrievalRanksTopChunks(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1, 0}, reply: "ok"}
	svc, _, _, chunkRepo := setupChatService(gen)

	chunkRepo.chunks = []chat.DocumentChunk{
		{ID: uuid.New(), Content: "orthogonal", Source: "doc-a", Embedding: []float64{0, 1}},
		{ID: uuid.New(), Content: "aligned", Source: "doc-b", Embedding: []float64{1, 0}},
	}

	result, err := svc.Turn(context.Background(), uuid.New(), ChatRequest{Message: "q"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Sources, 2)
	assert.Equal(t, "doc-b", result.Sources[0].Source)
	assert.InDelta(t, 1.0, result.Sources[0].Similarity, 1e-9)
	assert.Contains(t, gen.lastSystem, "<context>")
	assert.Contains(t, gen.lastSystem, `<doc id=1 source="doc-b">`)
}

func TestChatService_Turn_EmbedFailureDegradesToNoContext(t *testing.T) {
	gen := &fakeGenerator{embedErr: errors.New("quota exceeded"), reply: "ok"}
	svc, _, msgRepo, chunkRepo := setupChatService(gen)
	chunkRepo.chunks = []chat.DocumentChunk{
		{ID: uuid.New(), Content: "text", Source: "doc", Embedding: []float64{1}},
	}

	result, err := svc.Turn(context.Background(), uuid.New(), ChatRequest{Message: "q"}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Sources)
	assert.NotContains(t, gen.lastSystem, "<context>")
	require.Len(t, msgRepo.messages, 2)
	assert.Nil(t, msgRepo.messages[1].Metadata.Sources)
}

func TestChatService_Turn_StreamErrorSurfaces(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{1}, streamErr: errors.New("model unavailable")}
	svc, _, msgRepo, _ := setupChatService(gen)

	_, err := svc.Turn(context.Background(), uuid.New(), ChatRequest{Message: "q"}, nil)
	require.Error(t, err)

	// The user message survives; no assistant message is written.
	require.Len(t, msgRepo.messages, 1)
	assert.Equal(t, chat.RoleUser, msgRepo.messages[0].Role)
}

func TestChatService_Ingest(t *testing.T) {
	gen := &fakeGenerator{embedding: []float64{0.5, 0.5}}
	svc, _, _, chunkRepo := setupChatService(gen)

	content := strings.Repeat("x", 6000)
	resp, err := svc.Ingest(context.Background(), IngestRequest{Content: content, Source: "guide.pdf"})
	require.NoError(t, err)

	// 6000 chars at 3000-size windows stepping 2500: offsets 0, 2500, 5000.
	assert.Equal(t, 3, resp.ChunksStored)
	require.Len(t, chunkRepo.chunks, 3)
	assert.Equal(t, "guide.pdf", chunkRepo.chunks[0].Source)
	assert.Equal(t, 0, chunkRepo.chunks[0].ChunkIndex)
	assert.Equal(t, 2, chunkRepo.chunks[2].ChunkIndex)
	assert.Len(t, chunkRepo.chunks[2].Content, 1000)
}

func TestSplitText(t *testing.T) {
	t.Run("short text is one window", func(t *testing.T) {
		windows := splitText("hello", 3000, 500)
		require.Len(t, windows, 1)
		assert.Equal(t, "hello", windows[0])
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, splitText("", 3000, 500))
	})

	t.Run("windows overlap", func(t *testing.T) {
		text := strings.Repeat("ab", 50)
		windows := splitText(text, 40, 10)
		require.True(t, len(windows) > 1)
		for i := 1; i < len(windows); i++ {
			prev := windows[i-1]
			assert.True(t, strings.HasPrefix(windows[i], prev[len(prev)-10:]))
		}
	})
}
