// Package chat orchestrates the retrieval-augmented chat assistant:
// conversation management, chunk retrieval, prompt assembly and streaming.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// systemPrompt grounds the assistant in the personal-finance domain
const systemPrompt = `You are a helpful personal-finance assistant. Answer questions about budgeting, saving, spending and personal finance concepts. When reference documents are provided below, ground your answer in them and stay consistent with their content. If the documents do not cover the question, say so and answer from general knowledge. Keep answers concise and practical. Do not give individualized investment advice.`

// Generator is the language-model surface the chat service depends on
type Generator interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
	StreamChat(ctx context.Context, system string, history []chat.Message, onDelta func(delta string) error) (string, error)
	ChatModel() string
}

// ChatService handles chat turns, document ingestion and conversations
type ChatService struct {
	conversationRepo chat.ConversationRepository
	messageRepo      chat.MessageRepository
	chunkRepo        chat.ChunkRepository
	generator        Generator
	topK             int
	historyLimit     int
	chunkSize        int
	chunkOverlap     int
}

// NewChatService creates a new ChatService
func NewChatService(
	conversationRepo chat.ConversationRepository,
	messageRepo chat.MessageRepository,
	chunkRepo chat.ChunkRepository,
	generator Generator,
	cfg config.AIConfig,
) *ChatService {
	return &ChatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		chunkRepo:        chunkRepo,
		generator:        generator,
		topK:             cfg.TopK,
		historyLimit:     cfg.HistoryLimit,
		chunkSize:        cfg.ChunkSize,
		chunkOverlap:     cfg.ChunkOverlap,
	}
}

// Turn runs one chat turn. The user message is persisted before generation;
// onDelta receives each streamed fragment; the assistant message is persisted
// with its citations once the stream completes.
func (s *ChatService) Turn(ctx context.Context, ownerID uuid.UUID, req ChatRequest, onDelta func(delta string) error) (*TurnResult, error) {
	conversation, err := s.resolveConversation(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	// History is loaded before the user turn is persisted so the prompt
	// carries historyLimit prior messages plus the new one.
	history, err := s.messageRepo.FindRecent(ctx, conversation.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	userMessage, err := chat.NewMessage(conversation.ID, chat.RoleUser, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Save(ctx, userMessage); err != nil {
		return nil, err
	}
	history = append(history, *userMessage)

	// Retrieval failures degrade to an answer without document context
	// rather than failing the turn.
	scored := s.retrieve(ctx, req.Message)

	system := systemPrompt
	if block := contextBlock(scored); block != "" {
		system = system + "\n\n" + block
	}

	content, err := s.generator.StreamChat(ctx, system, history, onDelta)
	if err != nil {
		return nil, err
	}

	assistantMessage, err := chat.NewMessage(conversation.ID, chat.RoleAssistant, content)
	if err != nil {
		return nil, err
	}
	assistantMessage.Metadata = &chat.MessageMetadata{
		Model:   s.generator.ChatModel(),
		Sources: citedSources(scored),
	}
	if err := s.messageRepo.Save(ctx, assistantMessage); err != nil {
		return nil, err
	}

	// Bump the conversation's updated_at so listing orders by recency.
	if err := s.conversationRepo.Save(ctx, conversation); err != nil {
		logger.L(ctx).Warn("failed to touch conversation",
			zap.String("conversation_id", conversation.ID.String()),
			zap.Error(err))
	}

	return &TurnResult{
		ConversationID: conversation.ID,
		MessageID:      assistantMessage.ID,
		Content:        content,
		Model:          assistantMessage.Metadata.Model,
		Sources:        toSourceResponses(scored),
	}, nil
}

// Ingest splits a document into overlapping windows, embeds each one and
// stores the chunks for retrieval.
func (s *ChatService) Ingest(ctx context.Context, req IngestRequest) (*IngestResponse, error) {
	windows := splitText(req.Content, s.chunkSize, s.chunkOverlap)

	chunks := make([]chat.DocumentChunk, 0, len(windows))
	for i, window := range windows {
		embedding, err := s.generator.EmbedText(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %q: %w", i, req.Source, err)
		}
		chunks = append(chunks, chat.DocumentChunk{
			ID:         uuid.New(),
			Content:    window,
			Embedding:  embedding,
			Source:     req.Source,
			Page:       req.Page,
			ChunkIndex: i,
		})
	}

	if err := s.chunkRepo.SaveBatch(ctx, chunks); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("document ingested",
		zap.String("source", req.Source),
		zap.Int("chunks", len(chunks)))

	return &IngestResponse{ChunksStored: len(chunks), Source: req.Source}, nil
}

// ListConversations retrieves the owner's conversations, most recent first
func (s *ChatService) ListConversations(ctx context.Context, ownerID uuid.UUID) ([]ConversationResponse, error) {
	conversations, err := s.conversationRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]ConversationResponse, len(conversations))
	for i := range conversations {
		responses[i] = *ToConversationResponse(&conversations[i])
	}
	return responses, nil
}

// resolveConversation loads an existing conversation for the owner or starts
// a new one titled after the first message
func (s *ChatService) resolveConversation(ctx context.Context, ownerID uuid.UUID, req ChatRequest) (*chat.Conversation, error) {
	if req.ConversationID != nil {
		return s.conversationRepo.FindByIDForOwner(ctx, ownerID, *req.ConversationID)
	}

	conversation := chat.NewConversation(ownerID, req.Message)
	if err := s.conversationRepo.Save(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// retrieve embeds the query and ranks stored chunks by cosine similarity,
// keeping the top-k. Any failure returns an empty result set.
func (s *ChatService) retrieve(ctx context.Context, query string) []chat.ScoredChunk {
	queryEmbedding, err := s.generator.EmbedText(ctx, query)
	if err != nil {
		logger.L(ctx).Warn("query embedding failed, answering without context", zap.Error(err))
		return nil
	}

	chunks, err := s.chunkRepo.FindAllEmbedded(ctx)
	if err != nil {
		logger.L(ctx).Warn("chunk retrieval failed, answering without context", zap.Error(err))
		return nil
	}

	scored := make([]chat.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, chat.ScoredChunk{
			Chunk:      chunk,
			Similarity: chat.CosineSimilarity(queryEmbedding, chunk.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > s.topK {
		scored = scored[:s.topK]
	}
	return scored
}

// contextBlock renders retrieved chunks as a <context> element for the
// system instruction. Empty retrieval yields no block.
func contextBlock(scored []chat.ScoredChunk) string {
	if len(scored) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<context>\n")
	for i, sc := range scored {
		fmt.Fprintf(&b, "<doc id=%d source=%q>\n%s\n</doc>\n", i+1, sc.Chunk.Source, sc.Chunk.Content)
	}
	b.WriteString("</context>")
	return b.String()
}

func citedSources(scored []chat.ScoredChunk) []chat.CitedSource {
	if len(scored) == 0 {
		return nil
	}
	sources := make([]chat.CitedSource, len(scored))
	for i, sc := range scored {
		sources[i] = chat.CitedSource{
			ChunkID:    sc.Chunk.ID,
			Source:     sc.Chunk.Source,
			Similarity: sc.Similarity,
		}
	}
	return sources
}

func toSourceResponses(scored []chat.ScoredChunk) []SourceResponse {
	if len(scored) == 0 {
		return nil
	}
	responses := make([]SourceResponse, len(scored))
	for i, sc := range scored {
		responses[i] = SourceResponse{
			ChunkID:    sc.Chunk.ID,
			Source:     sc.Chunk.Source,
			Similarity: sc.Similarity,
		}
	}
	return responses
}

// splitText cuts text into windows of size runes overlapping by overlap
// runes. The step is size-overlap; a final short window is kept.
func splitText(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 {
		return []string{text}
	}
	step := size - overlap
	if step <= 0 {
		step = size
	}

	var windows []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return windows
}
