package chat

import (
	"time"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/google/uuid"
)

// ChatRequest is one user turn. ConversationID is optional; omitting it
// starts a new conversation titled after the message.
type ChatRequest struct {
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	Message        string     `json:"message" binding:"required"`
}

// SourceResponse is one retrieved chunk cited in an assistant turn
type SourceResponse struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	Source     string    `json:"source"`
	Similarity float64   `json:"similarity"`
}

// TurnResult is the completed assistant turn after the stream finishes
type TurnResult struct {
	ConversationID uuid.UUID        `json:"conversation_id"`
	MessageID      uuid.UUID        `json:"message_id"`
	Content        string           `json:"content"`
	Model          string           `json:"model"`
	Sources        []SourceResponse `json:"sources,omitempty"`
}

// IngestRequest is a document ingestion payload
type IngestRequest struct {
	Content string `json:"content" binding:"required"`
	Source  string `json:"source" binding:"required"`
	Page    int    `json:"page,omitempty"`
}

// IngestResponse reports how many chunks were stored
type IngestResponse struct {
	ChunksStored int    `json:"chunks_stored"`
	Source       string `json:"source"`
}

// ConversationResponse is the wire shape of a conversation
type ConversationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToConversationResponse converts a domain conversation to its wire shape
func ToConversationResponse(c *chat.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
