package chat

import (
	"context"

	"github.com/google/uuid"
)

// ConversationRepository defines persistence operations for conversations
type ConversationRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Conversation, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Conversation, error)
	Save(ctx context.Context, conversation *Conversation) error
}

// MessageRepository defines persistence operations for chat messages
type MessageRepository interface {
	// FindRecent returns the most recent limit messages, oldest first.
	FindRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]Message, error)
	Save(ctx context.Context, message *Message) error
}

// ChunkRepository defines persistence operations for document chunks
type ChunkRepository interface {
	// FindAllEmbedded returns every chunk with a non-null embedding.
	FindAllEmbedded(ctx context.Context) ([]DocumentChunk, error)
	SaveBatch(ctx context.Context, chunks []DocumentChunk) error
}
