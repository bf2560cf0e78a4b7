package chat

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// maxTitleLength caps conversation titles created from a first message
const maxTitleLength = 50

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Conversation is a chat thread owned by a user
type Conversation struct {
	shared.OwnedEntity
	Title string `json:"title"`
}

// NewConversation creates a conversation, truncating the title to 50
// characters. Truncation counts runes so a multi-byte title never ends on a
// partial sequence.
func NewConversation(ownerID uuid.UUID, title string) *Conversation {
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength])
	}
	return &Conversation{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Title:       title,
	}
}

// MessageMetadata records which retrieved sources grounded an assistant turn
type MessageMetadata struct {
	Model   string        `json:"model,omitempty"`
	Sources []CitedSource `json:"sources,omitempty"`
}

// CitedSource is one retrieved chunk cited by an assistant message
type CitedSource struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	Source     string    `json:"source"`
	Similarity float64   `json:"similarity"`
}

// Message is one turn within a conversation
type Message struct {
	ID             uuid.UUID        `json:"id"`
	ConversationID uuid.UUID        `json:"conversation_id"`
	Role           Role             `json:"role"`
	Content        string           `json:"content"`
	Metadata       *MessageMetadata `json:"metadata,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NewMessage creates a message in a conversation
func NewMessage(conversationID uuid.UUID, role Role, content string) (*Message, error) {
	if conversationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONVERSATION", "Conversation is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Message role is not valid")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Message content cannot be empty")
	}
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}, nil
}
