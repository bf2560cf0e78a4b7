package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConversationModel is the persistence model for the Conversation entity.
type ConversationModel struct {
	OwnedModel
	Title string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (ConversationModel) TableName() string {
	return "conversations"
}

// ToDomain converts the persistence model to a domain Conversation entity.
func (m *ConversationModel) ToDomain() *chat.Conversation {
	return &chat.Conversation{
		OwnedEntity: m.ToDomainOwnedEntity(),
		Title:       m.Title,
	}
}

// FromDomain populates the persistence model from a domain Conversation entity.
func (m *ConversationModel) FromDomain(c *chat.Conversation) {
	m.FromDomainOwnedEntity(c.OwnedEntity)
	m.Title = c.Title
}

// ConversationModelFromDomain creates a new persistence model from a domain Conversation.
func ConversationModelFromDomain(c *chat.Conversation) *ConversationModel {
	m := &ConversationModel{}
	m.FromDomain(c)
	return m
}

// MessageMetadataJSON stores assistant message metadata as a jsonb column.
type MessageMetadataJSON chat.MessageMetadata

// Value implements driver.Valuer
func (m MessageMetadataJSON) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *MessageMetadataJSON) Scan(value interface{}) error {
	if value == nil {
		*m = MessageMetadataJSON{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into MessageMetadataJSON", value)
	}
	return json.Unmarshal(data, m)
}

// MessageModel is the persistence model for a chat message.
type MessageModel struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key"`
	ConversationID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Role           chat.Role            `gorm:"type:varchar(20);not null"`
	Content        string               `gorm:"type:text;not null"`
	Metadata       *MessageMetadataJSON `gorm:"type:jsonb"`
	CreatedAt      time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message.
func (m *MessageModel) ToDomain() *chat.Message {
	msg := &chat.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
	if m.Metadata != nil {
		meta := chat.MessageMetadata(*m.Metadata)
		msg.Metadata = &meta
	}
	return msg
}

// FromDomain populates the persistence model from a domain Message.
func (m *MessageModel) FromDomain(msg *chat.Message) {
	m.ID = msg.ID
	m.ConversationID = msg.ConversationID
	m.Role = msg.Role
	m.Content = msg.Content
	m.CreatedAt = msg.CreatedAt
	if msg.Metadata != nil {
		meta := MessageMetadataJSON(*msg.Metadata)
		m.Metadata = &meta
	}
}

// MessageModelFromDomain creates a new persistence model from a domain Message.
func MessageModelFromDomain(msg *chat.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}

// DocumentChunkModel is the persistence model for an embedded document chunk.
type DocumentChunkModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	Content    string          `gorm:"type:text;not null"`
	Embedding  pq.Float64Array `gorm:"type:float8[]"`
	Source     string          `gorm:"type:varchar(255);not null;index"`
	Page       int             `gorm:"not null;default:0"`
	ChunkIndex int             `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentChunkModel) TableName() string {
	return "document_chunks"
}

// ToDomain converts the persistence model to a domain DocumentChunk.
func (m *DocumentChunkModel) ToDomain() chat.DocumentChunk {
	return chat.DocumentChunk{
		ID:         m.ID,
		Content:    m.Content,
		Embedding:  []float64(m.Embedding),
		Source:     m.Source,
		Page:       m.Page,
		ChunkIndex: m.ChunkIndex,
		CreatedAt:  m.CreatedAt,
	}
}

// DocumentChunkModelFromDomain creates a new persistence model from a domain DocumentChunk.
func DocumentChunkModelFromDomain(c chat.DocumentChunk) *DocumentChunkModel {
	return &DocumentChunkModel{
		ID:         c.ID,
		Content:    c.Content,
		Embedding:  pq.Float64Array(c.Embedding),
		Source:     c.Source,
		Page:       c.Page,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}
