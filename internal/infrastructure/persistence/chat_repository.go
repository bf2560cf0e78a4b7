package persistence

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/infrastructure/persistence/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConversationRepository implements ConversationRepository using GORM
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GormConversationRepository
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindByIDForOwner finds a conversation by ID for a specific owner
func (r *GormConversationRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*chat.Conversation, error) {
	var model models.ConversationModel
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all conversations for an owner, most recent first
func (r *GormConversationRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]chat.Conversation, error) {
	var conversationModels []models.ConversationModel
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Order("updated_at DESC").
		Find(&conversationModels).Error; err != nil {
		return nil, err
	}
	conversations := make([]chat.Conversation, len(conversationModels))
	for i, model := range conversationModels {
		conversations[i] = *model.ToDomain()
	}
	return conversations, nil
}

// Save creates or updates a conversation
func (r *GormConversationRepository) Save(ctx context.Context, conversation *chat.Conversation) error {
	model := models.ConversationModelFromDomain(conversation)
	return r.db.WithContext(ctx).Save(model).Error
}

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindRecent returns the most recent limit messages of a conversation,
// reordered oldest first for prompt assembly
func (r *GormMessageRepository) FindRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]chat.Message, error) {
	var messageModels []models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messageModels).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	messages := make([]chat.Message, len(messageModels))
	for i, model := range messageModels {
		messages[len(messageModels)-1-i] = *model.ToDomain()
	}
	return messages, nil
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, message *chat.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// GormChunkRepository implements ChunkRepository using GORM
type GormChunkRepository struct {
	db *gorm.DB
}

// NewGormChunkRepository creates a new GormChunkRepository
func NewGormChunkRepository(db *gorm.DB) *GormChunkRepository {
	return &GormChunkRepository{db: db}
}

// FindAllEmbedded returns every chunk that has a stored embedding
func (r *GormChunkRepository) FindAllEmbedded(ctx context.Context) ([]chat.DocumentChunk, error) {
	var chunkModels []models.DocumentChunkModel
	if err := r.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Find(&chunkModels).Error; err != nil {
		return nil, err
	}
	chunks := make([]chat.DocumentChunk, len(chunkModels))
	for i, model := range chunkModels {
		chunks[i] = model.ToDomain()
	}
	return chunks, nil
}

// SaveBatch inserts a batch of chunks
func (r *GormChunkRepository) SaveBatch(ctx context.Context, chunks []chat.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	chunkModels := make([]*models.DocumentChunkModel, len(chunks))
	for i, c := range chunks {
		chunkModels[i] = models.DocumentChunkModelFromDomain(c)
	}
	return r.db.WithContext(ctx).CreateInBatches(chunkModels, 100).Error
}
