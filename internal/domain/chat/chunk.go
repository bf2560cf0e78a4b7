package chat

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded window of ingested text
type DocumentChunk struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	Embedding  []float64 `json:"-"`
	Source     string    `json:"source"`
	Page       int       `json:"page"`
	ChunkIndex int       `json:"chunk_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredChunk pairs a chunk with its similarity to a query embedding
type ScoredChunk struct {
	Chunk      DocumentChunk
	Similarity float64
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero-magnitude inputs.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
