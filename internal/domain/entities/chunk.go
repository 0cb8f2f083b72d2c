package entities

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Chunk is one embedded fragment of a document inside a workspace's
// vector collection.
type Chunk struct {
	ID         string          `json:"id" db:"id"`
	Collection string          `json:"collection" db:"collection"`
	DocumentID string          `json:"document_id" db:"document_id"`
	ChunkIndex int             `json:"chunk_index" db:"chunk_index"`
	Content    string          `json:"content" db:"content"`
	Embedding  pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type ScoredChunk struct {
	Chunk
	Similarity float64 `json:"similarity" db:"similarity"`
}
