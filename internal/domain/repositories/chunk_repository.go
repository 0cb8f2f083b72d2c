package repositories

import (
	"context"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/pgvector/pgvector-go"
)

type ChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []entities.Chunk) error
	SearchSimilar(ctx context.Context, collection string, embedding pgvector.Vector, topK int, minScore float64) ([]entities.ScoredChunk, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}
