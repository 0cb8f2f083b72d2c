package repositories

import (
	"context"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type chunkRepository struct {
	db *sqlx.DB
}

func NewChunkRepository(db *sqlx.DB) repositories.ChunkRepository {
	return &chunkRepository{db: db}
}

func (r *chunkRepository) CreateBatch(ctx context.Context, chunks []entities.Chunk) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO chunks (id, collection, document_id, chunk_index, content, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range chunks {
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.NewString()
		}
		if chunks[i].CreatedAt.IsZero() {
			chunks[i].CreatedAt = time.Now()
		}

		_, err := tx.ExecContext(ctx, query,
			chunks[i].ID, chunks[i].Collection, chunks[i].DocumentID,
			chunks[i].ChunkIndex, chunks[i].Content, chunks[i].Embedding, chunks[i].CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *chunkRepository) SearchSimilar(
	ctx context.Context,
	collection string,
	embedding pgvector.Vector,
	topK int,
	minScore float64,
) ([]entities.ScoredChunk, error) {
	query := `SELECT id, collection, document_id, chunk_index, content, created_at,
			1 - (embedding <=> $2) AS similarity
		FROM chunks
		WHERE collection = $1 AND 1 - (embedding <=> $2) >= $3
		ORDER BY embedding <=> $2
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, collection, embedding, minScore, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []entities.ScoredChunk
	for rows.Next() {
		var chunk entities.ScoredChunk
		err := rows.Scan(
			&chunk.ID, &chunk.Collection, &chunk.DocumentID,
			&chunk.ChunkIndex, &chunk.Content, &chunk.CreatedAt, &chunk.Similarity,
		)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

func (r *chunkRepository) DeleteByDocumentID(ctx context.Context, documentID string) error {
	query := `DELETE FROM chunks WHERE document_id = $1`
	_, err := r.db.ExecContext(ctx, query, documentID)
	return err
}
