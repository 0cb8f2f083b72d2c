package pipeline

import (
	"context"
	"fmt"

	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/logger"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// embedding providers commonly cap batch sizes
const embeddingBatchSize = 16

// Indexing ingests a document payload into a workspace's vector
// collection: extract text, chunk, embed, store.
type Indexing struct {
	chunkRepo repositories.ChunkRepository
	embedder  Embedder
	chunker   *Chunker
}

func NewIndexing(chunkRepo repositories.ChunkRepository, embedder Embedder, cfg config.IndexConfig) *Indexing {
	return &Indexing{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		chunker:   NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
	}
}

func (p *Indexing) Index(ctx context.Context, collection, documentID, fileType string, content []byte) error {
	text, err := ExtractText(fileType, content)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	parts := p.chunker.ChunkText(text)
	if len(parts) == 0 {
		return fmt.Errorf("document produced no indexable text")
	}

	vectors, err := p.embedAll(ctx, parts)
	if err != nil {
		return err
	}
	if len(vectors) != len(parts) {
		return fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(parts), len(vectors))
	}

	chunks := make([]entities.Chunk, len(parts))
	for i := range parts {
		chunks[i] = entities.Chunk{
			Collection: collection,
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    parts[i],
			Embedding:  vectors[i],
		}
	}

	if err := p.chunkRepo.CreateBatch(ctx, chunks); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	logger.Info("document indexed",
		zap.String("collection", collection),
		zap.String("document_id", documentID),
		zap.Int("chunks", len(chunks)),
	)
	return nil
}

func (p *Indexing) embedAll(ctx context.Context, parts []string) ([]pgvector.Vector, error) {
	var vectors []pgvector.Vector
	for i := 0; i < len(parts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(parts) {
			end = len(parts)
		}
		batch, err := p.embedder.EmbedBatch(ctx, parts[i:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk batch: %w", err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
