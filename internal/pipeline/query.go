package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/internal/domain/repositories"
)

const querySystemPrompt = `You are a helpful assistant. Answer the user's question based only on the provided context. If the context does not contain enough information, say so. Do not make up facts.`

// Query answers a natural-language question against one workspace
// collection: embed the question, fetch the most similar chunks, and ask
// the model over that context.
type Query struct {
	chunkRepo repositories.ChunkRepository
	embedder  Embedder
	completer Completer
	topK      int
	minScore  float64
}

func NewQuery(chunkRepo repositories.ChunkRepository, embedder Embedder, completer Completer, cfg config.IndexConfig) *Query {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}
	return &Query{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		completer: completer,
		topK:      topK,
		minScore:  cfg.MinScore,
	}
}

func (p *Query) Run(ctx context.Context, collection, question string) (string, error) {
	embedding, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	chunks, err := p.chunkRepo.SearchSimilar(ctx, collection, embedding, p.topK, p.minScore)
	if err != nil {
		return "", fmt.Errorf("failed to search collection %q: %w", collection, err)
	}

	var contextBlock strings.Builder
	for _, chunk := range chunks {
		contextBlock.WriteString("\n---\n")
		contextBlock.WriteString(chunk.Content)
	}
	if len(chunks) > 0 {
		contextBlock.WriteString("\n---")
	}

	userPrompt := fmt.Sprintf("Context:%s\n\nQuestion: %s\n\nAnswer:", contextBlock.String(), question)

	answer, err := p.completer.Complete(ctx, querySystemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}
