package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/pkg/logger"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type fakeEmbedder struct {
	err        error
	batchCalls [][]string
}

func vectorFor(text string) pgvector.Vector {
	return pgvector.NewVector([]float32{float32(len(text)), 0, 1})
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return vectorFor(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([]pgvector.Vector, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batchCalls = append(f.batchCalls, texts)
	vectors := make([]pgvector.Vector, len(texts))
	for i, t := range texts {
		vectors[i] = vectorFor(t)
	}
	return vectors, nil
}

type fakeCompleter struct {
	answer      string
	err         error
	userPrompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.userPrompts = append(f.userPrompts, userPrompt)
	return f.answer, nil
}

type fakeChunkRepo struct {
	stored    []entities.Chunk
	similar   []entities.ScoredChunk
	createErr error
	searchErr error
	deleted   []string
}

func (f *fakeChunkRepo) CreateBatch(_ context.Context, chunks []entities.Chunk) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.stored = append(f.stored, chunks...)
	return nil
}

func (f *fakeChunkRepo) SearchSimilar(_ context.Context, _ string, _ pgvector.Vector, _ int, _ float64) ([]entities.ScoredChunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.similar, nil
}

func (f *fakeChunkRepo) DeleteByDocumentID(_ context.Context, documentID string) error {
	f.deleted = append(f.deleted, documentID)
	return nil
}

func indexConfig() config.IndexConfig {
	return config.IndexConfig{ChunkSize: 64, ChunkOverlap: 8, TopK: 3, MinScore: 0.1}
}

func TestIndexStoresEmbeddedChunks(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &fakeEmbedder{}
	idx := NewIndexing(repo, embedder, indexConfig())

	text := strings.Repeat("a useful sentence of text. ", 20)
	err := idx.Index(context.Background(), "ws_research_alice", "d1", "txt", []byte(text))
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if len(repo.stored) == 0 {
		t.Fatal("no chunks stored")
	}
	for i, chunk := range repo.stored {
		if chunk.Collection != "ws_research_alice" || chunk.DocumentID != "d1" {
			t.Errorf("chunk %d routed to (%q, %q)", i, chunk.Collection, chunk.DocumentID)
		}
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if len(chunk.Embedding.Slice()) == 0 {
			t.Errorf("chunk %d has no embedding", i)
		}
	}
}

func TestIndexBatchesEmbeddings(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &fakeEmbedder{}
	// tiny chunks force enough parts to need more than one batch
	idx := NewIndexing(repo, embedder, config.IndexConfig{ChunkSize: 16, ChunkOverlap: 2})

	text := strings.Repeat("words and words. ", 40)
	if err := idx.Index(context.Background(), "c", "d1", "txt", []byte(text)); err != nil {
		t.Fatalf("Index: %v", err)
	}

	if len(embedder.batchCalls) < 2 {
		t.Fatalf("got %d embed batches, want several", len(embedder.batchCalls))
	}
	for _, batch := range embedder.batchCalls {
		if len(batch) > embeddingBatchSize {
			t.Errorf("batch of %d exceeds cap %d", len(batch), embeddingBatchSize)
		}
	}
}

func TestIndexEmptyDocumentErrors(t *testing.T) {
	idx := NewIndexing(&fakeChunkRepo{}, &fakeEmbedder{}, indexConfig())
	if err := idx.Index(context.Background(), "c", "d1", "txt", []byte("   ")); err == nil {
		t.Error("expected an error for an empty document")
	}
}

func TestIndexEmbedderFailureStoresNothing(t *testing.T) {
	repo := &fakeChunkRepo{}
	idx := NewIndexing(repo, &fakeEmbedder{err: errors.New("rate limited")}, indexConfig())

	err := idx.Index(context.Background(), "c", "d1", "txt", []byte("some document text here."))
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(repo.stored) != 0 {
		t.Error("chunks stored despite embedding failure")
	}
}

func TestQueryBuildsContextFromRetrievedChunks(t *testing.T) {
	repo := &fakeChunkRepo{similar: []entities.ScoredChunk{
		{Chunk: entities.Chunk{Content: "first retrieved chunk"}, Similarity: 0.9},
		{Chunk: entities.Chunk{Content: "second retrieved chunk"}, Similarity: 0.8},
	}}
	completer := &fakeCompleter{answer: "  the answer  "}
	q := NewQuery(repo, &fakeEmbedder{}, completer, indexConfig())

	answer, err := q.Run(context.Background(), "ws_research_alice", "what is it?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer != "the answer" {
		t.Errorf("answer = %q, want trimmed", answer)
	}

	if len(completer.userPrompts) != 1 {
		t.Fatalf("completer called %d times", len(completer.userPrompts))
	}
	prompt := completer.userPrompts[0]
	if !strings.Contains(prompt, "first retrieved chunk") || !strings.Contains(prompt, "second retrieved chunk") {
		t.Errorf("prompt missing retrieved chunks: %q", prompt)
	}
	if !strings.Contains(prompt, "Question: what is it?") {
		t.Errorf("prompt missing question: %q", prompt)
	}
}

func TestQueryEmptyRetrievalStillAnswers(t *testing.T) {
	completer := &fakeCompleter{answer: "I don't have enough context."}
	q := NewQuery(&fakeChunkRepo{}, &fakeEmbedder{}, completer, indexConfig())

	answer, err := q.Run(context.Background(), "c", "anything?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer == "" {
		t.Error("empty answer")
	}
}

func TestQueryPropagatesFailures(t *testing.T) {
	q := NewQuery(&fakeChunkRepo{}, &fakeEmbedder{err: errors.New("down")}, &fakeCompleter{}, indexConfig())
	if _, err := q.Run(context.Background(), "c", "q"); err == nil {
		t.Error("embedder failure not propagated")
	}

	q = NewQuery(&fakeChunkRepo{searchErr: errors.New("down")}, &fakeEmbedder{}, &fakeCompleter{}, indexConfig())
	if _, err := q.Run(context.Background(), "c", "q"); err == nil {
		t.Error("search failure not propagated")
	}

	q = NewQuery(&fakeChunkRepo{}, &fakeEmbedder{}, &fakeCompleter{err: errors.New("down")}, indexConfig())
	if _, err := q.Run(context.Background(), "c", "q"); err == nil {
		t.Error("completion failure not propagated")
	}
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText("txt", []byte("hello world"))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextBrokenPDF(t *testing.T) {
	if _, err := ExtractText("pdf", []byte("not a pdf")); err == nil {
		t.Error("expected an error for a malformed pdf")
	}
}
