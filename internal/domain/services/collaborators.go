package services

import "context"

// ObjectStorage is the blob-storage collaborator holding uploaded
// payloads under generated keys.
type ObjectStorage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Indexer ingests a payload into a workspace's vector collection.
type Indexer interface {
	Index(ctx context.Context, collection, documentID, fileType string, content []byte) error
}

// QueryPipeline answers a question against a workspace's collection.
type QueryPipeline interface {
	Run(ctx context.Context, collection, question string) (string, error)
}

// ChunkRemover drops a document's chunks from its collection.
type ChunkRemover interface {
	DeleteByDocumentID(ctx context.Context, documentID string) error
}
