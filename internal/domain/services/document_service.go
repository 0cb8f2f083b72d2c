package services

import (
	"context"
	"fmt"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/errors"
	"github.com/Adinlo/colrag/pkg/logger"
	"go.uber.org/zap"
)

type DocumentService struct {
	docRepo repositories.DocumentRepository
	cache   CacheService
	storage ObjectStorage
	chunks  ChunkRemover
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	cache CacheService,
	storage ObjectStorage,
	chunks ChunkRemover,
) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		cache:   cache,
		storage: storage,
		chunks:  chunks,
	}
}

// ListVisible returns summaries of every document the requester may see.
// An empty result is a valid answer, not an error.
func (s *DocumentService) ListVisible(ctx context.Context, requesterID string) ([]*entities.DocumentSummary, error) {
	cacheKey := s.cache.VisibleListKey(requesterID)
	if docs, err := s.cache.GetSummaries(ctx, cacheKey); err == nil {
		return docs, nil
	}

	records, err := s.docRepo.ListVisible(ctx, requesterID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list documents")
	}

	summaries := make([]*entities.DocumentSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summary())
	}

	s.cache.SetSummaries(ctx, cacheKey, summaries)

	return summaries, nil
}

// GetByID applies the same visibility policy as ListVisible so that the
// two stay symmetric.
func (s *DocumentService) GetByID(ctx context.Context, docID, requesterID string) (*entities.DocumentRecord, error) {
	record, err := s.docRepo.GetRecordByID(ctx, docID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no document with id %q found", docID))
	}

	if !s.checkAccess(record, requesterID) {
		return nil, errors.NewForbiddenError("access denied")
	}

	return record, nil
}

// Download fetches the stored payload for a visible document.
func (s *DocumentService) Download(ctx context.Context, docID, requesterID string) (*entities.DocumentRecord, []byte, string, error) {
	record, err := s.GetByID(ctx, docID, requesterID)
	if err != nil {
		return nil, nil, "", err
	}

	content, contentType, err := s.storage.Get(ctx, record.StorageKey)
	if err != nil {
		logger.Error("failed to fetch document payload",
			zap.String("document_id", docID),
			zap.String("storage_key", record.StorageKey),
			zap.Error(err),
		)
		return nil, nil, "", errors.NewInternalError("failed to fetch document payload")
	}

	return record, content, contentType, nil
}

// Search finds the first document whose filename contains the substring
// and checks the requester may see it.
func (s *DocumentService) Search(ctx context.Context, substring, requesterID string) (*entities.DocumentSummary, error) {
	record, err := s.docRepo.FindByFilenameContains(ctx, substring)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no document matching %q found", substring))
	}

	if !s.checkAccess(record, requesterID) {
		return nil, errors.NewForbiddenError("you are not authorized to access this document")
	}

	return record.Summary(), nil
}

// Delete removes a document's row, payload, and indexed chunks. Only the
// uploader or the workspace creator may delete.
func (s *DocumentService) Delete(ctx context.Context, docID, requesterID string) error {
	record, err := s.docRepo.GetRecordByID(ctx, docID)
	if err != nil {
		return errors.NewNotFoundError(fmt.Sprintf("no document with id %q found", docID))
	}

	if record.UserID != requesterID && record.WorkspaceCreatorID != requesterID {
		return errors.NewForbiddenError("access denied")
	}

	if err := s.chunks.DeleteByDocumentID(ctx, docID); err != nil {
		return errors.NewInternalError("failed to remove document from index")
	}
	if err := s.storage.Remove(ctx, record.StorageKey); err != nil {
		logger.Warn("failed to remove document payload",
			zap.String("storage_key", record.StorageKey),
			zap.Error(err),
		)
	}
	if err := s.docRepo.Delete(ctx, docID); err != nil {
		return errors.NewInternalError("failed to delete document")
	}

	s.cache.InvalidatePrefix(ctx, visibleListPrefix)

	return nil
}

// checkAccess is the canonical document visibility policy: uploader,
// public workspace, or workspace creator.
func (s *DocumentService) checkAccess(record *entities.DocumentRecord, requesterID string) bool {
	return record.UserID == requesterID ||
		record.WorkspacePublic ||
		record.WorkspaceCreatorID == requesterID
}
