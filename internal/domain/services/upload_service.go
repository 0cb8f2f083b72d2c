package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/errors"
	"github.com/Adinlo/colrag/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadService struct {
	docRepo    repositories.DocumentRepository
	workspaces *WorkspaceService
	storage    ObjectStorage
	indexer    Indexer
	cache      CacheService
}

func NewUploadService(
	docRepo repositories.DocumentRepository,
	workspaces *WorkspaceService,
	storage ObjectStorage,
	indexer Indexer,
	cache CacheService,
) *UploadService {
	return &UploadService{
		docRepo:    docRepo,
		workspaces: workspaces,
		storage:    storage,
		indexer:    indexer,
		cache:      cache,
	}
}

type UploadInput struct {
	Filename      string
	Content       []byte
	ContentType   string
	WorkspaceID   string
	WorkspaceName string
}

// Upload runs the two-phase upload: dedup check, workspace resolution,
// pending row, blob write, indexing, commit. Any failure after the row
// is created compensates the blob object and the row so the three stores
// never disagree for long; rows stuck pending after a crash are reaped
// by the reconciler.
func (s *UploadService) Upload(ctx context.Context, userID string, input UploadInput) (*entities.Document, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, errors.NewBadRequestError("filename is required")
	}
	if len(input.Content) == 0 {
		return nil, errors.NewBadRequestError("file is empty")
	}

	workspace, err := s.workspaces.Resolve(ctx, input.WorkspaceID, input.WorkspaceName, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.docRepo.Exists(ctx, filename, workspace.ID, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check existing documents")
	}
	if exists {
		return nil, errors.NewConflictError(fmt.Sprintf("document %q already exists", filename))
	}

	doc := &entities.Document{
		ID:          uuid.NewString(),
		Filename:    filename,
		StorageKey:  storageKey(workspace.ID, userID, filename),
		FileType:    fileType(filename),
		Status:      entities.DocumentStatusPending,
		UserID:      userID,
		WorkspaceID: workspace.ID,
		UploadedAt:  time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to create document record")
	}

	if err := s.storage.Put(ctx, doc.StorageKey, input.Content, input.ContentType); err != nil {
		logger.Error("document upload to storage failed",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err),
		)
		s.compensate(ctx, doc, false)
		return nil, errors.NewInternalError("document upload failed")
	}

	// The payload is handed over in memory; the blob object is
	// byte-identical, so no read-after-write round trip is needed.
	if err := s.indexer.Index(ctx, workspace.Collection, doc.ID, doc.FileType, input.Content); err != nil {
		logger.Error("document indexing failed",
			zap.String("document_id", doc.ID),
			zap.String("collection", workspace.Collection),
			zap.Error(err),
		)
		s.compensate(ctx, doc, true)
		return nil, errors.NewInternalError("document indexing failed")
	}

	if err := s.docRepo.SetStatus(ctx, doc.ID, entities.DocumentStatusCommitted); err != nil {
		s.compensate(ctx, doc, true)
		return nil, errors.NewInternalError("failed to commit document record")
	}
	doc.Status = entities.DocumentStatusCommitted

	s.cache.InvalidatePrefix(ctx, visibleListPrefix)

	logger.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.String("workspace", workspace.Name),
		zap.String("user_id", userID),
	)

	return doc, nil
}

// compensate undoes a half-finished upload: the pending row always, the
// blob object when it was written.
func (s *UploadService) compensate(ctx context.Context, doc *entities.Document, blobWritten bool) {
	if blobWritten {
		if err := s.storage.Remove(ctx, doc.StorageKey); err != nil {
			logger.Warn("failed to remove orphaned blob",
				zap.String("storage_key", doc.StorageKey),
				zap.Error(err),
			)
		}
	}
	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		logger.Warn("failed to remove pending document row",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
	}
}

// storageKey builds the per-upload object key. The 8 hex chars give
// best-effort uniqueness per (workspace, user, filename) attempt, not a
// hard guarantee.
func storageKey(workspaceID, userID, filename string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("workspaces/%s/%s/%s_%s", workspaceID, userID, hex.EncodeToString(b), filename)
}

func fileType(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}
