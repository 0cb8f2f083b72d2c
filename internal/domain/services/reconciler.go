package services

import (
	"context"
	"time"

	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/logger"
	"go.uber.org/zap"
)

// Reconciler reaps documents stuck in pending state — uploads that
// crashed between the row insert and the commit. Their blob objects and
// chunks are removed along with the row.
type Reconciler struct {
	docRepo    repositories.DocumentRepository
	storage    ObjectStorage
	chunks     ChunkRemover
	interval   time.Duration
	pendingTTL time.Duration
}

func NewReconciler(
	docRepo repositories.DocumentRepository,
	storage ObjectStorage,
	chunks ChunkRemover,
	interval, pendingTTL time.Duration,
) *Reconciler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if pendingTTL <= 0 {
		pendingTTL = 30 * time.Minute
	}
	return &Reconciler{
		docRepo:    docRepo,
		storage:    storage,
		chunks:     chunks,
		interval:   interval,
		pendingTTL: pendingTTL,
	}
}

// Run sweeps on a ticker until the context is canceled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				logger.Error("pending-document sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep removes every document left pending past the TTL.
func (r *Reconciler) Sweep(ctx context.Context) error {
	stale, err := r.docRepo.ListStalePending(ctx, time.Now().Add(-r.pendingTTL))
	if err != nil {
		return err
	}

	for _, doc := range stale {
		if err := r.chunks.DeleteByDocumentID(ctx, doc.ID); err != nil {
			logger.Warn("failed to remove stale chunks",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
		}
		if err := r.storage.Remove(ctx, doc.StorageKey); err != nil {
			logger.Warn("failed to remove stale blob",
				zap.String("storage_key", doc.StorageKey),
				zap.Error(err),
			)
		}
		if err := r.docRepo.Delete(ctx, doc.ID); err != nil {
			logger.Warn("failed to remove stale document row",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		logger.Info("reaped stale pending document",
			zap.String("document_id", doc.ID),
			zap.String("filename", doc.Filename),
		)
	}

	return nil
}
