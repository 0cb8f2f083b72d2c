package repositories

import (
	"context"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, filename, workspaceID, userID string) (bool, error)
	GetRecordByID(ctx context.Context, id string) (*entities.DocumentRecord, error)
	ListVisible(ctx context.Context, requesterID string) ([]*entities.DocumentRecord, error)
	FindByFilenameContains(ctx context.Context, substring string) (*entities.DocumentRecord, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]*entities.Document, error)
}
