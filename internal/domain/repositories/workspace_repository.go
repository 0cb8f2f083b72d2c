package repositories

import (
	"context"

	"github.com/Adinlo/colrag/internal/domain/entities"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entities.Workspace) error
	GetByIDAndCreator(ctx context.Context, id, creatorID string) (*entities.Workspace, error)
	GetByNameAndCreator(ctx context.Context, name, creatorID string) (*entities.Workspace, error)
	GetByCollection(ctx context.Context, collection string) (*entities.Workspace, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*entities.Workspace, error)
}
