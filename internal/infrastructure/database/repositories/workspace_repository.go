package repositories

import (
	"context"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/jmoiron/sqlx"
)

type workspaceRepository struct {
	db *sqlx.DB
}

func NewWorkspaceRepository(db *sqlx.DB) repositories.WorkspaceRepository {
	return &workspaceRepository{db: db}
}

const workspaceColumns = `id, name, creator_id, is_public, collection, created_at`

func (r *workspaceRepository) Create(ctx context.Context, workspace *entities.Workspace) error {
	query := `INSERT INTO workspaces (id, name, creator_id, is_public, collection, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		workspace.ID, workspace.Name, workspace.CreatorID,
		workspace.IsPublic, workspace.Collection, workspace.CreatedAt,
	)
	return err
}

func (r *workspaceRepository) GetByIDAndCreator(ctx context.Context, id, creatorID string) (*entities.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1 AND creator_id = $2`

	var workspace entities.Workspace
	if err := r.db.GetContext(ctx, &workspace, query, id, creatorID); err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepository) GetByNameAndCreator(ctx context.Context, name, creatorID string) (*entities.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE name = $1 AND creator_id = $2`

	var workspace entities.Workspace
	if err := r.db.GetContext(ctx, &workspace, query, name, creatorID); err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepository) GetByCollection(ctx context.Context, collection string) (*entities.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE collection = $1`

	var workspace entities.Workspace
	if err := r.db.GetContext(ctx, &workspace, query, collection); err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entities.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE creator_id = $1 ORDER BY created_at DESC`

	var workspaces []*entities.Workspace
	if err := r.db.SelectContext(ctx, &workspaces, query, creatorID); err != nil {
		return nil, err
	}
	return workspaces, nil
}
