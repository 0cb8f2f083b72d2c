package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/Adinlo/colrag/pkg/errors"
	"github.com/google/uuid"
)

type WorkspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
}

func NewWorkspaceService(workspaceRepo repositories.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

func (s *WorkspaceService) Create(ctx context.Context, creatorID, name string, isPublic bool) (*entities.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewBadRequestError("workspace name is required")
	}

	if _, err := s.workspaceRepo.GetByNameAndCreator(ctx, name, creatorID); err == nil {
		return nil, errors.NewConflictError(fmt.Sprintf("workspace %q already exists", name))
	}

	workspace := &entities.Workspace{
		ID:         uuid.NewString(),
		Name:       name,
		CreatorID:  creatorID,
		IsPublic:   isPublic,
		Collection: collectionName(name, creatorID),
		CreatedAt:  time.Now(),
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, errors.NewInternalError("failed to create workspace")
	}

	return workspace, nil
}

func (s *WorkspaceService) List(ctx context.Context, creatorID string) ([]*entities.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list workspaces")
	}
	return workspaces, nil
}

// Resolve looks a workspace up by id if given, otherwise by name, always
// scoped to the requester as creator. Same-name workspaces of other
// creators can never match.
func (s *WorkspaceService) Resolve(ctx context.Context, id, name, requesterID string) (*entities.Workspace, error) {
	switch {
	case id != "":
		workspace, err := s.workspaceRepo.GetByIDAndCreator(ctx, id, requesterID)
		if err != nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("workspace with id %q not found", id))
		}
		return workspace, nil
	case name != "":
		workspace, err := s.workspaceRepo.GetByNameAndCreator(ctx, name, requesterID)
		if err != nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("workspace with name %q not found", name))
		}
		return workspace, nil
	default:
		return nil, errors.NewBadRequestError("workspace id or name is required")
	}
}

// ResolveCollection finds the workspace behind a collection name,
// globally — authorization is the caller's concern.
func (s *WorkspaceService) ResolveCollection(ctx context.Context, collection string) (*entities.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByCollection(ctx, collection)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("collection %q not found", collection))
	}
	return workspace, nil
}

// collectionName derives a stable vector-store collection name unique
// per creator.
func collectionName(name, creatorID string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	short := creatorID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("ws_%s_%s", slug, short)
}
