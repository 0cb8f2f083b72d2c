package dto

import "github.com/Adinlo/colrag/internal/domain/entities"

type WorkspaceCreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Public bool   `json:"public"`
}

type WorkspaceListResponse struct {
	Workspaces []*entities.Workspace `json:"workspaces"`
}
