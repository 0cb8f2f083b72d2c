package handlers

import (
	"net/http"

	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/interfaces/dto"
	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaceSvc *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceSvc *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceSvc: workspaceSvc}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req dto.WorkspaceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)
	workspace, err := h.workspaceSvc.Create(c.Request.Context(), user.ID, req.Name, req.Public)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, workspace)
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	user := currentUser(c)
	workspaces, err := h.workspaceSvc.List(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.WorkspaceListResponse{Workspaces: workspaces})
}
