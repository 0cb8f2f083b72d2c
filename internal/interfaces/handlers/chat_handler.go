package handlers

import (
	"net/http"

	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/interfaces/dto"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc *services.ChatService
}

func NewChatHandler(chatSvc *services.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	user := currentUser(c)
	history, err := h.chatSvc.History(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", history)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)
	answer, err := h.chatSvc.Send(c.Request.Context(), user.ID, req.CollectionName, req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.ChatMessageResponse{Message: answer})
}
