package handlers

import (
	"net/http"

	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/interfaces/dto"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *services.AuthService
}

func NewAuthHandler(authSvc *services.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Token, req.Login, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, dto.RegisterResponse{Login: user.Login}, nil)
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	token, err := h.authSvc.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.AuthResponse{Token: token}, nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		respondWithError(c, http.StatusBadRequest, 400, "token is required")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.LogoutResponse{Success: true}, nil)
}
