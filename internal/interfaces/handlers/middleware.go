package handlers

import (
	"net/http"
	"strings"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/internal/interfaces/dto"
	"github.com/Adinlo/colrag/pkg/errors"
	"github.com/gin-gonic/gin"
)

const contextUserKey = "current_user"

func respondWithError(c *gin.Context, httpStatus, errorCode int, message string) {
	c.JSON(httpStatus, dto.APIResponse{
		Error: &dto.ErrorResponse{
			Code: errorCode,
			Text: message,
		},
	})
}

func respondWithSuccess(c *gin.Context, response, data any) {
	c.JSON(http.StatusOK, dto.APIResponse{
		Response: response,
		Data:     data,
	})
}

func handleServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.BadRequestError:
		respondWithError(c, http.StatusBadRequest, 400, e.Message)
	case *errors.UnauthorizedError:
		respondWithError(c, http.StatusUnauthorized, 401, e.Message)
	case *errors.ForbiddenError:
		respondWithError(c, http.StatusForbidden, 403, e.Message)
	case *errors.NotFoundError:
		respondWithError(c, http.StatusNotFound, 404, e.Message)
	case *errors.ConflictError:
		respondWithError(c, http.StatusConflict, 409, e.Message)
	case *errors.InternalError:
		respondWithError(c, http.StatusInternalServerError, 500, e.Message)
	default:
		respondWithError(c, http.StatusInternalServerError, 500, "internal server error")
	}
}

// AuthMiddleware resolves the requesting user from a bearer token and
// aborts unauthenticated requests.
func AuthMiddleware(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondWithError(c, http.StatusUnauthorized, 401, "authorization token is required")
			c.Abort()
			return
		}

		user, err := authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			handleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *entities.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

func CORSMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
