package repositories

import (
	"context"
	"encoding/json"

	"github.com/Adinlo/colrag/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByLogin(ctx context.Context, login string) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetChatHistory(ctx context.Context, id string) (json.RawMessage, error)
	UpdateChatHistory(ctx context.Context, id string, history json.RawMessage) error
}
