package repositories

import (
	"context"
	"encoding/json"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `INSERT INTO users (id, login, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Login, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT id, login, email, password, chat_history, created_at, updated_at
		FROM users WHERE id = $1`

	var user entities.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `SELECT id, login, email, password, chat_history, created_at, updated_at
		FROM users WHERE login = $1`

	var user entities.User
	if err := r.db.GetContext(ctx, &user, query, login); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetChatHistory(ctx context.Context, id string) (json.RawMessage, error) {
	query := `SELECT chat_history FROM users WHERE id = $1`

	var history *json.RawMessage
	if err := r.db.GetContext(ctx, &history, query, id); err != nil {
		return nil, err
	}
	if history == nil {
		return nil, nil
	}
	return *history, nil
}

func (r *userRepository) UpdateChatHistory(ctx context.Context, id string, history json.RawMessage) error {
	query := `UPDATE users SET chat_history = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, history, id)
	return err
}
