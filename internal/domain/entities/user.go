package entities

import (
	"encoding/json"
	"time"
)

type User struct {
	ID          string          `json:"id" db:"id"`
	Login       string          `json:"login" db:"login"`
	Email       string          `json:"email" db:"email"`
	Password    string          `json:"-" db:"password"`
	ChatHistory json.RawMessage `json:"chat_history,omitempty" db:"chat_history"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
