package entities

import "time"

type Workspace struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	CreatorID  string    `json:"creator_id" db:"creator_id"`
	IsPublic   bool      `json:"public" db:"is_public"`
	Collection string    `json:"collection" db:"collection"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
