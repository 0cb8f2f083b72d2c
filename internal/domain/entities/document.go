package entities

import "time"

const (
	DocumentStatusPending   = "pending"
	DocumentStatusCommitted = "committed"
)

type Document struct {
	ID          string    `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	StorageKey  string    `json:"storage_key" db:"storage_key"`
	FileType    string    `json:"file_type" db:"file_type"`
	Status      string    `json:"status" db:"status"`
	UserID      string    `json:"user_id" db:"user_id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// DocumentRecord is a Document joined with the fields the visibility
// policy and list summaries need.
type DocumentRecord struct {
	Document
	Author             string `json:"author" db:"author"`
	WorkspaceName      string `json:"workspace_name" db:"workspace_name"`
	WorkspaceCreatorID string `json:"-" db:"workspace_creator_id"`
	WorkspacePublic    bool   `json:"-" db:"workspace_public"`
}

type DocumentSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	WorkspaceName string `json:"workspace_name"`
}

func (r *DocumentRecord) Summary() *DocumentSummary {
	return &DocumentSummary{
		ID:            r.ID,
		Name:          r.Filename,
		Author:        r.Author,
		WorkspaceName: r.WorkspaceName,
	}
}
