package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/internal/domain/repositories"
	"github.com/jmoiron/sqlx"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repositories.DocumentRepository {
	return &documentRepository{db: db}
}

const recordColumns = `d.id, d.filename, d.storage_key, d.file_type, d.status, d.user_id, d.workspace_id, d.uploaded_at,
		u.login AS author, w.name AS workspace_name, w.creator_id AS workspace_creator_id, w.is_public AS workspace_public`

const recordJoins = ` FROM documents d
		JOIN users u ON d.user_id = u.id
		JOIN workspaces w ON d.workspace_id = w.id`

func (r *documentRepository) Create(ctx context.Context, doc *entities.Document) error {
	query := `INSERT INTO documents (id, filename, storage_key, file_type, status, user_id, workspace_id, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.StorageKey, doc.FileType,
		doc.Status, doc.UserID, doc.WorkspaceID, doc.UploadedAt,
	)
	return err
}

func (r *documentRepository) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE documents SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *documentRepository) Exists(ctx context.Context, filename, workspaceID, userID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM documents WHERE filename = $1 AND workspace_id = $2 AND user_id = $3
	)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, filename, workspaceID, userID)
	return exists, err
}

func (r *documentRepository) GetRecordByID(ctx context.Context, id string) (*entities.DocumentRecord, error) {
	query := `SELECT ` + recordColumns + recordJoins + ` WHERE d.id = $1 AND d.status = 'committed'`

	var record entities.DocumentRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *documentRepository) ListVisible(ctx context.Context, requesterID string) ([]*entities.DocumentRecord, error) {
	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE d.status = 'committed'
			AND (w.is_public = true OR w.creator_id = $1 OR d.user_id = $1)
		ORDER BY d.uploaded_at DESC`

	var records []*entities.DocumentRecord
	if err := r.db.SelectContext(ctx, &records, query, requesterID); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *documentRepository) FindByFilenameContains(ctx context.Context, substring string) (*entities.DocumentRecord, error) {
	query := `SELECT ` + recordColumns + recordJoins + `
		WHERE d.status = 'committed' AND d.filename ILIKE $1 ESCAPE '\'
		ORDER BY d.uploaded_at DESC
		LIMIT 1`

	var record entities.DocumentRecord
	if err := r.db.GetContext(ctx, &record, query, "%"+escapeLike(substring)+"%"); err != nil {
		return nil, err
	}
	return &record, nil
}

// escapeLike neutralizes LIKE metacharacters so a search term matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *documentRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]*entities.Document, error) {
	query := `SELECT id, filename, storage_key, file_type, status, user_id, workspace_id, uploaded_at
		FROM documents WHERE status = 'pending' AND uploaded_at < $1`

	var docs []*entities.Document
	if err := r.db.SelectContext(ctx, &docs, query, olderThan); err != nil {
		return nil, err
	}
	return docs, nil
}
