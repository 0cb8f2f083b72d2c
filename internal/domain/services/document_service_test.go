package services

import (
	"context"
	"testing"

	"github.com/Adinlo/colrag/internal/domain/entities"
	"github.com/Adinlo/colrag/pkg/errors"
)

func record(id, filename, uploaderID, creatorID string, public bool) *entities.DocumentRecord {
	return &entities.DocumentRecord{
		Document: entities.Document{
			ID:         id,
			Filename:   filename,
			StorageKey: "workspaces/ws1/" + uploaderID + "/aabbccdd_" + filename,
			UserID:     uploaderID,
			Status:     entities.DocumentStatusCommitted,
		},
		Author:             uploaderID,
		WorkspaceName:      "research",
		WorkspaceCreatorID: creatorID,
		WorkspacePublic:    public,
	}
}

func newDocService(repo *fakeDocRepo) (*DocumentService, *fakeStorage, *fakeChunkRemover, *fakeCacheService) {
	storage := newFakeStorage()
	chunks := &fakeChunkRemover{}
	cache := newFakeCacheService()
	return NewDocumentService(repo, cache, storage, chunks), storage, chunks, cache
}

func TestListVisibleEmptyIsNotAnError(t *testing.T) {
	svc, _, _, _ := newDocService(newFakeDocRepo())

	docs, err := svc.ListVisible(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty list, got %d", len(docs))
	}
}

func TestListVisibleFiltersByPolicy(t *testing.T) {
	repo := newFakeDocRepo()
	repo.records = []*entities.DocumentRecord{
		record("d1", "own.pdf", "alice", "bob", false),      // alice uploaded
		record("d2", "public.pdf", "bob", "bob", true),      // public workspace
		record("d3", "mine.pdf", "carol", "alice", false),   // alice's workspace
		record("d4", "hidden.pdf", "carol", "carol", false), // invisible to alice
	}
	svc, _, _, _ := newDocService(repo)

	docs, err := svc.ListVisible(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 visible documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.ID == "d4" {
			t.Error("d4 must not be visible to alice")
		}
	}
}

func TestGetByIDMatchesListVisibility(t *testing.T) {
	repo := newFakeDocRepo()
	repo.records = []*entities.DocumentRecord{
		record("d1", "own.pdf", "alice", "bob", false),
		record("d2", "public.pdf", "bob", "bob", true),
		record("d3", "mine.pdf", "carol", "alice", false),
		record("d4", "hidden.pdf", "carol", "carol", false),
	}
	svc, _, _, _ := newDocService(repo)

	visible, err := svc.ListVisible(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	inList := make(map[string]bool)
	for _, doc := range visible {
		inList[doc.ID] = true
	}

	// getById grants access exactly for the documents listVisible returns
	for _, r := range repo.records {
		_, err := svc.GetByID(context.Background(), r.ID, "alice")
		if inList[r.ID] && err != nil {
			t.Errorf("GetByID(%s) denied but listed: %v", r.ID, err)
		}
		if !inList[r.ID] && err == nil {
			t.Errorf("GetByID(%s) granted but not listed", r.ID)
		}
	}
}

func TestGetByIDMissingDocument(t *testing.T) {
	svc, _, _, _ := newDocService(newFakeDocRepo())

	_, err := svc.GetByID(context.Background(), "missing", "alice")
	if _, ok := err.(*errors.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}

func TestSearchVisibleAndForbidden(t *testing.T) {
	repo := newFakeDocRepo()
	repo.records = []*entities.DocumentRecord{
		record("d1", "quarterly_report.pdf", "bob", "bob", false),
	}
	svc, _, _, _ := newDocService(repo)

	// the uploader sees the match
	summary, err := svc.Search(context.Background(), "report", "bob")
	if err != nil {
		t.Fatalf("Search as uploader: %v", err)
	}
	if summary.Name != "quarterly_report.pdf" {
		t.Errorf("summary name = %q", summary.Name)
	}

	// a requester with no visibility gets Forbidden, not NotFound
	_, err = svc.Search(context.Background(), "report", "alice")
	if _, ok := err.(*errors.ForbiddenError); !ok {
		t.Fatalf("expected ForbiddenError, got %T", err)
	}

	// no match at all is NotFound
	_, err = svc.Search(context.Background(), "nonexistent", "bob")
	if _, ok := err.(*errors.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}

func TestDownloadReturnsPayload(t *testing.T) {
	repo := newFakeDocRepo()
	r := record("d1", "own.pdf", "alice", "alice", false)
	repo.records = []*entities.DocumentRecord{r}
	svc, storage, _, _ := newDocService(repo)
	storage.objects[r.StorageKey] = []byte("payload")
	storage.types[r.StorageKey] = "application/pdf"

	rec, content, contentType, err := svc.Download(context.Background(), "d1", "alice")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(content) != "payload" || contentType != "application/pdf" {
		t.Errorf("got %q (%q)", content, contentType)
	}
	if rec.Filename != "own.pdf" {
		t.Errorf("filename = %q", rec.Filename)
	}
}

func TestDeleteAuthorization(t *testing.T) {
	repo := newFakeDocRepo()
	repo.records = []*entities.DocumentRecord{
		record("d1", "own.pdf", "alice", "bob", false),
	}
	svc, _, _, _ := newDocService(repo)

	// a third party may not delete even a document it can see
	if err := svc.Delete(context.Background(), "d1", "carol"); err == nil {
		t.Fatal("expected error for unauthorized delete")
	}
}

func TestDeleteRemovesRowBlobAndChunks(t *testing.T) {
	repo := newFakeDocRepo()
	r := record("d1", "own.pdf", "alice", "alice", false)
	repo.records = []*entities.DocumentRecord{r}
	svc, storage, chunks, cache := newDocService(repo)
	storage.objects[r.StorageKey] = []byte("payload")

	if err := svc.Delete(context.Background(), "d1", "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != "d1" {
		t.Errorf("row not deleted: %v", repo.deletedIDs)
	}
	if len(storage.removed) != 1 || storage.removed[0] != r.StorageKey {
		t.Errorf("blob not removed: %v", storage.removed)
	}
	if len(chunks.deleted) != 1 || chunks.deleted[0] != "d1" {
		t.Errorf("chunks not removed: %v", chunks.deleted)
	}
	if len(cache.invalidated) == 0 {
		t.Error("visible-list cache not invalidated")
	}
}

func TestListVisibleUsesCache(t *testing.T) {
	repo := newFakeDocRepo()
	repo.records = []*entities.DocumentRecord{
		record("d1", "own.pdf", "alice", "alice", false),
	}
	svc, _, _, cache := newDocService(repo)

	first, err := svc.ListVisible(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}

	// drop the backing rows; the cached result must still be served
	repo.records = nil
	second, err := svc.ListVisible(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListVisible (cached): %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("cache miss: got %d docs, want %d", len(second), len(first))
	}
	if _, ok := cache.summaries[cache.VisibleListKey("alice")]; !ok {
		t.Error("list was not cached")
	}
}
