package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
)

func TestSweepReapsStalePendingDocuments(t *testing.T) {
	repo := newFakeDocRepo()
	repo.stale = []*entities.Document{
		{ID: "d1", Filename: "a.pdf", StorageKey: "workspaces/ws1/u1/aaaa_a.pdf"},
		{ID: "d2", Filename: "b.txt", StorageKey: "workspaces/ws1/u1/bbbb_b.txt"},
	}
	storage := newFakeStorage()
	storage.objects["workspaces/ws1/u1/aaaa_a.pdf"] = []byte("a")
	storage.objects["workspaces/ws1/u1/bbbb_b.txt"] = []byte("b")
	chunks := &fakeChunkRemover{}

	r := NewReconciler(repo, storage, chunks, time.Minute, time.Minute)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(chunks.deleted) != 2 {
		t.Errorf("chunks deleted for %d documents, want 2", len(chunks.deleted))
	}
	if len(storage.objects) != 0 {
		t.Errorf("%d blobs left behind", len(storage.objects))
	}
	if len(repo.deletedIDs) != 2 {
		t.Errorf("%d rows deleted, want 2", len(repo.deletedIDs))
	}
}

func TestSweepNothingStale(t *testing.T) {
	repo := newFakeDocRepo()
	storage := newFakeStorage()

	r := NewReconciler(repo, storage, &fakeChunkRemover{}, time.Minute, time.Minute)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(repo.deletedIDs) != 0 {
		t.Error("deleted rows with nothing stale")
	}
}

func TestSweepChunkFailureStillRemovesBlobAndRow(t *testing.T) {
	repo := newFakeDocRepo()
	repo.stale = []*entities.Document{
		{ID: "d1", Filename: "a.pdf", StorageKey: "workspaces/ws1/u1/aaaa_a.pdf"},
	}
	storage := newFakeStorage()
	storage.objects["workspaces/ws1/u1/aaaa_a.pdf"] = []byte("a")
	chunks := &fakeChunkRemover{err: errors.New("vector store down")}

	r := NewReconciler(repo, storage, chunks, time.Minute, time.Minute)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(storage.removed) != 1 {
		t.Error("blob not removed after chunk failure")
	}
	if len(repo.deletedIDs) != 1 {
		t.Error("row not removed after chunk failure")
	}
}
