package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/entrelineas/entrelineas/internal/document"
)

func testDoc(fingerprint, text string) *document.InterlinearDocument {
	return &document.InterlinearDocument{
		Fingerprint: fingerprint,
		PageCount:   1,
		Pairs: []document.AlignedPair{
			{Seq: 0, Page: 1, SourceText: text, Translated: "translated " + text},
		},
		Pages:   []document.PageGroup{{Page: 1, Start: 0, Count: 1}},
		BuiltAt: time.Now().UTC(),
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetMiss(t *testing.T) {
	s := openStore(t)
	_, ok, err := s.Get(context.Background(), "unseen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss for unseen fingerprint")
	}
}

func TestStore_PutGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	doc := testDoc("fp1", "Hola.")
	if err := s.Put(ctx, "fp1", doc); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "fp1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Fingerprint != "fp1" || len(got.Pairs) != 1 {
		t.Errorf("unexpected document: %+v", got)
	}
	if got.Pairs[0].SourceText != "Hola." || got.Pairs[0].Translated != "translated Hola." {
		t.Errorf("pair text lost in roundtrip: %+v", got.Pairs[0])
	}
}

func TestStore_PutIsPopulateOnce(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "fp1", testDoc("fp1", "primero")); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := s.Put(ctx, "fp1", testDoc("fp1", "segundo")); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	got, _, err := s.Get(ctx, "fp1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Pairs[0].SourceText != "primero" {
		t.Errorf("second put must be a no-op, got %q", got.Pairs[0].SourceText)
	}
}

func TestStore_StatsAndClear(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_ = s.Put(ctx, "fp1", testDoc("fp1", "uno"))
	_ = s.Put(ctx, "fp2", testDoc("fp2", "dos"))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Documents != 2 || stats.TotalPairs != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if _, ok, _ := s.Get(ctx, "fp1"); ok {
		t.Error("expected miss after clear")
	}
}

func TestStore_Books(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	book := Book{
		Fingerprint:    "fp1",
		ID:             "book-1",
		Title:          "El Quijote",
		OriginalFile:   "quijote.pdf",
		TotalSentences: 420,
		PageCount:      99,
	}
	if err := s.AddBook(ctx, book); err != nil {
		t.Fatalf("add book failed: %v", err)
	}
	// Re-adding the same fingerprint is a no-op.
	book.Title = "Otro título"
	if err := s.AddBook(ctx, book); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}

	books, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "El Quijote" {
		t.Errorf("re-add should not change title, got %q", books[0].Title)
	}
	if books[0].CurrentPage != 0 {
		t.Errorf("new book should start at page 0, got %d", books[0].CurrentPage)
	}

	if err := s.UpdateBookmark(ctx, "fp1", 42); err != nil {
		t.Fatalf("bookmark failed: %v", err)
	}
	books, _ = s.ListBooks(ctx)
	if books[0].CurrentPage != 42 {
		t.Errorf("expected bookmark 42, got %d", books[0].CurrentPage)
	}

	if err := s.UpdateBookmark(ctx, "missing", 1); err == nil {
		t.Error("expected error for unknown fingerprint")
	}
}

func TestMemory_PopulateOnceAndConcurrentReads(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Put(ctx, "fp", testDoc("fp", "uno"))
	_ = m.Put(ctx, "fp", testDoc("fp", "dos"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, ok, err := m.Get(ctx, "fp")
			if err != nil || !ok {
				t.Errorf("get failed: ok=%v err=%v", ok, err)
				return
			}
			if doc.Pairs[0].SourceText != "uno" {
				t.Errorf("expected first put to win, got %q", doc.Pairs[0].SourceText)
			}
		}()
	}
	wg.Wait()
}

func TestTiered_PromotesFromBack(t *testing.T) {
	back := NewMemory()
	ctx := context.Background()
	_ = back.Put(ctx, "fp", testDoc("fp", "uno"))

	tiered := NewTiered(back)
	doc, ok, err := tiered.Get(ctx, "fp")
	if err != nil || !ok {
		t.Fatalf("expected hit through tiered cache: ok=%v err=%v", ok, err)
	}
	if doc.Pairs[0].SourceText != "uno" {
		t.Errorf("unexpected doc: %+v", doc)
	}

	// Now cached in the front layer too.
	front, ok, _ := tiered.front.Get(ctx, "fp")
	if !ok || front != doc {
		t.Error("expected promotion into the front layer")
	}
}
