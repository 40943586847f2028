package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	_, err = store.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load on empty store = %v, want ErrNotFound", err)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	want := Record{Token: "a.b.c", User: `{"identity":"u@x.com"}`}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, _ := NewFileStore(path)
	if err := store.Save(Record{Token: "tok", User: "blob"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load after reopen returned error: %v", err)
	}
	if got.Token != "tok" || got.User != "blob" {
		t.Errorf("Load after reopen = %+v", got)
	}
}

func TestFileStore_Clear(t *testing.T) {
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(Record{Token: "tok", User: "blob"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Clear = %v, want ErrNotFound", err)
	}
}

func TestFileStore_ClearEmptyIsNotError(t *testing.T) {
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on empty store returned error: %v", err)
	}
}

func TestFileStore_MalformedFileIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, _ := NewFileStore(path)
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of malformed file = %v, want ErrNotFound", err)
	}
}

func TestFileStore_PartialRecordIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"a.b.c"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	store, _ := NewFileStore(path)
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of partial record = %v, want ErrNotFound", err)
	}
}

func TestFileStore_EmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load on empty store = %v, want ErrNotFound", err)
	}

	want := Record{Token: "tok", User: "blob"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Clear = %v, want ErrNotFound", err)
	}
}
