package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data.json")
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	fs, err := OpenFile(tempPath(t))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := fs.Get(context.Background(), "lists:u1"); err != ErrNoSuchKey {
		t.Errorf("Get on empty store = %v; want ErrNoSuchKey", err)
	}
}

func TestFileStore_PutGetRoundTrip(t *testing.T) {
	path := tempPath(t)
	fs, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	ctx := context.Background()
	want := []byte(`[{"id":"l1"}]`)
	if err := fs.Put(ctx, "lists:u1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := fs.Get(ctx, "lists:u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Get = %s; want %s", got, want)
	}

	// The blob survives a reopen.
	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = reopened.Get(ctx, "lists:u1")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Get after reopen = %s; want %s", got, want)
	}
}

func TestFileStore_PutRejectsInvalidJSON(t *testing.T) {
	fs, err := OpenFile(tempPath(t))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := fs.Put(context.Background(), "k", []byte(`{broken`)); err == nil {
		t.Error("expected error for invalid JSON document")
	}
}

func TestFileStore_Delete(t *testing.T) {
	fs, err := OpenFile(tempPath(t))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	ctx := context.Background()
	if err := fs.Put(ctx, "user", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := fs.Delete(ctx, "user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Get(ctx, "user"); err != ErrNoSuchKey {
		t.Errorf("Get after delete = %v; want ErrNoSuchKey", err)
	}

	// Deleting an absent key is not an error.
	if err := fs.Delete(ctx, "user"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := tempPath(t)
	if err := os.WriteFile(path, []byte("{{{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Error("expected error for corrupt data file")
	}
}

func TestFileStore_GetReturnsCopy(t *testing.T) {
	fs, err := OpenFile(tempPath(t))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	ctx := context.Background()
	if err := fs.Put(ctx, "k", []byte(`"value"`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _ := fs.Get(ctx, "k")
	got[1] = 'X'

	again, _ := fs.Get(ctx, "k")
	if string(again) != `"value"` {
		t.Errorf("stored blob mutated through Get result: %s", again)
	}
}
