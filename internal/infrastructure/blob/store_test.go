package blob

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func openStore(t *testing.T, maxSize int64) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "files"), filepath.Join(dir, "index.db"), maxSize)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndGet(t *testing.T) {
	store := openStore(t, 0)

	payload := []byte("fake png bytes")
	name, err := store.Put(payload, ".PNG", "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q, want lowercased .png suffix", name)
	}

	got, err := store.Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload mismatch: %q", got)
	}

	meta, err := store.Stat(name)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta == nil || meta.ContentType != "image/png" || meta.Size != int64(len(payload)) {
		t.Errorf("meta = %+v", meta)
	}
}

func TestPutRejectsEmptyAndOversized(t *testing.T) {
	store := openStore(t, 8)

	if _, err := store.Put(nil, ".png", "image/png"); err == nil {
		t.Error("empty payload must be rejected")
	}
	if _, err := store.Put([]byte("123456789"), ".png", "image/png"); err == nil {
		t.Error("oversized payload must be rejected")
	}
}

func TestPutExtensionWithoutDot(t *testing.T) {
	store := openStore(t, 0)

	name, err := store.Put([]byte("x"), "jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("name = %q, want .jpg suffix", name)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openStore(t, 0)

	name, err := store.Put([]byte("x"), ".png", "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(name); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if err := store.Delete("never-existed.png"); err != nil {
		t.Fatalf("Delete unknown: %v", err)
	}

	meta, err := store.Stat(name)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta != nil {
		t.Errorf("meta after delete = %+v, want nil", meta)
	}
}

// Picture fields historically arrive with an /uploads/ prefix; Delete must
// strip it rather than fail or escape the directory.
func TestDeleteSanitizesName(t *testing.T) {
	store := openStore(t, 0)

	name, err := store.Put([]byte("x"), ".png", "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete("/uploads/" + name); err != nil {
		t.Fatalf("Delete with prefix: %v", err)
	}
	if meta, _ := store.Stat(name); meta != nil {
		t.Error("prefixed delete did not remove the blob")
	}

	for _, hostile := range []string{"", ".", "..", "../index.db"} {
		if err := store.Delete(hostile); err != nil {
			t.Errorf("Delete(%q) = %v, want nil", hostile, err)
		}
	}
}

func TestCount(t *testing.T) {
	store := openStore(t, 0)

	for i := 0; i < 3; i++ {
		if _, err := store.Put([]byte{byte(i + 1)}, ".bin", "application/octet-stream"); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}
	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
