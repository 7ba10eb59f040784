// Package blob stores uploaded images on the local filesystem under opaque
// uuid names and keeps a BoltDB index of what was stored, so the upload area
// is self-describing and monitorable.
package blob

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const defaultMaxSize = 10 * 1024 * 1024

var indexBucket = []byte("uploads")

// Meta describes one stored upload.
type Meta struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store is the blob-store collaborator: put/get/delete by opaque name.
type Store struct {
	dir     string
	maxSize int64
	index   *bolt.DB
}

// Open prepares the upload directory and its BoltDB index.
func Open(dir, indexPath string, maxSize int64) (*Store, error) {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(indexPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(indexBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		dir:     dir,
		maxSize: maxSize,
		index:   db,
	}, nil
}

// Put writes the payload under a fresh uuid name keeping the suggested
// extension, records it in the index and returns the opaque name.
func (s *Store) Put(data []byte, suggestedExtension string, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("file is too large, maximum allowed size is %d bytes", s.maxSize)
	}

	ext := strings.ToLower(suggestedExtension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}

	meta := Meta{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		StoredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	if err := s.index.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(indexBucket).Put([]byte(name), payload)
	}); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", err
	}
	return name, nil
}

// Get reads a stored blob back.
func (s *Store) Get(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, sanitize(name)))
}

// Delete removes a blob and its index entry. Deleting a name that was never
// stored is not an error.
func (s *Store) Delete(name string) error {
	name = sanitize(name)
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return s.index.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(indexBucket).Delete([]byte(name))
	})
}

// Stat returns the index entry for a stored name.
func (s *Store) Stat(name string) (*Meta, error) {
	var meta *Meta
	err := s.index.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(indexBucket).Get([]byte(sanitize(name)))
		if raw == nil {
			return nil
		}
		var m Meta
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		meta = &m
		return nil
	})
	return meta, err
}

// Count reports how many uploads the index tracks. Used by the monitor.
func (s *Store) Count() (int, error) {
	var count int
	err := s.index.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(indexBucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the index database.
func (s *Store) Close() error {
	if s == nil || s.index == nil {
		return nil
	}
	return s.index.Close()
}

// sanitize strips any path component so callers can pass the raw picture
// field, which historically could contain an /uploads/ prefix.
func sanitize(name string) string {
	name = strings.TrimPrefix(name, "/uploads/")
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return filepath.Base(filepath.Clean(name))
}
