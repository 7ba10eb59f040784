package usecase

// BlobStore abstracts the upload storage so use cases stay storage-agnostic.
// Delete is idempotent; callers treat failures as best-effort and only log.
type BlobStore interface {
	Delete(name string) error
}
