package storage

// constError is a sentinel error that supports errors.Is without
// allocation.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for store operations.
const (
	ErrNotFound  = constError("action log not found")
	ErrStoreOpen = constError("store open failed")
)
