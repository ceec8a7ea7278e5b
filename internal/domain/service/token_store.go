package service

// TokenStore is a minimal key-value store for session tokens. A missing key
// is a valid, common state (logged out) and is not an error. The session
// controller is the sole writer and guarantees that access and refresh
// tokens are always set and cleared together.
type TokenStore interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)
	// Set stores or overwrites a value.
	Set(key, value string) error
	// Delete removes a value; deleting a missing key is a no-op.
	Delete(key string) error
}
