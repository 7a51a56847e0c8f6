// Package storage provides the durable key-value backing store for
// client state, surviving restarts the way browser local storage
// survives page reloads. Session and cart state live under distinct
// keys; each state tree reads and writes only its own key.
package storage

// Keys under which client state is persisted.
const (
	KeyToken = "token"
	KeyAuth  = "auth-storage"
	KeyCart  = "cart-storage"
)

// Store is a durable key-value persistence surface.
type Store interface {
	// Get returns the value under key, and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes a key; deleting an absent key is not an error.
	Delete(key string) error
}
