// package storage defines the key-value storage port backing the credential,
// session and wishlist stores.
//
// The interface mirrors the browser's Web Storage contract: string keys,
// string values (JSON text by convention), and two scopes with different
// lifetimes. Components receive a [Store] by injection so they can be unit
// tested against [Memory] and run against [SQLite] in production.
package storage

// Scope names for the SQLite-backed store. ScopeLocal holds data that
// outlives sessions (credentials, wishlists); ScopeSession holds
// session-scoped state.
const (
	ScopeLocal   = "local"
	ScopeSession = "session"
)

// Store is the durable key-value storage capability.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
