// package account implements user registration and login against a local
// credential store.
//
// Credentials live as a single JSON object under the "Users" storage key,
// mapping email to password. Passwords are stored as-is; this mirrors the
// storage contract the rest of the application depends on.
package account

import (
	"encoding/json"
	"fmt"

	"cinetrack/internal/shared"
	"cinetrack/internal/storage"

	"github.com/charmbracelet/log"
)

// usersKey is the storage key holding the email -> password JSON map.
const usersKey = "Users"

// CredentialStore is a durable email -> password mapping backed by a
// [storage.Store].
type CredentialStore struct {
	store  storage.Store
	logger *log.Logger
}

// NewCredentialStore creates a credential store over the given storage port.
func NewCredentialStore(store storage.Store, logger *log.Logger) *CredentialStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CredentialStore{store: store, logger: logger}
}

// load reads the full credential map from storage. Missing or corrupt data
// degrades to an empty map; read failures are logged, never surfaced.
func (c *CredentialStore) load() map[string]string {
	raw, ok, err := c.store.Get(usersKey)
	if err != nil {
		c.logger.Error("failed to load users", "err", err)
		return map[string]string{}
	}
	if !ok {
		return map[string]string{}
	}

	var users map[string]string
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		c.logger.Error("corrupt users data, starting empty", "err", err)
		return map[string]string{}
	}
	return users
}

// Register adds a new credential. Returns [shared.ErrAlreadyRegistered] if
// the email is already a key. The whole map is re-read and rewritten so
// unrelated entries are never lost.
func (c *CredentialStore) Register(email, password string) error {
	users := c.load()
	if _, exists := users[email]; exists {
		return fmt.Errorf("%w: %s", shared.ErrAlreadyRegistered, email)
	}

	users[email] = password

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := c.store.Set(usersKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}

	return nil
}

// Lookup returns the stored password for email and whether it was found.
func (c *CredentialStore) Lookup(email string) (string, bool) {
	password, ok := c.load()[email]
	return password, ok
}
