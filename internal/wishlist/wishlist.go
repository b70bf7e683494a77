// package wishlist manages per-user saved movies.
//
// The full wishlist lives as one JSON blob under the "UserWishlist" storage
// key, mapping email to a map of movie ID (stringified, as JSON object keys
// must be) to the movie's genre IDs. Mutations rewrite the whole blob and
// mirror the affected user's slice into the session store.
package wishlist

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cinetrack/internal/session"
	"cinetrack/internal/shared"
	"cinetrack/internal/storage"

	"github.com/charmbracelet/log"
)

// wishlistKey is the storage key holding the email -> (movieID -> genreIDs) blob.
const wishlistKey = "UserWishlist"

// Entries maps stringified movie IDs to genre IDs for a single user.
type Entries map[string][]int64

// Manager provides wishlist operations over a persistent [storage.Store]
// and the [session.Store] mirror.
type Manager struct {
	store   storage.Store
	session *session.Store
	logger  *log.Logger
}

// NewManager creates a wishlist manager. The session store is optional; when
// nil only the persistent blob is maintained.
func NewManager(store storage.Store, sess *session.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, session: sess, logger: logger}
}

// MovieKey renders a movie ID the way it is keyed in the persisted blob.
func MovieKey(movieID int64) string {
	return strconv.FormatInt(movieID, 10)
}

// load reads the full wishlist blob. Missing or corrupt data degrades to an
// empty map; read failures are logged, never surfaced.
func (m *Manager) load() map[string]Entries {
	raw, ok, err := m.store.Get(wishlistKey)
	if err != nil {
		m.logger.Error("failed to load wishlist", "err", err)
		return map[string]Entries{}
	}
	if !ok {
		return map[string]Entries{}
	}

	var all map[string]Entries
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		m.logger.Error("corrupt wishlist data, starting empty", "err", err)
		return map[string]Entries{}
	}
	return all
}

func (m *Manager) persist(all map[string]Entries) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := m.store.Set(wishlistKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}

func (m *Manager) mirror(entries Entries) {
	if m.session != nil {
		m.session.SetWishlist(entries)
	}
}

// Load installs the user's wishlist slice (default empty) into the session
// store and returns it.
func (m *Manager) Load(userEmail string) Entries {
	entries := m.load()[userEmail]
	if entries == nil {
		entries = Entries{}
	}
	m.mirror(entries)
	return entries
}

// Add upserts a wishlist entry for the user. Adding a movie that is already
// present overwrites its genre IDs; it is not an error.
func (m *Manager) Add(userEmail string, movieID int64, genreIDs []int64) error {
	all := m.load()
	entries := all[userEmail]
	if entries == nil {
		entries = Entries{}
		all[userEmail] = entries
	}

	entries[MovieKey(movieID)] = append([]int64(nil), genreIDs...)

	if err := m.persist(all); err != nil {
		return err
	}
	m.mirror(entries)
	return nil
}

// Remove deletes the entry if present. Removing an absent movie is a no-op.
func (m *Manager) Remove(userEmail string, movieID int64) error {
	all := m.load()
	entries := all[userEmail]
	if entries == nil {
		return nil
	}

	delete(entries, MovieKey(movieID))

	if err := m.persist(all); err != nil {
		return err
	}
	m.mirror(entries)
	return nil
}

// Contains reports whether the movie is on the user's wishlist. This is a
// key-existence check; an entry with an empty genre list still counts.
func (m *Manager) Contains(userEmail string, movieID int64) bool {
	entries := m.load()[userEmail]
	if entries == nil {
		return false
	}
	_, ok := entries[MovieKey(movieID)]
	return ok
}
