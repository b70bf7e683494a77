// package session holds the application's session state: login status, the
// current user and their API key, and the signed-in user's wishlist entries.
//
// The store is constructed once at startup and passed to whichever component
// needs it. Every mutation writes the persisted subset through to a
// session-scoped [storage.Store] under the "SessionState" key; construction
// rehydrates from the same key, falling back to logged-out defaults when the
// data is absent or unreadable.
package session

import (
	"encoding/json"
	"sync"

	"cinetrack/internal/shared"
	"cinetrack/internal/storage"

	"github.com/charmbracelet/log"
)

// stateKey is the session-scoped storage key for the persisted state blob.
const stateKey = "SessionState"

// state is the persisted subset of the session. The login-success toast is
// deliberately not part of it; it never survives a reload.
type state struct {
	SessionID  string             `json:"sessionId,omitempty"`
	IsLoggedIn bool               `json:"isLoggedIn"`
	UserEmail  string             `json:"userEmail"`
	UserAPIKey string             `json:"userAPIKey"`
	Wishlist   map[string][]int64 `json:"wishlist,omitempty"`
}

// Snapshot is a read-only copy of the current session state.
type Snapshot struct {
	SessionID             string
	IsLoggedIn            bool
	UserEmail             string
	UserAPIKey            string
	ShowLoginSuccessToast bool
}

// Store owns the in-memory session state and its write-through mirror.
type Store struct {
	mu       sync.RWMutex
	st       state
	toast    bool
	store    storage.Store
	logger   *log.Logger
	watchers []func()
}

// New constructs a session store over the given session-scoped storage,
// rehydrating any previously persisted state. Absent or corrupt data yields
// logged-out defaults and a fresh session ID.
func New(store storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Store{store: store, logger: logger}
	s.st = s.rehydrate()
	if s.st.SessionID == "" {
		s.st.SessionID = shared.GenerateID()
	}
	return s
}

func (s *Store) rehydrate() state {
	raw, ok, err := s.store.Get(stateKey)
	if err != nil {
		s.logger.Error("failed to load session state", "err", err)
		return state{}
	}
	if !ok {
		return state{}
	}

	var st state
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.logger.Error("corrupt session state, starting fresh", "err", err)
		return state{}
	}
	return st
}

// persist mirrors the persisted subset to storage. Failures are logged and
// otherwise ignored; the in-memory state stays authoritative.
func (s *Store) persist() {
	data, err := json.Marshal(s.st)
	if err != nil {
		s.logger.Error("failed to encode session state", "err", err)
		return
	}
	if err := s.store.Set(stateKey, string(data)); err != nil {
		s.logger.Error("failed to persist session state", "err", err)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	watchers := make([]func(), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.RUnlock()
	for _, fn := range watchers {
		fn()
	}
}

// Subscribe registers fn to run after every mutation. Callbacks run with the
// store unlocked, in registration order.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// Login marks the session as authenticated for email with the given API key
// and raises the login-success toast. Calling it again simply overwrites.
func (s *Store) Login(email, apiKey string) {
	s.mu.Lock()
	s.st.IsLoggedIn = true
	s.st.UserEmail = email
	s.st.UserAPIKey = apiKey
	s.toast = true
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// Logout clears the authenticated identity. The toast flag and wishlist
// entries are left untouched.
func (s *Store) Logout() {
	s.mu.Lock()
	s.st.IsLoggedIn = false
	s.st.UserEmail = ""
	s.st.UserAPIKey = ""
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// ClearLoginSuccessToast lowers the toast flag once the UI has shown it.
func (s *Store) ClearLoginSuccessToast() {
	s.mu.Lock()
	s.toast = false
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// SetWishlist installs the given entries as the current user's wishlist
// slice. The map is copied; callers keep ownership of theirs.
func (s *Store) SetWishlist(entries map[string][]int64) {
	s.mu.Lock()
	s.st.Wishlist = make(map[string][]int64, len(entries))
	for id, genres := range entries {
		s.st.Wishlist[id] = append([]int64(nil), genres...)
	}
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// Wishlist returns a copy of the current user's wishlist slice.
func (s *Store) Wishlist() map[string][]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make(map[string][]int64, len(s.st.Wishlist))
	for id, genres := range s.st.Wishlist {
		entries[id] = append([]int64(nil), genres...)
	}
	return entries
}

// Current returns a snapshot of the session state.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID:             s.st.SessionID,
		IsLoggedIn:            s.st.IsLoggedIn,
		UserEmail:             s.st.UserEmail,
		UserAPIKey:            s.st.UserAPIKey,
		ShowLoginSuccessToast: s.toast,
	}
}

// IsLoggedIn reports whether a user is signed in.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.IsLoggedIn
}

// UserEmail returns the signed-in user's email, or "" when logged out.
func (s *Store) UserEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.UserEmail
}

// UserAPIKey returns the signed-in user's API key, or "" when logged out.
func (s *Store) UserAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.UserAPIKey
}
