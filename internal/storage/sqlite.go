package storage

import (
	"database/sql"
	"fmt"

	"cinetrack/internal/shared"
)

// SQLite implements [Store] over a scoped row set in the storage table.
//
// One instance per scope; rows are (scope, key, value) with upsert
// semantics so a Set replaces any previous value for the key.
type SQLite struct {
	db    *sql.DB
	scope string
}

var _ Store = (*SQLite)(nil)

// NewSQLite creates a store bound to the given scope, e.g. [ScopeLocal] or
// [ScopeSession]. The storage table must exist (see shared.RunMigrations).
func NewSQLite(db *sql.DB, scope string) *SQLite {
	return &SQLite{db: db, scope: scope}
}

// Get returns the value for key and whether it was present.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM storage WHERE scope = ? AND key = ?", s.scope, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}
	return value, true, nil
}

// Set writes the value for key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	query := `
		INSERT INTO storage (scope, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, s.scope, key, value); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}

// Delete removes key from the scope.
func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM storage WHERE scope = ? AND key = ?", s.scope, key); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}
