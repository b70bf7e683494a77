package account

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrack/internal/shared"
	"cinetrack/internal/storage"
	internaltest "cinetrack/internal/testing"
)

func TestCredentialStore(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("register and lookup", func(t *testing.T) {
		creds := NewCredentialStore(storage.NewMemory(), logger)

		require.NoError(t, creds.Register("a@b.com", "password1"))

		password, ok := creds.Lookup("a@b.com")
		require.True(t, ok)
		assert.Equal(t, "password1", password)

		_, ok = creds.Lookup("missing@b.com")
		assert.False(t, ok)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		creds := NewCredentialStore(storage.NewMemory(), logger)

		require.NoError(t, creds.Register("a@b.com", "password1"))

		err := creds.Register("a@b.com", "other-password")
		require.ErrorIs(t, err, shared.ErrAlreadyRegistered)

		// Original password is untouched.
		password, ok := creds.Lookup("a@b.com")
		require.True(t, ok)
		assert.Equal(t, "password1", password)
	})

	t.Run("registration preserves other entries", func(t *testing.T) {
		creds := NewCredentialStore(storage.NewMemory(), logger)

		require.NoError(t, creds.Register("a@b.com", "password1"))
		require.NoError(t, creds.Register("c@d.com", "password2"))

		for email, want := range map[string]string{"a@b.com": "password1", "c@d.com": "password2"} {
			got, ok := creds.Lookup(email)
			require.True(t, ok, "expected %s to survive", email)
			assert.Equal(t, want, got)
		}
	})

	t.Run("corrupt data degrades to empty", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set("Users", "{not json"))

		creds := NewCredentialStore(store, logger)

		_, ok := creds.Lookup("a@b.com")
		assert.False(t, ok)

		// Registering over corrupt data starts fresh rather than failing.
		require.NoError(t, creds.Register("a@b.com", "password1"))
		password, ok := creds.Lookup("a@b.com")
		require.True(t, ok)
		assert.Equal(t, "password1", password)
	})

	t.Run("storage failures surface on register only", func(t *testing.T) {
		creds := NewCredentialStore(internaltest.FailingStore{}, logger)

		_, ok := creds.Lookup("a@b.com")
		assert.False(t, ok)

		err := creds.Register("a@b.com", "password1")
		require.Error(t, err)
	})

	t.Run("shared backing store is visible across instances", func(t *testing.T) {
		store := storage.NewMemory()

		first := NewCredentialStore(store, logger)
		require.NoError(t, first.Register("a@b.com", "password1"))

		second := NewCredentialStore(store, logger)
		password, ok := second.Lookup("a@b.com")
		require.True(t, ok)
		assert.Equal(t, "password1", password)
	})
}
