package wishlist

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrack/internal/session"
	"cinetrack/internal/shared"
	"cinetrack/internal/storage"
)

func TestMovieKey(t *testing.T) {
	assert.Equal(t, "19995", MovieKey(19995))
	assert.Equal(t, "0", MovieKey(0))
}

func TestManager(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("load defaults to empty", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		entries := m.Load("a@b.com")

		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("add then contains", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		require.NoError(t, m.Add("a@b.com", 19995, []int64{28, 12}))

		assert.True(t, m.Contains("a@b.com", 19995))
		assert.False(t, m.Contains("a@b.com", 603))
		assert.False(t, m.Contains("c@d.com", 19995))
		assert.Equal(t, Entries{"19995": {28, 12}}, m.Load("a@b.com"))
	})

	t.Run("add is an upsert", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		require.NoError(t, m.Add("a@b.com", 19995, []int64{28}))
		require.NoError(t, m.Add("a@b.com", 19995, []int64{28, 12}))

		assert.Equal(t, Entries{"19995": {28, 12}}, m.Load("a@b.com"))
	})

	t.Run("entry with no genres still counts", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		require.NoError(t, m.Add("a@b.com", 603, nil))

		assert.True(t, m.Contains("a@b.com", 603))
	})

	t.Run("remove deletes only the named movie", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)
		require.NoError(t, m.Add("a@b.com", 19995, []int64{28}))
		require.NoError(t, m.Add("a@b.com", 603, []int64{878}))

		require.NoError(t, m.Remove("a@b.com", 19995))

		assert.False(t, m.Contains("a@b.com", 19995))
		assert.True(t, m.Contains("a@b.com", 603))
	})

	t.Run("remove absent movie is a no-op", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		require.NoError(t, m.Remove("a@b.com", 19995))
		require.NoError(t, m.Add("a@b.com", 603, nil))
		require.NoError(t, m.Remove("a@b.com", 19995))

		assert.True(t, m.Contains("a@b.com", 603))
	})

	t.Run("users are isolated", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		require.NoError(t, m.Add("a@b.com", 19995, []int64{28}))
		require.NoError(t, m.Add("c@d.com", 603, []int64{878}))
		require.NoError(t, m.Remove("c@d.com", 603))

		assert.True(t, m.Contains("a@b.com", 19995))
		assert.False(t, m.Contains("c@d.com", 603))
	})

	t.Run("state round-trips through a fresh manager", func(t *testing.T) {
		store := storage.NewMemory()

		first := NewManager(store, nil, logger)
		require.NoError(t, first.Add("a@b.com", 19995, []int64{28, 12}))

		second := NewManager(store, nil, logger)
		assert.Equal(t, Entries{"19995": {28, 12}}, second.Load("a@b.com"))
	})

	t.Run("corrupt blob degrades to empty", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set("UserWishlist", "[not an object]"))

		m := NewManager(store, nil, logger)

		assert.Empty(t, m.Load("a@b.com"))
		require.NoError(t, m.Add("a@b.com", 19995, nil))
		assert.True(t, m.Contains("a@b.com", 19995))
	})

	t.Run("mutations mirror into the session store", func(t *testing.T) {
		sess := session.New(storage.NewMemory(), logger)
		m := NewManager(storage.NewMemory(), sess, logger)

		require.NoError(t, m.Add("a@b.com", 19995, []int64{28}))
		assert.Equal(t, map[string][]int64{"19995": {28}}, sess.Wishlist())

		require.NoError(t, m.Remove("a@b.com", 19995))
		assert.Empty(t, sess.Wishlist())
	})

	t.Run("caller keeps ownership of the genre slice", func(t *testing.T) {
		m := NewManager(storage.NewMemory(), nil, logger)

		genres := []int64{28}
		require.NoError(t, m.Add("a@b.com", 19995, genres))
		genres[0] = 99

		assert.Equal(t, Entries{"19995": {28}}, m.Load("a@b.com"))
	})
}
