package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	t.Run("list payload", func(t *testing.T) {
		body := `{
			"page": 1,
			"total_pages": 42,
			"total_results": 831,
			"results": [
				{
					"id": 19995,
					"title": "아바타",
					"original_title": "Avatar",
					"overview": "판도라 행성의 이야기",
					"poster_path": "/avatar.jpg",
					"backdrop_path": "/avatar-bg.jpg",
					"release_date": "2009-12-17",
					"vote_average": 7.5,
					"vote_count": 21000,
					"popularity": 98.7,
					"genre_ids": [28, 12, 878]
				},
				{"id": 603, "title": "매트릭스"}
			]
		}`

		resp, err := DecodeResponse([]byte(body))
		require.NoError(t, err)

		list, ok := resp.(*ListResponse)
		require.True(t, ok, "expected a list response, got %T", resp)

		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 42, list.TotalPages)
		assert.Equal(t, 831, list.TotalResults)
		require.Len(t, list.Movies, 2)

		avatar := list.Movies[0]
		assert.Equal(t, int64(19995), avatar.ID)
		assert.Equal(t, "아바타", avatar.Title)
		assert.Equal(t, "Avatar", avatar.OriginalTitle)
		assert.Equal(t, "/avatar.jpg", avatar.PosterPath)
		assert.Equal(t, "/avatar-bg.jpg", avatar.BackdropPath)
		assert.Equal(t, "2009-12-17", avatar.ReleaseDate)
		assert.Equal(t, 7.5, avatar.VoteAverage)
		assert.Equal(t, int64(21000), avatar.VoteCount)
		assert.Equal(t, 98.7, avatar.Popularity)
		assert.Equal(t, []int64{28, 12, 878}, avatar.GenreIDs)

		assert.Equal(t, int64(603), list.Movies[1].ID)
	})

	t.Run("empty results array is still a list", func(t *testing.T) {
		resp, err := DecodeResponse([]byte(`{"page": 1, "results": []}`))
		require.NoError(t, err)

		list, ok := resp.(*ListResponse)
		require.True(t, ok, "expected a list response, got %T", resp)
		assert.Empty(t, list.Movies)
	})

	t.Run("single movie payload", func(t *testing.T) {
		body := `{
			"id": 19995,
			"title": "아바타",
			"original_title": "Avatar",
			"vote_average": 7.5,
			"genre_ids": [28, 12]
		}`

		resp, err := DecodeResponse([]byte(body))
		require.NoError(t, err)

		single, ok := resp.(*SingleResponse)
		require.True(t, ok, "expected a single response, got %T", resp)

		assert.Equal(t, int64(19995), single.Movie.ID)
		assert.Equal(t, "아바타", single.Movie.Title)
		assert.Equal(t, []int64{28, 12}, single.Movie.GenreIDs)
	})

	t.Run("unrecognized shape", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"status_message": "Invalid API key"}`} {
			_, err := DecodeResponse([]byte(body))
			require.Error(t, err, "body %s should not decode", body)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := DecodeResponse([]byte(`{"results": [`))
		require.Error(t, err)
	})
}
