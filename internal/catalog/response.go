package catalog

import (
	"encoding/json"
	"fmt"
)

// Response is the tagged variant for the two shapes the API returns: a
// paginated list ({results: [...], page, ...}) or a bare movie object. The
// shape is resolved exactly once, in [DecodeResponse]; nothing downstream
// inspects raw JSON.
type Response interface {
	isResponse()
}

// ListResponse is a paginated results payload, normalized.
type ListResponse struct {
	Movies       []Movie
	Page         int
	TotalPages   int
	TotalResults int
}

// SingleResponse is a bare movie payload, normalized.
type SingleResponse struct {
	Movie Movie
}

func (*ListResponse) isResponse() {}
func (*SingleResponse) isResponse() {}

var (
	_ Response = (*ListResponse)(nil)
	_ Response = (*SingleResponse)(nil)
)

// movieJSON is the wire form of a movie object.
type movieJSON struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int64 `json:"genre_ids"`
}

// payload covers both response shapes: the embedded movie fields are
// populated for single-object responses, Results for list responses.
type payload struct {
	movieJSON
	Results      []movieJSON `json:"results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

func (m movieJSON) normalize() Movie {
	return Movie{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		PosterPath:    m.PosterPath,
		BackdropPath:  m.BackdropPath,
		ReleaseDate:   m.ReleaseDate,
		VoteAverage:   m.VoteAverage,
		VoteCount:     m.VoteCount,
		Popularity:    m.Popularity,
		GenreIDs:      m.GenreIDs,
	}
}

// DecodeResponse parses a response body and resolves it to a [ListResponse]
// or [SingleResponse]. A payload with neither a results array nor a movie ID
// is an error.
func DecodeResponse(data []byte) (Response, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if p.Results != nil {
		movies := make([]Movie, len(p.Results))
		for i, m := range p.Results {
			movies[i] = m.normalize()
		}
		return &ListResponse{
			Movies:       movies,
			Page:         p.Page,
			TotalPages:   p.TotalPages,
			TotalResults: p.TotalResults,
		}, nil
	}

	if p.ID != 0 {
		return &SingleResponse{Movie: p.movieJSON.normalize()}, nil
	}

	return nil, fmt.Errorf("unrecognized response shape")
}
