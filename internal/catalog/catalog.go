// Movie catalog client for the TMDB REST API.
//
// The API is consumed read-only: endpoints are built from a base URL plus
// api_key/language/page query parameters, and responses are normalized at
// the boundary into [Movie] records (see response.go). Network failures
// degrade to empty results with a log line; they are never surfaced to
// callers as errors.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cinetrack/internal/shared"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "http://image.tmdb.org/t/p"
	defaultLanguage     = "ko-KR"

	// moviePageURL is the public site used by "movies open".
	moviePageURL = "https://www.themoviedb.org/movie"
)

// Catalog endpoints.
const (
	EndpointNowPlaying = "/movie/now_playing"
	EndpointPopular    = "/movie/popular"
	EndpointDiscover   = "/discover/movie"
	EndpointSearch     = "/search/movie"
)

// Movie is the normalized movie record shared by every response shape.
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"originalTitle"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"posterPath"`
	BackdropPath  string  `json:"backdropPath"`
	ReleaseDate   string  `json:"releaseDate"`
	VoteAverage   float64 `json:"voteAverage"`
	VoteCount     int64   `json:"voteCount"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int64 `json:"genreIds"`
}

// Page is one page of normalized results plus the pagination header fields
// TMDB reports for list responses.
type Page struct {
	Movies       []Movie `json:"movies"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
}

// Client fetches and normalizes catalog data.
type Client struct {
	baseURL      string
	imageBaseURL string
	language     string
	apiKey       string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *log.Logger
}

// NewClient creates a catalog client from API settings. When a v4 read
// access token is configured the underlying transport attaches it as a
// bearer token via [oauth2.NewClient]; the v3 api_key query parameter is
// used otherwise.
func NewClient(cfg shared.APIConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	httpClient := http.DefaultClient
	if cfg.ReadAccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ReadAccessToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	c := &Client{
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		language:     cfg.Language,
		apiKey:       cfg.Key,
		httpClient:   httpClient,
		// TMDB allows ~50 requests/second; stay well under it.
		limiter: rate.NewLimiter(rate.Limit(4), 8),
		logger:  logger,
	}

	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.imageBaseURL == "" {
		c.imageBaseURL = defaultImageBaseURL
	}
	if c.language == "" {
		c.language = defaultLanguage
	}

	return c
}

// SetAPIKey replaces the api_key used for subsequent requests, typically
// with the signed-in user's key from the session store.
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// HasCredentials reports whether the client can authenticate requests.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" || c.httpClient != http.DefaultClient
}

// EndpointURL builds a request URL for the given endpoint with the standard
// api_key and language parameters plus any extra query values. A page value
// of 0 omits the parameter.
func (c *Client) EndpointURL(endpoint string, page int, extra url.Values) string {
	q := url.Values{}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	q.Set("language", c.language)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	for key, values := range extra {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	return c.baseURL + endpoint + "?" + q.Encode()
}

// ImageURL builds the poster/backdrop image URL for a path returned by the
// API. Size defaults to "original".
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

// MoviePageURL returns the public web page for a movie, for opening in a
// browser.
func MoviePageURL(movieID int64) string {
	return fmt.Sprintf("%s/%d", moviePageURL, movieID)
}

// fetch performs a GET against the endpoint and resolves the response shape
// once at the boundary.
func (c *Client) fetch(ctx context.Context, endpoint string, page int, extra url.Values) (Response, error) {
	if !c.HasCredentials() {
		return nil, shared.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	reqURL := c.EndpointURL(endpoint, page, extra)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return DecodeResponse(body)
}

// list fetches a paginated endpoint. Failures return an empty page after a
// log line; a single movie response is folded into a one-element page.
func (c *Client) list(ctx context.Context, endpoint string, page int, extra url.Values) Page {
	resp, err := c.fetch(ctx, endpoint, page, extra)
	if err != nil {
		c.logger.Error("catalog fetch failed", "endpoint", endpoint, "err", err)
		return Page{Movies: []Movie{}}
	}

	switch r := resp.(type) {
	case *ListResponse:
		return Page{Movies: r.Movies, Page: r.Page, TotalPages: r.TotalPages, TotalResults: r.TotalResults}
	case *SingleResponse:
		return Page{Movies: []Movie{r.Movie}}
	default:
		return Page{Movies: []Movie{}}
	}
}

// NowPlaying fetches movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) Page {
	return c.list(ctx, EndpointNowPlaying, page, nil)
}

// Popular fetches the most popular movies.
func (c *Client) Popular(ctx context.Context, page int) Page {
	return c.list(ctx, EndpointPopular, page, nil)
}

// Discover fetches movies for a genre.
func (c *Client) Discover(ctx context.Context, genreID int64, page int) Page {
	extra := url.Values{}
	extra.Set("with_genres", strconv.FormatInt(genreID, 10))
	return c.list(ctx, EndpointDiscover, page, extra)
}

// Search fetches movies matching the query string.
func (c *Client) Search(ctx context.Context, query string, page int) Page {
	extra := url.Values{}
	extra.Set("query", query)
	return c.list(ctx, EndpointSearch, page, extra)
}

// Featured returns the first popular movie, used as the spotlight entry.
func (c *Client) Featured(ctx context.Context) (*Movie, error) {
	page := c.Popular(ctx, 1)
	if len(page.Movies) == 0 {
		return nil, shared.ErrMovieNotFound
	}
	return &page.Movies[0], nil
}

// Detail fetches a single movie by ID.
func (c *Client) Detail(ctx context.Context, movieID int64) (*Movie, error) {
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	resp, err := c.fetch(ctx, endpoint, 0, nil)
	if err != nil {
		c.logger.Error("catalog fetch failed", "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movieID)
	}

	switch r := resp.(type) {
	case *SingleResponse:
		return &r.Movie, nil
	case *ListResponse:
		if len(r.Movies) > 0 {
			return &r.Movies[0], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movieID)
}
