// package tasks implements long-running catalog and wishlist operations.
//
// The core abstraction is [Engine], which resolves wishlist entries against
// the catalog and assembles catalog dumps. Operations emit progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"cinetrack/internal/catalog"
	"cinetrack/internal/shared"
	"cinetrack/internal/wishlist"
)

// MovieResult is the outcome of resolving a single wishlist entry.
type MovieResult struct {
	MovieID  int64          // Wishlist movie identifier
	GenreIDs []int64        // Genre IDs recorded at add time
	Movie    *catalog.Movie // Resolved record (nil if the fetch failed)
	Error    error          // Error if resolution failed
}

// ExportResult contains all data from a wishlist export operation.
type ExportResult struct {
	UserEmail    string        // Owner of the wishlist
	Results      []MovieResult // Individual resolution results
	Movies       []catalog.Movie
	SuccessCount int
	FailedCount  int
	TotalMovies  int
}

// DumpResult contains catalog pages fetched for offline inspection.
type DumpResult struct {
	Featured   *catalog.Movie `json:"featured,omitempty"`
	NowPlaying catalog.Page   `json:"nowPlaying"`
	Popular    catalog.Page   `json:"popular"`
}

// Catalog is the subset of the catalog client the engine depends on.
type Catalog interface {
	NowPlaying(ctx context.Context, page int) catalog.Page
	Popular(ctx context.Context, page int) catalog.Page
	Featured(ctx context.Context) (*catalog.Movie, error)
	Detail(ctx context.Context, movieID int64) (*catalog.Movie, error)
}

// Wishlist is the subset of the wishlist manager the engine depends on.
type Wishlist interface {
	Load(userEmail string) wishlist.Entries
}

// Engine runs wishlist exports and catalog dumps with progress reporting.
type Engine struct {
	catalog  Catalog
	wishlist Wishlist
}

// NewEngine creates an engine over the given catalog and wishlist ports.
func NewEngine(cat Catalog, wl Wishlist) *Engine {
	return &Engine{catalog: cat, wishlist: wl}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Export resolves every movie on the user's wishlist to a full catalog
// record. Entries whose fetch fails are reported in the result rather than
// aborting the export.
func (e *Engine) Export(ctx context.Context, progress chan<- ProgressUpdate, userEmail string) (*ExportResult, error) {
	if e.catalog == nil || e.wishlist == nil {
		return nil, fmt.Errorf("%w: engine not initialized", shared.ErrServiceUnavailable)
	}

	entries := e.wishlist.Load(userEmail)
	e.sendProgress(progress, loadWishlistUpdate(userEmail, len(entries)))

	// Stable iteration order for deterministic output.
	ids := make([]int64, 0, len(entries))
	for key := range entries {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := len(ids)
	result := &ExportResult{UserEmail: userEmail, TotalMovies: total}
	e.sendProgress(progress, resolveMovieUpdate(0, total, nil))

	for i, id := range ids {
		movie, err := e.catalog.Detail(ctx, id)
		res := MovieResult{MovieID: id, GenreIDs: entries[wishlist.MovieKey(id)], Movie: movie, Error: err}
		result.Results = append(result.Results, res)

		if err != nil {
			result.FailedCount++
			e.sendProgress(progress, resolveFailedUpdate(i+1, total, id, err))
			continue
		}

		result.SuccessCount++
		result.Movies = append(result.Movies, *movie)
		e.sendProgress(progress, resolveMovieUpdate(i+1, total, movie))
	}

	return result, nil
}

// Dump fetches the featured movie plus the first now-playing and popular
// pages. Endpoint failures surface as empty pages, matching the client's
// degradation contract.
func (e *Engine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: engine not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{}

	e.sendProgress(progress, fetchUpdate(FetchFeatured, 1, 3, "Fetching featured movie..."))
	if movie, err := e.catalog.Featured(ctx); err == nil {
		result.Featured = movie
	}

	e.sendProgress(progress, fetchUpdate(FetchNowPlaying, 2, 3, "Fetching now playing..."))
	result.NowPlaying = e.catalog.NowPlaying(ctx, 1)

	e.sendProgress(progress, fetchUpdate(FetchPopular, 3, 3, "Fetching popular..."))
	result.Popular = e.catalog.Popular(ctx, 1)

	return result, nil
}
