package tasks

import (
	"fmt"

	"cinetrack/internal/catalog"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadWishlist Phase = iota
	ResolveMovies
	FetchNowPlaying
	FetchPopular
	FetchFeatured
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case LoadWishlist:
		return "load_wishlist"
	case ResolveMovies:
		return "resolve_movies"
	case FetchNowPlaying:
		return "fetch_now_playing"
	case FetchPopular:
		return "fetch_popular"
	case FetchFeatured:
		return "fetch_featured"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func loadWishlistUpdate(email string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadWishlist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded wishlist for %s (%d movies)", email, count),
	}
}

func resolveMovieUpdate(step, total int, movie *catalog.Movie) ProgressUpdate {
	if movie == nil {
		return ProgressUpdate{
			Phase:   ResolveMovies,
			Step:    step,
			Total:   total,
			Message: "Resolving wishlist movies...",
		}
	}
	return ProgressUpdate{
		Phase:   ResolveMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, movie.Title),
		Data:    movie,
	}
}

func resolveFailedUpdate(step, total int, movieID int64, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ movie %d: %v", step, total, movieID, err),
	}
}

func fetchUpdate(phase Phase, step, total int, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: message,
	}
}
