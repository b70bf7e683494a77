package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"cinetrack/internal/catalog"
	"cinetrack/internal/shared"
	"cinetrack/internal/tasks"
)

// parseMovieID parses a movie ID argument.
func parseMovieID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: movie-id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: movie-id %q is not a number", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func (r *Runner) writePage(cmd *cli.Command, page catalog.Page) error {
	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.writeMoviePage(page)
}

// MoviesNowPlaying lists movies currently in theaters.
func (r *Runner) MoviesNowPlaying(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	page := r.catalog.NowPlaying(ctx, int(cmd.Int("page")))
	return r.writePage(cmd, page)
}

// MoviesPopular lists the most popular movies.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	page := r.catalog.Popular(ctx, int(cmd.Int("page")))
	return r.writePage(cmd, page)
}

// MoviesFeatured shows the spotlight movie (first popular result).
func (r *Runner) MoviesFeatured(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	movie, err := r.catalog.Featured(ctx)
	if err != nil {
		return fmt.Errorf("no featured movie available: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%s)\n", movie.Title, movie.ReleaseDate)
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		r.writePlain("Original title: %s\n", movie.OriginalTitle)
	}
	r.writePlain("Rating: %.1f (%d votes)\n\n%s\n", movie.VoteAverage, movie.VoteCount, movie.Overview)
	return nil
}

// MoviesDiscover lists movies for a genre.
func (r *Runner) MoviesDiscover(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	raw := cmd.StringArg("genre-id")
	if raw == "" {
		return fmt.Errorf("%w: genre-id", shared.ErrMissingArgument)
	}
	genreID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: genre-id %q is not a number", shared.ErrInvalidArgument, raw)
	}

	page := r.catalog.Discover(ctx, genreID, int(cmd.Int("page")))
	return r.writePage(cmd, page)
}

// MoviesSearch searches the catalog by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	page := r.catalog.Search(ctx, query, int(cmd.Int("page")))
	return r.writePage(cmd, page)
}

// MoviesDump fetches the featured movie plus the first now-playing and
// popular pages and prints them as one JSON document.
func (r *Runner) MoviesDump(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	r.logger.Info("dumping catalog state")

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
		close(done)
	}()

	dump, err := r.engine.Dump(ctx, progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	// Save to file if requested
	if save {
		saveFile := "catalog_dump.json"
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n", saveFile)
		}
	}

	return r.writeJSON(dump, pretty)
}

// MoviesOpen opens a movie's public page in the system browser.
func (r *Runner) MoviesOpen(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseMovieID(cmd.StringArg("movie-id"))
	if err != nil {
		return err
	}

	url := catalog.MoviePageURL(movieID)
	r.logger.Info("opening browser", "url", url)
	return shared.OpenBrowser(url)
}
