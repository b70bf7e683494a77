package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cinetrack/internal/formatter"
	"cinetrack/internal/tasks"
)

// WishlistList prints the signed-in user's saved movies.
func (r *Runner) WishlistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email, err := r.requireLogin()
	if err != nil {
		return err
	}

	if cmd.Bool("resolve") {
		export, err := r.runExport(ctx, email)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(export.Movies, cmd.Bool("pretty"))
		}
		if len(export.Movies) == 0 {
			return r.writePlain("Wishlist is empty\n")
		}
		for i, movie := range export.Movies {
			r.writePlain("%3d. %s (%s) - %.1f [id %d]\n", i+1, movie.Title, movie.ReleaseDate, movie.VoteAverage, movie.ID)
		}
		if export.FailedCount > 0 {
			r.writePlain("%d entries could not be resolved\n", export.FailedCount)
		}
		return nil
	}

	entries := r.wishlist.Load(email)
	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}
	if len(entries) == 0 {
		return r.writePlain("Wishlist is empty\n")
	}
	for id, genres := range entries {
		r.writePlain("movie %s (genres %v)\n", id, genres)
	}
	return nil
}

// WishlistAdd saves a movie, recording its genre IDs when the catalog can
// resolve them.
func (r *Runner) WishlistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email, err := r.requireLogin()
	if err != nil {
		return err
	}

	movieID, err := parseMovieID(cmd.StringArg("movie-id"))
	if err != nil {
		return err
	}

	var genreIDs []int64
	title := fmt.Sprintf("movie %d", movieID)
	if movie, err := r.catalog.Detail(ctx, movieID); err == nil {
		genreIDs = movie.GenreIDs
		title = movie.Title
	}

	if err := r.wishlist.Add(email, movieID, genreIDs); err != nil {
		return err
	}

	r.logger.Info("wishlist entry added", "email", email, "movie", movieID)
	return r.writePlain("✓ Added %s\n", title)
}

// WishlistRemove removes a movie. Removing an absent movie is fine.
func (r *Runner) WishlistRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email, err := r.requireLogin()
	if err != nil {
		return err
	}

	movieID, err := parseMovieID(cmd.StringArg("movie-id"))
	if err != nil {
		return err
	}

	if err := r.wishlist.Remove(email, movieID); err != nil {
		return err
	}

	r.logger.Info("wishlist entry removed", "email", email, "movie", movieID)
	return r.writePlain("✓ Removed movie %d\n", movieID)
}

// WishlistExport resolves the wishlist against the catalog and writes it to
// a file in the requested format.
func (r *Runner) WishlistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email, err := r.requireLogin()
	if err != nil {
		return err
	}

	export, err := r.runExport(ctx, email)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	output := cmd.String("output")
	if output == "" {
		output = fmt.Sprintf("wishlist.%s", format)
	}

	if err := formatter.WriteExport(export, format, output); err != nil {
		return err
	}

	r.logger.Info("wishlist exported", "file", output, "movies", len(export.Movies))
	return r.writePlain("✓ Exported %d movies to %s\n", len(export.Movies), output)
}

// runExport runs the export engine, draining progress updates into the log.
func (r *Runner) runExport(ctx context.Context, email string) (*tasks.ExportResult, error) {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	export, err := r.engine.Export(ctx, progress, email)
	close(progress)
	<-done
	return export, err
}
