package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"cinetrack/internal/account"
	"cinetrack/internal/catalog"
	"cinetrack/internal/session"
	"cinetrack/internal/shared"
	"cinetrack/internal/storage"
	"cinetrack/internal/tasks"
	"cinetrack/internal/wishlist"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	db       *sql.DB
	local    storage.Store
	scoped   storage.Store
	session  *session.Store
	auth     *account.Service
	creds    *account.CredentialStore
	catalog  *catalog.Client
	wishlist *wishlist.Manager
	engine   *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Local and Session stores may be injected for tests; when left nil the
// runner opens the configured SQLite database on first use.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Local   storage.Store
	Session storage.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		local:  opts.Local,
		scoped: opts.Session,
	}

	if r.local != nil && r.scoped != nil {
		r.build()
	}

	return r
}

// ensure opens the configured database and wires the stores on first use.
// Commands that only touch injected stores never hit the database.
func (r *Runner) ensure() error {
	if r.session != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database (run 'cinetrack setup' first): %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.local = storage.NewSQLite(db, storage.ScopeLocal)
	r.scoped = storage.NewSQLite(db, storage.ScopeSession)
	r.build()
	return nil
}

// build wires the component graph over the configured stores.
func (r *Runner) build() {
	r.creds = account.NewCredentialStore(r.local, r.logger)
	r.auth = account.NewService(r.creds)
	r.session = session.New(r.scoped, r.logger)
	r.wishlist = wishlist.NewManager(r.local, r.session, r.logger)
	r.catalog = catalog.NewClient(r.config.API, r.logger)
	if key := r.session.UserAPIKey(); key != "" {
		r.catalog.SetAPIKey(key)
	}
	r.engine = tasks.NewEngine(r.catalog, r.wishlist)
}

// SetLogger swaps the runner's logger; components built afterwards pick it up.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// requireLogin returns the signed-in user's email or an error when logged out.
func (r *Runner) requireLogin() (string, error) {
	if !r.session.IsLoggedIn() {
		return "", fmt.Errorf("%w: sign in with 'cinetrack account login'", shared.ErrNotAuthenticated)
	}
	return r.session.UserEmail(), nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, accountCommand, moviesCommand, wishlistCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeMoviePage prints a catalog page as numbered lines, marking wishlist
// membership for the signed-in user.
func (r *Runner) writeMoviePage(page catalog.Page) error {
	if len(page.Movies) == 0 {
		return r.writePlain("No movies found\n")
	}

	email := r.session.UserEmail()
	for i, movie := range page.Movies {
		marker := " "
		if email != "" && r.wishlist.Contains(email, movie.ID) {
			marker = "★"
		}
		if err := r.writePlain("%3d. %s %s (%s) - %.1f [id %d]\n", i+1, marker, movie.Title, movie.ReleaseDate, movie.VoteAverage, movie.ID); err != nil {
			return err
		}
	}

	if page.TotalPages > 1 {
		return r.writePlain("Page %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	}
	return nil
}
