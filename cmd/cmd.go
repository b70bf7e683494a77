// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Clear persisted session state",
			},
		},
		Action: r.Setup,
	}
}

// accountCommand handles signup, login and session inspection.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "account",
		Aliases: []string{"acc"},
		Usage:   "User registration and login",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Register a new account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (min 8 characters)",
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "Password confirmation; defaults to --password",
					},
					&cli.BoolFlag{
						Name:  "agree-terms",
						Usage: "Agree to the terms of service",
					},
				},
				Action: r.AccountSignup,
			},
			{
				Name:  "login",
				Usage: "Sign in and start a session",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "Catalog API key for this session; defaults to the configured key",
					},
				},
				Action: r.AccountLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AccountLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current session",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AccountWhoami,
			},
		},
	}
}

// moviesCommand handles catalog browsing.
func moviesCommand(r *Runner) *cli.Command {
	pageFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"n"},
			Usage:   "Result page to fetch",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}

	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"mov"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:    "now-playing",
				Aliases: []string{"now"},
				Usage:   "Movies currently in theaters",
				Flags:   pageFlags,
				Action:  r.MoviesNowPlaying,
			},
			{
				Name:   "popular",
				Usage:  "Most popular movies",
				Flags:  pageFlags,
				Action: r.MoviesPopular,
			},
			{
				Name:   "featured",
				Usage:  "Today's featured movie",
				Flags:  pageFlags,
				Action: r.MoviesFeatured,
			},
			{
				Name:  "discover",
				Usage: "Movies for a genre",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "genre-id"},
				},
				Flags:  pageFlags,
				Action: r.MoviesDiscover,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  pageFlags,
				Action: r.MoviesSearch,
			},
			{
				Name:  "dump",
				Usage: "Full catalog dump (featured, now playing, popular)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to catalog_dump.json",
						Value: false,
					},
				},
				Action: r.MoviesDump,
			},
			{
				Name:  "open",
				Usage: "Open a movie's page in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Action: r.MoviesOpen,
			},
		},
	}
}

// wishlistCommand handles the signed-in user's saved movies.
func wishlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "wishlist",
		Aliases: []string{"wl"},
		Usage:   "Manage saved movies",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "resolve",
						Usage: "Resolve entries against the catalog",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.WishlistList,
			},
			{
				Name:  "add",
				Usage: "Save a movie to the wishlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Action: r.WishlistAdd,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Remove a movie from the wishlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Action: r.WishlistRemove,
			},
			{
				Name:  "export",
				Usage: "Export the wishlist to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.WishlistExport,
			},
		},
	}
}

// tuiCommand launches the interactive browser.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive movie browser",
		Action: r.TUI,
	}
}
