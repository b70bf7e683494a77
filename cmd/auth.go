package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cinetrack/internal/shared"
)

// AccountSignup registers a new user against the local credential store.
func (r *Runner) AccountSignup(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email := cmd.StringArg("email")
	password := cmd.String("password")
	confirm := cmd.String("confirm")
	if confirm == "" {
		confirm = password
	}

	if email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingArgument)
	}

	result := r.auth.Signup(email, password, confirm, cmd.Bool("agree-terms"))
	if !result.Success {
		r.logger.Warn("signup rejected", "email", email)
		return r.writePlain("✗ %s\n", result.Message)
	}

	r.logger.Info("user registered", "email", email)
	return r.writePlain("✓ %s\n", result.Message)
}

// AccountLogin validates credentials and starts a session.
func (r *Runner) AccountLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingArgument)
	}

	result := r.auth.Login(email, cmd.String("password"))
	if !result.Success {
		r.logger.Warn("login rejected", "email", email)
		return r.writePlain("✗ %s\n", result.Message)
	}

	apiKey := cmd.String("api-key")
	if apiKey == "" {
		apiKey = r.config.API.Key
	}

	r.session.Login(email, apiKey)
	r.catalog.SetAPIKey(apiKey)
	r.wishlist.Load(email)

	if r.session.Current().ShowLoginSuccessToast {
		r.writePlain("✓ %s\n", result.Message)
		r.session.ClearLoginSuccessToast()
	}

	r.logger.Info("session started", "email", email)
	return nil
}

// AccountLogout ends the current session. The wishlist stays put.
func (r *Runner) AccountLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	if !r.session.IsLoggedIn() {
		return r.writePlain("Not signed in\n")
	}

	email := r.session.UserEmail()
	r.session.Logout()
	r.logger.Info("session ended", "email", email)
	return r.writePlain("Signed out %s\n", email)
}

// AccountWhoami prints the current session state.
func (r *Runner) AccountWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	snap := r.session.Current()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"isLoggedIn": snap.IsLoggedIn,
			"userEmail":  snap.UserEmail,
			"sessionId":  snap.SessionID,
		}, true)
	}

	if !snap.IsLoggedIn {
		return r.writePlain("Not signed in\n")
	}

	r.writePlain("Signed in as %s\n", snap.UserEmail)
	if snap.UserAPIKey != "" {
		r.writePlain("Catalog API key configured\n")
	}
	return nil
}
