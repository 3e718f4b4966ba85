// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/adapter"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
)

type command struct {
	summary string
	run     func(ctx context.Context) error
}

var _ Client = (*App)(nil)

// App is the command-line client. Each Run executes one subcommand.
type App struct {
	server   adapter.ServerAdapter
	sessions SessionStore
	prompter Prompter
	out      io.Writer
	build    models.AppBuildInfo

	commands map[string]command
	logger   *logger.Logger
}

// NewApp wires the client. Command output goes to out; prompts go wherever
// prompter writes them.
func NewApp(server adapter.ServerAdapter, sessions SessionStore, prompter Prompter, out io.Writer, build models.AppBuildInfo, logger *logger.Logger) *App {
	a := &App{
		server:   server,
		sessions: sessions,
		prompter: prompter,
		out:      out,
		build:    build,
		logger:   logger,
	}

	a.commands = map[string]command{
		"register":        {summary: "create an account", run: a.register},
		"login":           {summary: "log in and store the session", run: a.login},
		"refresh":         {summary: "exchange the stored refresh token for a new pair", run: a.refresh},
		"logout":          {summary: "end the current session", run: a.logout},
		"logout-all":      {summary: "end every session of the account", run: a.logoutAll},
		"change-password": {summary: "change the password and end all sessions", run: a.changePassword},
		"whoami":          {summary: "show the logged-in user", run: a.dashboard},
		"users":           {summary: "list registered users", run: a.listUsers},
		"version":         {summary: "show client and server versions", run: a.version},
	}

	return a
}

// Run executes the subcommand named by args[0]. Extra arguments are ignored.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrMissingCommand
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")
	return cmd.run(ctx)
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: job-tracker <command>")
	fmt.Fprintln(a.out)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, a.commands[name].summary)
	}
	w.Flush()
}

func (a *App) register(ctx context.Context) error {
	username, err := a.prompter.Prompt("Username")
	if err != nil {
		return err
	}
	email, err := a.prompter.Prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.newPassword("Password")
	if err != nil {
		return err
	}

	resp, err := a.server.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s\n", resp.Message, resp.User.Username)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := a.prompter.Prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.prompter.PromptPassword("Password")
	if err != nil {
		return err
	}

	resp, err := a.server.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	if err = a.sessions.Save(models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s. Welcome, %s.\n", resp.Message, resp.User.Username)
	return nil
}

func (a *App) refresh(ctx context.Context) error {
	tokens, err := a.sessions.Load()
	if err != nil {
		return err
	}

	if _, err = a.renew(ctx, tokens); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Session refreshed.")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	msg, err := a.withSession(ctx, func(tokens models.TokenPair) (string, error) {
		return a.server.Logout(ctx, tokens.AccessToken, tokens.RefreshToken)
	})
	if err != nil {
		return err
	}

	return a.endSession(msg)
}

func (a *App) logoutAll(ctx context.Context) error {
	msg, err := a.withSession(ctx, func(tokens models.TokenPair) (string, error) {
		return a.server.LogoutAll(ctx, tokens.AccessToken)
	})
	if err != nil {
		return err
	}

	return a.endSession(msg)
}

func (a *App) changePassword(ctx context.Context) error {
	if _, err := a.sessions.Load(); err != nil {
		return err
	}

	oldPassword, err := a.prompter.PromptPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.newPassword("New password")
	if err != nil {
		return err
	}

	request := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	msg, err := a.withSession(ctx, func(tokens models.TokenPair) (string, error) {
		return a.server.ChangePassword(ctx, tokens.AccessToken, request)
	})
	if err != nil {
		return err
	}

	// the server revoked every session along with the old password
	return a.endSession(msg)
}

func (a *App) dashboard(ctx context.Context) error {
	msg, err := a.withSession(ctx, func(tokens models.TokenPair) (string, error) {
		return a.server.Dashboard(ctx, tokens.AccessToken)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	resp, err := a.server.ListUsers(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%d)\n", resp.Message, resp.UserCount)
	if len(resp.Results) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCREATED")
	for _, u := range resp.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.UserID, u.Username, u.Email, u.CreatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

// version prints the client build first so it shows even when the server
// is unreachable.
func (a *App) version(ctx context.Context) error {
	fmt.Fprintf(a.out, "client: %s (commit %s, built %s)\n", a.build.Version(), a.build.Commit(), a.build.Date())

	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "server: %s\n", v)
	return nil
}

// withSession runs call with the stored tokens. When the server rejects
// the access token, the pair is refreshed once and call is retried.
func (a *App) withSession(ctx context.Context, call func(tokens models.TokenPair) (string, error)) (string, error) {
	tokens, err := a.sessions.Load()
	if err != nil {
		return "", err
	}

	msg, err := call(tokens)
	if !errors.Is(err, adapter.ErrUnauthorized) {
		return msg, err
	}

	a.logger.Debug().Err(err).Msg("access token rejected, refreshing")
	tokens, rerr := a.renew(ctx, tokens)
	if rerr != nil {
		return "", rerr
	}

	return call(tokens)
}

// renew refreshes tokens and stores the new pair. A rejected refresh token
// means the session is gone, so the stored pair is dropped.
func (a *App) renew(ctx context.Context, tokens models.TokenPair) (models.TokenPair, error) {
	renewed, err := a.server.Refresh(ctx, tokens.RefreshToken)
	if errors.Is(err, adapter.ErrUnauthorized) {
		if cerr := a.sessions.Clear(); cerr != nil {
			a.logger.Warn().Err(cerr).Msg("error clearing session")
		}
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = a.sessions.Save(renewed); err != nil {
		return models.TokenPair{}, err
	}
	return renewed, nil
}

func (a *App) endSession(msg string) error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// newPassword asks for a password twice and returns it when both match.
func (a *App) newPassword(label string) (string, error) {
	password, err := a.prompter.PromptPassword(label)
	if err != nil {
		return "", err
	}
	confirm, err := a.prompter.PromptPassword("Repeat " + strings.ToLower(label))
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordsDiffer
	}
	return password, nil
}
