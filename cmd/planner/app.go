package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/pkordes/travel-planner/internal/apiclient"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/planner"
)

// app carries what every command needs: the remote client, the planner
// built on it and the persisted state.
type app struct {
	server    string
	statePath string
	timeout   time.Duration
	yes       bool

	in  io.Reader
	out io.Writer
	err io.Writer
	log *slog.Logger

	// interactive reports whether in is a terminal.
	interactive bool

	state   State
	client  *apiclient.Client
	planner *planner.Planner
	// loaded is set once the trip set has been fetched.
	loaded bool
}

// connect loads the saved state and builds the client. It does no I/O
// against the server.
func (a *app) connect() error {
	if a.client != nil {
		return nil
	}
	st, err := loadState(a.statePath)
	if err != nil {
		return err
	}
	a.state = st
	server := a.server
	if server == "" {
		server = st.Server
	}
	if server == "" {
		server = "http://localhost:8080"
	}
	a.state.Server = server
	a.client = apiclient.New(server,
		apiclient.WithHTTPClient(&http.Client{Timeout: a.timeout}),
		apiclient.WithSession(st.Session),
	)
	a.planner = planner.New(a.client, planner.WithLogger(a.log))
	return nil
}

// load connects, fetches the trip set and restores the saved selection.
func (a *app) load(ctx context.Context) error {
	if err := a.connect(); err != nil {
		return err
	}
	if err := a.planner.LoadTrips(ctx); err != nil {
		return a.explain(err)
	}
	a.loaded = true
	saved := a.state.Trip
	if cur, ok := a.planner.Current(); saved != uuid.Nil && ok && cur.ID != saved {
		if err := a.planner.SelectTrip(ctx, saved); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return a.explain(err)
		}
	}
	return nil
}

// save persists the session and, when trips were loaded, the selection.
func (a *app) save() error {
	if a.client == nil {
		return nil
	}
	a.state.Session = a.client.Session()
	if a.state.Session == "" {
		a.state.Trip = uuid.Nil
	}
	if a.loaded {
		a.state.Trip = uuid.Nil
		if cur, ok := a.planner.Current(); ok {
			a.state.Trip = cur.ID
		}
	}
	return saveState(a.statePath, a.state)
}

// withClient wraps a command that talks to the server without the trip set.
func (a *app) withClient(fn func(ctx context.Context, args []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if err := a.connect(); err != nil {
			return err
		}
		if err := fn(ctx, args); err != nil {
			return a.explain(err)
		}
		return a.save()
	}
}

// withTrips wraps a command that works on the selected trip.
func (a *app) withTrips(fn func(ctx context.Context, args []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if err := a.load(ctx); err != nil {
			return err
		}
		if err := fn(ctx, args); err != nil {
			return a.explain(err)
		}
		return a.save()
	}
}

// currentTrip returns the selection or ErrNoTripSelected.
func (a *app) currentTrip() (domain.Trip, error) {
	cur, ok := a.planner.Current()
	if !ok {
		return domain.Trip{}, planner.ErrNoTripSelected
	}
	return cur, nil
}

// explain adds a hint to errors the user can fix.
func (a *app) explain(err error) error {
	if apiclient.IsUnauthorized(err) {
		return fmt.Errorf("%w (run \"planner login\" first)", err)
	}
	if errors.Is(err, planner.ErrNoTripSelected) {
		return fmt.Errorf("%w (run \"planner trips new\" first)", err)
	}
	return err
}

// Confirm asks on the terminal unless --yes was given.
func (a *app) Confirm(_ context.Context, prompt string) (bool, error) {
	if a.yes {
		return true, nil
	}
	if !a.interactive {
		return false, fmt.Errorf("confirmation required: %s (rerun with --yes)", prompt)
	}
	fmt.Fprintf(a.err, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

var _ planner.Confirmer = (*app)(nil)

// readPassword reads from passwordFile when given, prompts with echo off on
// a terminal, and otherwise takes the first line of stdin.
func (a *app) readPassword(passwordFile, prompt string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	if f, ok := a.in.(*os.File); ok && a.interactive {
		fmt.Fprint(a.err, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.err)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// resolve finds the one element whose ID starts with prefix.
func resolve[T any](items []T, id func(T) uuid.UUID, prefix string) (T, error) {
	var zero T
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return zero, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	var found []T
	for _, it := range items {
		if strings.HasPrefix(id(it).String(), prefix) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%w: no match for %q", domain.ErrNotFound, prefix)
	case 1:
		return found[0], nil
	}
	return zero, fmt.Errorf("%w: %q matches %d entries", domain.ErrValidation, prefix, len(found))
}

func itemID(it domain.Item) uuid.UUID           { return it.ID }
func tripID(t domain.Trip) uuid.UUID            { return t.ID }
func templateID(d domain.DefaultItem) uuid.UUID { return d.ID }
func rowID(r planner.Row) uuid.UUID             { return r.ID }

func shortID(id uuid.UUID) string { return id.String()[:8] }

func parseKind(s string) (domain.ListKind, error) {
	kind, err := domain.ParseListKind(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("unknown list %q (want todo, packing, shop or planning)", s)
	}
	return kind, nil
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w: usage: %s", domain.ErrValidation, usage)
	}
	return nil
}
