// Package ghauth provides an interface for interacting with gh's
// authentication subsystem (session checks, interactive login, credential
// helper setup) and for fetching the authenticated account's identity.
package ghauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gh "github.com/cli/go-gh/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dotbrains/gh-setup-git-identity/internal/run"
)

// ErrNoPrimaryEmail is returned when the authenticated account has no email
// marked primary. The account state is valid; the user has to set a primary
// email on GitHub before the tool can proceed.
var ErrNoPrimaryEmail = errors.New("no primary email is set on the GitHub account; add one at https://github.com/settings/emails")

// Identity is the authenticated account's git identity.
type Identity struct {
	Username string
	Email    string
}

// Auth is the interface for gh authentication operations.
// Use the interface for testability; the default implementation shells out to gh.
type Auth interface {
	// Authenticated reports whether gh has an active session.
	Authenticated() bool
	// Login runs gh's interactive login and reports whether it succeeded.
	Login(opts LoginOptions) bool
	// SetupGit configures gh as git's credential helper for the hostname.
	SetupGit(hostname string) error
	// FetchIdentity returns the authenticated login and primary email.
	FetchIdentity() (*Identity, error)
}

// execFn is the function signature for executing captured gh commands.
type execFn func(args ...string) (bytes.Buffer, bytes.Buffer, error)

// GHAuth is the default implementation using the gh CLI.
type GHAuth struct {
	exec execFn
	run  run.Runner
}

// NewGHAuth returns a new default Auth implementation. Interactive
// invocations (the login flow) go through the given runner.
func NewGHAuth(r run.Runner) *GHAuth {
	return &GHAuth{exec: ghExec, run: r}
}

// ghExec wraps gh.Exec.
func ghExec(args ...string) (bytes.Buffer, bytes.Buffer, error) {
	return gh.Exec(args...)
}

// Authenticated reports whether `gh auth status` exits zero. A gh binary
// that cannot be run at all counts as not authenticated.
func (g *GHAuth) Authenticated() bool {
	_, _, err := g.exec("auth", "status")
	return err == nil
}

// Login runs `gh auth login` interactively with the flag list derived from
// opts. Outside token mode the default-account prompt is auto-confirmed by
// writing "y" to gh's input; in token mode stdin is left attached so the
// token can be piped through.
func (g *GHAuth) Login(opts LoginOptions) bool {
	stdin := "y\n"
	if opts.WithToken {
		stdin = ""
	}
	return g.run.Interactive("gh", stdin, opts.Args()...) == 0
}

// SetupGit runs `gh auth setup-git -h <hostname>` to (re)install gh as the
// credential helper for the hostname.
func (g *GHAuth) SetupGit(hostname string) error {
	_, stderr, err := g.exec("auth", "setup-git", "-h", hostname)
	if err != nil {
		return fmt.Errorf("gh auth setup-git -h %s: %s: %w", hostname, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

// FetchIdentity queries the login name and the primary email concurrently
// and combines them. If either query fails, the combination fails.
func (g *GHAuth) FetchIdentity() (*Identity, error) {
	var username, email string

	var eg errgroup.Group
	eg.Go(func() error {
		u, err := g.fetchLogin()
		if err != nil {
			return err
		}
		username = u
		return nil
	})
	eg.Go(func() error {
		e, err := g.fetchPrimaryEmail()
		if err != nil {
			return err
		}
		email = e
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Identity{Username: username, Email: email}, nil
}

// fetchLogin returns the authenticated login via `gh api user`.
func (g *GHAuth) fetchLogin() (string, error) {
	stdout, stderr, err := g.exec("api", "user")
	if err != nil {
		return "", fmt.Errorf("gh api user: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &user); err != nil {
		return "", fmt.Errorf("parsing gh api user response: %w", err)
	}
	if user.Login == "" {
		return "", errors.New("gh api user returned an empty login")
	}
	return user.Login, nil
}

// fetchPrimaryEmail returns the email marked primary via `gh api user/emails`.
func (g *GHAuth) fetchPrimaryEmail() (string, error) {
	stdout, stderr, err := g.exec("api", "user/emails")
	if err != nil {
		return "", fmt.Errorf("gh api user/emails: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &emails); err != nil {
		return "", fmt.Errorf("parsing gh api user/emails response: %w", err)
	}
	for _, e := range emails {
		if e.Primary && e.Email != "" {
			return e.Email, nil
		}
	}
	return "", ErrNoPrimaryEmail
}
