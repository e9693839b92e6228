package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dotbrains/gh-setup-git-identity/internal/config"
	"github.com/dotbrains/gh-setup-git-identity/internal/ghauth"
	"github.com/dotbrains/gh-setup-git-identity/internal/gitcfg"
	"github.com/dotbrains/gh-setup-git-identity/internal/setup"
)

// errNotAuthenticated signals the unauthenticated exit paths after the
// recovery instructions have already been printed.
var errNotAuthenticated = errors.New("gh is not authenticated")

// app holds the collaborators and merged options for one invocation.
type app struct {
	auth     ghauth.Auth
	git      gitcfg.Config
	out      io.Writer
	errOut   io.Writer
	stdinTTY bool
	opts     config.Options

	verify      bool
	repair      bool
	noAutoLogin bool
}

// run executes the decision sequence: verify short-circuits everything;
// otherwise ensure an authenticated, repaired gh session, then configure
// the identity.
func (a *app) run() error {
	scope := gitcfg.ScopeGlobal
	if a.opts.Local {
		scope = gitcfg.ScopeLocal
	}

	if a.verify {
		a.runVerify(scope)
		return nil
	}

	if err := a.ensureAuthenticated(); err != nil {
		return err
	}

	id, err := setup.Run(a.auth, a.git, scope, a.opts.DryRun)
	if err != nil {
		return err
	}

	if a.opts.DryRun {
		fmt.Fprintf(a.out, "Would set %s git identity to %s <%s>\n", scope, id.Username, id.Email)
		return nil
	}
	fmt.Fprintf(a.out, "✅ Set %s git identity to %s <%s>\n", scope, id.Username, id.Email)
	fmt.Fprintf(a.out, "   Verify with: gh-setup-git-identity --verify%s\n", scopeFlagSuffix(scope))
	return nil
}

// ensureAuthenticated leaves gh in an authenticated, setup-git-repaired
// state, or returns an error after printing recovery instructions.
func (a *app) ensureAuthenticated() error {
	if a.auth.Authenticated() {
		// Self-healing for partially-configured environments; failures
		// here must not abort the flow.
		if err := a.auth.SetupGit(a.opts.Login.Hostname); err != nil && a.opts.Verbose {
			fmt.Fprintf(a.errOut, "⚠️  credential helper setup failed: %v\n", err)
		}
		return nil
	}

	switch {
	case a.repair:
		fmt.Fprintln(a.errOut, "❌ No gh session found; there is nothing to repair.")
		fmt.Fprintf(a.errOut, "   Authenticate first with `gh auth login --hostname %s`, then re-run with --repair.\n", a.opts.Login.Hostname)
		return errNotAuthenticated
	case a.noAutoLogin:
		fmt.Fprintln(a.errOut, "❌ gh is not authenticated and auto-login is disabled.")
		a.printManualLogin()
		return errNotAuthenticated
	default:
		return a.autoLogin()
	}
}

// autoLogin drives gh's interactive login, then the credential helper
// setup (warn-only on failure).
func (a *app) autoLogin() error {
	opts := a.opts.Login
	if !opts.WithToken {
		fmt.Fprintln(a.out, "ℹ️  GitHub caps the number of active OAuth tokens per account; repeated logins may revoke older tokens.")
		if !a.stdinTTY {
			fmt.Fprintln(a.errOut, "❌ Interactive login needs a terminal on standard input.")
			a.printManualLogin()
			return errors.New("interactive login requires a terminal")
		}
	}

	if !a.auth.Login(opts) {
		a.printManualLogin()
		return errors.New("gh auth login failed")
	}

	if err := a.auth.SetupGit(opts.Hostname); err != nil {
		fmt.Fprintf(a.errOut, "⚠️  credential helper setup failed: %v\n", err)
	}
	return nil
}

func (a *app) printManualLogin() {
	fmt.Fprintln(a.errOut, "   Authenticate manually with:")
	fmt.Fprintf(a.errOut, "   gh %s\n", strings.Join(a.opts.Login.Args(), " "))
}

func scopeFlagSuffix(scope gitcfg.Scope) string {
	if scope == gitcfg.ScopeLocal {
		return " --local"
	}
	return ""
}
