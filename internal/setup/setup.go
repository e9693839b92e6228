// Package setup orchestrates configuring and verifying the git identity.
package setup

import (
	"fmt"

	"github.com/dotbrains/gh-setup-git-identity/internal/ghauth"
	"github.com/dotbrains/gh-setup-git-identity/internal/gitcfg"
)

// Run fetches the authenticated identity and, unless dryRun, writes
// user.name and user.email to the scoped git config. The identity is
// returned either way.
func Run(auth ghauth.Auth, cfg gitcfg.Config, scope gitcfg.Scope, dryRun bool) (*ghauth.Identity, error) {
	id, err := auth.FetchIdentity()
	if err != nil {
		return nil, fmt.Errorf("fetching GitHub identity: %w", err)
	}
	if dryRun {
		return id, nil
	}
	if err := cfg.Set("user.name", id.Username, scope); err != nil {
		return nil, err
	}
	if err := cfg.Set("user.email", id.Email, scope); err != nil {
		return nil, err
	}
	return id, nil
}

// Report holds the current scoped identity as read from git config.
// Unset keys are reported as absent, not as errors.
type Report struct {
	Name     string
	Email    string
	NameSet  bool
	EmailSet bool
}

// Verify reads the scoped identity from git config without contacting
// GitHub.
func Verify(cfg gitcfg.Config, scope gitcfg.Scope) Report {
	var r Report
	r.Name, r.NameSet = cfg.Get("user.name", scope)
	r.Email, r.EmailSet = cfg.Get("user.email", scope)
	return r
}
