// Package gitcfg reads and writes values in git's scoped configuration
// store by shelling out to the git binary, which owns the store and
// serializes writes at the file level.
package gitcfg

import (
	"fmt"
	"strings"

	"github.com/dotbrains/gh-setup-git-identity/internal/run"
)

// Scope selects which git configuration store a key lives in.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// Flag returns the git config flag for the scope.
func (s Scope) Flag() string { return "--" + string(s) }

// Config is the interface for git config access.
// Use the interface for testability; the default implementation shells out to git.
type Config interface {
	// Get returns the value for key, with ok=false when the key is unset.
	Get(key string, scope Scope) (value string, ok bool)
	// Set writes key=value in the scoped store.
	Set(key, value string, scope Scope) error
}

// GitConfig is the default implementation using the git CLI.
type GitConfig struct {
	run run.Runner
}

// New returns a Config backed by the given runner.
func New(r run.Runner) *GitConfig {
	return &GitConfig{run: r}
}

// Get reads a scoped config value. An unset key is expected steady-state,
// so any failure maps to an absent result rather than an error.
func (c *GitConfig) Get(key string, scope Scope) (string, bool) {
	res := c.run.Capture("git", "config", scope.Flag(), key)
	if !res.Ok() {
		return "", false
	}
	value := strings.TrimSpace(res.Stdout)
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes a scoped config value and fails loudly when git rejects it.
func (c *GitConfig) Set(key, value string, scope Scope) error {
	res := c.run.Capture("git", "config", scope.Flag(), key, value)
	if !res.Ok() {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("exit code %d", res.ExitCode)
		}
		return fmt.Errorf("git config %s %s: %s", scope.Flag(), key, msg)
	}
	return nil
}
