package cmd

import (
	"fmt"

	"github.com/dotbrains/gh-setup-git-identity/internal/gitcfg"
	"github.com/dotbrains/gh-setup-git-identity/internal/setup"
)

// runVerify prints the auth status and the scoped identity as currently
// configured. Read-only: no writes, no login attempts.
func (a *app) runVerify(scope gitcfg.Scope) {
	if a.auth.Authenticated() {
		fmt.Fprintln(a.out, "✅ gh is authenticated")
	} else {
		fmt.Fprintln(a.out, "❌ gh is not authenticated")
	}

	report := setup.Verify(a.git, scope)
	fmt.Fprintf(a.out, "  %s user.name:  %s\n", scope, orNotSet(report.Name, report.NameSet))
	fmt.Fprintf(a.out, "  %s user.email: %s\n", scope, orNotSet(report.Email, report.EmailSet))
}

func orNotSet(value string, ok bool) string {
	if !ok {
		return "(not set)"
	}
	return value
}
