// Package cmd provides the cobra command for gh-setup-git-identity.
package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dotbrains/gh-setup-git-identity/internal/config"
	"github.com/dotbrains/gh-setup-git-identity/internal/ghauth"
	"github.com/dotbrains/gh-setup-git-identity/internal/gitcfg"
	"github.com/dotbrains/gh-setup-git-identity/internal/run"
	"github.com/dotbrains/gh-setup-git-identity/internal/version"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gh-setup-git-identity",
		Short: "Configure your git identity from the authenticated GitHub account",
		Long: `gh-setup-git-identity reads the authenticated GitHub account's login and
primary email through the gh CLI and writes them to git's user.name and
user.email. When no gh session exists it can drive gh's interactive login
and credential helper setup first.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}
			if err := opts.Login.Validate(); err != nil {
				return err
			}

			runner := run.NewRunner(opts.Verbose)
			a := &app{
				auth:     ghauth.NewGHAuth(runner),
				git:      gitcfg.New(runner),
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
				stdinTTY: stdinIsTerminal(),
				opts:     opts,
			}
			a.verify, _ = cmd.Flags().GetBool("verify")
			a.repair, _ = cmd.Flags().GetBool("repair")
			a.noAutoLogin, _ = cmd.Flags().GetBool("no-auto-login")

			return a.run()
		},
	}

	fl := root.Flags()
	fl.BoolP("global", "g", false, "write to the global git config (the default)")
	fl.BoolP("local", "l", false, "write to the current repository's git config")
	fl.BoolP("verbose", "v", false, "echo external commands and extra diagnostics")
	fl.Bool("dry-run", false, "fetch the identity but write nothing")
	fl.Bool("dry", false, "alias for --dry-run")
	fl.Bool("verify", false, "report auth status and the configured identity, change nothing")
	fl.Bool("repair", false, "re-run credential helper setup; never start a login")
	fl.Bool("no-auto-login", false, "fail instead of starting gh auth login when unauthenticated")
	fl.String("hostname", "", "GitHub hostname to authenticate with")
	fl.StringP("scopes", "s", "", "comma-separated OAuth scopes to request on login")
	fl.StringP("git-protocol", "p", "", "protocol for git operations: ssh or https")
	fl.BoolP("web", "w", false, "authenticate through the browser")
	fl.Bool("with-token", false, "read an auth token from standard input")
	fl.Bool("skip-ssh-key", false, "skip the SSH key prompt during login")
	fl.Bool("insecure-storage", false, "store credentials in plain text instead of the keyring")
	fl.Bool("clipboard", false, "copy the one-time code to the clipboard")
	_ = fl.MarkHidden("dry")

	root.MarkFlagsMutuallyExclusive("global", "local")
	root.MarkFlagsMutuallyExclusive("web", "with-token")

	return root
}

// buildOptions merges defaults, the optional config file, environment
// variables, and flags, in that increasing precedence order.
func buildOptions(cmd *cobra.Command) (config.Options, error) {
	opts := config.Defaults()

	file, err := config.Load()
	if err != nil {
		return opts, err
	}
	opts.ApplyFile(file)
	opts.ApplyEnv()

	fl := cmd.Flags()
	if fl.Changed("global") {
		opts.Local = false
	}
	if fl.Changed("local") {
		opts.Local, _ = fl.GetBool("local")
	}
	if fl.Changed("verbose") {
		opts.Verbose, _ = fl.GetBool("verbose")
	}
	if fl.Changed("dry-run") || fl.Changed("dry") {
		dryRun, _ := fl.GetBool("dry-run")
		dry, _ := fl.GetBool("dry")
		opts.DryRun = dryRun || dry
	}
	if fl.Changed("hostname") {
		opts.Login.Hostname, _ = fl.GetString("hostname")
	}
	if fl.Changed("scopes") {
		opts.Login.Scopes, _ = fl.GetString("scopes")
	}
	if fl.Changed("git-protocol") {
		opts.Login.GitProtocol, _ = fl.GetString("git-protocol")
	}
	if fl.Changed("web") {
		opts.Login.Web, _ = fl.GetBool("web")
	}
	if fl.Changed("skip-ssh-key") {
		opts.Login.SkipSSHKey, _ = fl.GetBool("skip-ssh-key")
	}
	if fl.Changed("insecure-storage") {
		opts.Login.InsecureStorage, _ = fl.GetBool("insecure-storage")
	}
	if fl.Changed("clipboard") {
		opts.Login.Clipboard, _ = fl.GetBool("clipboard")
	}
	opts.Login.WithToken, _ = fl.GetBool("with-token")

	return opts, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
