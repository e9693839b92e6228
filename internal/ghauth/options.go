package ghauth

import "fmt"

// Git protocols accepted by gh auth login.
const (
	ProtocolHTTPS = "https"
	ProtocolSSH   = "ssh"
)

// LoginOptions configures the `gh auth login` invocation. It is assembled
// once per run from defaults, the config file, environment variables, and
// flags (in increasing precedence) and never mutated afterwards.
type LoginOptions struct {
	Hostname        string
	Scopes          string
	GitProtocol     string
	Web             bool
	WithToken       bool
	SkipSSHKey      bool
	InsecureStorage bool
	Clipboard       bool
}

// DefaultLoginOptions returns the built-in login defaults.
func DefaultLoginOptions() LoginOptions {
	return LoginOptions{
		Hostname:    "github.com",
		Scopes:      "repo,workflow,user,read:org,gist",
		GitProtocol: ProtocolHTTPS,
		Web:         true,
	}
}

// Validate checks option consistency before any external command runs.
func (o LoginOptions) Validate() error {
	switch o.GitProtocol {
	case ProtocolHTTPS, ProtocolSSH:
		return nil
	default:
		return fmt.Errorf("invalid git protocol %q (want %s or %s)", o.GitProtocol, ProtocolSSH, ProtocolHTTPS)
	}
}

// Args returns the gh argument list for the login invocation.
// Token mode wins over the browser flow: --web and --clipboard are never
// emitted alongside --with-token.
func (o LoginOptions) Args() []string {
	args := []string{
		"auth", "login",
		"--hostname", o.Hostname,
		"--scopes", o.Scopes,
		"--git-protocol", o.GitProtocol,
	}
	web := o.Web && !o.WithToken
	if web {
		args = append(args, "--web")
	}
	if o.WithToken {
		args = append(args, "--with-token")
	}
	if o.SkipSSHKey {
		args = append(args, "--skip-ssh-key")
	}
	if o.InsecureStorage {
		args = append(args, "--insecure-storage")
	}
	if web && o.Clipboard {
		args = append(args, "--clipboard")
	}
	return args
}
