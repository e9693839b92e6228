package ghauth

import (
	"slices"
	"testing"
)

func TestDefaultLoginOptions(t *testing.T) {
	o := DefaultLoginOptions()
	if o.Hostname != "github.com" {
		t.Errorf("Hostname = %q, want github.com", o.Hostname)
	}
	if o.Scopes != "repo,workflow,user,read:org,gist" {
		t.Errorf("Scopes = %q", o.Scopes)
	}
	if o.GitProtocol != ProtocolHTTPS {
		t.Errorf("GitProtocol = %q, want https", o.GitProtocol)
	}
	if !o.Web {
		t.Error("Web = false, want true")
	}
	if o.WithToken || o.SkipSSHKey || o.InsecureStorage || o.Clipboard {
		t.Error("expected all other booleans to default to false")
	}
}

func TestValidate(t *testing.T) {
	o := DefaultLoginOptions()
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() error = %v for defaults", err)
	}

	o.GitProtocol = ProtocolSSH
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() error = %v for ssh", err)
	}

	o.GitProtocol = "ftp"
	if err := o.Validate(); err == nil {
		t.Error("Validate() error = nil for invalid protocol")
	}
}

func TestLoginArgs(t *testing.T) {
	base := LoginOptions{
		Hostname:    "github.com",
		Scopes:      "repo,workflow",
		GitProtocol: ProtocolHTTPS,
	}

	tests := []struct {
		name    string
		mutate  func(*LoginOptions)
		want    []string
		absent  []string
		present []string
	}{
		{
			name:   "web login",
			mutate: func(o *LoginOptions) { o.Web = true },
			want: []string{
				"auth", "login",
				"--hostname", "github.com",
				"--scopes", "repo,workflow",
				"--git-protocol", "https",
				"--web",
			},
		},
		{
			name:    "web with clipboard",
			mutate:  func(o *LoginOptions) { o.Web = true; o.Clipboard = true },
			present: []string{"--web", "--clipboard"},
		},
		{
			name:    "web without clipboard",
			mutate:  func(o *LoginOptions) { o.Web = true },
			present: []string{"--web"},
			absent:  []string{"--clipboard"},
		},
		{
			name:    "token mode suppresses web and clipboard",
			mutate:  func(o *LoginOptions) { o.Web = true; o.Clipboard = true; o.WithToken = true },
			present: []string{"--with-token"},
			absent:  []string{"--web", "--clipboard"},
		},
		{
			name:    "token mode without web set",
			mutate:  func(o *LoginOptions) { o.WithToken = true; o.Clipboard = true },
			present: []string{"--with-token"},
			absent:  []string{"--web", "--clipboard"},
		},
		{
			name:    "skip ssh key",
			mutate:  func(o *LoginOptions) { o.Web = true; o.SkipSSHKey = true },
			present: []string{"--skip-ssh-key"},
		},
		{
			name:    "insecure storage",
			mutate:  func(o *LoginOptions) { o.Web = true; o.InsecureStorage = true },
			present: []string{"--insecure-storage"},
		},
		{
			name:   "no web no token",
			mutate: func(o *LoginOptions) {},
			absent: []string{"--web", "--with-token", "--clipboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base
			tt.mutate(&o)
			got := o.Args()

			if tt.want != nil && !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
			for _, flag := range tt.present {
				if !slices.Contains(got, flag) {
					t.Errorf("Args() = %v, missing %s", got, flag)
				}
			}
			for _, flag := range tt.absent {
				if slices.Contains(got, flag) {
					t.Errorf("Args() = %v, must not contain %s", got, flag)
				}
			}
		})
	}
}

// Token mode must never emit --web or --clipboard for any combination of
// the remaining booleans.
func TestLoginArgsTokenModeExhaustive(t *testing.T) {
	for _, web := range []bool{false, true} {
		for _, clipboard := range []bool{false, true} {
			for _, skip := range []bool{false, true} {
				o := LoginOptions{
					Hostname:    "github.com",
					Scopes:      "repo",
					GitProtocol: ProtocolHTTPS,
					Web:         web,
					WithToken:   true,
					SkipSSHKey:  skip,
					Clipboard:   clipboard,
				}
				got := o.Args()
				if slices.Contains(got, "--web") || slices.Contains(got, "--clipboard") {
					t.Errorf("Args() with token mode (web=%v clipboard=%v) = %v", web, clipboard, got)
				}
			}
		}
	}
}
