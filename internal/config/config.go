// Package config assembles the per-invocation options from built-in
// defaults, an optional YAML config file, and environment variables.
// Flags are applied last by the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dotbrains/gh-setup-git-identity/internal/ghauth"
)

const (
	// DefaultConfigDir is the subdirectory under XDG_CONFIG_HOME / ~/.config.
	DefaultConfigDir = "gh-setup-git-identity"

	// ConfigFileName is the optional defaults file inside the config dir.
	ConfigFileName = "config.yml"
)

// Options is the fully-merged invocation configuration.
type Options struct {
	Login   ghauth.LoginOptions
	Local   bool
	Verbose bool
	DryRun  bool
}

// Defaults returns the built-in option values.
func Defaults() Options {
	return Options{Login: ghauth.DefaultLoginOptions()}
}

// Dir returns the configuration directory.
// It respects GH_SETUP_GIT_IDENTITY_CONFIG_DIR, then XDG_CONFIG_HOME, then ~/.config.
func Dir() (string, error) {
	if d := os.Getenv("GH_SETUP_GIT_IDENTITY_CONFIG_DIR"); d != "" {
		return d, nil
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultConfigDir), nil
}

// File is the on-disk structure of config.yml. Every field is optional;
// absent fields keep the previous (default) value.
type File struct {
	Auth    AuthDefaults `yaml:"auth"`
	Local   *bool        `yaml:"local,omitempty"`
	Verbose *bool        `yaml:"verbose,omitempty"`
	DryRun  *bool        `yaml:"dry_run,omitempty"`
}

// AuthDefaults mirrors the login option surface in config.yml.
type AuthDefaults struct {
	Hostname        string `yaml:"hostname,omitempty"`
	Scopes          string `yaml:"scopes,omitempty"`
	GitProtocol     string `yaml:"git_protocol,omitempty"`
	Web             *bool  `yaml:"web,omitempty"`
	SkipSSHKey      *bool  `yaml:"skip_ssh_key,omitempty"`
	InsecureStorage *bool  `yaml:"insecure_storage,omitempty"`
	Clipboard       *bool  `yaml:"clipboard,omitempty"`
}

// Load reads config.yml from the config directory.
// Returns an empty File (not an error) if the file does not exist.
func Load() (*File, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, ConfigFileName))
}

// LoadFrom reads a config file from the given path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

// ApplyFile overlays the config file's values onto o.
func (o *Options) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Auth.Hostname != "" {
		o.Login.Hostname = f.Auth.Hostname
	}
	if f.Auth.Scopes != "" {
		o.Login.Scopes = f.Auth.Scopes
	}
	if f.Auth.GitProtocol != "" {
		o.Login.GitProtocol = f.Auth.GitProtocol
	}
	applyBool(f.Auth.Web, &o.Login.Web)
	applyBool(f.Auth.SkipSSHKey, &o.Login.SkipSSHKey)
	applyBool(f.Auth.InsecureStorage, &o.Login.InsecureStorage)
	applyBool(f.Auth.Clipboard, &o.Login.Clipboard)
	applyBool(f.Local, &o.Local)
	applyBool(f.Verbose, &o.Verbose)
	applyBool(f.DryRun, &o.DryRun)
}

// ApplyEnv overlays environment variables onto o. Unset or unparsable
// variables leave the current value alone.
func (o *Options) ApplyEnv() {
	envString("GH_AUTH_HOSTNAME", &o.Login.Hostname)
	envString("GH_AUTH_SCOPES", &o.Login.Scopes)
	envString("GH_AUTH_GIT_PROTOCOL", &o.Login.GitProtocol)
	envBool("GH_AUTH_WEB", &o.Login.Web)
	envBool("GH_AUTH_SKIP_SSH_KEY", &o.Login.SkipSSHKey)
	envBool("GH_AUTH_INSECURE_STORAGE", &o.Login.InsecureStorage)
	envBool("GH_AUTH_CLIPBOARD", &o.Login.Clipboard)
	envBool("GH_SETUP_GIT_IDENTITY_LOCAL", &o.Local)
	envBool("GH_SETUP_GIT_IDENTITY_VERBOSE", &o.Verbose)
	envBool("GH_SETUP_GIT_IDENTITY_DRY_RUN", &o.DryRun)
}

func applyBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
