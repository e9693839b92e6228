// Package run executes external programs, either capturing their output or
// attaching them to the calling terminal.
package run

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"
)

// Result holds the captured outcome of an external command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ok reports whether the command exited zero.
func (r Result) Ok() bool { return r.ExitCode == 0 }

// Runner is the interface for invoking external programs.
// Use the interface for testability; the default implementation spawns
// real processes.
type Runner interface {
	// Capture runs the program to completion with piped output.
	// A process that cannot be started is reported as exit code 1 with
	// the error message in Stderr; it is never fatal to the caller.
	Capture(name string, args ...string) Result
	// Interactive runs the program with the calling terminal's streams.
	// When stdin is non-empty it is written to the child's input and
	// closed instead of forwarding the terminal's input.
	Interactive(name string, stdin string, args ...string) int
}

// ExecRunner is the default Runner backed by os/exec.
// When Verbose is set, each command is echoed to stderr before it runs.
type ExecRunner struct {
	Verbose bool
}

// NewRunner returns a Runner spawning real processes.
func NewRunner(verbose bool) *ExecRunner {
	return &ExecRunner{Verbose: verbose}
}

// Capture runs name with args and returns its output and exit code.
func (r *ExecRunner) Capture(name string, args ...string) Result {
	bin, err := safeexec.LookPath(name)
	if err != nil {
		return Result{Stderr: err.Error(), ExitCode: 1}
	}
	r.echo(name, args)

	cmd := exec.Command(bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = 1
			if res.Stderr == "" {
				res.Stderr = runErr.Error()
			}
		}
	}
	return res
}

// Interactive runs name with args attached to the terminal and returns the
// exit code.
func (r *ExecRunner) Interactive(name string, stdin string, args ...string) int {
	bin, err := safeexec.LookPath(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	r.echo(name, args)

	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	} else {
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func (r *ExecRunner) echo(name string, args []string) {
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "$ %s %s\n", name, strings.Join(args, " "))
	}
}
