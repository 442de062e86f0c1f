package execx

import (
	"context"
	"fmt"
	"strings"
)

// Response is a scripted outcome for one expected command line.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error // start failure; when set the other fields are ignored
}

// Fake is a scripted Runner for tests. Commands are keyed by their full
// command line (name and args joined with spaces); running an unscripted
// command fails the call so tests notice unexpected invocations.
type Fake struct {
	Responses map[string]Response
	Missing   map[string]bool // binaries Look should report as absent
	Calls     []string
}

// NewFake returns an empty scripted runner.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]Response),
		Missing:   make(map[string]bool),
	}
}

// Stub scripts the outcome for a command line, replacing any previous script.
func (f *Fake) Stub(commandLine string, resp Response) *Fake {
	f.Responses[commandLine] = resp
	return f
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	key := commandLine(name, args)
	f.Calls = append(f.Calls, key)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, ok := f.Responses[key]
	if !ok {
		return nil, fmt.Errorf("unscripted command: %s", key)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Result{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}, nil
}

// Look implements Runner.
func (f *Fake) Look(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/local/bin/" + name, nil
}

// Called reports whether the given command line was run.
func (f *Fake) Called(commandLine string) bool {
	for _, call := range f.Calls {
		if call == commandLine {
			return true
		}
	}
	return false
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
