// Package execx runs external commands behind a small interface so the
// vault CLIs can be faked in tests. Output is captured fully in memory;
// nothing a child process prints ever touches disk.
package execx

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/agentstation/vaultsync/pkg/constants"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args, capturing stdout and stderr separately.
	// A non-zero exit is not an error; it is reported through
	// Result.ExitCode so callers attach their own classification. Run
	// returns an error only when the command could not start or the
	// context ended first.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// Look resolves name to an executable path, like exec.LookPath.
	Look(name string) (string, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

// New returns the real command runner.
func New() *Exec {
	return &Exec{}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	stdout.Grow(constants.OutputBufferSize)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return result, nil
	}

	// A context that ended takes precedence over whatever exit state the
	// killed process reports.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return nil, err
}

// Look implements Runner.
func (e *Exec) Look(name string) (string, error) {
	return exec.LookPath(name)
}

// Diagnostic renders captured stderr for inclusion in an error message,
// trimmed and capped at MaxDiagnosticBytes. Vault CLIs keep secrets off
// stderr; what lands here is status and usage text.
func Diagnostic(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > constants.MaxDiagnosticBytes {
		s = s[:constants.MaxDiagnosticBytes] + " ...(truncated)"
	}
	return s
}
