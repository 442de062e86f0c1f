// Package lastpass drives the LastPass CLI (lpass) as the sync source.
// The client only reads: it checks session state and exports the vault.
// Logging in is the user's job, never this package's.
package lastpass

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/vaultsync/internal/execx"
	"github.com/agentstation/vaultsync/pkg/constants"
	pkgerrors "github.com/agentstation/vaultsync/pkg/errors"
	"github.com/agentstation/vaultsync/pkg/logging"
	"github.com/agentstation/vaultsync/pkg/vault"
)

const (
	// Vault is the name this source reports in errors and logs.
	Vault = "lastpass"

	// LoginHint tells the user how to establish a session.
	LoginHint = "run 'lpass login <email>'"
)

// Client drives the lpass binary.
type Client struct {
	binary  string
	runner  execx.Runner
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the lpass binary name or path.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithRunner replaces the command runner.
func WithRunner(runner execx.Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithCommandTimeout bounds each CLI invocation.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a LastPass client.
func New(opts ...Option) *Client {
	c := &Client{
		binary:  constants.DefaultLastPassCLI,
		runner:  execx.New(),
		timeout: constants.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the vault name.
func (c *Client) Name() string {
	return Vault
}

// Installed verifies the lpass binary is reachable.
func (c *Client) Installed() error {
	if _, err := c.runner.Look(c.binary); err != nil {
		return pkgerrors.NewDependencyError(c.binary, "not found in PATH")
	}
	return nil
}

// Status verifies an active lpass session. It never attempts a login.
func (c *Client) Status(ctx context.Context) error {
	result, err := c.run(ctx, "status")
	if err != nil {
		return err
	}

	output := strings.TrimSpace(string(result.Stdout) + string(result.Stderr))
	if result.ExitCode != 0 || strings.Contains(output, "Not logged in") {
		return pkgerrors.NewAuthenticationError(Vault, LoginHint, nil)
	}
	return nil
}

// Export runs `lpass export` and parses the CSV into entries, preserving
// row order. The export never touches disk; stdout is held in memory only.
func (c *Client) Export(ctx context.Context) ([]vault.Entry, error) {
	log := logging.FromContext(ctx)
	log.Info().Str("vault", Vault).Msg("Exporting source vault")

	result, err := c.run(ctx, "export")
	if err != nil {
		// Cancellation is the user's doing, not an export failure.
		if pkgerrors.IsCanceled(err) {
			return nil, err
		}
		return nil, pkgerrors.WrapExport(Vault, err)
	}

	if result.ExitCode != 0 {
		diag := execx.Diagnostic(result.Stderr)
		if authRequired(diag) {
			return nil, pkgerrors.NewAuthenticationError(Vault, LoginHint, nil)
		}
		procErr := pkgerrors.NewProcessError("export source vault", c.command("export"), diag,
			fmt.Errorf("exit status %d", result.ExitCode))
		procErr.ExitCode = result.ExitCode
		return nil, pkgerrors.WrapExport(Vault, procErr)
	}

	entries, err := parseExport(result.Stdout)
	if err != nil {
		return nil, err
	}

	log.Info().Str("vault", Vault).Int("entries", len(entries)).Msg("Export complete")
	return entries, nil
}

// run executes one lpass invocation under the command timeout.
func (c *Client) run(ctx context.Context, args ...string) (*execx.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		command := c.command(args...)
		switch {
		case stderrors.Is(err, context.DeadlineExceeded):
			return nil, pkgerrors.NewTimeoutError(command, c.timeout.String(), "vault CLI did not finish in time")
		case stderrors.Is(err, context.Canceled):
			return nil, pkgerrors.ErrCanceled
		default:
			return nil, pkgerrors.NewProcessError("run "+command, command, "", err)
		}
	}
	return result, nil
}

func (c *Client) command(args ...string) string {
	return c.binary + " " + strings.Join(args, " ")
}

// authRequired recognizes the lpass messages that mean the session is gone.
func authRequired(diag string) bool {
	s := strings.ToLower(diag)
	return strings.Contains(s, "not logged in") ||
		strings.Contains(s, "lpass login") ||
		strings.Contains(s, "could not find decryption key")
}
