// Package bitwarden drives the Bitwarden CLI (bw) as the sync destination.
// It reads vault state, stages the import payload, and invokes the import.
// Session management stays with the user and the bw CLI; BW_SESSION and
// friends are consumed by the CLI itself, never read here.
package bitwarden

import (
	"context"
	"encoding/json"
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
	// Vault is the name this destination reports in errors and logs.
	Vault = "bitwarden"

	// UnlockHint tells the user how to open a locked vault.
	UnlockHint = "run 'bw unlock'"

	// LoginHint tells the user how to establish a session.
	LoginHint = "run 'bw login'"
)

// Item types in bw list output; logins are the only type synced.
const loginItemType = 1

// Client drives the bw binary.
type Client struct {
	binary  string
	runner  execx.Runner
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the bw binary name or path.
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

// New creates a Bitwarden client.
func New(opts ...Option) *Client {
	c := &Client{
		binary:  constants.DefaultBitwardenCLI,
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

// Installed verifies the bw binary is reachable.
func (c *Client) Installed() error {
	if _, err := c.runner.Look(c.binary); err != nil {
		return pkgerrors.NewDependencyError(c.binary, "not found in PATH")
	}
	return nil
}

// statusResponse is the `bw status` JSON payload.
type statusResponse struct {
	Status string `json:"status"`
}

// Status verifies the vault is unlocked. bw reports one of unauthenticated,
// locked, or unlocked; only unlocked lets a sync proceed. No login or
// unlock is ever attempted here.
func (c *Client) Status(ctx context.Context) error {
	result, err := c.run(ctx, "status")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return pkgerrors.NewProcessError("check destination vault status", c.command("status"),
			execx.Diagnostic(result.Stderr), fmt.Errorf("exit status %d", result.ExitCode))
	}

	var status statusResponse
	if err := json.Unmarshal(result.Stdout, &status); err != nil {
		return pkgerrors.NewParseError("json", "bw status", "invalid status payload: "+err.Error(), err)
	}

	switch status.Status {
	case "unlocked":
		return nil
	case "locked":
		return pkgerrors.NewAuthenticationError(Vault, UnlockHint, nil)
	default:
		return pkgerrors.NewAuthenticationError(Vault, LoginHint, nil)
	}
}

// item is the subset of a bw list item this sync reads.
type item struct {
	Type  int    `json:"type"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
	Login *login `json:"login"`
}

type login struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	URIs     []loginURI `json:"uris"`
}

type loginURI struct {
	URI string `json:"uri"`
}

// List reads the destination vault with `bw list items`, keeping login
// items only. The first URI of each login stands in for the entry URL.
// Output is held in memory; nothing is written to disk.
func (c *Client) List(ctx context.Context) ([]vault.Entry, error) {
	log := logging.FromContext(ctx)
	log.Info().Str("vault", Vault).Msg("Reading destination vault")

	result, err := c.run(ctx, "list", "items")
	if err != nil {
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
		procErr := pkgerrors.NewProcessError("read destination vault", c.command("list", "items"), diag,
			fmt.Errorf("exit status %d", result.ExitCode))
		procErr.ExitCode = result.ExitCode
		return nil, pkgerrors.WrapExport(Vault, procErr)
	}

	var items []item
	if err := json.Unmarshal(result.Stdout, &items); err != nil {
		return nil, pkgerrors.NewParseError("json", "bw list items", "invalid item payload: "+err.Error(), err)
	}

	var entries []vault.Entry
	for _, it := range items {
		if it.Type != loginItemType {
			continue
		}
		entry := vault.Entry{
			Name:  it.Name,
			Notes: it.Notes,
		}
		if it.Login != nil {
			entry.Username = it.Login.Username
			entry.Password = it.Login.Password
			if len(it.Login.URIs) > 0 {
				entry.URL = it.Login.URIs[0].URI
			}
		}
		entries = append(entries, entry)
	}

	log.Info().Str("vault", Vault).Int("entries", len(entries)).Msg("Destination read complete")
	return entries, nil
}

// run executes one bw invocation under the command timeout.
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

// authRequired recognizes the bw messages that mean the session is gone.
func authRequired(diag string) bool {
	s := strings.ToLower(diag)
	return strings.Contains(s, "not logged in") ||
		strings.Contains(s, "vault is locked") ||
		strings.Contains(s, "bw login") ||
		strings.Contains(s, "bw unlock")
}
