package bitwarden

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/agentstation/vaultsync/internal/execx"
	"github.com/agentstation/vaultsync/pkg/constants"
	pkgerrors "github.com/agentstation/vaultsync/pkg/errors"
	"github.com/agentstation/vaultsync/pkg/logging"
	"github.com/agentstation/vaultsync/pkg/tempfile"
	"github.com/agentstation/vaultsync/pkg/vault"
)

// importFormat names the CSV schema we stage; it matches the header below,
// which is what `bw import` calls bitwardencsv.
const importFormat = "bitwardencsv"

// importHeader is the bitwardencsv column set.
var importHeader = []string{
	"folder", "favorite", "type", "name", "notes", "fields",
	"login_uri", "login_username", "login_password",
}

// WriteImportFile stages entries as a bitwardencsv payload in a 0600 temp
// file under dir. Every entry becomes one login row; absent optionals are
// empty cells. The returned file is closed and ready for `bw import`;
// removing it is the caller's responsibility on every path. On failure the
// partial file is removed before returning.
func (c *Client) WriteImportFile(dir string, entries []vault.Entry) (*tempfile.File, error) {
	f, err := tempfile.Create(dir, constants.ImportFilePattern)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(importHeader); err != nil {
		_ = f.Remove()
		return nil, pkgerrors.WrapIO("write", f.Name(), err)
	}
	for _, entry := range entries {
		record := []string{
			entry.Folder,
			"0",
			"login",
			entry.Name,
			entry.Notes,
			"",
			entry.URL,
			entry.Username,
			entry.Password,
		}
		if err := w.Write(record); err != nil {
			_ = f.Remove()
			return nil, pkgerrors.WrapIO("write", f.Name(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Remove()
		return nil, pkgerrors.WrapIO("flush", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		_ = f.Remove()
		return nil, err
	}
	return f, nil
}

// Import loads the staged payload into the destination vault with
// `bw import bitwardencsv <path>`. The file is never deleted here; the
// caller owns cleanup regardless of outcome.
func (c *Client) Import(ctx context.Context, path string) error {
	log := logging.FromContext(ctx)
	log.Info().Str("vault", Vault).Msg("Importing into destination vault")

	result, err := c.run(ctx, "import", importFormat, path)
	if err != nil {
		if pkgerrors.IsCanceled(err) {
			return err
		}
		return pkgerrors.WrapImport(Vault, path, err)
	}

	if result.ExitCode != 0 {
		diag := execx.Diagnostic(result.Stderr)
		if authRequired(diag) {
			return pkgerrors.NewAuthenticationError(Vault, LoginHint, nil)
		}
		procErr := pkgerrors.NewProcessError("import payload", c.command("import", importFormat, path), diag,
			fmt.Errorf("exit status %d", result.ExitCode))
		procErr.ExitCode = result.ExitCode
		return pkgerrors.WrapImport(Vault, path, procErr)
	}

	log.Info().Str("vault", Vault).Msg("Import complete")
	return nil
}
