// Package constants collects the values the rest of vaultsync must agree
// on: CLI binary names, timeouts, file permissions, and buffer limits.
package constants

import "time"

// Timeouts for vault CLI work
const (
	// DefaultCommandTimeout is the standard timeout for a single vault CLI invocation.
	// Exporting a large vault can take a while, so this is generous.
	DefaultCommandTimeout = 2 * time.Minute

	// DefaultSyncTimeout is the timeout for a complete sync run
	DefaultSyncTimeout = 10 * time.Minute

	// StatusTimeout is the timeout for lightweight status probes
	StatusTimeout = 15 * time.Second
)

// File permission constants for everything this tool creates on disk
const (
	// DirPermissions is the mode for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the mode for reports and log files, which never
	// carry secret material (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for files carrying secret material, such as the
	// temporary import payload (rw-------)
	SecureFilePermissions = 0600
)

// External tool constants name the two vault CLIs this system orchestrates
const (
	// DefaultLastPassCLI is the binary name of the LastPass CLI
	DefaultLastPassCLI = "lpass"

	// DefaultBitwardenCLI is the binary name of the Bitwarden CLI
	DefaultBitwardenCLI = "bw"

	// ImportFilePattern is the os.CreateTemp pattern for the import payload file
	ImportFilePattern = "vaultsync-import-*.csv"
)

// Buffer limits for captured CLI output
const (
	// OutputBufferSize is the initial size of buffers capturing CLI output in bytes
	OutputBufferSize = 1 << 16

	// MaxDiagnosticBytes caps how much of a failed CLI's stderr is carried in errors
	MaxDiagnosticBytes = 4096
)
