// Package errors provides custom error types for the vaultsync system.
// These errors enable programmatic error classification, stable CLI exit
// codes, and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New is the standard library errors.New, re-exported so callers of this
// package rarely need a second errors import.
var New = errors.New

// Common sentinel errors for the vaultsync system
var (
	// ErrInvalidInput indicates a sync option or configuration field was rejected
	ErrInvalidInput = errors.New("invalid input")

	// ErrCLINotFound indicates a required vault CLI binary is not installed
	ErrCLINotFound = errors.New("vault CLI not found")

	// ErrAuthenticationRequired indicates a vault CLI has no usable session.
	// Sessions are never established by vaultsync itself; the user must log
	// in with the vault's own CLI before running a sync.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrExportFailed indicates a vault's contents could not be exported
	ErrExportFailed = errors.New("vault export failed")

	// ErrParseFailed indicates vault CLI output could not be decoded
	ErrParseFailed = errors.New("vault output parse failed")

	// ErrReconcileFailed indicates the delta between vaults could not be computed
	ErrReconcileFailed = errors.New("reconcile failed")

	// ErrWriteFailed indicates the import payload could not be written
	ErrWriteFailed = errors.New("import payload write failed")

	// ErrImportFailed indicates the destination vault rejected the import
	ErrImportFailed = errors.New("vault import failed")

	// ErrTimeout indicates a CLI call or the whole run hit its time budget
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates the run was interrupted, usually by the user
	ErrCanceled = errors.New("operation canceled")
)

// Exit codes reported by the vaultsync CLI, one per failure class.
// These are part of the tool's contract with scripts that drive it.
const (
	// ExitSuccess indicates the run completed without error
	ExitSuccess = 0

	// ExitError is the generic failure exit code
	ExitError = 1

	// ExitAuthentication indicates a missing or locked vault session
	ExitAuthentication = 2

	// ExitExport indicates a vault export failure on either side
	ExitExport = 3

	// ExitParse indicates vault CLI output could not be decoded
	ExitParse = 4

	// ExitWrite indicates the import payload could not be written
	ExitWrite = 5

	// ExitImport indicates the destination vault rejected the import
	ExitImport = 6
)

// ExitCode maps an error to the exit code for its failure class.
// Authentication takes precedence over the stage that surfaced it, so an
// export that failed because the session was locked still exits with
// ExitAuthentication.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrAuthenticationRequired):
		return ExitAuthentication
	case errors.Is(err, ErrExportFailed):
		return ExitExport
	case errors.Is(err, ErrParseFailed):
		return ExitParse
	case errors.Is(err, ErrWriteFailed):
		return ExitWrite
	case errors.Is(err, ErrImportFailed):
		return ExitImport
	default:
		return ExitError
	}
}

// ValidationError reports a sync option or configuration field that failed
// validation. Value holds the rejected value for callers that inspect it;
// it never appears in the message, since options may carry paths or names
// the user considers private.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is matches the ErrInvalidInput sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// DependencyError indicates a required external CLI is missing from PATH
type DependencyError struct {
	Dependency string
	Message    string
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s: %s", e.Dependency, e.Message)
}

// Is implements errors.Is support
func (e *DependencyError) Is(target error) bool {
	return target == ErrCLINotFound
}

// NewDependencyError creates a new DependencyError
func NewDependencyError(dependency, message string) *DependencyError {
	return &DependencyError{Dependency: dependency, Message: message}
}

// AuthenticationError reports a vault CLI without a usable session.
// Hint names the command the user should run to establish one.
type AuthenticationError struct {
	Vault string
	Hint  string
	Err   error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: authentication required (%s)", e.Vault, e.Hint)
	}
	return fmt.Sprintf("%s: authentication required", e.Vault)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationRequired
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(vault, hint string, err error) *AuthenticationError {
	return &AuthenticationError{Vault: vault, Hint: hint, Err: err}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stderr diagnostics from the process, secrets stripped
	ExitCode  int    // Exit code if available
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// ExportError represents a failure to export a vault's contents
type ExportError struct {
	Vault string // "lastpass" or "bitwarden"
	Err   error
}

// Error implements the error interface
func (e *ExportError) Error() string {
	return fmt.Sprintf("export from %s failed: %v", e.Vault, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailed
}

// NewExportError creates a new ExportError
func NewExportError(vault string, err error) *ExportError {
	return &ExportError{Vault: vault, Err: err}
}

// ParseError represents an error when decoding vault CLI output
type ParseError struct {
	Format  string // "csv", "json"
	Source  string // which vault or command produced the data
	Line    int    // 1-based line within the data, when known
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s output from %s at line %d: %s", e.Format, e.Source, e.Line, e.Message)
	}
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s output from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailed
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// IOError reports a failed file operation, in this tool almost always on
// the staging payload for the Bitwarden import.
type IOError struct {
	Operation string // "create", "write", "close", "remove"
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. Failures while producing the import
// payload classify as write failures; cleanup failures do not.
func (e *IOError) Is(target error) bool {
	if target != ErrWriteFailed {
		return false
	}
	switch e.Operation {
	case "create", "write", "flush", "close", "chmod":
		return true
	}
	return false
}

// NewIOError builds an IOError around err, copying its text into Message.
func NewIOError(operation, path string, err error) *IOError {
	var message string
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
		Message:   message,
	}
}

// ImportError represents a failure to import the payload into a vault
type ImportError struct {
	Vault string
	File  string
	Err   error
}

// Error implements the error interface
func (e *ImportError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("import into %s from %s failed: %v", e.Vault, e.File, e.Err)
	}
	return fmt.Sprintf("import into %s failed: %v", e.Vault, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ImportError) Is(target error) bool {
	return target == ErrImportFailed
}

// NewImportError creates a new ImportError
func NewImportError(vault, file string, err error) *ImportError {
	return &ImportError{Vault: vault, File: file, Err: err}
}

// TimeoutError reports an operation that outlived its deadline, usually a
// vault CLI call hitting the run timeout. Duration is the human-readable
// budget that was exceeded.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is matches the ErrTimeout sentinel.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError builds a TimeoutError for the named operation.
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCLINotFound checks if an error indicates a missing vault CLI binary
func IsCLINotFound(err error) bool {
	return errors.Is(err, ErrCLINotFound)
}

// IsAuthenticationRequired checks if an error indicates a missing vault session
func IsAuthenticationRequired(err error) bool {
	return errors.Is(err, ErrAuthenticationRequired)
}

// IsExportFailed checks if an error is an export failure
func IsExportFailed(err error) bool {
	return errors.Is(err, ErrExportFailed)
}

// IsParseFailed checks if an error is a parse failure
func IsParseFailed(err error) bool {
	return errors.Is(err, ErrParseFailed)
}

// IsWriteFailed checks if an error is an import payload write failure
func IsWriteFailed(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

// IsImportFailed checks if an error is an import failure
func IsImportFailed(err error) bool {
	return errors.Is(err, ErrImportFailed)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Wrap helpers. Each returns nil for a nil error so call sites can wrap
// unconditionally.

// WrapValidation wraps an error as a ValidationError for the given field.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError for a staging file operation.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapExport wraps an error as an ExportError
func WrapExport(vault string, err error) error {
	if err == nil {
		return nil
	}
	return NewExportError(vault, err)
}

// WrapImport wraps an error as an ImportError
func WrapImport(vault, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewImportError(vault, file, err)
}
