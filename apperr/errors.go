// Package apperr holds the error taxonomy shared by the sync engine, the
// remote client and the CLI. Callers match with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// session
	ErrNotAuthenticated = errors.New("not authenticated")

	// manifest
	ErrManifestNotFound = errors.New("manifest not found")
	ErrMissingManifest  = errors.New("no manifest in project directory")
	ErrCorruptManifest  = errors.New("corrupt manifest")
	ErrTenantMismatch   = errors.New("tenant mismatch")

	// local files
	ErrCorruptLocalFile = errors.New("corrupt local file")

	// remote
	ErrRemoteCallFailed  = errors.New("remote call failed")
	ErrMalformedResponse = errors.New("malformed response")

	// whole-operation outcomes
	ErrPullFailed           = errors.New("pull failed")
	ErrPushFailed           = errors.New("push failed")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// TenantMismatchError reports that a manifest belongs to another company
// than the authenticated session.
type TenantMismatchError struct {
	ManifestCompanyID int64
	SessionCompanyID  int64
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("tenant mismatch: project belongs to company %d, session is company %d",
		e.ManifestCompanyID, e.SessionCompanyID)
}

func (e *TenantMismatchError) Unwrap() error { return ErrTenantMismatch }

// CorruptManifestError wraps a manifest parse failure.
type CorruptManifestError struct {
	Path string
	Err  error
}

func (e *CorruptManifestError) Error() string {
	return fmt.Sprintf("corrupt manifest %s: %v", e.Path, e.Err)
}

func (e *CorruptManifestError) Unwrap() []error { return []error{ErrCorruptManifest, e.Err} }

// CorruptLocalFileError wraps a parse failure of a resource file.
type CorruptLocalFileError struct {
	File string
	Err  error
}

func (e *CorruptLocalFileError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.File, e.Err)
}

func (e *CorruptLocalFileError) Unwrap() []error { return []error{ErrCorruptLocalFile, e.Err} }

// RemoteError is a non-2xx answer from the API.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote call failed with status %d", e.Status)
	}
	return fmt.Sprintf("remote call failed with status %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error { return ErrRemoteCallFailed }

// MalformedResponseError is returned when a payload does not match its schema.
type MalformedResponseError struct {
	Resource string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.Resource, e.Err)
}

func (e *MalformedResponseError) Unwrap() []error { return []error{ErrMalformedResponse, e.Err} }

// Hint returns the command a user should run next for a fatal error, or ""
// when there is nothing actionable to suggest.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthenticated):
		return "run `solid login` to sign in again"
	case errors.Is(err, ErrMissingManifest), errors.Is(err, ErrManifestNotFound):
		return "run `solid pull` first"
	case errors.Is(err, ErrTenantMismatch):
		return "log in to the owning company, or run `solid pull --force` to overwrite this project"
	case errors.Is(err, ErrCorruptManifest):
		return "fix or remove .solid/manifest.json, then run `solid pull`"
	case errors.Is(err, ErrCorruptLocalFile):
		return "fix the file and run the command again; nothing was pushed"
	case errors.Is(err, ErrConfirmationRequired):
		return "re-run with --yes to push without a prompt"
	case errors.Is(err, ErrMalformedResponse):
		return "check --api_url points at a compatible server"
	}
	return ""
}
