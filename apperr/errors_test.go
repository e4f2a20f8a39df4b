package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	parseErr := errors.New("unexpected EOF")

	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"tenant", &TenantMismatchError{ManifestCompanyID: 1, SessionCompanyID: 2}, ErrTenantMismatch},
		{"manifest", &CorruptManifestError{Path: "m.json", Err: parseErr}, ErrCorruptManifest},
		{"local file", &CorruptLocalFileError{File: "a.json", Err: parseErr}, ErrCorruptLocalFile},
		{"remote", &RemoteError{Status: 500, Message: "boom"}, ErrRemoteCallFailed},
		{"malformed", &MalformedResponseError{Resource: "page", Err: parseErr}, ErrMalformedResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("push: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestCorruptErrorsKeepCause(t *testing.T) {
	parseErr := errors.New("unexpected EOF")
	err := &CorruptLocalFileError{File: "a.json", Err: parseErr}
	assert.ErrorIs(t, err, parseErr)
	assert.Contains(t, err.Error(), "a.json")
}

func TestTenantMismatchMessageNamesBothCompanies(t *testing.T) {
	err := &TenantMismatchError{ManifestCompanyID: 11, SessionCompanyID: 22}
	assert.Contains(t, err.Error(), "11")
	assert.Contains(t, err.Error(), "22")

	var target *TenantMismatchError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &target))
	assert.Equal(t, int64(11), target.ManifestCompanyID)
}

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(ErrMissingManifest), "solid pull")
	assert.Contains(t, Hint(fmt.Errorf("x: %w", ErrNotAuthenticated)), "solid login")
	assert.Contains(t, Hint(&TenantMismatchError{}), "--force")
	assert.Empty(t, Hint(errors.New("other")))
	assert.Empty(t, Hint(nil))
}
