package token_management

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/token_management/contracts"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
)

const authFileMode = 0o600

// tokenManager keeps the login session in a single JSON file.
type tokenManager struct {
	path string
	now  func() time.Time
}

// NewTokenManager creates a session store backed by the given file.
func NewTokenManager(path string) contracts.ITokenManagement {
	return &tokenManager{
		path: path,
		now:  time.Now,
	}
}

func (tm *tokenManager) Path() string {
	return tm.path
}

// Load returns the stored session, or ErrNotAuthenticated when there is no
// usable token.
func (tm *tokenManager) Load() (*models.AuthState, error) {
	data, err := os.ReadFile(tm.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperr.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}

	var state models.AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: session file is unreadable: %v", apperr.ErrNotAuthenticated, err)
	}

	if state.AccessToken == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	if state.Expired(tm.now()) {
		return nil, fmt.Errorf("%w: session expired", apperr.ErrNotAuthenticated)
	}

	return &state, nil
}

func (tm *tokenManager) Save(state *models.AuthState) error {
	if state == nil || state.AccessToken == "" {
		return fmt.Errorf("refusing to save a session without an access token")
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(tm.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	return utils.WriteFileAtomic(tm.path, data, authFileMode)
}

// Clear removes the session. Clearing an absent session is not an error.
func (tm *tokenManager) Clear() error {
	if err := os.Remove(tm.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
