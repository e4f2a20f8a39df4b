package models

import "time"

// AuthState is the persisted login session.
type AuthState struct {
	AccessToken string     `json:"access_token"`
	Email       string     `json:"email"`
	UserID      int64      `json:"user_id"`
	CompanyID   int64      `json:"company_id"`
	CompanyName string     `json:"company_name"`
	APIURL      string     `json:"api_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token carries an expiry that has passed.
func (s *AuthState) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
