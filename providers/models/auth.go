package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Company is the tenant reference embedded in auth payloads.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the account behind a session.
type User struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Company Company `json:"company"`
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
	)
}

// AuthSession is the answer of the login endpoint.
type AuthSession struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	User        User       `json:"user"`
	Company     Company    `json:"company"`
}

func (a AuthSession) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AccessToken, validation.Required),
		validation.Field(&a.User),
		validation.Field(&a.Company, validation.By(func(any) error {
			if a.Company.ID <= 0 {
				return validation.NewError("validation_company_required", "company id is required")
			}
			return nil
		})),
	)
}
