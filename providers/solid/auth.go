package solid

import (
	"context"
	"net/http"

	"github.com/meysamhadeli/solid/providers/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token.
func (client *SolidClient) Login(ctx context.Context, email string, password string) (*models.AuthSession, error) {
	raw, err := client.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeOne[models.AuthSession]("login", raw)
}

// Me returns the user behind the current token.
func (client *SolidClient) Me(ctx context.Context) (*models.User, error) {
	raw, err := client.do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User]("user", raw)
}
