package contracts

import "github.com/meysamhadeli/solid/token_management/models"

type ITokenManagement interface {
	Load() (*models.AuthState, error)
	Save(state *models.AuthState) error
	Clear() error
	Path() string
}
