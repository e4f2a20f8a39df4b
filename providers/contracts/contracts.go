package contracts

import (
	"context"

	"github.com/meysamhadeli/solid/providers/models"
)

// IResourceClient is the remote store the sync engine reads from and writes to.
// Every call is scoped to the authenticated tenant by the transport.
type IResourceClient interface {
	ListPages(ctx context.Context) ([]models.Page, error)
	GetPage(ctx context.Context, id int64) (*models.Page, error)
	CreatePage(ctx context.Context, fields map[string]any) (*models.Page, error)
	UpdatePage(ctx context.Context, id int64, fields map[string]any) error

	SearchKB(ctx context.Context, query string, limit int) ([]models.KBEntry, error)
	CreateKB(ctx context.Context, fields map[string]any) (*models.KBEntry, error)
	UpdateKB(ctx context.Context, id int64, fields map[string]any) error

	ListServices(ctx context.Context) ([]models.Service, error)
	ListProducts(ctx context.Context) ([]models.Product, error)

	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	UpdateCompanySettings(ctx context.Context, fields map[string]any) error
}

// IAuthClient signs users in.
type IAuthClient interface {
	Login(ctx context.Context, email string, password string) (*models.AuthSession, error)
	Me(ctx context.Context) (*models.User, error)
}

// IAgentClient wraps the AI-agent and natural-language endpoints.
type IAgentClient interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	ChatWithAgent(ctx context.Context, agentID int64, message string) (*models.AgentReply, error)
	Ask(ctx context.Context, question string) (*models.Answer, error)
}
