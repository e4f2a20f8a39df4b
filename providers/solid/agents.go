package solid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meysamhadeli/solid/providers/models"
)

func (client *SolidClient) ListAgents(ctx context.Context) ([]models.Agent, error) {
	raw, err := client.do(ctx, http.MethodGet, "/agents", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Agent]("agents", raw)
}

func (client *SolidClient) ChatWithAgent(ctx context.Context, agentID int64, message string) (*models.AgentReply, error) {
	body := map[string]string{"message": message}
	raw, err := client.do(ctx, http.MethodPost, fmt.Sprintf("/agents/%d/chat", agentID), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.AgentReply]("agent reply", raw)
}

// Ask sends a natural-language question about the company's data.
func (client *SolidClient) Ask(ctx context.Context, question string) (*models.Answer, error) {
	body := map[string]string{"query": question}
	raw, err := client.do(ctx, http.MethodPost, "/nl/ask", nil, body)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Answer]("answer", raw)
}
