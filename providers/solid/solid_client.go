package solid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/providers/contracts"
)

const apiPrefix = "/api/v1"

// SolidConfig holds what the HTTP client needs from the session.
type SolidConfig struct {
	BaseURL   string
	Token     string
	CompanyID int64
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger
}

// SolidClient talks JSON over HTTP to the Solid API. It implements
// contracts.IResourceClient, contracts.IAuthClient and contracts.IAgentClient.
type SolidClient struct {
	baseURL    string
	token      string
	companyID  int64
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ contracts.IResourceClient = (*SolidClient)(nil)
	_ contracts.IAuthClient     = (*SolidClient)(nil)
	_ contracts.IAgentClient    = (*SolidClient)(nil)
)

// NewSolidClient initializes a client for the given session.
func NewSolidClient(config *SolidConfig) *SolidClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "solid-cli"
	}
	return &SolidClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		companyID:  config.CompanyID,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// errorBody covers the error shapes the API answers with.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// do sends one request and returns the raw response body of a 2xx answer.
func (client *SolidClient) do(ctx context.Context, method string, path string, query url.Values, body any) ([]byte, error) {
	endpoint := client.baseURL + apiPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshalling request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", client.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}
	if client.companyID > 0 {
		req.Header.Set("X-Company-ID", fmt.Sprint(client.companyID))
	}

	start := time.Now()
	resp, err := client.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("request canceled: %w", err)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	client.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("request_id", requestID))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	var apiError errorBody
	_ = json.Unmarshal(respBody, &apiError)
	message := apiError.text()
	if message == "" {
		message = strings.TrimSpace(string(respBody))
	}

	if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && client.token != "" {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotAuthenticated, message)
	}
	return nil, &apperr.RemoteError{Status: resp.StatusCode, Message: message}
}

type validatable interface {
	Validate() error
}

// unwrapData strips a {"data": ...} envelope when present.
func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	if data, ok := envelope["data"]; ok {
		if _, hasID := envelope["id"]; !hasID {
			return data
		}
	}
	return trimmed
}

func decodeOne[T validatable](resource string, raw []byte) (*T, error) {
	var item T
	if err := json.Unmarshal(unwrapData(raw), &item); err != nil {
		return nil, &apperr.MalformedResponseError{Resource: resource, Err: err}
	}
	if err := item.Validate(); err != nil {
		return nil, &apperr.MalformedResponseError{Resource: resource, Err: err}
	}
	return &item, nil
}

func decodeList[T validatable](resource string, raw []byte) ([]T, error) {
	data := unwrapData(raw)
	if bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &apperr.MalformedResponseError{Resource: resource, Err: err}
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, &apperr.MalformedResponseError{Resource: fmt.Sprintf("%s[%d]", resource, i), Err: err}
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
