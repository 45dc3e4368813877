// Package provider is the HTTP client for the external budgeting service.
// It authenticates with a bearer token and unwraps the service's response
// envelope; any non-2xx response surfaces as an *APIError.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.ynab.com/v1"

// APIError is a non-2xx response from the provider. The status code and
// reason phrase are surfaced verbatim to the caller.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Reason returns the HTTP reason phrase for the failed request.
func (e *APIError) Reason() string {
	return http.StatusText(e.StatusCode)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the client at a different API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// envelope is the provider's {"data": ...} wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logrus.Errorf("provider API error: %d for %s", res.StatusCode, u)
		return &APIError{StatusCode: res.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return json.Unmarshal(env.Data, out)
}

// GetBudget fetches one budget snapshot. A sinceKnowledge of zero requests the
// full budget; any other value requests only the delta since that checkpoint.
func (c *Client) GetBudget(ctx context.Context, budgetID string, sinceKnowledge int64) (*Snapshot, error) {
	query := url.Values{}
	if sinceKnowledge > 0 {
		query.Set("last_knowledge_of_server", strconv.FormatInt(sinceKnowledge, 10))
	}

	var data struct {
		Budget          Snapshot `json:"budget"`
		ServerKnowledge int64    `json:"server_knowledge"`
	}
	if err := c.get(ctx, "/budgets/"+budgetID, query, &data); err != nil {
		return nil, err
	}

	snapshot := data.Budget
	snapshot.ServerKnowledge = data.ServerKnowledge
	return &snapshot, nil
}

// GetUser returns the authenticated user, used to verify credentials.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/user", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// GetBudgets returns the budget list for the authenticated user.
func (c *Client) GetBudgets(ctx context.Context) ([]BudgetSummary, error) {
	var data struct {
		Budgets []BudgetSummary `json:"budgets"`
	}
	if err := c.get(ctx, "/budgets", nil, &data); err != nil {
		return nil, err
	}
	return data.Budgets, nil
}
