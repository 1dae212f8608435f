package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/givehub/givehub.go/lib/service"
)

// Client asks the payment gateway about deposit intents. It implements
// service.DepositVerifier for the pending-deposit checker.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type intentStatusResponse struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

func (c *Client) VerifyDeposit(ctx context.Context, intentID string) (*service.DepositVerification, error) {
	endpoint := fmt.Sprintf("%s/v1/intents/%s", c.baseURL, url.PathEscape(intentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d for intent %s", resp.StatusCode, intentID)
	}

	var status intentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}

	return &service.DepositVerification{
		IntentID: intentID,
		Settled:  status.Status == "succeeded",
		Failed:   status.Status == "canceled" || status.Status == "failed",
	}, nil
}
