package minter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external reward minter. The ledger never waits on it:
// minting is sequenced strictly after a ledger mutation commits, and a mint
// failure must not roll the ledger back.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mintRequest struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

type mintResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Mint credits amount (smallest units) to address.
func (c *Client) Mint(ctx context.Context, address string, amount int64) error {
	payload, err := json.Marshal(mintRequest{Address: address, Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mint", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mint request returned status %d", resp.StatusCode)
	}

	var result mintResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode mint response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("minter rejected request: %s", result.Error)
	}

	return nil
}
