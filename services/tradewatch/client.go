package tradewatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	models "cardvault/models/postgres"
)

// Client is a thin HTTP client for the trade endpoints, authenticated
// with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// TradeUpdate carries the PATCH body for a trade. Pointer fields are
// omitted when nil so the server can tell "not supplied" from "set to
// the empty string".
type TradeUpdate struct {
	Status          *string `json:"status,omitempty"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
}

type tradeListResponse struct {
	Success bool                  `json:"success"`
	Data    []models.TradeRequest `json:"data"`
}

type tradeResponse struct {
	Success bool                 `json:"success"`
	Data    models.TradeRequest  `json:"data"`
	Error   string               `json:"error"`
	Message string               `json:"message"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func apiError(resp *http.Response) error {
	var body tradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return fmt.Errorf("trade API error (%d): %s", resp.StatusCode, body.Error)
		}
		if body.Message != "" {
			return fmt.Errorf("trade API error (%d): %s", resp.StatusCode, body.Message)
		}
	}
	return fmt.Errorf("trade API error (%d)", resp.StatusCode)
}

// GetTrades fetches every trade the authenticated user participates in.
func (c *Client) GetTrades(ctx context.Context) ([]models.TradeRequest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/trades", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching trades: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var body tradeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding trade list: %v", err)
	}
	return body.Data, nil
}

// UpdateTrade PATCHes one trade (accept, decline or annotate) and returns
// the updated record with participants and card joined in.
func (c *Client) UpdateTrade(ctx context.Context, tradeID string, update TradeUpdate) (*models.TradeRequest, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/auth/trades/"+tradeID, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("error updating trade: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var body tradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding trade: %v", err)
	}
	return &body.Data, nil
}
