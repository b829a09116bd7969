package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OrderDetails is the projection sent to the order-processing workflow.
// Field names are the external contract and must not change.
type OrderDetails struct {
	OrderID    string  `json:"OrderId"`
	ProductID  string  `json:"ProductId"`
	Quantity   int     `json:"Quantity"`
	TotalPrice float64 `json:"TotalPrice"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notify POSTs the order details to the workflow endpoint. Any 2xx is
// success; everything else, including transport errors, is returned as an
// error for the caller to log. There are no retries.
func (c *Client) Notify(ctx context.Context, d OrderDetails) error {
	if c.url == "" {
		return fmt.Errorf("orchestrator url not configured")
	}

	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal order details: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call orchestrator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("orchestrator returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
