// Package resend is a minimal client for the Resend email API.
// Uses raw HTTP calls (no SDK); only the send endpoint is needed.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// Email is one message to send.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// SendResult is the provider's answer to a successful send.
type SendResult struct {
	ID string `json:"id"`
}

// Sender sends emails.
type Sender interface {
	Send(ctx context.Context, email Email) (*SendResult, error)
}

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("resend: not configured")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("resend: %d %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("resend: %d: %s", e.StatusCode, e.Message)
}

// Client is the raw HTTP implementation of Sender.
type Client struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against DefaultBaseURL.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Sender = (*Client)(nil)

// Send posts the email to /emails.
func (c *Client) Send(ctx context.Context, email Email) (*SendResult, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	jsonBody, err := json.Marshal(email)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.BaseURL, "/")+"/emails",
		bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("resend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Name, apiErr.Message = payload.Name, payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("resend: decode response: %w", err)
	}
	if result.ID == "" {
		return nil, errors.New("resend: empty email ID in response")
	}
	return &result, nil
}
