package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Function endpoint names, relative to the functions base URL.
const (
	ContactFunction = "send-contact-notification"
	CareerFunction  = "send-career-notification"
)

// FunctionError is a non-2xx answer from a notification function.
type FunctionError struct {
	Function   string
	StatusCode int
	Message    string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("notify: %s returned %d: %s", e.Function, e.StatusCode, e.Message)
}

// FunctionClient invokes remotely deployed notification functions over HTTP.
type FunctionClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewFunctionClient creates a FunctionClient. token, when set, is sent as a bearer token.
func NewFunctionClient(baseURL, token string) *FunctionClient {
	return &FunctionClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Dispatcher = (*FunctionClient)(nil)

func (c *FunctionClient) NotifyContact(ctx context.Context, n ContactNotification) error {
	return c.invoke(ctx, ContactFunction, n)
}

func (c *FunctionClient) NotifyCareer(ctx context.Context, n CareerNotification) error {
	return c.invoke(ctx, CareerFunction, n)
}

func (c *FunctionClient) invoke(ctx context.Context, function string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+function, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: invoke %s: %w", function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &FunctionError{Function: function, StatusCode: resp.StatusCode, Message: msg}
}
