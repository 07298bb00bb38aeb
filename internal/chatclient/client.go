// Package chatclient implements the visitor-facing side of the chat: the
// HTTP transport, the conversation controller, and the typing playback that
// replays a complete response as if it were being typed live.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabgonzales/portfolio-api/internal/api"
	"github.com/gabgonzales/portfolio-api/internal/chat"
)

// ServerError is a well-formed error envelope returned by the chat endpoint.
type ServerError struct {
	Status int
	Body   api.ErrorBody
}

func (e *ServerError) Error() string {
	if e.Body.Error != "" {
		return e.Body.Error
	}
	return fmt.Sprintf("Error %d", e.Status)
}

// BadServerResponseError marks an empty or non-JSON body. Distinct from
// ServerError so callers can tell a misbehaving server from a refusing one.
type BadServerResponseError struct {
	Status int
	cause  error
}

func (e *BadServerResponseError) Error() string { return "Bad server response." }
func (e *BadServerResponseError) Unwrap() error { return e.cause }

// Client is the HTTP transport for POST /api/chat.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a transport for the chat endpoint at baseURL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Slightly above the server's upstream timeout so the server's own
		// 504 envelope wins over a client-side abort.
		httpClient: &http.Client{Timeout: 35 * time.Second},
	}
}

// WithHTTPClient overrides the underlying HTTP client. Test hook.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Send posts message plus prior history and returns the completed reply.
func (c *Client) Send(ctx context.Context, message string, history []chat.Message) (*chat.Response, error) {
	payload, err := json.Marshal(chat.Request{
		Message:             message,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BadServerResponseError{Status: resp.StatusCode, cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		var body api.ErrorBody
		if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
			return nil, &BadServerResponseError{Status: resp.StatusCode, cause: err}
		}
		return nil, &ServerError{Status: resp.StatusCode, Body: body}
	}

	var out chat.Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &BadServerResponseError{Status: resp.StatusCode, cause: err}
	}
	if out.Response == "" {
		return nil, &BadServerResponseError{Status: resp.StatusCode}
	}
	return &out, nil
}
