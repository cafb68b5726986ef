package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthScheme prefixes the token in the Authorization header.
const AuthScheme = "Token"

// RequestIDHeader carries the per-invocation request id.
const RequestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	// Token is sent as "Authorization: Token <token>" on every request.
	Token string

	// Headers are applied after the built-in headers and may override
	// any of them except Authorization.
	Headers map[string]string

	// HTTPClient defaults to a client without a timeout; a hung request
	// blocks the command until the process is interrupted.
	HTTPClient *http.Client

	Logger *slog.Logger

	// RequestID defaults to a random UUID shared by every request made
	// through this client.
	RequestID string
}

// Client issues authenticated requests against the document service.
// It never retries; any non-2xx response becomes an *APIError.
type Client struct {
	token     string
	headers   map[string]string
	http      *http.Client
	logger    *slog.Logger
	requestID string
}

// Binary is the result of GetBinary.
type Binary struct {
	Data               []byte
	ContentType        string
	ContentDisposition string
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	requestID := cfg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Client{
		token:     cfg.Token,
		headers:   cfg.Headers,
		http:      httpClient,
		logger:    logger,
		requestID: requestID,
	}
}

// GetJSON fetches u and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, u *url.URL, out any) error {
	body, _, err := c.do(ctx, http.MethodGet, u, nil, "", "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// PostJSON sends payload as JSON and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, u *url.URL, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, u, payload, out)
}

// PatchJSON sends payload as JSON and decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, u *url.URL, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, u, payload, out)
}

// DeleteJSON deletes u. An empty body (204 or an empty 200) yields nil, a
// JSON body is decoded, and any other body is returned as a string.
func (c *Client) DeleteJSON(ctx context.Context, u *url.URL) (any, error) {
	body, _, err := c.do(ctx, http.MethodDelete, u, nil, "", "application/json")
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body), nil
	}
	return v, nil
}

// PostMultipart uploads form as multipart/form-data and decodes the
// response into out.
func (c *Client) PostMultipart(ctx context.Context, u *url.URL, form *Form, out any) error {
	buf, contentType, err := form.encode()
	if err != nil {
		return err
	}
	body, _, err := c.do(ctx, http.MethodPost, u, buf, contentType, "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// GetBinary fetches u accepting any content type.
func (c *Client) GetBinary(ctx context.Context, u *url.URL) (*Binary, error) {
	body, header, err := c.do(ctx, http.MethodGet, u, nil, "", "*/*")
	if err != nil {
		return nil, err
	}
	return &Binary{
		Data:               body,
		ContentType:        header.Get("Content-Type"),
		ContentDisposition: header.Get("Content-Disposition"),
	}, nil
}

func (c *Client) sendJSON(ctx context.Context, method string, u *url.URL, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	body, _, err := c.do(ctx, method, u, bytes.NewReader(data), "application/json", "application/json")
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// do executes one request and reads the whole response body.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body io.Reader, contentType, accept string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	c.applyHeaders(req, contentType, accept)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api request",
		"method", method,
		"url", u.String(),
		"status", res.StatusCode,
		"bytes", len(respBody),
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", c.requestID,
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, nil, newAPIError(res.StatusCode, respBody)
	}
	return respBody, res.Header, nil
}

func (c *Client) applyHeaders(req *http.Request, contentType, accept string) {
	req.Header.Set("Accept", accept)
	req.Header.Set(RequestIDHeader, c.requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		if strings.EqualFold(k, "Authorization") {
			continue
		}
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", AuthScheme+" "+c.token)
}

func decodeJSON(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func extractErrorMessage(body []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch v := payload.Error.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
