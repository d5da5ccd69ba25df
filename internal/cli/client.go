package cli

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

	"shopkeep/internal/sessions"

	"github.com/google/uuid"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// APIError carries the status and message of a non-2xx reply.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsCode reports whether err is an APIError carrying the given error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Catalog(ctx context.Context) (sessions.Catalog, error) {
	var out sessions.Catalog
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog", nil, &out)
	return out, err
}

func (c *Client) Open(ctx context.Context, persona string) (sessions.View, error) {
	var out sessions.View
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions", map[string]any{
		"persona": persona,
	}, &out)
	return out, err
}

func (c *Client) Status(ctx context.Context, id uuid.UUID) (sessions.View, error) {
	var out sessions.View
	err := c.jsonRequest(ctx, http.MethodGet, sessionPath(id, ""), nil, &out)
	return out, err
}

func (c *Client) SetRole(ctx context.Context, id uuid.UUID, persona string) (sessions.View, error) {
	var out sessions.View
	err := c.jsonRequest(ctx, http.MethodPost, sessionPath(id, "/role"), map[string]any{
		"persona": persona,
	}, &out)
	return out, err
}

func (c *Client) Spin(ctx context.Context, id uuid.UUID) (sessions.SpinReply, error) {
	var out sessions.SpinReply
	err := c.jsonRequest(ctx, http.MethodPost, sessionPath(id, "/spin"), map[string]any{}, &out)
	return out, err
}

func (c *Client) Hire(ctx context.Context, id uuid.UUID, role string) (sessions.HireReply, error) {
	var out sessions.HireReply
	err := c.jsonRequest(ctx, http.MethodPost, sessionPath(id, "/hire"), map[string]any{
		"role": role,
	}, &out)
	return out, err
}

func (c *Client) Tick(ctx context.Context, id uuid.UUID) (sessions.TickReply, error) {
	var out sessions.TickReply
	err := c.jsonRequest(ctx, http.MethodPost, sessionPath(id, "/tick"), map[string]any{}, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context, id uuid.UUID) (sessions.View, error) {
	var out sessions.View
	err := c.jsonRequest(ctx, http.MethodPost, sessionPath(id, "/reset"), map[string]any{}, &out)
	return out, err
}

func (c *Client) Close(ctx context.Context, id uuid.UUID) error {
	return c.jsonRequest(ctx, http.MethodDelete, sessionPath(id, ""), nil, nil)
}

func sessionPath(id uuid.UUID, suffix string) string {
	return "/v1/sessions/" + id.String() + suffix
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(status int, raw []byte) *APIError {
	out := &APIError{Status: status, Message: strings.TrimSpace(string(raw))}
	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		out.Message = payload.Error
		out.Code = payload.Code
	}
	return out
}
