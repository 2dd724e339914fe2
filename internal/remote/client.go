package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwhitford/daybook/internal/errors"
)

// Client is the HTTP implementation of Transport with retry logic.
//
// Endpoints:
//
//	GET /v1/accounts/{account}/days/{date}        timestamp probe
//	PUT /v1/accounts/{account}/days/{date}        upsert
//	GET /v1/accounts/{account}/days?from=&to=     range list
type Client struct {
	baseURL    string
	token      string
	client     *http.Client
	maxRetries int
	retryDelay []time.Duration
}

// ClientOptions configures the HTTP client.
type ClientOptions struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay []time.Duration
}

// NewClient creates a new client with default retry settings where
// options are zero.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay == nil {
		opts.RetryDelay = []time.Duration{
			0,                // Immediate first attempt
			5 * time.Second,  // Retry after 5s
			30 * time.Second, // Retry after 30s
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		client:     &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
	}
}

// rowTimestamp is the probe response body.
type rowTimestamp struct {
	UpdatedAt int64 `json:"updated_at"`
}

// RowUpdatedAt probes the server timestamp for one row.
func (c *Client) RowUpdatedAt(ctx context.Context, account, dateKey string) (int64, bool, error) {
	path := fmt.Sprintf("/v1/accounts/%s/days/%s", url.PathEscape(account), url.PathEscape(dateKey))

	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, false, err
	}
	if status == http.StatusNotFound {
		return 0, false, nil
	}

	var ts rowTimestamp
	if err := json.Unmarshal(body, &ts); err != nil {
		return 0, false, errors.NewTransportError("probe", status, "malformed response", err)
	}
	return ts.UpdatedAt, true, nil
}

// UpsertRow creates or replaces the row for (account, date).
func (c *Client) UpsertRow(ctx context.Context, account, dateKey string, payload json.RawMessage) error {
	path := fmt.Sprintf("/v1/accounts/%s/days/%s", url.PathEscape(account), url.PathEscape(dateKey))

	body, err := json.Marshal(Row{Date: dateKey, Payload: payload})
	if err != nil {
		return errors.NewTransportError("upsert", 0, "encode request", err)
	}

	_, _, err = c.do(ctx, http.MethodPut, path, body)
	return err
}

// ListRows returns every row for the account within [from, to].
func (c *Client) ListRows(ctx context.Context, account, from, to string) ([]Row, error) {
	path := fmt.Sprintf("/v1/accounts/%s/days?from=%s&to=%s",
		url.PathEscape(account), url.QueryEscape(from), url.QueryEscape(to))

	_, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.NewTransportError("list", 0, "malformed response", err)
	}
	return rows, nil
}

// do sends one request with the client's retry schedule. Network errors,
// 429 and 5xx retry; other statuses return immediately. 404 is not an
// error, callers interpret it.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	op := method + " " + path
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait before retry (except first attempt)
		if attempt > 0 && attempt < len(c.retryDelay) {
			select {
			case <-ctx.Done():
				return 0, nil, errors.NewTransportError(op, 0, "cancelled", ctx.Err())
			case <-time.After(c.retryDelay[attempt]):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return 0, nil, errors.NewTransportError(op, 0, "create request", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Daybook/1.0")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = errors.NewTransportError(op, 0, "request failed", err)
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp.StatusCode, respBody, nil
		case resp.StatusCode == http.StatusNotFound:
			return resp.StatusCode, respBody, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = errors.NewTransportError(op, resp.StatusCode, "rate limited", nil)
			continue
		case resp.StatusCode >= 500:
			lastErr = errors.NewTransportError(op, resp.StatusCode,
				strings.TrimSpace(string(respBody)), nil)
			continue
		default:
			// Client error: don't retry.
			return resp.StatusCode, respBody, errors.NewTransportError(op, resp.StatusCode,
				strings.TrimSpace(string(respBody)), nil)
		}
	}

	if lastErr == nil {
		lastErr = errors.NewTransportError(op, 0, "max retries exceeded", nil)
	}
	return 0, nil, lastErr
}
