package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tripdesk/pkg/logger"
)

// tokenSource is what the Client needs from a TokenProvider.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// APIError is a non-2xx answer from the travel-data API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("travelapi: upstream status %d: %s", e.Status, e.Body)
}

// Client is the HTTP client for the travel-data API. Every request carries a
// bearer token from the injected token source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     tokenSource
	logger     logger.Client
}

func NewClient(httpClient *http.Client, baseURL string, tokens tokenSource, log logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		logger:     log,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("travelapi: failed to marshal request: %w", err)
		}
	}

	resp, err := c.doOnce(ctx, method, path, query, reqBody)
	if err != nil {
		return err
	}

	// One re-auth retry on 401: expiry is implicit, the first 401 after a
	// long-held token just means it lapsed upstream.
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.tokens.Invalidate()
		c.logger.Warn("upstream rejected token, re-authenticating", logger.Field{Key: "path", Value: path})

		resp, err = c.doOnce(ctx, method, path, query, reqBody)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("travelapi: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("travelapi: failed to decode json response: %w", err)
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	r, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("travelapi: failed to build request: %w", err)
	}

	r.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("travelapi: external api call failed: %w", err)
	}
	return resp, nil
}
