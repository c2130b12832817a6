package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ScoreSync/internal/config"
	"ScoreSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const maxErrorBody = 4 << 10

// QueryError the store answered a query with a non-2xx status
type QueryError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("helix query %s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client query transport: every operation is a JSON POST to {base_url}/{operation}
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a helix query client
func NewClient(cfg *config.GraphConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// Query sends payload to the named operation and decodes the response into out (nil discards it)
func (c *Client) Query(ctx context.Context, operation string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+operation, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("helix query %s: %w", operation, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).WithField("operation", operation).Warn("close helix response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &QueryError{Operation: operation, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
