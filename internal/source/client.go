package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/internal/config"
	"github.com/spec-kit/asset-sync/internal/observability"
	"github.com/spec-kit/asset-sync/pkg/util"
)

// maxResponseSize caps a single response body read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Record is one raw upstream record before transformation. Field names and
// nesting vary across API versions, so records stay dynamic until the
// transformer flattens them.
type Record = map[string]any

// Client talks to the upstream HR/asset API. All calls carry the bearer
// token and a JSON accept header; every request shares one fixed timeout.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	workers    int
	delay      time.Duration
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds a client from source configuration.
func NewClient(cfg config.SourceConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	workers := cfg.FetchWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		workers: workers,
		delay:   cfg.FetchDelay(),
		logger:  logger,
		metrics: metrics,
	}
}

// get issues one authenticated GET and returns the raw body. Non-2xx maps to
// a typed FetchError; timeouts are distinguished from other transport
// failures so callers can treat them as per-item soft failures.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, util.NewFetchError(util.FetchOther, url, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, util.NewFetchError(util.FetchTimeout, url, err)
		}
		return nil, util.NewFetchError(util.FetchOther, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, util.NewStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, util.NewFetchError(util.FetchOther, url, err)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// decodeObject unmarshals a JSON object body into a Record.
func decodeObject(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rec, nil
}
