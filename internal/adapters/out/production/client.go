// Package production is the read-only HTTP adapter to the upstream
// production ledger. Batch reports merge its records for display; nothing
// in this service ever writes back.
package production

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/resilience"
)

// Client retrieves production time records over HTTP. Calls carry the
// configured timeout budget and run through a circuit breaker; reports
// tolerate every failure mode here, so the breaker only shortens how long
// a dead ledger is waited on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	logger     *slog.Logger
}

// NewClient creates a production ledger client.
//
// Parameters:
//   - baseURL: Root URL of the production ledger API, without a trailing slash
//   - timeout: Per-call budget covering connect, request and body read
//   - logger: Structured logger for breaker state changes
//
// Returns:
//   - *Client: The configured client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    resilience.NewBreaker(resilience.DefaultBreakerConfig("production"), logger),
		logger:     logger.With("component", "production_client"),
	}
}

type productionTimeResponse struct {
	TotalMinutes int     `json:"total_minutes"`
	TotalCost    float64 `json:"total_cost"`
	WorkerCount  int     `json:"worker_count"`
}

// GetForBatch retrieves the production time record for a batch. A batch
// the ledger has never seen answers 404, which maps to an object-not-found
// error; callers treat that as a normal outcome, and it does not count
// against the circuit breaker.
func (c *Client) GetForBatch(ctx context.Context, batchID kernel.UUID) (*ports.ProductionTime, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		url := fmt.Sprintf("%s/api/v1/production-time/%s", c.baseURL, batchID.String())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call production ledger: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return (*ports.ProductionTime)(nil), nil
		default:
			return nil, fmt.Errorf("production ledger returned status %d: %s", resp.StatusCode, payload)
		}

		var response productionTimeResponse
		if err := json.Unmarshal(payload, &response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &ports.ProductionTime{
			TotalMinutes: response.TotalMinutes,
			TotalCost:    response.TotalCost,
			WorkerCount:  response.WorkerCount,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("production time for batch %s: %w", batchID, err)
	}

	record := result.(*ports.ProductionTime)
	if record == nil {
		return nil, errs.NewObjectNotFoundError("production time", batchID.String())
	}
	return record, nil
}
