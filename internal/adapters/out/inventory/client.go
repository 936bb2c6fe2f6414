// Package inventory is the HTTP adapter to the external inventory system.
// It implements the deduction and stock-status ports and owns the messy
// edge of that integration: the upstream API spells its stock level under
// several field names and value variants, all of which are normalized into
// the canonical enum here so the core never sees them.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/resilience"
)

// Client calls the inventory system over HTTP. Every call carries the
// configured timeout budget and runs through a circuit breaker, so a dead
// inventory system degrades into fast failures instead of piling up
// blocked requests.
//
// Example:
//
//	client := inventory.NewClient("http://inventory:8090", 5*time.Second, logger)
//	result, err := client.Deduct(ctx, order)
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	logger     *slog.Logger
}

// NewClient creates an inventory client.
//
// Parameters:
//   - baseURL: Root URL of the inventory API, without a trailing slash
//   - timeout: Per-call budget covering connect, request and body read
//   - logger: Structured logger for breaker state changes
//
// Returns:
//   - *Client: The configured client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    resilience.NewBreaker(resilience.DefaultBreakerConfig("inventory"), logger),
		logger:     logger.With("component", "inventory_client"),
	}
}

type deductItemRequest struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type deductRequest struct {
	OrderID string              `json:"order_id"`
	Items   []deductItemRequest `json:"items"`
}

type deductionLineResponse struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type deductionErrorResponse struct {
	SKU      string `json:"sku"`
	Reason   string `json:"reason"`
	Shortage int    `json:"shortage"`
}

type deductResponse struct {
	Deductions []deductionLineResponse  `json:"deductions"`
	Errors     []deductionErrorResponse `json:"errors"`
}

// Deduct asks the inventory system to consume stock for every line item
// on the order. The upstream call is best-effort by contract: short SKUs
// come back in the result as shortages, not as an error, and the caller
// decides what to show. Only transport and protocol failures are errors.
func (c *Client) Deduct(ctx context.Context, aggregate *order.Order) (*ports.DeductionResult, error) {
	items := make([]deductItemRequest, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		items = append(items, deductItemRequest{SKU: item.SKU(), Qty: item.QtyNeeded()})
	}

	request := deductRequest{
		OrderID: aggregate.ID().String(),
		Items:   items,
	}

	var response deductResponse
	if err := c.post(ctx, "/api/v1/inventory/deduct", request, &response); err != nil {
		return nil, fmt.Errorf("deduct order %s: %w", aggregate.ID(), err)
	}

	result := &ports.DeductionResult{
		Deductions: make([]ports.DeductionLine, 0, len(response.Deductions)),
		Shortages:  make([]ports.DeductionShortage, 0, len(response.Errors)),
	}
	for _, line := range response.Deductions {
		result.Deductions = append(result.Deductions, ports.DeductionLine{SKU: line.SKU, Qty: line.Qty})
	}
	for _, shortage := range response.Errors {
		result.Shortages = append(result.Shortages, ports.DeductionShortage{
			SKU:      shortage.SKU,
			Reason:   shortage.Reason,
			Shortage: shortage.Shortage,
		})
	}
	return result, nil
}

type statusRequest struct {
	Items []deductItemRequest `json:"items"`
}

// statusResponse accepts the stock level under any of the field names the
// upstream API has used over time. Exactly one is expected to be set.
type statusResponse struct {
	Status          string   `json:"status"`
	StockStatus     string   `json:"stock_status"`
	Availability    string   `json:"availability"`
	OutOfStockCount int      `json:"out_of_stock_count"`
	LowStockItems   []string `json:"low_stock_items"`
}

func (r statusResponse) rawLevel() string {
	for _, candidate := range []string{r.Status, r.StockStatus, r.Availability} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// Status asks the inventory system for current availability of the given
// line items and normalizes the answer into the canonical snapshot.
func (c *Client) Status(ctx context.Context, items []*order.LineItem) (order.InventoryStatus, error) {
	request := statusRequest{Items: make([]deductItemRequest, 0, len(items))}
	for _, item := range items {
		request.Items = append(request.Items, deductItemRequest{SKU: item.SKU(), Qty: item.QtyNeeded()})
	}

	var response statusResponse
	if err := c.post(ctx, "/api/v1/inventory/status", request, &response); err != nil {
		return order.InventoryStatus{}, fmt.Errorf("inventory status: %w", err)
	}

	level, err := normalizeStockLevel(response.rawLevel())
	if err != nil {
		return order.InventoryStatus{}, err
	}
	return order.NewInventoryStatus(level, response.OutOfStockCount, response.LowStockItems)
}

// normalizeStockLevel maps the upstream value variants onto the canonical
// enum. Matching is case-insensitive and treats spaces, dashes and
// underscores as the same separator.
func normalizeStockLevel(raw string) (order.StockLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "all_in_stock", "in_stock", "available":
		return order.AllInStock, nil
	case "partial_stock", "partial", "low_stock":
		return order.PartialStock, nil
	case "out_of_stock", "unavailable", "none":
		return order.OutOfStock, nil
	default:
		return order.UnknownStock, errs.NewValueIsInvalidErrorWithCause(
			"stock level is invalid",
			fmt.Errorf("inventory system returned unrecognized stock level %q", raw),
		)
	}
}

func (c *Client) post(ctx context.Context, path string, request, response any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		body, err := json.Marshal(request)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call inventory system: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("inventory system returned status %d: %s", resp.StatusCode, payload)
		}

		if err := json.Unmarshal(payload, response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	})
	return err
}
