package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBatchReportQueryIsNotConstructed = errors.New(
	"GetBatchReportQuery must be created via NewGetBatchReportQuery constructor",
)

// GetBatchReportQuery retrieves the time and cost report for one batch.
// Fulfillment figures come from this service's own ledger; production
// figures are pulled read-only from the upstream production ledger and
// merged for display. The two ledgers stay separate data models.
//
// Example:
//
//	query, err := NewGetBatchReportQuery(batchID)
//	if err != nil {
//	    return err
//	}
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build batch report: %w", err)
//	}
//
//	fmt.Printf("total cost: %.2f\n", report.CombinedMetrics.TotalCost)
type GetBatchReportQuery struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchReportQuery creates a report query for one batch.
func NewGetBatchReportQuery(batchID kernel.UUID) (GetBatchReportQuery, error) {
	query := GetBatchReportQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setBatchID(batchID); err != nil {
		return GetBatchReportQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBatchReportQueryIsNotConstructed if validation fails.
func (q GetBatchReportQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchReportQueryIsNotConstructed)
}

// BatchID returns the batch being reported on.
func (q GetBatchReportQuery) BatchID() kernel.UUID {
	return q.batchID
}

func (q *GetBatchReportQuery) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	q.batchID = batchID
	return nil
}

// BatchWorkerTime is one worker's contribution to a batch's fulfillment
// time. Cost multiplies the worker's hours by their configured rate.
type BatchWorkerTime struct {
	UserID     kernel.UUID
	UserName   string
	Minutes    int
	Hours      float64
	HourlyRate float64
	Cost       float64
}

// BatchFulfillmentTime aggregates this service's own ledger entries scoped
// to a batch: entries stamped with the batch ID plus entries pinned to any
// of its member orders.
type BatchFulfillmentTime struct {
	TotalMinutes int
	TotalHours   float64
	TotalItems   int
	WorkerCount  int
	Workers      []BatchWorkerTime
}

// BatchProductionTime mirrors the upstream production ledger's record for
// the batch. It is display data only and never feeds back into this
// service's ledger.
type BatchProductionTime struct {
	TotalMinutes int
	TotalHours   float64
	TotalCost    float64
	WorkerCount  int
}

// BatchCombinedMetrics merges fulfillment and production figures.
// Rates and ratios are zero when no time has been recorded at all.
type BatchCombinedMetrics struct {
	TotalHours    float64
	ItemsPerHour  float64
	TotalCost     float64
	AvgHourlyRate float64
}

// GetBatchReportQueryResponse is the full report read model for one batch.
// ProductionTime is nil when the upstream ledger has no record for the
// batch or cannot be reached; the report renders without it.
type GetBatchReportQueryResponse struct {
	BatchID         kernel.UUID
	FulfillmentTime BatchFulfillmentTime
	ProductionTime  *BatchProductionTime
	CombinedMetrics BatchCombinedMetrics
}
