package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchReportQueryHandler builds the batch time and cost report from
// this service's ledger and the upstream production ledger. Uses direct
// SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetBatchReportQueryHandler(db, productionGateway)
//	query, _ := NewGetBatchReportQuery(batchID)
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to build batch report: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%.2f combined hours\n", report.CombinedMetrics.TotalHours)
type GetBatchReportQueryHandler struct {
	db         *gorm.DB
	production ports.ProductionTimeGateway
}

// NewGetBatchReportQueryHandler creates a handler for batch report queries.
// Requires a GORM database connection and the production ledger gateway.
func NewGetBatchReportQueryHandler(
	db *gorm.DB,
	production ports.ProductionTimeGateway,
) GetBatchReportQueryHandler {
	return GetBatchReportQueryHandler{db: db, production: production}
}

// Handle executes the report reads for one batch.
// Ledger entries qualify by batch ID stamp or by a member order pin, so
// work logged against an order before it joined the batch still counts.
// An unreachable or empty production ledger leaves ProductionTime nil and
// the report still renders.
func (h GetBatchReportQueryHandler) Handle(
	ctx context.Context,
	query GetBatchReportQuery,
) (GetBatchReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchReportQueryResponse{}, err
	}

	if err := h.checkBatchExists(ctx, query.BatchID()); err != nil {
		return GetBatchReportQueryResponse{}, err
	}

	fulfillment, err := h.loadFulfillmentTime(ctx, query.BatchID())
	if err != nil {
		return GetBatchReportQueryResponse{}, err
	}

	response := GetBatchReportQueryResponse{
		BatchID:         query.BatchID(),
		FulfillmentTime: fulfillment,
	}

	if record, gatewayErr := h.production.GetForBatch(ctx, query.BatchID()); gatewayErr == nil && record != nil {
		response.ProductionTime = &BatchProductionTime{
			TotalMinutes: record.TotalMinutes,
			TotalHours:   float64(record.TotalMinutes) / 60.0,
			TotalCost:    record.TotalCost,
			WorkerCount:  record.WorkerCount,
		}
	}

	response.CombinedMetrics = combineMetrics(response.FulfillmentTime, response.ProductionTime)

	return response, nil
}

func (h GetBatchReportQueryHandler) checkBatchExists(ctx context.Context, batchID kernel.UUID) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM batches WHERE id = ?)
	`, batchID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err = rows.Scan(&exists); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return err
	}

	if !exists {
		return errs.NewObjectNotFoundError("batch", batchID.String())
	}
	return nil
}

func (h GetBatchReportQueryHandler) loadFulfillmentTime(
	ctx context.Context,
	batchID kernel.UUID,
) (BatchFulfillmentTime, error) {
	fulfillment := BatchFulfillmentTime{
		Workers: make([]BatchWorkerTime, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.user_id,
			w.name,
			w.hourly_rate,
			SUM(l.duration_minutes) AS total_minutes,
			SUM(l.items_processed) AS total_items
		FROM timer_logs l
		JOIN workers w ON w.id = l.user_id
		WHERE l.batch_id = ?
		   OR l.order_id::text IN (
				SELECT jsonb_array_elements_text(b.order_ids)
				FROM batches b
				WHERE b.id = ?
			)
		GROUP BY l.user_id, w.name, w.hourly_rate
		ORDER BY w.name
	`, batchID.Bytes(), batchID.Bytes()).Rows()
	if err != nil {
		return BatchFulfillmentTime{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var workerTime BatchWorkerTime
		var id uuid.UUID
		var totalItems int

		err = rows.Scan(
			&id,
			&workerTime.UserName,
			&workerTime.HourlyRate,
			&workerTime.Minutes,
			&totalItems,
		)
		if err != nil {
			return BatchFulfillmentTime{}, err
		}

		userID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return BatchFulfillmentTime{}, idErr
		}
		workerTime.UserID = userID

		workerTime.Hours = float64(workerTime.Minutes) / 60.0
		workerTime.Cost = workerTime.Hours * workerTime.HourlyRate

		fulfillment.TotalMinutes += workerTime.Minutes
		fulfillment.TotalItems += totalItems
		fulfillment.Workers = append(fulfillment.Workers, workerTime)
	}

	if err = rows.Err(); err != nil {
		return BatchFulfillmentTime{}, err
	}

	fulfillment.TotalHours = float64(fulfillment.TotalMinutes) / 60.0
	fulfillment.WorkerCount = len(fulfillment.Workers)

	return fulfillment, nil
}

// combineMetrics merges both ledgers' figures. Item throughput only exists
// on the fulfillment side; the production ledger contributes time and cost.
func combineMetrics(
	fulfillment BatchFulfillmentTime,
	production *BatchProductionTime,
) BatchCombinedMetrics {
	metrics := BatchCombinedMetrics{
		TotalHours: fulfillment.TotalHours,
	}

	for _, workerTime := range fulfillment.Workers {
		metrics.TotalCost += workerTime.Cost
	}

	if production != nil {
		metrics.TotalHours += production.TotalHours
		metrics.TotalCost += production.TotalCost
	}

	if metrics.TotalHours > 0 {
		metrics.ItemsPerHour = float64(fulfillment.TotalItems) / metrics.TotalHours
		metrics.AvgHourlyRate = metrics.TotalCost / metrics.TotalHours
	}

	return metrics
}
