package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchProgressQueryHandler assembles the live progress view for one
// batch from the batch row, its member orders, and the membership ledger.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetBatchProgressQueryHandler(db)
//	query, _ := NewGetBatchProgressQuery(batchID)
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to load batch progress: %v", err)
//	    return err
//	}
//
//	fmt.Printf("clock %s, %d workers\n", progress.ClockState, len(progress.ActiveWorkers))
type GetBatchProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchProgressQueryHandler creates a handler for batch progress
// queries. Requires a GORM database connection for query execution.
func NewGetBatchProgressQueryHandler(db *gorm.DB) GetBatchProgressQueryHandler {
	return GetBatchProgressQueryHandler{db: db}
}

// Handle executes the progress reads for one batch.
// Item counts come straight from the persisted worksheet documents of the
// member orders; the worker list comes from the membership ledger, never
// from a stored batch field. Returns ObjectNotFoundError when the batch
// does not exist.
func (h GetBatchProgressQueryHandler) Handle(
	ctx context.Context,
	query GetBatchProgressQuery,
) (GetBatchProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	response, err := h.loadBatch(ctx, query.BatchID())
	if err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	if err = h.loadOrderProgress(ctx, &response); err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	if err = h.loadActiveWorkers(ctx, &response); err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	return response, nil
}

func (h GetBatchProgressQueryHandler) loadBatch(
	ctx context.Context,
	batchID kernel.UUID,
) (GetBatchProgressQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.current_stage_id,
			st.name,
			b.completed,
			b.clock_state,
			b.clock_started_at,
			b.clock_accumulated
		FROM batches b
		JOIN stages st ON st.id = b.current_stage_id
		WHERE b.id = ?
	`, batchID.Bytes()).Rows()
	if err != nil {
		return GetBatchProgressQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetBatchProgressQueryResponse{}, err
		}
		return GetBatchProgressQueryResponse{}, errs.NewObjectNotFoundError("batch", batchID.String())
	}

	response := GetBatchProgressQueryResponse{BatchID: batchID}

	var stageID uuid.UUID
	var clockState int
	var startedAt sql.NullTime
	var accumulated int64

	err = rows.Scan(
		&stageID,
		&response.StageName,
		&response.Completed,
		&clockState,
		&startedAt,
		&accumulated,
	)
	if err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetBatchProgressQueryResponse{}, err
	}

	currentStageID, idErr := kernel.UUIDFromBytes(stageID[:])
	if idErr != nil {
		return GetBatchProgressQueryResponse{}, idErr
	}
	response.CurrentStageID = currentStageID

	var clockStartedAt *time.Time
	if startedAt.Valid {
		startedAtValue := startedAt.Time
		clockStartedAt = &startedAtValue
	}

	clock, clockErr := timer.RestoreClock(timer.State(clockState), clockStartedAt, time.Duration(accumulated))
	if clockErr != nil {
		return GetBatchProgressQueryResponse{}, clockErr
	}
	response.ClockState = clock.State()
	response.ElapsedMinutes = timer.WholeMinutes(clock.Elapsed(time.Now().UTC()))

	return response, nil
}

func (h GetBatchProgressQueryHandler) loadOrderProgress(
	ctx context.Context,
	response *GetBatchProgressQueryResponse,
) error {
	response.Orders = make([]BatchOrderProgress, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.line_items
		FROM orders o
		WHERE o.batch_id = ?
		ORDER BY o.number
	`, response.BatchID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var progress BatchOrderProgress
		var id uuid.UUID
		var lineItems []byte

		if err = rows.Scan(&id, &progress.Number, &lineItems); err != nil {
			return err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		progress.OrderID = orderID

		var records []lineItemRecord
		if err = json.Unmarshal(lineItems, &records); err != nil {
			return err
		}

		progress.WorksheetComplete = true
		for _, record := range records {
			progress.ItemsDone += record.QtyDone
			progress.ItemsNeeded += record.QtyNeeded
			if !record.IsComplete {
				progress.WorksheetComplete = false
			}
		}

		response.ItemsDone += progress.ItemsDone
		response.ItemsNeeded += progress.ItemsNeeded
		response.Orders = append(response.Orders, progress)
	}

	return rows.Err()
}

func (h GetBatchProgressQueryHandler) loadActiveWorkers(
	ctx context.Context,
	response *GetBatchProgressQueryResponse,
) error {
	response.ActiveWorkers = make([]BatchWorkerPresence, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			bw.user_id,
			w.name,
			bw.joined_at
		FROM batch_workers bw
		JOIN workers w ON w.id = bw.user_id
		WHERE bw.batch_id = ?
		ORDER BY bw.joined_at
	`, response.BatchID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var presence BatchWorkerPresence
		var id uuid.UUID

		if err = rows.Scan(&id, &presence.UserName, &presence.JoinedAt); err != nil {
			return err
		}

		userID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		presence.UserID = userID

		response.ActiveWorkers = append(response.ActiveWorkers, presence)
	}

	return rows.Err()
}
