package queries

import (
	"context"
	"encoding/json"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lineItemRecord mirrors the persisted line_items document. Worksheet and
// batch progress reads decode it directly instead of rehydrating the full
// order aggregate.
type lineItemRecord struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	QtyNeeded  int    `json:"qty_needed"`
	QtyDone    int    `json:"qty_done"`
	IsComplete bool   `json:"is_complete"`
}

// GetOrderWorksheetQueryHandler loads the canonical worksheet read model
// for one order. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderWorksheetQueryHandler(db)
//	query, _ := NewGetOrderWorksheetQuery(orderID)
//
//	worksheet, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to load worksheet: %v", err)
//	    return err
//	}
//
//	fmt.Printf("order %s: %d items\n", worksheet.Number, len(worksheet.Items))
type GetOrderWorksheetQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderWorksheetQueryHandler creates a handler for worksheet queries.
// Requires a GORM database connection for query execution.
func NewGetOrderWorksheetQueryHandler(db *gorm.DB) GetOrderWorksheetQueryHandler {
	return GetOrderWorksheetQueryHandler{db: db}
}

// Handle executes the worksheet read for one order.
// Items keep their canonical index but are returned sorted by size rank,
// so an item update issued from the sorted view still addresses the right
// row. Returns ObjectNotFoundError when the order does not exist.
func (h GetOrderWorksheetQueryHandler) Handle(
	ctx context.Context,
	query GetOrderWorksheetQuery,
) (GetOrderWorksheetQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderWorksheetQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			o.customer_name,
			o.current_stage_id,
			st.name,
			o.batch_id,
			o.line_items,
			o.stock_level,
			o.out_of_stock_count,
			o.low_stock_items,
			o.created_at
		FROM orders o
		JOIN stages st ON st.id = o.current_stage_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderWorksheetQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderWorksheetQueryResponse{}, err
		}
		return GetOrderWorksheetQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	response := GetOrderWorksheetQueryResponse{OrderID: query.OrderID()}

	var stageID uuid.UUID
	var batchID uuid.NullUUID
	var lineItems []byte
	var stockLevel int
	var outOfStockCount int
	var lowStockItems []byte

	err = rows.Scan(
		&response.Number,
		&response.CustomerName,
		&stageID,
		&response.StageName,
		&batchID,
		&lineItems,
		&stockLevel,
		&outOfStockCount,
		&lowStockItems,
		&response.CreatedAt,
	)
	if err != nil {
		return GetOrderWorksheetQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetOrderWorksheetQueryResponse{}, err
	}

	currentStageID, idErr := kernel.UUIDFromBytes(stageID[:])
	if idErr != nil {
		return GetOrderWorksheetQueryResponse{}, idErr
	}
	response.CurrentStageID = currentStageID

	if batchID.Valid {
		orderBatchID, batchErr := kernel.UUIDFromBytes(batchID.UUID[:])
		if batchErr != nil {
			return GetOrderWorksheetQueryResponse{}, batchErr
		}
		response.BatchID = &orderBatchID
	}

	items, complete, itemsErr := decodeWorksheetItems(lineItems)
	if itemsErr != nil {
		return GetOrderWorksheetQueryResponse{}, itemsErr
	}
	response.Items = items
	response.WorksheetComplete = complete

	inventory, invErr := decodeInventory(stockLevel, outOfStockCount, lowStockItems)
	if invErr != nil {
		return GetOrderWorksheetQueryResponse{}, invErr
	}
	response.Inventory = inventory

	return response, nil
}

// decodeWorksheetItems unpacks the persisted item document into display
// rows sorted by size rank, and reports whether every item is complete.
func decodeWorksheetItems(lineItems []byte) ([]WorksheetItemResponse, bool, error) {
	var records []lineItemRecord
	if err := json.Unmarshal(lineItems, &records); err != nil {
		return nil, false, err
	}

	items := make([]WorksheetItemResponse, 0, len(records))
	complete := true
	for index, record := range records {
		size, _ := services.SizeFromSKU(record.SKU)
		items = append(items, WorksheetItemResponse{
			Index:      index,
			SKU:        record.SKU,
			Name:       record.Name,
			Size:       size,
			QtyNeeded:  record.QtyNeeded,
			QtyDone:    record.QtyDone,
			IsComplete: record.IsComplete,
		})
		if !record.IsComplete {
			complete = false
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return services.SizeRank(items[i].SKU) < services.SizeRank(items[j].SKU)
	})

	return items, complete, nil
}

func decodeInventory(stockLevel, outOfStockCount int, lowStockItems []byte) (*order.InventoryStatus, error) {
	if order.StockLevel(stockLevel) == order.UnknownStock {
		return nil, nil
	}

	var skus []string
	if len(lowStockItems) > 0 {
		if err := json.Unmarshal(lowStockItems, &skus); err != nil {
			return nil, err
		}
	}

	inventory, err := order.NewInventoryStatus(order.StockLevel(stockLevel), outOfStockCount, skus)
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}
