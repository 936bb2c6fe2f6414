// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by pipeline stage and batch membership. The worksheet
// rows and the low-stock SKU list are stored as JSONB documents because they
// are always read and written together with the order.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"index"`
	CustomerName    string
	CurrentStageID  uuid.UUID  `gorm:"type:uuid;index"`
	BatchID         *uuid.UUID `gorm:"type:uuid;index"`
	LineItems       []byte     `gorm:"type:jsonb"`
	StockLevel      int
	OutOfStockCount int
	LowStockItems   []byte `gorm:"type:jsonb"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// lineItemDTO is the JSON shape of one worksheet row inside the line_items column.
type lineItemDTO struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	QtyNeeded  int    `json:"qty_needed"`
	QtyDone    int    `json:"qty_done"`
	IsComplete bool   `json:"is_complete"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional batch assignment and the
// optional inventory snapshot. An order that has never been assessed keeps
// the zero stock level, which toDomain reads back as an absent snapshot.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]lineItemDTO, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		items = append(items, lineItemDTO{
			SKU:        item.SKU(),
			Name:       item.Name(),
			QtyNeeded:  item.QtyNeeded(),
			QtyDone:    item.QtyDone(),
			IsComplete: item.IsComplete(),
		})
	}

	lineItems, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	var batchID *uuid.UUID
	if id := aggregate.Batch(); id != nil {
		raw := id.Bytes()
		batchID = &raw
	}

	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		CustomerName:   aggregate.CustomerName(),
		CurrentStageID: aggregate.CurrentStage().Bytes(),
		BatchID:        batchID,
		LineItems:      lineItems,
		CreatedAt:      aggregate.CreatedAt(),
	}

	if inv := aggregate.Inventory(); inv != nil {
		lowStock, marshalErr := json.Marshal(inv.LowStockItems())
		if marshalErr != nil {
			return OrderDTO{}, marshalErr
		}
		dto.StockLevel = int(inv.Level())
		dto.OutOfStockCount = inv.OutOfStockCount()
		dto.LowStockItems = lowStock
	}

	return dto, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including worksheet rows, batch
// assignment and inventory snapshot using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stageID, err := kernel.UUIDFromBytes(dto.CurrentStageID[:])
	if err != nil {
		return nil, err
	}

	var batchID *kernel.UUID
	if dto.BatchID != nil {
		bID, batchErr := kernel.UUIDFromBytes((*dto.BatchID)[:])
		if batchErr != nil {
			return nil, batchErr
		}

		batchID = &bID
	}

	var items []lineItemDTO
	if err := json.Unmarshal(dto.LineItems, &items); err != nil {
		return nil, err
	}

	lineItems := make([]*order.LineItem, 0, len(items))
	for _, item := range items {
		restored, itemErr := order.RestoreLineItem(item.SKU, item.Name, item.QtyNeeded, item.QtyDone, item.IsComplete)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, restored)
	}

	var inventory *order.InventoryStatus
	if order.StockLevel(dto.StockLevel) != order.UnknownStock {
		var lowStock []string
		if len(dto.LowStockItems) > 0 {
			if err := json.Unmarshal(dto.LowStockItems, &lowStock); err != nil {
				return nil, err
			}
		}

		status, invErr := order.NewInventoryStatus(order.StockLevel(dto.StockLevel), dto.OutOfStockCount, lowStock)
		if invErr != nil {
			return nil, invErr
		}
		inventory = &status
	}

	return order.RestoreOrder(id, dto.Number, dto.CustomerName, stageID, batchID, lineItems, inventory, dto.CreatedAt)
}
