package domain

import "time"

type InventoryCheckStatus string

const (
	InventoryCheckStatusInProgress InventoryCheckStatus = "IN_PROGRESS"
	InventoryCheckStatusCompleted  InventoryCheckStatus = "COMPLETED"
	InventoryCheckStatusCanceled   InventoryCheckStatus = "CANCELED"
)

type InventoryCheck struct {
	ID          int32                `json:"id"`
	WarehouseID int32                `json:"warehouse_id"`
	Status      InventoryCheckStatus `json:"status"`
	StartedBy   *int32               `json:"started_by,omitempty"`
	StartedOn   time.Time            `json:"started_on"`
	CompletedOn *time.Time           `json:"completed_on,omitempty"`
	Items       []InventoryCheckItem `json:"items,omitempty"`
}

// InventoryCheckItem snapshots expected_quantity from the equipment's
// total_stock at check creation; actual_quantity stays nil until counted.
type InventoryCheckItem struct {
	ID               int32  `json:"id"`
	CheckID          int32  `json:"check_id"`
	EquipmentID      int32  `json:"equipment_id"`
	ExpectedQuantity int32  `json:"expected_quantity"`
	ActualQuantity   *int32 `json:"actual_quantity,omitempty"`
}
