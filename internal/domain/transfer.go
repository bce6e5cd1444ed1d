package domain

import "time"

// EquipmentTransfer is the audit record of a stock move between two
// warehouses. TargetEquipmentID is set only when the move cloned a new
// equipment row into the target warehouse; on the merge path it is nil.
type EquipmentTransfer struct {
	ID                int32     `json:"id"`
	EquipmentID       int32     `json:"equipment_id"`
	FromWarehouseID   int32     `json:"from_warehouse_id"`
	ToWarehouseID     int32     `json:"to_warehouse_id"`
	Quantity          int32     `json:"quantity"`
	TargetEquipmentID *int32    `json:"target_equipment_id,omitempty"`
	Notes             string    `json:"notes"`
	TransferredBy     *int32    `json:"transferred_by,omitempty"`
	TransferredOn     time.Time `json:"transferred_on"`
}
