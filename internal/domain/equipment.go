package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusBorrowed    EquipmentStatus = "BORROWED"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
)

type Equipment struct {
	ID              int32           `json:"id"`
	InventoryNumber string          `json:"inventory_number"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      *int32          `json:"category_id,omitempty"`
	SupplierID      *int32          `json:"supplier_id,omitempty"`
	WarehouseID     int32           `json:"warehouse_id"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	MonthlyRate     decimal.Decimal `json:"monthly_rate"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	TotalStock      int32           `json:"total_stock"`
	AvailableStock  int32           `json:"available_stock"`
	// RentedQuantity is derived from active rentals on list reads; it is
	// never written back to storage.
	RentedQuantity int32           `json:"rented_quantity"`
	PhotoPath      *string         `json:"photo_path,omitempty"`
	Status         EquipmentStatus `json:"status"`
	CreatedOn      time.Time       `json:"created_on"`
	UpdatedOn      time.Time       `json:"updated_on"`
}

// StockDivergence reports an equipment row whose stored available_stock
// disagrees with total_stock minus the sum of active rental quantities.
type StockDivergence struct {
	EquipmentID      int32  `json:"equipment_id"`
	InventoryNumber  string `json:"inventory_number"`
	TotalStock       int32  `json:"total_stock"`
	RentedQuantity   int32  `json:"rented_quantity"`
	StoredAvailable  int32  `json:"stored_available"`
	DerivedAvailable int32  `json:"derived_available"`
}
