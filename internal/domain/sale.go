package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          int32           `json:"id"`
	CustomerID  *int32          `json:"customer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
	CreatedBy   *int32          `json:"created_by,omitempty"`
	SoldOn      time.Time       `json:"sold_on"`
	CreatedOn   time.Time       `json:"created_on"`
	Items       []SaleItem      `json:"items,omitempty"`
}

type SaleItem struct {
	ID          int32           `json:"id"`
	SaleID      int32           `json:"sale_id"`
	EquipmentID int32           `json:"equipment_id"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}
