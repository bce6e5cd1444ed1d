package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WriteOff struct {
	ID           int32           `json:"id"`
	Reason       string          `json:"reason"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedBy    *int32          `json:"created_by,omitempty"`
	WrittenOffOn time.Time       `json:"written_off_on"`
	CreatedOn    time.Time       `json:"created_on"`
	Items        []WriteOffItem  `json:"items,omitempty"`
}

// WriteOffItem values the loss at the equipment's purchase price times the
// written-off quantity, snapshotted at write-off time.
type WriteOffItem struct {
	ID          int32           `json:"id"`
	WriteOffID  int32           `json:"write_off_id"`
	EquipmentID int32           `json:"equipment_id"`
	Quantity    int32           `json:"quantity"`
	LossValue   decimal.Decimal `json:"loss_value"`
}
