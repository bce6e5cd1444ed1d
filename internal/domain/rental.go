package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusCreated  RentalStatus = "CREATED"
	RentalStatusIssued   RentalStatus = "ISSUED"
	RentalStatusReturned RentalStatus = "RETURNED"
)

// IsActive reports whether the rental still reserves equipment quantity.
func (s RentalStatus) IsActive() bool {
	return s == RentalStatusCreated || s == RentalStatusIssued
}

type Rental struct {
	ID          int32 `json:"id"`
	OrderID     int32 `json:"order_id"`
	EquipmentID int32 `json:"equipment_id"`
	Quantity    int32 `json:"quantity"`
	// DailyRate is snapshotted from the equipment at issuance time; later
	// rate changes on the equipment do not affect existing rentals.
	DailyRate         decimal.Decimal `json:"daily_rate"`
	IssueDate         time.Time       `json:"issue_date"`
	PlannedReturnDate *time.Time      `json:"planned_return_date,omitempty"`
	ActualReturnDate  *time.Time      `json:"actual_return_date,omitempty"`
	Status            RentalStatus    `json:"status"`
	BatchID           string          `json:"batch_id"`
	IsBilled          bool            `json:"is_billed"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}
