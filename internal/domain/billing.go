package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingData is an append-only snapshot computed from an order's rentals
// at billing time. It is never a source of truth for stock.
type BillingData struct {
	ID          int32           `json:"id"`
	OrderID     int32           `json:"order_id"`
	BatchID     *string         `json:"batch_id,omitempty"`
	BillingDate time.Time       `json:"billing_date"`
	IsFinal     bool            `json:"is_final"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedOn   time.Time       `json:"created_on"`
	Items       []BillingItem   `json:"items,omitempty"`
}

type BillingItem struct {
	ID         int32           `json:"id"`
	BillingID  int32           `json:"billing_id"`
	RentalID   int32           `json:"rental_id"`
	Days       int32           `json:"days"`
	Quantity   int32           `json:"quantity"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
