package domain

import "time"

type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "OPEN"
	OrderStatusClosed   OrderStatus = "CLOSED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

type Order struct {
	ID               int32       `json:"id"`
	CustomerID       int32       `json:"customer_id"`
	OrderNumber      string      `json:"order_number"`
	Status           OrderStatus `json:"status"`
	EstimatedEndDate *time.Time  `json:"estimated_end_date,omitempty"`
	Notes            string      `json:"notes"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}
