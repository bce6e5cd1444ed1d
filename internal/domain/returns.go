package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReturnCondition string

const (
	ReturnConditionOK      ReturnCondition = "OK"
	ReturnConditionDamaged ReturnCondition = "DAMAGED"
)

type Return struct {
	ID          int32           `json:"id"`
	RentalID    int32           `json:"rental_id"`
	Quantity    int32           `json:"quantity"`
	Condition   ReturnCondition `json:"condition"`
	DamageNotes string          `json:"damage_notes"`
	ExtraCharge decimal.Decimal `json:"extra_charge"`
	BatchID     string          `json:"batch_id"`
	ReturnedOn  time.Time       `json:"returned_on"`
	CreatedOn   time.Time       `json:"created_on"`
}
