package service

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type billingService struct {
	tx          repository.Transactor
	billingRepo repository.BillingRepository
	rentalRepo  repository.RentalRepository
	orderRepo   repository.OrderRepository
}

func NewBillingService(
	tx repository.Transactor,
	billingRepo repository.BillingRepository,
	rentalRepo repository.RentalRepository,
	orderRepo repository.OrderRepository,
) BillingService {
	return &billingService{tx: tx, billingRepo: billingRepo, rentalRepo: rentalRepo, orderRepo: orderRepo}
}

// rentalDays computes the billable duration for one rental. The effective
// return date is the actual return date when present, otherwise the
// earlier of the planned return date and the billing date, otherwise the
// billing date. Minimum one day.
func rentalDays(r *domain.Rental, billingDate time.Time) int32 {
	end := billingDate
	if r.ActualReturnDate != nil {
		end = *r.ActualReturnDate
	} else if r.PlannedReturnDate != nil && r.PlannedReturnDate.Before(billingDate) {
		end = *r.PlannedReturnDate
	}

	d := end.Sub(r.IssueDate)
	days := int32(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// Generate computes billing for an order, or for one batch of its rentals,
// at a point in time. Billing rows are append-only snapshots; generating
// again produces a new header rather than mutating an old one.
func (s *billingService) Generate(ctx context.Context, in GenerateBillingInput) (*domain.BillingData, error) {
	order, err := s.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	billingDate := time.Now()
	if in.BillingDate != nil {
		billingDate = *in.BillingDate
	}

	var rentals []domain.Rental
	switch {
	case in.BatchID != nil && *in.BatchID != "":
		rentals, err = s.rentalRepo.ListByBatch(ctx, *in.BatchID)
	case in.IsFinal:
		// Final billing marks rentals billed, so a repeated final run must
		// not pick up rentals settled by an earlier one.
		rentals, err = s.rentalRepo.ListUnbilledByOrder(ctx, in.OrderID)
	default:
		rentals, err = s.rentalRepo.ListByOrder(ctx, in.OrderID)
	}
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, domain.NewValidationError("order %d has no rentals to bill", in.OrderID)
	}

	billing := &domain.BillingData{
		OrderID:     order.ID,
		BatchID:     in.BatchID,
		BillingDate: billingDate,
		IsFinal:     in.IsFinal,
	}

	err = s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		total := decimal.Zero
		items := make([]domain.BillingItem, 0, len(rentals))
		for _, r := range rentals {
			if r.OrderID != order.ID {
				return domain.NewValidationError("rental %d belongs to order %d, not %d", r.ID, r.OrderID, order.ID)
			}
			days := rentalDays(&r, billingDate)
			price := r.DailyRate.Mul(decimal.NewFromInt32(days)).Mul(decimal.NewFromInt32(r.Quantity))
			total = total.Add(price)
			items = append(items, domain.BillingItem{
				RentalID:   r.ID,
				Days:       days,
				Quantity:   r.Quantity,
				DailyRate:  r.DailyRate,
				TotalPrice: price,
			})
		}

		billing.TotalAmount = total
		if err := s.billingRepo.CreateTx(ctx, tx, billing); err != nil {
			return err
		}
		for i := range items {
			items[i].BillingID = billing.ID
			if err := s.billingRepo.CreateItemTx(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		billing.Items = items

		if in.IsFinal {
			return s.rentalRepo.MarkBilledByOrderTx(ctx, tx, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("billing generated", "billing_id", billing.ID, "order_id", order.ID,
		"items", len(billing.Items), "total_amount", billing.TotalAmount, "final", billing.IsFinal)
	return billing, nil
}

func (s *billingService) Get(ctx context.Context, id int32) (*domain.BillingData, error) {
	return s.billingRepo.GetByID(ctx, id)
}

func (s *billingService) ListByOrder(ctx context.Context, orderID int32) ([]domain.BillingData, error) {
	return s.billingRepo.ListByOrder(ctx, orderID)
}
