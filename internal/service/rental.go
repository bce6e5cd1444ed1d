package service

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalService struct {
	tx            repository.Transactor
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	orderRepo     repository.OrderRepository
}

func NewRentalService(
	tx repository.Transactor,
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	orderRepo repository.OrderRepository,
) RentalService {
	return &rentalService{
		tx:            tx,
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		orderRepo:     orderRepo,
	}
}

// Issue creates a rental against an order. Stock is debited only when the
// rental is created in ISSUED state; a CREATED rental is a reservation with
// no stock effect. The availability check and the debit run under one
// transaction with the equipment row locked, so two concurrent issues
// cannot overbook the same stock.
func (s *rentalService) Issue(ctx context.Context, in IssueRentalInput) (*domain.Rental, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}
	if _, err := s.orderRepo.GetByID(ctx, in.OrderID); err != nil {
		return nil, err
	}

	status := domain.RentalStatusCreated
	if in.Status != nil {
		if !in.Status.IsActive() {
			return nil, domain.NewValidationError("rental status must be CREATED or ISSUED at issuance")
		}
		status = *in.Status
	}

	issueDate := time.Now()
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}
	batchID := uuid.NewString()
	if in.BatchID != nil && *in.BatchID != "" {
		batchID = *in.BatchID
	}

	rental := &domain.Rental{
		OrderID:           in.OrderID,
		EquipmentID:       in.EquipmentID,
		Quantity:          in.Quantity,
		IssueDate:         issueDate,
		PlannedReturnDate: in.PlannedReturnDate,
		Status:            status,
		BatchID:           batchID,
	}

	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		eq, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, in.EquipmentID)
		if err != nil {
			return err
		}
		if eq.Status != domain.EquipmentStatusAvailable {
			return domain.NewConflictError("equipment %d is not available (status %s)", eq.ID, eq.Status)
		}
		if in.Quantity > eq.AvailableStock {
			return domain.NewConflictError("insufficient stock for equipment %d: requested %d, available %d", eq.ID, in.Quantity, eq.AvailableStock)
		}

		rental.DailyRate = eq.DailyRate
		if in.DailyRate != nil {
			rental.DailyRate = *in.DailyRate
		}

		if err := s.rentalRepo.CreateTx(ctx, tx, rental); err != nil {
			return err
		}

		if status == domain.RentalStatusIssued {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, eq.ID, 0, -in.Quantity); err != nil {
				return err
			}
			if eq.AvailableStock-in.Quantity == 0 {
				if err := s.equipmentRepo.SetStatusTx(ctx, tx, eq.ID, domain.EquipmentStatusBorrowed); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rental issued", "rental_id", rental.ID, "order_id", rental.OrderID,
		"equipment_id", rental.EquipmentID, "quantity", rental.Quantity, "status", rental.Status, "batch_id", rental.BatchID)
	return rental, nil
}

// Update applies quantity/status changes. The stock delta follows from the
// (original status, new status) pair: issued->issued charges the quantity
// difference, not-issued->issued charges the full new quantity,
// issued->not-issued refunds the full original quantity, and
// not-issued->not-issued leaves stock untouched.
func (s *rentalService) Update(ctx context.Context, rentalID int32, in UpdateRentalInput) (*domain.Rental, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}

	var rental *domain.Rental
	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		var err error
		rental, err = s.rentalRepo.GetForUpdateTx(ctx, tx, rentalID)
		if err != nil {
			return err
		}

		origQty := rental.Quantity
		origIssued := rental.Status == domain.RentalStatusIssued

		if in.Quantity != nil {
			rental.Quantity = *in.Quantity
		}
		if in.Status != nil {
			rental.Status = *in.Status
		}
		if in.DailyRate != nil {
			rental.DailyRate = *in.DailyRate
		}
		if in.PlannedReturnDate != nil {
			rental.PlannedReturnDate = in.PlannedReturnDate
		}
		newIssued := rental.Status == domain.RentalStatusIssued

		var stockChange int32
		switch {
		case origIssued && newIssued:
			stockChange = rental.Quantity - origQty
		case !origIssued && newIssued:
			stockChange = rental.Quantity
		case origIssued && !newIssued:
			stockChange = -origQty
		}

		eq, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, rental.EquipmentID)
		if err != nil {
			return err
		}
		if stockChange > 0 && stockChange > eq.AvailableStock {
			return domain.NewConflictError("insufficient stock for equipment %d: requested %d more, available %d", eq.ID, stockChange, eq.AvailableStock)
		}

		if rental.Status == domain.RentalStatusReturned && rental.ActualReturnDate == nil {
			now := time.Now()
			rental.ActualReturnDate = &now
		}

		if err := s.rentalRepo.UpdateTx(ctx, tx, rental); err != nil {
			return err
		}

		if stockChange != 0 {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, eq.ID, 0, -stockChange); err != nil {
				return err
			}
			newStatus := domain.EquipmentStatusAvailable
			if eq.AvailableStock-stockChange == 0 {
				newStatus = domain.EquipmentStatusBorrowed
			}
			if err := s.equipmentRepo.SetStatusTx(ctx, tx, eq.ID, newStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) Get(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error) {
	return s.rentalRepo.ListByOrder(ctx, orderID)
}

func (s *rentalService) ListByBatch(ctx context.Context, batchID string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByBatch(ctx, batchID)
}
