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

type returnService struct {
	tx            repository.Transactor
	rentalRepo    repository.RentalRepository
	returnRepo    repository.ReturnRepository
	equipmentRepo repository.EquipmentRepository
}

func NewReturnService(
	tx repository.Transactor,
	rentalRepo repository.RentalRepository,
	returnRepo repository.ReturnRepository,
	equipmentRepo repository.EquipmentRepository,
) ReturnService {
	return &returnService{
		tx:            tx,
		rentalRepo:    rentalRepo,
		returnRepo:    returnRepo,
		equipmentRepo: equipmentRepo,
	}
}

// ReturnRental resolves a rental fully or partially. A partial return
// decrements the rental's remaining quantity and leaves it active; the
// final return flips the rental to RETURNED and stamps the actual return
// date. Stock is credited only for rentals that were ISSUED (a CREATED
// reservation never debited it). Returning an already-returned rental is a
// conflict, never a double credit.
func (s *returnService) ReturnRental(ctx context.Context, in ReturnRentalInput) (*domain.Return, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.NewValidationError("return quantity must be positive")
	}

	condition := domain.ReturnConditionOK
	if in.Condition != nil {
		condition = *in.Condition
	}
	returnedOn := time.Now()
	if in.ActualReturnDate != nil {
		returnedOn = *in.ActualReturnDate
	}
	batchID := uuid.NewString()
	if in.BatchID != nil && *in.BatchID != "" {
		batchID = *in.BatchID
	}

	ret := &domain.Return{
		RentalID:    in.RentalID,
		Condition:   condition,
		DamageNotes: in.DamageNotes,
		ExtraCharge: in.ExtraCharge,
		BatchID:     batchID,
		ReturnedOn:  returnedOn,
	}

	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		rental, err := s.rentalRepo.GetForUpdateTx(ctx, tx, in.RentalID)
		if err != nil {
			return err
		}
		if rental.Status == domain.RentalStatusReturned {
			return domain.NewConflictError("rental %d is already returned", rental.ID)
		}

		// Validation runs against the remaining quantity, which with
		// earlier partial returns is all that can still come back.
		quantity := rental.Quantity
		if in.Quantity != nil {
			quantity = *in.Quantity
		}
		if quantity > rental.Quantity {
			return domain.NewValidationError("return quantity %d exceeds remaining rental quantity %d", quantity, rental.Quantity)
		}
		ret.Quantity = quantity

		wasIssued := rental.Status == domain.RentalStatusIssued
		if quantity < rental.Quantity {
			rental.Quantity -= quantity
		} else {
			rental.Status = domain.RentalStatusReturned
			rental.ActualReturnDate = &returnedOn
		}
		if err := s.rentalRepo.UpdateTx(ctx, tx, rental); err != nil {
			return err
		}

		if err := s.returnRepo.CreateTx(ctx, tx, ret); err != nil {
			return err
		}

		if wasIssued {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, rental.EquipmentID, 0, quantity); err != nil {
				return err
			}
		}
		status := domain.EquipmentStatusAvailable
		if condition == domain.ReturnConditionDamaged {
			status = domain.EquipmentStatusMaintenance
		}
		return s.equipmentRepo.SetStatusTx(ctx, tx, rental.EquipmentID, status)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rental return processed", "rental_id", in.RentalID, "quantity", ret.Quantity,
		"condition", ret.Condition, "batch_id", ret.BatchID)
	return ret, nil
}

func (s *returnService) ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	return s.returnRepo.ListByRental(ctx, rentalID)
}

func (s *returnService) ListByBatch(ctx context.Context, batchID string) ([]domain.Return, error) {
	return s.returnRepo.ListByBatch(ctx, batchID)
}
