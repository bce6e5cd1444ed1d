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

type writeOffService struct {
	tx            repository.Transactor
	writeOffRepo  repository.WriteOffRepository
	equipmentRepo repository.EquipmentRepository
}

func NewWriteOffService(
	tx repository.Transactor,
	writeOffRepo repository.WriteOffRepository,
	equipmentRepo repository.EquipmentRepository,
) WriteOffService {
	return &writeOffService{tx: tx, writeOffRepo: writeOffRepo, equipmentRepo: equipmentRepo}
}

// Create permanently removes quantity from stock and values the loss at
// the equipment's purchase price times the written-off quantity.
func (s *writeOffService) Create(ctx context.Context, in CreateWriteOffInput) (*domain.WriteOff, error) {
	if in.Reason == "" {
		return nil, domain.NewValidationError("write-off reason is required")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("write-off requires at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity must be positive")
		}
	}

	writeOff := &domain.WriteOff{
		Reason:       in.Reason,
		CreatedBy:    in.UserID,
		WrittenOffOn: time.Now(),
	}

	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		total := decimal.Zero
		items := make([]domain.WriteOffItem, 0, len(in.Items))
		for _, it := range in.Items {
			eq, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, it.EquipmentID)
			if err != nil {
				return err
			}
			if it.Quantity > eq.AvailableStock {
				return domain.NewConflictError("insufficient stock for equipment %d: requested %d, available %d", eq.ID, it.Quantity, eq.AvailableStock)
			}
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, eq.ID, -it.Quantity, -it.Quantity); err != nil {
				return err
			}

			loss := eq.PurchasePrice.Mul(decimal.NewFromInt32(it.Quantity))
			total = total.Add(loss)
			items = append(items, domain.WriteOffItem{
				EquipmentID: it.EquipmentID,
				Quantity:    it.Quantity,
				LossValue:   loss,
			})
		}

		writeOff.TotalValue = total
		if err := s.writeOffRepo.CreateTx(ctx, tx, writeOff); err != nil {
			return err
		}
		for i := range items {
			items[i].WriteOffID = writeOff.ID
			if err := s.writeOffRepo.CreateItemTx(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		writeOff.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("write-off recorded", "write_off_id", writeOff.ID, "reason", writeOff.Reason,
		"items", len(writeOff.Items), "total_value", writeOff.TotalValue)
	return writeOff, nil
}

func (s *writeOffService) Get(ctx context.Context, id int32) (*domain.WriteOff, error) {
	return s.writeOffRepo.GetByID(ctx, id)
}

func (s *writeOffService) List(ctx context.Context) ([]domain.WriteOff, error) {
	return s.writeOffRepo.List(ctx)
}

// Delete restores the written-off quantities before removing the rows.
func (s *writeOffService) Delete(ctx context.Context, id int32) error {
	return s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		writeOff, err := s.writeOffRepo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, it := range writeOff.Items {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, it.EquipmentID, it.Quantity, it.Quantity); err != nil {
				return err
			}
		}
		return s.writeOffRepo.DeleteTx(ctx, tx, id)
	})
}
