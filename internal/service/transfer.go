package service

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type transferService struct {
	tx            repository.Transactor
	transferRepo  repository.TransferRepository
	equipmentRepo repository.EquipmentRepository
	warehouseRepo repository.WarehouseRepository
}

func NewTransferService(
	tx repository.Transactor,
	transferRepo repository.TransferRepository,
	equipmentRepo repository.EquipmentRepository,
	warehouseRepo repository.WarehouseRepository,
) TransferService {
	return &transferService{
		tx:            tx,
		transferRepo:  transferRepo,
		equipmentRepo: equipmentRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Transfer moves quantity between warehouses. If the target warehouse
// already holds a record with the same inventory number the quantities are
// merged into it; otherwise the equipment row is cloned into the target
// warehouse and the audit row records the new id in target_equipment_id.
func (s *transferService) Transfer(ctx context.Context, in TransferInput) (*domain.EquipmentTransfer, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.NewValidationError("source and target warehouses must differ")
	}
	if _, err := s.warehouseRepo.GetByID(ctx, in.ToWarehouseID); err != nil {
		return nil, err
	}

	transfer := &domain.EquipmentTransfer{
		EquipmentID:     in.EquipmentID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Notes:           in.Notes,
		TransferredBy:   in.UserID,
		TransferredOn:   time.Now(),
	}

	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		source, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, in.EquipmentID)
		if err != nil {
			return err
		}
		if source.WarehouseID != in.FromWarehouseID {
			return domain.NewValidationError("equipment %d is in warehouse %d, not %d", source.ID, source.WarehouseID, in.FromWarehouseID)
		}
		if in.Quantity > source.AvailableStock {
			return domain.NewConflictError("insufficient stock for equipment %d: requested %d, available %d", source.ID, in.Quantity, source.AvailableStock)
		}

		if err := s.equipmentRepo.AdjustStockTx(ctx, tx, source.ID, -in.Quantity, -in.Quantity); err != nil {
			return err
		}

		target, err := s.equipmentRepo.FindInWarehouseForUpdateTx(ctx, tx, in.ToWarehouseID, source.InventoryNumber)
		if err != nil {
			return err
		}
		if target != nil {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, target.ID, in.Quantity, in.Quantity); err != nil {
				return err
			}
		} else {
			clone := &domain.Equipment{
				InventoryNumber: source.InventoryNumber,
				Name:            source.Name,
				Description:     source.Description,
				CategoryID:      source.CategoryID,
				SupplierID:      source.SupplierID,
				WarehouseID:     in.ToWarehouseID,
				DailyRate:       source.DailyRate,
				MonthlyRate:     source.MonthlyRate,
				PurchasePrice:   source.PurchasePrice,
				TotalStock:      in.Quantity,
				AvailableStock:  in.Quantity,
				Status:          domain.EquipmentStatusAvailable,
			}
			if err := s.equipmentRepo.CreateTx(ctx, tx, clone); err != nil {
				return err
			}
			transfer.TargetEquipmentID = &clone.ID
		}

		return s.transferRepo.CreateTx(ctx, tx, transfer)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("equipment transferred", "transfer_id", transfer.ID, "equipment_id", transfer.EquipmentID,
		"from", transfer.FromWarehouseID, "to", transfer.ToWarehouseID, "quantity", transfer.Quantity,
		"cloned", transfer.TargetEquipmentID != nil)
	return transfer, nil
}

func (s *transferService) Get(ctx context.Context, id int32) (*domain.EquipmentTransfer, error) {
	return s.transferRepo.GetByID(ctx, id)
}

func (s *transferService) List(ctx context.Context) ([]domain.EquipmentTransfer, error) {
	return s.transferRepo.List(ctx)
}
