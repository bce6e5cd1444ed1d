package service

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type inventoryService struct {
	tx            repository.Transactor
	inventoryRepo repository.InventoryRepository
	equipmentRepo repository.EquipmentRepository
	warehouseRepo repository.WarehouseRepository
}

func NewInventoryService(
	tx repository.Transactor,
	inventoryRepo repository.InventoryRepository,
	equipmentRepo repository.EquipmentRepository,
	warehouseRepo repository.WarehouseRepository,
) InventoryService {
	return &inventoryService{
		tx:            tx,
		inventoryRepo: inventoryRepo,
		equipmentRepo: equipmentRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateCheck opens a count cycle for one warehouse and snapshots every
// equipment row with stock into check items. Only one in-progress check
// per warehouse may exist; a partial unique index in the schema backstops
// this pre-check against concurrent creates.
func (s *inventoryService) CreateCheck(ctx context.Context, warehouseID int32, userID *int32) (*domain.InventoryCheck, error) {
	if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	existing, err := s.inventoryRepo.FindInProgressByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("warehouse %d already has inventory check %d in progress", warehouseID, existing.ID)
	}

	check := &domain.InventoryCheck{
		WarehouseID: warehouseID,
		Status:      domain.InventoryCheckStatusInProgress,
		StartedBy:   userID,
		StartedOn:   time.Now(),
	}

	err = s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		if err := s.inventoryRepo.CreateCheckTx(ctx, tx, check); err != nil {
			return err
		}
		equipment, err := s.equipmentRepo.ListByWarehouseWithStockTx(ctx, tx, warehouseID)
		if err != nil {
			return err
		}
		for _, eq := range equipment {
			item := &domain.InventoryCheckItem{
				CheckID:          check.ID,
				EquipmentID:      eq.ID,
				ExpectedQuantity: eq.TotalStock,
			}
			if err := s.inventoryRepo.CreateItemTx(ctx, tx, item); err != nil {
				return err
			}
			check.Items = append(check.Items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("inventory check started", "check_id", check.ID, "warehouse_id", warehouseID, "items", len(check.Items))
	return check, nil
}

func (s *inventoryService) GetCheck(ctx context.Context, id int32) (*domain.InventoryCheck, error) {
	return s.inventoryRepo.GetCheck(ctx, id)
}

func (s *inventoryService) ListChecks(ctx context.Context, warehouseID *int32) ([]domain.InventoryCheck, error) {
	return s.inventoryRepo.ListChecks(ctx, warehouseID)
}

func (s *inventoryService) UpdateItem(ctx context.Context, checkID, itemID, actualQuantity int32) (*domain.InventoryCheckItem, error) {
	if actualQuantity < 0 {
		return nil, domain.NewValidationError("actual quantity must not be negative")
	}
	check, err := s.inventoryRepo.GetCheck(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if check.Status != domain.InventoryCheckStatusInProgress {
		return nil, domain.NewConflictError("inventory check %d is %s, counts can no longer change", checkID, check.Status)
	}
	if err := s.inventoryRepo.SetActualQuantity(ctx, checkID, itemID, actualQuantity); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetItem(ctx, checkID, itemID)
}

// CompleteCheck closes the count. Every item must have been counted. With
// adjustStock set, equipment whose counted quantity differs from the
// snapshot gets total_stock set to the counted value and available_stock
// nudged by the same signed difference, floored at zero.
func (s *inventoryService) CompleteCheck(ctx context.Context, checkID int32, adjustStock bool) (*domain.InventoryCheck, error) {
	check, err := s.inventoryRepo.GetCheck(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if check.Status != domain.InventoryCheckStatusInProgress {
		return nil, domain.NewConflictError("inventory check %d is %s, not in progress", checkID, check.Status)
	}
	unchecked, err := s.inventoryRepo.CountUnchecked(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if unchecked > 0 {
		return nil, domain.NewValidationError("%d items still have no counted quantity", unchecked)
	}

	completedOn := time.Now()
	err = s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		items, err := s.inventoryRepo.ListItemsTx(ctx, tx, checkID)
		if err != nil {
			return err
		}
		if adjustStock {
			for _, it := range items {
				if it.ActualQuantity == nil || *it.ActualQuantity == it.ExpectedQuantity {
					continue
				}
				eq, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, it.EquipmentID)
				if err != nil {
					return err
				}
				diff := *it.ActualQuantity - it.ExpectedQuantity
				available := eq.AvailableStock + diff
				if available < 0 {
					available = 0
				}
				if err := s.equipmentRepo.SetStockTx(ctx, tx, eq.ID, *it.ActualQuantity, available); err != nil {
					return err
				}
				logger.Info("inventory adjustment applied", "check_id", checkID, "equipment_id", eq.ID,
					"expected", it.ExpectedQuantity, "actual", *it.ActualQuantity)
			}
		}
		return s.inventoryRepo.SetCheckStatusTx(ctx, tx, checkID, domain.InventoryCheckStatusCompleted, &completedOn)
	})
	if err != nil {
		return nil, err
	}

	return s.inventoryRepo.GetCheck(ctx, checkID)
}

func (s *inventoryService) CancelCheck(ctx context.Context, checkID int32) error {
	check, err := s.inventoryRepo.GetCheck(ctx, checkID)
	if err != nil {
		return err
	}
	if check.Status != domain.InventoryCheckStatusInProgress {
		return domain.NewConflictError("inventory check %d is %s, not in progress", checkID, check.Status)
	}
	return s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		return s.inventoryRepo.SetCheckStatusTx(ctx, tx, checkID, domain.InventoryCheckStatusCanceled, nil)
	})
}
