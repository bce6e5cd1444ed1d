package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/storage"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	warehouseRepo repository.WarehouseRepository
	photos        storage.PhotoStorage
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	warehouseRepo repository.WarehouseRepository,
	photos storage.PhotoStorage,
) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		warehouseRepo: warehouseRepo,
		photos:        photos,
	}
}

func (s *equipmentService) Create(ctx context.Context, in CreateEquipmentInput) (*domain.Equipment, error) {
	if in.InventoryNumber == "" {
		return nil, domain.NewValidationError("inventory number is required")
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if !in.DailyRate.IsPositive() {
		return nil, domain.NewValidationError("daily rate must be positive")
	}
	if _, err := s.warehouseRepo.GetByID(ctx, in.WarehouseID); err != nil {
		return nil, err
	}

	exists, err := s.equipmentRepo.InventoryNumberExists(ctx, in.WarehouseID, in.InventoryNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("inventory number %q already exists in warehouse %d", in.InventoryNumber, in.WarehouseID)
	}

	// Equipment registered without an explicit count is a single unit.
	total := int32(1)
	if in.TotalStock != nil {
		if *in.TotalStock < 1 {
			return nil, domain.NewValidationError("total stock must be at least 1")
		}
		total = *in.TotalStock
	}

	e := &domain.Equipment{
		InventoryNumber: in.InventoryNumber,
		Name:            in.Name,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		SupplierID:      in.SupplierID,
		WarehouseID:     in.WarehouseID,
		DailyRate:       in.DailyRate,
		MonthlyRate:     in.MonthlyRate,
		PurchasePrice:   in.PurchasePrice,
		TotalStock:      total,
		AvailableStock:  total,
		Status:          domain.EquipmentStatusAvailable,
	}
	if err := s.equipmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *equipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx, f)
}

func (s *equipmentService) Update(ctx context.Context, id int32, in UpdateEquipmentInput) (*domain.Equipment, error) {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPhoto := e.PhotoPath

	if in.InventoryNumber != nil && *in.InventoryNumber != e.InventoryNumber {
		if *in.InventoryNumber == "" {
			return nil, domain.NewValidationError("inventory number is required")
		}
		warehouseID := e.WarehouseID
		if in.WarehouseID != nil {
			warehouseID = *in.WarehouseID
		}
		exists, err := s.equipmentRepo.InventoryNumberExists(ctx, warehouseID, *in.InventoryNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewValidationError("inventory number %q already exists in warehouse %d", *in.InventoryNumber, warehouseID)
		}
		e.InventoryNumber = *in.InventoryNumber
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewValidationError("name is required")
		}
		e.Name = *in.Name
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.CategoryID != nil {
		e.CategoryID = in.CategoryID
	}
	if in.SupplierID != nil {
		e.SupplierID = in.SupplierID
	}
	if in.WarehouseID != nil {
		if _, err := s.warehouseRepo.GetByID(ctx, *in.WarehouseID); err != nil {
			return nil, err
		}
		e.WarehouseID = *in.WarehouseID
	}
	if in.DailyRate != nil {
		if !in.DailyRate.IsPositive() {
			return nil, domain.NewValidationError("daily rate must be positive")
		}
		e.DailyRate = *in.DailyRate
	}
	if in.MonthlyRate != nil {
		e.MonthlyRate = *in.MonthlyRate
	}
	if in.PurchasePrice != nil {
		e.PurchasePrice = *in.PurchasePrice
	}
	if in.PhotoPath != nil {
		e.PhotoPath = in.PhotoPath
	}
	if in.Status != nil {
		e.Status = *in.Status
	}

	if err := s.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	// New photo replaced the old one: remove the stale file after commit.
	if in.PhotoPath != nil && oldPhoto != nil && *oldPhoto != *in.PhotoPath {
		if err := s.photos.Delete(ctx, *oldPhoto); err != nil {
			logger.Warn("failed to delete replaced equipment photo", "path", *oldPhoto, "error", err)
		}
	}
	return e, nil
}

func (s *equipmentService) Delete(ctx context.Context, id int32) error {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.equipmentRepo.CountActiveRentals(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.NewConflictError("equipment %d has %d active rentals", id, active)
	}

	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if e.PhotoPath != nil {
		if err := s.photos.Delete(ctx, *e.PhotoPath); err != nil {
			logger.Warn("failed to delete equipment photo", "path", *e.PhotoPath, "error", err)
		}
	}
	return nil
}
