package service

import (
	"context"
	"strings"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("customer name is required")
	}
	return s.repo.Create(ctx, c)
}

func (s *customerService) Get(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("customer name is required")
	}
	if _, err := s.repo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *customerService) Delete(ctx context.Context, id int32) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type warehouseService struct {
	repo repository.WarehouseRepository
}

func NewWarehouseService(repo repository.WarehouseRepository) WarehouseService {
	return &warehouseService{repo: repo}
}

func (s *warehouseService) Create(ctx context.Context, w *domain.Warehouse) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return domain.NewValidationError("warehouse name is required")
	}
	return s.repo.Create(ctx, w)
}

func (s *warehouseService) Get(ctx context.Context, id int32) (*domain.Warehouse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *warehouseService) List(ctx context.Context) ([]domain.Warehouse, error) {
	return s.repo.List(ctx)
}

func (s *warehouseService) Update(ctx context.Context, w *domain.Warehouse) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return domain.NewValidationError("warehouse name is required")
	}
	if _, err := s.repo.GetByID(ctx, w.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, w)
}

// Delete refuses to remove a warehouse that still holds equipment.
func (s *warehouseService) Delete(ctx context.Context, id int32) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountEquipment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("warehouse %d still holds %d equipment items", id, count)
	}
	return s.repo.Delete(ctx, id)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("category name is required")
	}
	return s.repo.Create(ctx, c)
}

func (s *categoryService) Get(ctx context.Context, id int32) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("category name is required")
	}
	if _, err := s.repo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, id int32) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountEquipment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("category %d is referenced by %d equipment items", id, count)
	}
	return s.repo.Delete(ctx, id)
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, sup *domain.Supplier) error {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return domain.NewValidationError("supplier name is required")
	}
	return s.repo.Create(ctx, sup)
}

func (s *supplierService) Get(ctx context.Context, id int32) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *supplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *supplierService) Update(ctx context.Context, sup *domain.Supplier) error {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return domain.NewValidationError("supplier name is required")
	}
	if _, err := s.repo.GetByID(ctx, sup.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, sup)
}

func (s *supplierService) Delete(ctx context.Context, id int32) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountEquipment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("supplier %d is referenced by %d equipment items", id, count)
	}
	return s.repo.Delete(ctx, id)
}
