package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"equiprent-backend/internal/repository"

	"github.com/lib/pq"
)

// Postgres error codes for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == foreignKeyViolation
	}
	return false
}

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.RentalRepository
	repository.ReturnRepository
	repository.OrderRepository
	repository.CustomerRepository
	repository.WarehouseRepository
	repository.SupplierRepository
	repository.CategoryRepository
	repository.TransferRepository
	repository.SaleRepository
	repository.WriteOffRepository
	repository.InventoryRepository
	repository.BillingRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		EquipmentRepository: NewEquipmentRepository(db),
		RentalRepository:    NewRentalRepository(db),
		ReturnRepository:    NewReturnRepository(db),
		OrderRepository:     NewOrderRepository(db),
		CustomerRepository:  NewCustomerRepository(db),
		WarehouseRepository: NewWarehouseRepository(db),
		SupplierRepository:  NewSupplierRepository(db),
		CategoryRepository:  NewCategoryRepository(db),
		TransferRepository:  NewTransferRepository(db),
		SaleRepository:      NewSaleRepository(db),
		WriteOffRepository:  NewWriteOffRepository(db),
		InventoryRepository: NewInventoryRepository(db),
		BillingRepository:   NewBillingRepository(db),
		UserRepository:      NewUserRepository(db),
	}
}

// ExecTx runs fn inside a transaction, rolling back on error or panic.
func (s *Store) ExecTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
