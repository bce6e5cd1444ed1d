package repository

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
)

// Transactor runs fn inside a single database transaction. The transaction
// is rolled back on any error or panic and committed otherwise; repository
// methods suffixed Tx must only be called with a transaction obtained here.
type Transactor interface {
	ExecTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type EquipmentFilter struct {
	WarehouseID *int32
	CategoryID  *int32
	Status      string
	Search      string
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	// List populates RentedQuantity from active rentals per item.
	List(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	InventoryNumberExists(ctx context.Context, warehouseID int32, inventoryNumber string, excludeID int32) (bool, error)
	CountActiveRentals(ctx context.Context, equipmentID int32) (int32, error)
	// ListStockDivergence recomputes availability from active rentals and
	// reports rows where the stored value disagrees.
	ListStockDivergence(ctx context.Context) ([]domain.StockDivergence, error)

	// GetForUpdateTx locks the equipment row for the rest of the transaction.
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error)
	FindInWarehouseForUpdateTx(ctx context.Context, tx *sql.Tx, warehouseID int32, inventoryNumber string) (*domain.Equipment, error)
	AdjustStockTx(ctx context.Context, tx *sql.Tx, id, totalDelta, availableDelta int32) error
	SetStockTx(ctx context.Context, tx *sql.Tx, id, totalStock, availableStock int32) error
	SetStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error
	CreateTx(ctx context.Context, tx *sql.Tx, e *domain.Equipment) error
	ListByWarehouseWithStockTx(ctx context.Context, tx *sql.Tx, warehouseID int32) ([]domain.Equipment, error)
}

type RentalRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Rental, error)
	ListUnbilledByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error)
	CountActiveByOrder(ctx context.Context, orderID int32) (int32, error)

	CreateTx(ctx context.Context, tx *sql.Tx, r *domain.Rental) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rental, error)
	UpdateTx(ctx context.Context, tx *sql.Tx, r *domain.Rental) error
	MarkBilledByOrderTx(ctx context.Context, tx *sql.Tx, orderID int32) error
}

type ReturnRepository interface {
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Return, error)
	CreateTx(ctx context.Context, tx *sql.Tx, ret *domain.Return) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int32) error
	OrderNumberExists(ctx context.Context, orderNumber string, excludeID int32) (bool, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int32) error
}

type WarehouseRepository interface {
	Create(ctx context.Context, w *domain.Warehouse) error
	GetByID(ctx context.Context, id int32) (*domain.Warehouse, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
	Update(ctx context.Context, w *domain.Warehouse) error
	Delete(ctx context.Context, id int32) error
	CountEquipment(ctx context.Context, warehouseID int32) (int32, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id int32) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id int32) error
	CountEquipment(ctx context.Context, supplierID int32) (int32, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int32) error
	CountEquipment(ctx context.Context, categoryID int32) (int32, error)
}

type TransferRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.EquipmentTransfer, error)
	List(ctx context.Context) ([]domain.EquipmentTransfer, error)
	CreateTx(ctx context.Context, tx *sql.Tx, t *domain.EquipmentTransfer) error
}

type SaleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	CreateTx(ctx context.Context, tx *sql.Tx, s *domain.Sale) error
	CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.SaleItem) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Sale, error)
	DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error
}

type WriteOffRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.WriteOff, error)
	List(ctx context.Context) ([]domain.WriteOff, error)
	CreateTx(ctx context.Context, tx *sql.Tx, w *domain.WriteOff) error
	CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.WriteOffItem) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.WriteOff, error)
	DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error
}

type InventoryRepository interface {
	GetCheck(ctx context.Context, id int32) (*domain.InventoryCheck, error)
	ListChecks(ctx context.Context, warehouseID *int32) ([]domain.InventoryCheck, error)
	FindInProgressByWarehouse(ctx context.Context, warehouseID int32) (*domain.InventoryCheck, error)
	GetItem(ctx context.Context, checkID, itemID int32) (*domain.InventoryCheckItem, error)
	SetActualQuantity(ctx context.Context, checkID, itemID, quantity int32) error
	CountUnchecked(ctx context.Context, checkID int32) (int32, error)

	CreateCheckTx(ctx context.Context, tx *sql.Tx, c *domain.InventoryCheck) error
	CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.InventoryCheckItem) error
	ListItemsTx(ctx context.Context, tx *sql.Tx, checkID int32) ([]domain.InventoryCheckItem, error)
	SetCheckStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.InventoryCheckStatus, completedOn *time.Time) error
}

type BillingRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.BillingData, error)
	ListByOrder(ctx context.Context, orderID int32) ([]domain.BillingData, error)
	CreateTx(ctx context.Context, tx *sql.Tx, b *domain.BillingData) error
	CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.BillingItem) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int32) error
}
