package service

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type CreateEquipmentInput struct {
	InventoryNumber string
	Name            string
	Description     string
	CategoryID      *int32
	SupplierID      *int32
	WarehouseID     int32
	DailyRate       decimal.Decimal
	MonthlyRate     decimal.Decimal
	PurchasePrice   decimal.Decimal
	TotalStock      *int32
}

type UpdateEquipmentInput struct {
	InventoryNumber *string
	Name            *string
	Description     *string
	CategoryID      *int32
	SupplierID      *int32
	WarehouseID     *int32
	DailyRate       *decimal.Decimal
	MonthlyRate     *decimal.Decimal
	PurchasePrice   *decimal.Decimal
	PhotoPath       *string
	Status          *domain.EquipmentStatus
}

type EquipmentService interface {
	Create(ctx context.Context, in CreateEquipmentInput) (*domain.Equipment, error)
	Get(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error)
	Update(ctx context.Context, id int32, in UpdateEquipmentInput) (*domain.Equipment, error)
	Delete(ctx context.Context, id int32) error
}

type IssueRentalInput struct {
	OrderID           int32
	EquipmentID       int32
	Quantity          int32
	DailyRate         *decimal.Decimal
	IssueDate         *time.Time
	PlannedReturnDate *time.Time
	Status            *domain.RentalStatus
	BatchID           *string
}

type UpdateRentalInput struct {
	Quantity          *int32
	Status            *domain.RentalStatus
	DailyRate         *decimal.Decimal
	PlannedReturnDate *time.Time
}

type RentalService interface {
	Issue(ctx context.Context, in IssueRentalInput) (*domain.Rental, error)
	Update(ctx context.Context, rentalID int32, in UpdateRentalInput) (*domain.Rental, error)
	Get(ctx context.Context, id int32) (*domain.Rental, error)
	ListByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Rental, error)
}

type ReturnRentalInput struct {
	RentalID         int32
	ActualReturnDate *time.Time
	Condition        *domain.ReturnCondition
	Quantity         *int32
	DamageNotes      string
	ExtraCharge      decimal.Decimal
	BatchID          *string
}

type ReturnService interface {
	ReturnRental(ctx context.Context, in ReturnRentalInput) (*domain.Return, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Return, error)
}

type TransferInput struct {
	EquipmentID     int32
	FromWarehouseID int32
	ToWarehouseID   int32
	Quantity        int32
	Notes           string
	UserID          *int32
}

type TransferService interface {
	Transfer(ctx context.Context, in TransferInput) (*domain.EquipmentTransfer, error)
	Get(ctx context.Context, id int32) (*domain.EquipmentTransfer, error)
	List(ctx context.Context) ([]domain.EquipmentTransfer, error)
}

type SaleItemInput struct {
	EquipmentID int32
	Quantity    int32
	UnitPrice   decimal.Decimal
}

type CreateSaleInput struct {
	CustomerID *int32
	Items      []SaleItemInput
	Notes      string
	SoldOn     *time.Time
	UserID     *int32
}

type SaleService interface {
	Create(ctx context.Context, in CreateSaleInput) (*domain.Sale, error)
	Get(ctx context.Context, id int32) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	Delete(ctx context.Context, id int32) error
}

type WriteOffItemInput struct {
	EquipmentID int32
	Quantity    int32
}

type CreateWriteOffInput struct {
	Reason string
	Items  []WriteOffItemInput
	UserID *int32
}

type WriteOffService interface {
	Create(ctx context.Context, in CreateWriteOffInput) (*domain.WriteOff, error)
	Get(ctx context.Context, id int32) (*domain.WriteOff, error)
	List(ctx context.Context) ([]domain.WriteOff, error)
	Delete(ctx context.Context, id int32) error
}

type InventoryService interface {
	CreateCheck(ctx context.Context, warehouseID int32, userID *int32) (*domain.InventoryCheck, error)
	GetCheck(ctx context.Context, id int32) (*domain.InventoryCheck, error)
	ListChecks(ctx context.Context, warehouseID *int32) ([]domain.InventoryCheck, error)
	UpdateItem(ctx context.Context, checkID, itemID, actualQuantity int32) (*domain.InventoryCheckItem, error)
	CompleteCheck(ctx context.Context, checkID int32, adjustStock bool) (*domain.InventoryCheck, error)
	CancelCheck(ctx context.Context, checkID int32) error
}

type GenerateBillingInput struct {
	OrderID     int32
	BatchID     *string
	BillingDate *time.Time
	IsFinal     bool
}

type BillingService interface {
	Generate(ctx context.Context, in GenerateBillingInput) (*domain.BillingData, error)
	Get(ctx context.Context, id int32) (*domain.BillingData, error)
	ListByOrder(ctx context.Context, orderID int32) ([]domain.BillingData, error)
}

type CreateOrderInput struct {
	CustomerID       int32
	OrderNumber      string
	EstimatedEndDate *time.Time
	Notes            string
}

type UpdateOrderInput struct {
	CustomerID       *int32
	OrderNumber      *string
	Status           *domain.OrderStatus
	EstimatedEndDate *time.Time
	Notes            *string
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id int32) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id int32, in UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id int32) error
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, id int32) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int32) error
}

type WarehouseService interface {
	Create(ctx context.Context, w *domain.Warehouse) error
	Get(ctx context.Context, id int32) (*domain.Warehouse, error)
	List(ctx context.Context) ([]domain.Warehouse, error)
	Update(ctx context.Context, w *domain.Warehouse) error
	Delete(ctx context.Context, id int32) error
}

type CategoryService interface {
	Create(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, id int32) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int32) error
}

type SupplierService interface {
	Create(ctx context.Context, s *domain.Supplier) error
	Get(ctx context.Context, id int32) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int32) error
}
