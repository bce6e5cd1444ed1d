package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// mockTransactor runs the callback with a nil transaction so service logic
// can be exercised without a database. A configured error short-circuits
// the callback, mimicking a failure to begin the transaction.
type mockTransactor struct {
	mock.Mock
}

func (m *mockTransactor) ExecTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type mockEquipmentRepo struct {
	mock.Mock
}

func (m *mockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) Update(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEquipmentRepo) InventoryNumberExists(ctx context.Context, warehouseID int32, inventoryNumber string, excludeID int32) (bool, error) {
	args := m.Called(ctx, warehouseID, inventoryNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEquipmentRepo) CountActiveRentals(ctx context.Context, equipmentID int32) (int32, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEquipmentRepo) ListStockDivergence(ctx context.Context) ([]domain.StockDivergence, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockDivergence), args.Error(1)
}

func (m *mockEquipmentRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) FindInWarehouseForUpdateTx(ctx context.Context, tx *sql.Tx, warehouseID int32, inventoryNumber string) (*domain.Equipment, error) {
	args := m.Called(ctx, tx, warehouseID, inventoryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) AdjustStockTx(ctx context.Context, tx *sql.Tx, id, totalDelta, availableDelta int32) error {
	args := m.Called(ctx, tx, id, totalDelta, availableDelta)
	return args.Error(0)
}

func (m *mockEquipmentRepo) SetStockTx(ctx context.Context, tx *sql.Tx, id, totalStock, availableStock int32) error {
	args := m.Called(ctx, tx, id, totalStock, availableStock)
	return args.Error(0)
}

func (m *mockEquipmentRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *mockEquipmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *domain.Equipment) error {
	args := m.Called(ctx, tx, e)
	return args.Error(0)
}

func (m *mockEquipmentRepo) ListByWarehouseWithStockTx(ctx context.Context, tx *sql.Tx, warehouseID int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, tx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) ListByBatch(ctx context.Context, batchID string) ([]domain.Rental, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) ListUnbilledByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) CountActiveByOrder(ctx context.Context, orderID int32) (int32, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockRentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, r *domain.Rental) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *mockRentalRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) UpdateTx(ctx context.Context, tx *sql.Tx, r *domain.Rental) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *mockRentalRepo) MarkBilledByOrderTx(ctx context.Context, tx *sql.Tx, orderID int32) error {
	args := m.Called(ctx, tx, orderID)
	return args.Error(0)
}

type mockReturnRepo struct {
	mock.Mock
}

func (m *mockReturnRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *mockReturnRepo) ListByBatch(ctx context.Context, batchID string) ([]domain.Return, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *mockReturnRepo) CreateTx(ctx context.Context, tx *sql.Tx, ret *domain.Return) error {
	args := m.Called(ctx, tx, ret)
	return args.Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderRepo) OrderNumberExists(ctx context.Context, orderNumber string, excludeID int32) (bool, error) {
	args := m.Called(ctx, orderNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockWarehouseRepo struct {
	mock.Mock
}

func (m *mockWarehouseRepo) Create(ctx context.Context, w *domain.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWarehouseRepo) GetByID(ctx context.Context, id int32) (*domain.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) List(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) Update(ctx context.Context, w *domain.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWarehouseRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockWarehouseRepo) CountEquipment(ctx context.Context, warehouseID int32) (int32, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).(int32), args.Error(1)
}

type mockSupplierRepo struct {
	mock.Mock
}

func (m *mockSupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSupplierRepo) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSupplierRepo) CountEquipment(ctx context.Context, supplierID int32) (int32, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int32), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepo) CountEquipment(ctx context.Context, categoryID int32) (int32, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int32), args.Error(1)
}

type mockTransferRepo struct {
	mock.Mock
}

func (m *mockTransferRepo) GetByID(ctx context.Context, id int32) (*domain.EquipmentTransfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentTransfer), args.Error(1)
}

func (m *mockTransferRepo) List(ctx context.Context) ([]domain.EquipmentTransfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquipmentTransfer), args.Error(1)
}

func (m *mockTransferRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *domain.EquipmentTransfer) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

type mockSaleRepo struct {
	mock.Mock
}

func (m *mockSaleRepo) GetByID(ctx context.Context, id int32) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *mockSaleRepo) List(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *mockSaleRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *domain.Sale) error {
	args := m.Called(ctx, tx, s)
	return args.Error(0)
}

func (m *mockSaleRepo) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.SaleItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *mockSaleRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Sale, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *mockSaleRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type mockWriteOffRepo struct {
	mock.Mock
}

func (m *mockWriteOffRepo) GetByID(ctx context.Context, id int32) (*domain.WriteOff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteOff), args.Error(1)
}

func (m *mockWriteOffRepo) List(ctx context.Context) ([]domain.WriteOff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WriteOff), args.Error(1)
}

func (m *mockWriteOffRepo) CreateTx(ctx context.Context, tx *sql.Tx, w *domain.WriteOff) error {
	args := m.Called(ctx, tx, w)
	return args.Error(0)
}

func (m *mockWriteOffRepo) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.WriteOffItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *mockWriteOffRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.WriteOff, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteOff), args.Error(1)
}

func (m *mockWriteOffRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type mockInventoryRepo struct {
	mock.Mock
}

func (m *mockInventoryRepo) GetCheck(ctx context.Context, id int32) (*domain.InventoryCheck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryCheck), args.Error(1)
}

func (m *mockInventoryRepo) ListChecks(ctx context.Context, warehouseID *int32) ([]domain.InventoryCheck, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryCheck), args.Error(1)
}

func (m *mockInventoryRepo) FindInProgressByWarehouse(ctx context.Context, warehouseID int32) (*domain.InventoryCheck, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryCheck), args.Error(1)
}

func (m *mockInventoryRepo) GetItem(ctx context.Context, checkID, itemID int32) (*domain.InventoryCheckItem, error) {
	args := m.Called(ctx, checkID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryCheckItem), args.Error(1)
}

func (m *mockInventoryRepo) SetActualQuantity(ctx context.Context, checkID, itemID, quantity int32) error {
	args := m.Called(ctx, checkID, itemID, quantity)
	return args.Error(0)
}

func (m *mockInventoryRepo) CountUnchecked(ctx context.Context, checkID int32) (int32, error) {
	args := m.Called(ctx, checkID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockInventoryRepo) CreateCheckTx(ctx context.Context, tx *sql.Tx, c *domain.InventoryCheck) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *mockInventoryRepo) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.InventoryCheckItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *mockInventoryRepo) ListItemsTx(ctx context.Context, tx *sql.Tx, checkID int32) ([]domain.InventoryCheckItem, error) {
	args := m.Called(ctx, tx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryCheckItem), args.Error(1)
}

func (m *mockInventoryRepo) SetCheckStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.InventoryCheckStatus, completedOn *time.Time) error {
	args := m.Called(ctx, tx, id, status, completedOn)
	return args.Error(0)
}

type mockBillingRepo struct {
	mock.Mock
}

func (m *mockBillingRepo) GetByID(ctx context.Context, id int32) (*domain.BillingData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingData), args.Error(1)
}

func (m *mockBillingRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.BillingData, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillingData), args.Error(1)
}

func (m *mockBillingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *domain.BillingData) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *mockBillingRepo) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.BillingItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPhotoStorage struct {
	mock.Mock
}

func (m *mockPhotoStorage) Save(ctx context.Context, ext string, reader io.Reader) (string, error) {
	args := m.Called(ctx, ext, reader)
	return args.String(0), args.Error(1)
}

func (m *mockPhotoStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockPhotoStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockTokenManager struct {
	mock.Mock
}

func (m *mockTokenManager) GenerateToken(userID int32, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokenManager) ValidateToken(token string) (*security.UserClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
