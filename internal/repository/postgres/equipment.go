package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, inventory_number, name, description, category_id, supplier_id, warehouse_id,
	daily_rate, monthly_rate, purchase_price, total_stock, available_stock, photo_path, status, created_on, updated_on`

func scanEquipment(row interface {
	Scan(dest ...interface{}) error
}, e *domain.Equipment) error {
	return row.Scan(&e.ID, &e.InventoryNumber, &e.Name, &e.Description, &e.CategoryID, &e.SupplierID,
		&e.WarehouseID, &e.DailyRate, &e.MonthlyRate, &e.PurchasePrice, &e.TotalStock, &e.AvailableStock,
		&e.PhotoPath, &e.Status, &e.CreatedOn, &e.UpdatedOn)
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (inventory_number, name, description, category_id, supplier_id, warehouse_id,
	          daily_rate, monthly_rate, purchase_price, total_stock, available_stock, photo_path, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.InventoryNumber, e.Name, e.Description, e.CategoryID, e.SupplierID,
		e.WarehouseID, e.DailyRate, e.MonthlyRate, e.PurchasePrice, e.TotalStock, e.AvailableStock,
		e.PhotoPath, e.Status, time.Now(), time.Now()).Scan(&e.ID)
	if isUniqueViolation(err) {
		return domain.NewValidationError("inventory number %q already exists in warehouse %d", e.InventoryNumber, e.WarehouseID)
	}
	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := scanEquipment(r.db.QueryRowContext(ctx, query, id), e)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("equipment", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List reports rented_quantity as the sum of active rental quantities per
// item. The stored available_stock stays authoritative; the derived sum is
// informational (see ListStockDivergence for the audit comparison).
func (r *equipmentRepository) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	query := `SELECT e.id, e.inventory_number, e.name, e.description, e.category_id, e.supplier_id, e.warehouse_id,
	       e.daily_rate, e.monthly_rate, e.purchase_price, e.total_stock, e.available_stock, e.photo_path, e.status,
	       e.created_on, e.updated_on,
	       COALESCE((SELECT SUM(r.quantity) FROM rentals r
	                 WHERE r.equipment_id = e.id AND r.status IN ('CREATED', 'ISSUED') AND r.actual_return_date IS NULL), 0) AS rented_quantity
	       FROM equipment e WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if f.WarehouseID != nil {
		query += fmt.Sprintf(" AND e.warehouse_id = $%d", argIdx)
		args = append(args, *f.WarehouseID)
		argIdx++
	}
	if f.CategoryID != nil {
		query += fmt.Sprintf(" AND e.category_id = $%d", argIdx)
		args = append(args, *f.CategoryID)
		argIdx++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND e.status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (e.name ILIKE $%d OR e.inventory_number ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	query += " ORDER BY e.inventory_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.InventoryNumber, &e.Name, &e.Description, &e.CategoryID, &e.SupplierID,
			&e.WarehouseID, &e.DailyRate, &e.MonthlyRate, &e.PurchasePrice, &e.TotalStock, &e.AvailableStock,
			&e.PhotoPath, &e.Status, &e.CreatedOn, &e.UpdatedOn, &e.RentedQuantity); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET inventory_number=$1, name=$2, description=$3, category_id=$4, supplier_id=$5,
	          warehouse_id=$6, daily_rate=$7, monthly_rate=$8, purchase_price=$9, total_stock=$10,
	          available_stock=$11, photo_path=$12, status=$13, updated_on=$14 WHERE id=$15`
	res, err := r.db.ExecContext(ctx, query, e.InventoryNumber, e.Name, e.Description, e.CategoryID, e.SupplierID,
		e.WarehouseID, e.DailyRate, e.MonthlyRate, e.PurchasePrice, e.TotalStock, e.AvailableStock,
		e.PhotoPath, e.Status, time.Now(), e.ID)
	if isUniqueViolation(err) {
		return domain.NewValidationError("inventory number %q already exists in warehouse %d", e.InventoryNumber, e.WarehouseID)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("equipment", e.ID)
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("equipment", id)
	}
	return nil
}

func (r *equipmentRepository) InventoryNumberExists(ctx context.Context, warehouseID int32, inventoryNumber string, excludeID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM equipment WHERE warehouse_id = $1 AND inventory_number = $2 AND id <> $3`
	if err := r.db.QueryRowContext(ctx, query, warehouseID, inventoryNumber, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *equipmentRepository) CountActiveRentals(ctx context.Context, equipmentID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM rentals WHERE equipment_id = $1 AND status IN ('CREATED', 'ISSUED') AND actual_return_date IS NULL`
	err := r.db.QueryRowContext(ctx, query, equipmentID).Scan(&count)
	return count, err
}

func (r *equipmentRepository) ListStockDivergence(ctx context.Context) ([]domain.StockDivergence, error) {
	query := `SELECT e.id, e.inventory_number, e.total_stock, e.available_stock,
	       COALESCE((SELECT SUM(r.quantity) FROM rentals r
	                 WHERE r.equipment_id = e.id AND r.status = 'ISSUED' AND r.actual_return_date IS NULL), 0) AS rented_quantity
	       FROM equipment e`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StockDivergence
	for rows.Next() {
		var d domain.StockDivergence
		if err := rows.Scan(&d.EquipmentID, &d.InventoryNumber, &d.TotalStock, &d.StoredAvailable, &d.RentedQuantity); err != nil {
			return nil, err
		}
		d.DerivedAvailable = d.TotalStock - d.RentedQuantity
		if d.DerivedAvailable < 0 {
			d.DerivedAvailable = 0
		}
		if d.DerivedAvailable != d.StoredAvailable {
			out = append(out, d)
		}
	}
	return out, rows.Err()
}

func (r *equipmentRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 FOR UPDATE`
	err := scanEquipment(tx.QueryRowContext(ctx, query, id), e)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("equipment", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) FindInWarehouseForUpdateTx(ctx context.Context, tx *sql.Tx, warehouseID int32, inventoryNumber string) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE warehouse_id = $1 AND inventory_number = $2 FOR UPDATE`
	err := scanEquipment(tx.QueryRowContext(ctx, query, warehouseID, inventoryNumber), e)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) AdjustStockTx(ctx context.Context, tx *sql.Tx, id, totalDelta, availableDelta int32) error {
	query := `UPDATE equipment SET total_stock = total_stock + $1, available_stock = available_stock + $2, updated_on = $3 WHERE id = $4`
	res, err := tx.ExecContext(ctx, query, totalDelta, availableDelta, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("equipment", id)
	}
	return nil
}

func (r *equipmentRepository) SetStockTx(ctx context.Context, tx *sql.Tx, id, totalStock, availableStock int32) error {
	query := `UPDATE equipment SET total_stock = $1, available_stock = $2, updated_on = $3 WHERE id = $4`
	_, err := tx.ExecContext(ctx, query, totalStock, availableStock, time.Now(), id)
	return err
}

func (r *equipmentRepository) SetStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error {
	_, err := tx.ExecContext(ctx, `UPDATE equipment SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	return err
}

func (r *equipmentRepository) CreateTx(ctx context.Context, tx *sql.Tx, e *domain.Equipment) error {
	query := `INSERT INTO equipment (inventory_number, name, description, category_id, supplier_id, warehouse_id,
	          daily_rate, monthly_rate, purchase_price, total_stock, available_stock, photo_path, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return tx.QueryRowContext(ctx, query, e.InventoryNumber, e.Name, e.Description, e.CategoryID, e.SupplierID,
		e.WarehouseID, e.DailyRate, e.MonthlyRate, e.PurchasePrice, e.TotalStock, e.AvailableStock,
		e.PhotoPath, e.Status, time.Now(), time.Now()).Scan(&e.ID)
}

func (r *equipmentRepository) ListByWarehouseWithStockTx(ctx context.Context, tx *sql.Tx, warehouseID int32) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE warehouse_id = $1 AND total_stock > 0 ORDER BY id`
	rows, err := tx.QueryContext(ctx, query, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
