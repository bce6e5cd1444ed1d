package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const checkColumns = `id, warehouse_id, status, started_by, started_on, completed_on`

func (r *inventoryRepository) GetCheck(ctx context.Context, id int32) (*domain.InventoryCheck, error) {
	c := &domain.InventoryCheck{}
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.WarehouseID, &c.Status, &c.StartedBy, &c.StartedOn, &c.CompletedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("inventory check", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, check_id, equipment_id, expected_quantity, actual_quantity FROM inventory_check_items WHERE check_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.InventoryCheckItem
		if err := rows.Scan(&it.ID, &it.CheckID, &it.EquipmentID, &it.ExpectedQuantity, &it.ActualQuantity); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *inventoryRepository) ListChecks(ctx context.Context, warehouseID *int32) ([]domain.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks`
	args := []interface{}{}
	if warehouseID != nil {
		query += ` WHERE warehouse_id = $1`
		args = append(args, *warehouseID)
	}
	query += ` ORDER BY started_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []domain.InventoryCheck
	for rows.Next() {
		var c domain.InventoryCheck
		if err := rows.Scan(&c.ID, &c.WarehouseID, &c.Status, &c.StartedBy, &c.StartedOn, &c.CompletedOn); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

func (r *inventoryRepository) FindInProgressByWarehouse(ctx context.Context, warehouseID int32) (*domain.InventoryCheck, error) {
	c := &domain.InventoryCheck{}
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE warehouse_id = $1 AND status = 'IN_PROGRESS'`
	err := r.db.QueryRowContext(ctx, query, warehouseID).Scan(&c.ID, &c.WarehouseID, &c.Status, &c.StartedBy, &c.StartedOn, &c.CompletedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, checkID, itemID int32) (*domain.InventoryCheckItem, error) {
	it := &domain.InventoryCheckItem{}
	query := `SELECT id, check_id, equipment_id, expected_quantity, actual_quantity FROM inventory_check_items WHERE id = $1 AND check_id = $2`
	err := r.db.QueryRowContext(ctx, query, itemID, checkID).Scan(&it.ID, &it.CheckID, &it.EquipmentID, &it.ExpectedQuantity, &it.ActualQuantity)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("inventory check item", itemID)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *inventoryRepository) SetActualQuantity(ctx context.Context, checkID, itemID, quantity int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE inventory_check_items SET actual_quantity = $1 WHERE id = $2 AND check_id = $3`, quantity, itemID, checkID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("inventory check item", itemID)
	}
	return nil
}

func (r *inventoryRepository) CountUnchecked(ctx context.Context, checkID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM inventory_check_items WHERE check_id = $1 AND actual_quantity IS NULL`, checkID).Scan(&count)
	return count, err
}

func (r *inventoryRepository) CreateCheckTx(ctx context.Context, tx *sql.Tx, c *domain.InventoryCheck) error {
	query := `INSERT INTO inventory_checks (warehouse_id, status, started_by, started_on) VALUES ($1, $2, $3, $4) RETURNING id`
	err := tx.QueryRowContext(ctx, query, c.WarehouseID, c.Status, c.StartedBy, c.StartedOn).Scan(&c.ID)
	// The partial unique index on in-progress checks catches creations
	// racing past the service pre-check.
	if isUniqueViolation(err) {
		return domain.NewConflictError("warehouse %d already has an inventory check in progress", c.WarehouseID)
	}
	return err
}

func (r *inventoryRepository) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.InventoryCheckItem) error {
	query := `INSERT INTO inventory_check_items (check_id, equipment_id, expected_quantity, actual_quantity) VALUES ($1, $2, $3, $4) RETURNING id`
	return tx.QueryRowContext(ctx, query, item.CheckID, item.EquipmentID, item.ExpectedQuantity, item.ActualQuantity).Scan(&item.ID)
}

func (r *inventoryRepository) ListItemsTx(ctx context.Context, tx *sql.Tx, checkID int32) ([]domain.InventoryCheckItem, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, check_id, equipment_id, expected_quantity, actual_quantity FROM inventory_check_items WHERE check_id = $1 ORDER BY id`, checkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryCheckItem
	for rows.Next() {
		var it domain.InventoryCheckItem
		if err := rows.Scan(&it.ID, &it.CheckID, &it.EquipmentID, &it.ExpectedQuantity, &it.ActualQuantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) SetCheckStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.InventoryCheckStatus, completedOn *time.Time) error {
	res, err := tx.ExecContext(ctx, `UPDATE inventory_checks SET status = $1, completed_on = $2 WHERE id = $3`, status, completedOn, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("inventory check", id)
	}
	return nil
}
