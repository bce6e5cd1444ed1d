package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type warehouseRepository struct {
	db *sql.DB
}

func NewWarehouseRepository(db *sql.DB) repository.WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(ctx context.Context, w *domain.Warehouse) error {
	query := `INSERT INTO warehouses (name, address, created_on) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, w.Name, w.Address, time.Now()).Scan(&w.ID)
}

func (r *warehouseRepository) GetByID(ctx context.Context, id int32) (*domain.Warehouse, error) {
	w := &domain.Warehouse{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, address, created_on FROM warehouses WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Address, &w.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("warehouse", id)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepository) List(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address, created_on FROM warehouses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.CreatedOn); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *warehouseRepository) Update(ctx context.Context, w *domain.Warehouse) error {
	res, err := r.db.ExecContext(ctx, `UPDATE warehouses SET name=$1, address=$2 WHERE id=$3`, w.Name, w.Address, w.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("warehouse", w.ID)
	}
	return nil
}

func (r *warehouseRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("warehouse", id)
	}
	return nil
}

func (r *warehouseRepository) CountEquipment(ctx context.Context, warehouseID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment WHERE warehouse_id = $1`, warehouseID).Scan(&count)
	return count, err
}
