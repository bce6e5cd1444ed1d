package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type writeOffRepository struct {
	db *sql.DB
}

func NewWriteOffRepository(db *sql.DB) repository.WriteOffRepository {
	return &writeOffRepository{db: db}
}

func (r *writeOffRepository) loadItems(ctx context.Context, q interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}, writeOffID int32) ([]domain.WriteOffItem, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, write_off_id, equipment_id, quantity, loss_value FROM write_off_items WHERE write_off_id = $1 ORDER BY id`, writeOffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WriteOffItem
	for rows.Next() {
		var it domain.WriteOffItem
		if err := rows.Scan(&it.ID, &it.WriteOffID, &it.EquipmentID, &it.Quantity, &it.LossValue); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *writeOffRepository) GetByID(ctx context.Context, id int32) (*domain.WriteOff, error) {
	w := &domain.WriteOff{}
	query := `SELECT id, reason, total_value, created_by, written_off_on, created_on FROM write_offs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Reason, &w.TotalValue, &w.CreatedBy, &w.WrittenOffOn, &w.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("write-off", id)
	}
	if err != nil {
		return nil, err
	}
	if w.Items, err = r.loadItems(ctx, r.db, id); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *writeOffRepository) List(ctx context.Context) ([]domain.WriteOff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, reason, total_value, created_by, written_off_on, created_on FROM write_offs ORDER BY written_off_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var writeOffs []domain.WriteOff
	for rows.Next() {
		var w domain.WriteOff
		if err := rows.Scan(&w.ID, &w.Reason, &w.TotalValue, &w.CreatedBy, &w.WrittenOffOn, &w.CreatedOn); err != nil {
			return nil, err
		}
		writeOffs = append(writeOffs, w)
	}
	return writeOffs, rows.Err()
}

func (r *writeOffRepository) CreateTx(ctx context.Context, tx *sql.Tx, w *domain.WriteOff) error {
	query := `INSERT INTO write_offs (reason, total_value, created_by, written_off_on, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query, w.Reason, w.TotalValue, w.CreatedBy, w.WrittenOffOn, time.Now()).Scan(&w.ID)
}

func (r *writeOffRepository) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.WriteOffItem) error {
	query := `INSERT INTO write_off_items (write_off_id, equipment_id, quantity, loss_value)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return tx.QueryRowContext(ctx, query, item.WriteOffID, item.EquipmentID, item.Quantity, item.LossValue).Scan(&item.ID)
}

func (r *writeOffRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.WriteOff, error) {
	w := &domain.WriteOff{}
	query := `SELECT id, reason, total_value, created_by, written_off_on, created_on FROM write_offs WHERE id = $1 FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Reason, &w.TotalValue, &w.CreatedBy, &w.WrittenOffOn, &w.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("write-off", id)
	}
	if err != nil {
		return nil, err
	}
	if w.Items, err = r.loadItems(ctx, tx, id); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *writeOffRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM write_off_items WHERE write_off_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM write_offs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("write-off", id)
	}
	return nil
}
