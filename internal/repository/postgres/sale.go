package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) loadItems(ctx context.Context, q interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}, saleID int32) ([]domain.SaleItem, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, sale_id, equipment_id, quantity, unit_price, total_price FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var it domain.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.EquipmentID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *saleRepository) GetByID(ctx context.Context, id int32) (*domain.Sale, error) {
	s := &domain.Sale{}
	query := `SELECT id, customer_id, total_amount, notes, created_by, sold_on, created_on FROM sales WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.CustomerID, &s.TotalAmount, &s.Notes, &s.CreatedBy, &s.SoldOn, &s.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("sale", id)
	}
	if err != nil {
		return nil, err
	}
	if s.Items, err = r.loadItems(ctx, r.db, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, total_amount, notes, created_by, sold_on, created_on FROM sales ORDER BY sold_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.TotalAmount, &s.Notes, &s.CreatedBy, &s.SoldOn, &s.CreatedOn); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *saleRepository) CreateTx(ctx context.Context, tx *sql.Tx, s *domain.Sale) error {
	query := `INSERT INTO sales (customer_id, total_amount, notes, created_by, sold_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return tx.QueryRowContext(ctx, query, s.CustomerID, s.TotalAmount, s.Notes, s.CreatedBy, s.SoldOn, time.Now()).Scan(&s.ID)
}

func (r *saleRepository) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.SaleItem) error {
	query := `INSERT INTO sale_items (sale_id, equipment_id, quantity, unit_price, total_price)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query, item.SaleID, item.EquipmentID, item.Quantity, item.UnitPrice, item.TotalPrice).Scan(&item.ID)
}

func (r *saleRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Sale, error) {
	s := &domain.Sale{}
	query := `SELECT id, customer_id, total_amount, notes, created_by, sold_on, created_on FROM sales WHERE id = $1 FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.CustomerID, &s.TotalAmount, &s.Notes, &s.CreatedBy, &s.SoldOn, &s.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("sale", id)
	}
	if err != nil {
		return nil, err
	}
	if s.Items, err = r.loadItems(ctx, tx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *saleRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("sale", id)
	}
	return nil
}
