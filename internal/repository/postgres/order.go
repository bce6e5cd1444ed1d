package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_id, order_number, status, estimated_end_date, notes, created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (customer_id, order_number, status, estimated_end_date, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, o.CustomerID, o.OrderNumber, o.Status, o.EstimatedEndDate,
		o.Notes, time.Now(), time.Now()).Scan(&o.ID)
	if isUniqueViolation(err) {
		return domain.NewValidationError("order number %q already exists", o.OrderNumber)
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.OrderNumber, &o.Status,
		&o.EstimatedEndDate, &o.Notes, &o.CreatedOn, &o.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("order", id)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderNumber, &o.Status, &o.EstimatedEndDate,
			&o.Notes, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET customer_id=$1, order_number=$2, status=$3, estimated_end_date=$4, notes=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, o.CustomerID, o.OrderNumber, o.Status, o.EstimatedEndDate, o.Notes, time.Now(), o.ID)
	if isUniqueViolation(err) {
		return domain.NewValidationError("order number %q already exists", o.OrderNumber)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("order", o.ID)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflictError("order %d is referenced by existing records", id)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("order", id)
	}
	return nil
}

func (r *orderRepository) OrderNumberExists(ctx context.Context, orderNumber string, excludeID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM orders WHERE order_number = $1 AND id <> $2`
	if err := r.db.QueryRowContext(ctx, query, orderNumber, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
