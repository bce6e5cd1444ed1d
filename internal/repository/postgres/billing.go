package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type billingRepository struct {
	db *sql.DB
}

func NewBillingRepository(db *sql.DB) repository.BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) loadItems(ctx context.Context, billingID int32) ([]domain.BillingItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, billing_id, rental_id, days, quantity, daily_rate, total_price FROM billing_items WHERE billing_id = $1 ORDER BY id`, billingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BillingItem
	for rows.Next() {
		var it domain.BillingItem
		if err := rows.Scan(&it.ID, &it.BillingID, &it.RentalID, &it.Days, &it.Quantity, &it.DailyRate, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *billingRepository) GetByID(ctx context.Context, id int32) (*domain.BillingData, error) {
	b := &domain.BillingData{}
	query := `SELECT id, order_id, batch_id, billing_date, is_final, total_amount, created_on FROM billing_data WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.OrderID, &b.BatchID, &b.BillingDate, &b.IsFinal, &b.TotalAmount, &b.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("billing", id)
	}
	if err != nil {
		return nil, err
	}
	if b.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *billingRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.BillingData, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, batch_id, billing_date, is_final, total_amount, created_on FROM billing_data WHERE order_id = $1 ORDER BY created_on DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var billings []domain.BillingData
	for rows.Next() {
		var b domain.BillingData
		if err := rows.Scan(&b.ID, &b.OrderID, &b.BatchID, &b.BillingDate, &b.IsFinal, &b.TotalAmount, &b.CreatedOn); err != nil {
			return nil, err
		}
		billings = append(billings, b)
	}
	return billings, rows.Err()
}

func (r *billingRepository) CreateTx(ctx context.Context, tx *sql.Tx, b *domain.BillingData) error {
	query := `INSERT INTO billing_data (order_id, batch_id, billing_date, is_final, total_amount, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return tx.QueryRowContext(ctx, query, b.OrderID, b.BatchID, b.BillingDate, b.IsFinal, b.TotalAmount, time.Now()).Scan(&b.ID)
}

func (r *billingRepository) CreateItemTx(ctx context.Context, tx *sql.Tx, item *domain.BillingItem) error {
	query := `INSERT INTO billing_items (billing_id, rental_id, days, quantity, daily_rate, total_price)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return tx.QueryRowContext(ctx, query, item.BillingID, item.RentalID, item.Days, item.Quantity, item.DailyRate, item.TotalPrice).Scan(&item.ID)
}
