package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, order_id, equipment_id, quantity, daily_rate, issue_date, planned_return_date,
	actual_return_date, status, batch_id, is_billed, created_on, updated_on`

func scanRental(row interface {
	Scan(dest ...interface{}) error
}, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.OrderID, &rt.EquipmentID, &rt.Quantity, &rt.DailyRate, &rt.IssueDate,
		&rt.PlannedReturnDate, &rt.ActualReturnDate, &rt.Status, &rt.BatchID, &rt.IsBilled,
		&rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("rental", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + where + ` ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error) {
	return r.listWhere(ctx, "order_id = $1", orderID)
}

func (r *rentalRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.Rental, error) {
	return r.listWhere(ctx, "batch_id = $1", batchID)
}

func (r *rentalRepository) ListUnbilledByOrder(ctx context.Context, orderID int32) ([]domain.Rental, error) {
	return r.listWhere(ctx, "order_id = $1 AND is_billed = false", orderID)
}

func (r *rentalRepository) CountActiveByOrder(ctx context.Context, orderID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM rentals WHERE order_id = $1 AND status IN ('CREATED', 'ISSUED')`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&count)
	return count, err
}

func (r *rentalRepository) CreateTx(ctx context.Context, tx *sql.Tx, rt *domain.Rental) error {
	query := `INSERT INTO rentals (order_id, equipment_id, quantity, daily_rate, issue_date, planned_return_date,
	          actual_return_date, status, batch_id, is_billed, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return tx.QueryRowContext(ctx, query, rt.OrderID, rt.EquipmentID, rt.Quantity, rt.DailyRate, rt.IssueDate,
		rt.PlannedReturnDate, rt.ActualReturnDate, rt.Status, rt.BatchID, rt.IsBilled, time.Now(), time.Now()).Scan(&rt.ID)
}

func (r *rentalRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	err := scanRental(tx.QueryRowContext(ctx, query, id), rt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("rental", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) UpdateTx(ctx context.Context, tx *sql.Tx, rt *domain.Rental) error {
	query := `UPDATE rentals SET quantity=$1, daily_rate=$2, issue_date=$3, planned_return_date=$4,
	          actual_return_date=$5, status=$6, is_billed=$7, updated_on=$8 WHERE id=$9`
	_, err := tx.ExecContext(ctx, query, rt.Quantity, rt.DailyRate, rt.IssueDate, rt.PlannedReturnDate,
		rt.ActualReturnDate, rt.Status, rt.IsBilled, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) MarkBilledByOrderTx(ctx context.Context, tx *sql.Tx, orderID int32) error {
	_, err := tx.ExecContext(ctx, `UPDATE rentals SET is_billed = true, updated_on = $1 WHERE order_id = $2`, time.Now(), orderID)
	return err
}
