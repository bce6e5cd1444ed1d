package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type returnRepository struct {
	db *sql.DB
}

func NewReturnRepository(db *sql.DB) repository.ReturnRepository {
	return &returnRepository{db: db}
}

const returnColumns = `id, rental_id, quantity, condition, damage_notes, extra_charge, batch_id, returned_on, created_on`

func (r *returnRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]domain.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE ` + where + ` ORDER BY returned_on`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []domain.Return
	for rows.Next() {
		var ret domain.Return
		if err := rows.Scan(&ret.ID, &ret.RentalID, &ret.Quantity, &ret.Condition, &ret.DamageNotes,
			&ret.ExtraCharge, &ret.BatchID, &ret.ReturnedOn, &ret.CreatedOn); err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}

func (r *returnRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	return r.listWhere(ctx, "rental_id = $1", rentalID)
}

func (r *returnRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.Return, error) {
	return r.listWhere(ctx, "batch_id = $1", batchID)
}

func (r *returnRepository) CreateTx(ctx context.Context, tx *sql.Tx, ret *domain.Return) error {
	query := `INSERT INTO returns (rental_id, quantity, condition, damage_notes, extra_charge, batch_id, returned_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return tx.QueryRowContext(ctx, query, ret.RentalID, ret.Quantity, ret.Condition, ret.DamageNotes,
		ret.ExtraCharge, ret.BatchID, ret.ReturnedOn, time.Now()).Scan(&ret.ID)
}
