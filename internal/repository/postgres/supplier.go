package postgres

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	query := `INSERT INTO suppliers (name, phone, email, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Name, s.Phone, s.Email, time.Now()).Scan(&s.ID)
}

func (r *supplierRepository) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	s := &domain.Supplier{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, phone, email, created_on FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("supplier", id)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, email, created_on FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.CreatedOn); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	res, err := r.db.ExecContext(ctx, `UPDATE suppliers SET name=$1, phone=$2, email=$3 WHERE id=$4`,
		s.Name, s.Phone, s.Email, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("supplier", s.ID)
	}
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("supplier", id)
	}
	return nil
}

func (r *supplierRepository) CountEquipment(ctx context.Context, supplierID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment WHERE supplier_id = $1`, supplierID).Scan(&count)
	return count, err
}
