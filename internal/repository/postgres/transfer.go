package postgres

import (
	"context"
	"database/sql"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type transferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) repository.TransferRepository {
	return &transferRepository{db: db}
}

const transferColumns = `id, equipment_id, from_warehouse_id, to_warehouse_id, quantity, target_equipment_id, notes, transferred_by, transferred_on`

func (r *transferRepository) GetByID(ctx context.Context, id int32) (*domain.EquipmentTransfer, error) {
	t := &domain.EquipmentTransfer{}
	query := `SELECT ` + transferColumns + ` FROM equipment_transfers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.EquipmentID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Quantity, &t.TargetEquipmentID, &t.Notes, &t.TransferredBy, &t.TransferredOn)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("transfer", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transferRepository) List(ctx context.Context) ([]domain.EquipmentTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM equipment_transfers ORDER BY transferred_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.EquipmentTransfer
	for rows.Next() {
		var t domain.EquipmentTransfer
		if err := rows.Scan(&t.ID, &t.EquipmentID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Quantity,
			&t.TargetEquipmentID, &t.Notes, &t.TransferredBy, &t.TransferredOn); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (r *transferRepository) CreateTx(ctx context.Context, tx *sql.Tx, t *domain.EquipmentTransfer) error {
	query := `INSERT INTO equipment_transfers (equipment_id, from_warehouse_id, to_warehouse_id, quantity,
	          target_equipment_id, notes, transferred_by, transferred_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return tx.QueryRowContext(ctx, query, t.EquipmentID, t.FromWarehouseID, t.ToWarehouseID, t.Quantity,
		t.TargetEquipmentID, t.Notes, t.TransferredBy, t.TransferredOn).Scan(&t.ID)
}
