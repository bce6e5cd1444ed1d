package postgres

import (
	"context"
	"testing"
	"time"

	"equiprent-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestInventoryRepositoryCreateCheckTxConcurrentCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewInventoryRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO inventory_checks").
		WithArgs(int32(4), "IN_PROGRESS", nil, sqlmock.AnyArg()).
		WillReturnError(uniqueViolationErr())

	tx, err := db.Begin()
	assert.NoError(t, err)

	check := &domain.InventoryCheck{
		WarehouseID: 4,
		Status:      domain.InventoryCheckStatusInProgress,
		StartedOn:   time.Now(),
	}
	err = repo.CreateCheckTx(ctx, tx, check)
	assert.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
