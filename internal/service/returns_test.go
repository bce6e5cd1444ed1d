package service

import (
	"context"
	"testing"
	"time"

	"equiprent-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReturnServiceReturnRental(t *testing.T) {
	ctx := context.Background()

	tx := new(mockTransactor)
	rentalRepo := new(mockRentalRepo)
	returnRepo := new(mockReturnRepo)
	equipmentRepo := new(mockEquipmentRepo)
	svc := NewReturnService(tx, rentalRepo, returnRepo, equipmentRepo)

	reset := func() {
		tx.ExpectedCalls = nil
		tx.Calls = nil
		rentalRepo.ExpectedCalls = nil
		rentalRepo.Calls = nil
		returnRepo.ExpectedCalls = nil
		returnRepo.Calls = nil
		equipmentRepo.ExpectedCalls = nil
		equipmentRepo.Calls = nil
	}

	issuedRental := func(qty int32) *domain.Rental {
		return &domain.Rental{
			ID:          42,
			OrderID:     1,
			EquipmentID: 7,
			Quantity:    qty,
			DailyRate:   decimal.NewFromInt(100),
			IssueDate:   time.Now().Add(-72 * time.Hour),
			Status:      domain.RentalStatusIssued,
		}
	}

	t.Run("full return credits stock and closes the rental", func(t *testing.T) {
		reset()
		rental := issuedRental(3)
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)
		rentalRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		returnRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(0), int32(3)).Return(nil)
		equipmentRepo.On("SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusAvailable).Return(nil)

		ret, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42})
		assert.NoError(t, err)
		assert.Equal(t, int32(3), ret.Quantity)
		assert.Equal(t, domain.ReturnConditionOK, ret.Condition)
		assert.Equal(t, domain.RentalStatusReturned, rental.Status)
		assert.NotNil(t, rental.ActualReturnDate)
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(7), int32(0), int32(3))
	})

	t.Run("partial return leaves the rental active with the remainder", func(t *testing.T) {
		reset()
		rental := issuedRental(5)
		qty := int32(2)
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)
		rentalRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		returnRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(0), int32(2)).Return(nil)
		equipmentRepo.On("SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusAvailable).Return(nil)

		ret, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42, Quantity: &qty})
		assert.NoError(t, err)
		assert.Equal(t, int32(2), ret.Quantity)
		assert.Equal(t, int32(3), rental.Quantity)
		assert.Equal(t, domain.RentalStatusIssued, rental.Status)
		assert.Nil(t, rental.ActualReturnDate)
	})

	t.Run("returning a reservation never credits stock", func(t *testing.T) {
		reset()
		rental := issuedRental(3)
		rental.Status = domain.RentalStatusCreated
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)
		rentalRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		returnRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		equipmentRepo.On("SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusAvailable).Return(nil)

		_, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42})
		assert.NoError(t, err)
		equipmentRepo.AssertNotCalled(t, "AdjustStockTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("damaged return routes equipment to maintenance", func(t *testing.T) {
		reset()
		rental := issuedRental(1)
		cond := domain.ReturnConditionDamaged
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)
		rentalRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		returnRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(0), int32(1)).Return(nil)
		equipmentRepo.On("SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusMaintenance).Return(nil)

		ret, err := svc.ReturnRental(ctx, ReturnRentalInput{
			RentalID:    42,
			Condition:   &cond,
			DamageNotes: "bent boom arm",
			ExtraCharge: decimal.NewFromInt(250),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ReturnConditionDamaged, ret.Condition)
		assert.Equal(t, "bent boom arm", ret.DamageNotes)
		equipmentRepo.AssertCalled(t, "SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusMaintenance)
	})

	t.Run("double return is a conflict", func(t *testing.T) {
		reset()
		rental := issuedRental(3)
		rental.Status = domain.RentalStatusReturned
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)

		_, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42})
		assert.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.Contains(t, err.Error(), "already returned")
		returnRepo.AssertNotCalled(t, "CreateTx", ctx, mock.Anything, mock.Anything)
		equipmentRepo.AssertNotCalled(t, "AdjustStockTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("over-quantity return is rejected", func(t *testing.T) {
		reset()
		rental := issuedRental(3)
		qty := int32(5)
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)

		_, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42, Quantity: &qty})
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "exceeds remaining rental quantity")
	})

	t.Run("non-positive return quantity is rejected", func(t *testing.T) {
		reset()
		qty := int32(0)
		_, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42, Quantity: &qty})
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("explicit return date and batch are kept", func(t *testing.T) {
		reset()
		rental := issuedRental(1)
		when := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		batch := "return-batch-9"
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		rentalRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(42)).Return(rental, nil)
		rentalRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		returnRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(0), int32(1)).Return(nil)
		equipmentRepo.On("SetStatusTx", ctx, mock.Anything, int32(7), domain.EquipmentStatusAvailable).Return(nil)

		ret, err := svc.ReturnRental(ctx, ReturnRentalInput{RentalID: 42, ActualReturnDate: &when, BatchID: &batch})
		assert.NoError(t, err)
		assert.Equal(t, when, ret.ReturnedOn)
		assert.Equal(t, "return-batch-9", ret.BatchID)
		assert.Equal(t, when, *rental.ActualReturnDate)
	})
}
