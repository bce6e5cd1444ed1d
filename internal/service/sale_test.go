package service

import (
	"context"
	"testing"

	"equiprent-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSaleService(t *testing.T) {
	ctx := context.Background()

	tx := new(mockTransactor)
	saleRepo := new(mockSaleRepo)
	equipmentRepo := new(mockEquipmentRepo)
	svc := NewSaleService(tx, saleRepo, equipmentRepo)

	reset := func() {
		tx.ExpectedCalls = nil
		tx.Calls = nil
		saleRepo.ExpectedCalls = nil
		saleRepo.Calls = nil
		equipmentRepo.ExpectedCalls = nil
		equipmentRepo.Calls = nil
	}

	t.Run("sale debits total and available stock together", func(t *testing.T) {
		reset()
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(7)).Return(&domain.Equipment{ID: 7, TotalStock: 5, AvailableStock: 5}, nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(-2), int32(-2)).Return(nil)
		saleRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Sale).ID = 11
		}).Return(nil)
		saleRepo.On("CreateItemTx", ctx, mock.Anything, mock.Anything).Return(nil)

		sale, err := svc.Create(ctx, CreateSaleInput{
			Items: []SaleItemInput{{EquipmentID: 7, Quantity: 2, UnitPrice: decimal.NewFromInt(1500)}},
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(11), sale.ID)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(3000)))
		assert.Len(t, sale.Items, 1)
		assert.Equal(t, int32(11), sale.Items[0].SaleID)
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(7), int32(-2), int32(-2))
	})

	t.Run("multi-line sale sums line totals", func(t *testing.T) {
		reset()
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(7)).Return(&domain.Equipment{ID: 7, TotalStock: 5, AvailableStock: 5}, nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(8)).Return(&domain.Equipment{ID: 8, TotalStock: 3, AvailableStock: 3}, nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		saleRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)
		saleRepo.On("CreateItemTx", ctx, mock.Anything, mock.Anything).Return(nil)

		sale, err := svc.Create(ctx, CreateSaleInput{
			Items: []SaleItemInput{
				{EquipmentID: 7, Quantity: 1, UnitPrice: decimal.NewFromInt(1000)},
				{EquipmentID: 8, Quantity: 3, UnitPrice: decimal.NewFromInt(200)},
			},
		})
		assert.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(1600)))
	})

	t.Run("insufficient stock on any line aborts the sale", func(t *testing.T) {
		reset()
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(7)).Return(&domain.Equipment{ID: 7, TotalStock: 5, AvailableStock: 1}, nil)

		_, err := svc.Create(ctx, CreateSaleInput{
			Items: []SaleItemInput{{EquipmentID: 7, Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
		})
		assert.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		saleRepo.AssertNotCalled(t, "CreateTx", ctx, mock.Anything, mock.Anything)
	})

	t.Run("empty item list is rejected", func(t *testing.T) {
		reset()
		_, err := svc.Create(ctx, CreateSaleInput{})
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		reset()
		_, err := svc.Create(ctx, CreateSaleInput{
			Items: []SaleItemInput{{EquipmentID: 7, Quantity: 1, UnitPrice: decimal.NewFromInt(-5)}},
		})
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("delete restores each line's stock", func(t *testing.T) {
		reset()
		sale := &domain.Sale{
			ID: 11,
			Items: []domain.SaleItem{
				{EquipmentID: 7, Quantity: 2},
				{EquipmentID: 8, Quantity: 1},
			},
		}
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		saleRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(11)).Return(sale, nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(2), int32(2)).Return(nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(8), int32(1), int32(1)).Return(nil)
		saleRepo.On("DeleteTx", ctx, mock.Anything, int32(11)).Return(nil)

		err := svc.Delete(ctx, 11)
		assert.NoError(t, err)
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(7), int32(2), int32(2))
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(8), int32(1), int32(1))
	})
}

func TestWriteOffService(t *testing.T) {
	ctx := context.Background()

	tx := new(mockTransactor)
	writeOffRepo := new(mockWriteOffRepo)
	equipmentRepo := new(mockEquipmentRepo)
	svc := NewWriteOffService(tx, writeOffRepo, equipmentRepo)

	reset := func() {
		tx.ExpectedCalls = nil
		tx.Calls = nil
		writeOffRepo.ExpectedCalls = nil
		writeOffRepo.Calls = nil
		equipmentRepo.ExpectedCalls = nil
		equipmentRepo.Calls = nil
	}

	t.Run("write-off values the loss at purchase price times quantity", func(t *testing.T) {
		reset()
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(7)).Return(&domain.Equipment{
			ID: 7, TotalStock: 5, AvailableStock: 5, PurchasePrice: decimal.NewFromInt(1200),
		}, nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(-2), int32(-2)).Return(nil)
		writeOffRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.WriteOff).ID = 3
		}).Return(nil)
		writeOffRepo.On("CreateItemTx", ctx, mock.Anything, mock.Anything).Return(nil)

		wo, err := svc.Create(ctx, CreateWriteOffInput{
			Reason: "storm damage",
			Items:  []WriteOffItemInput{{EquipmentID: 7, Quantity: 2}},
		})
		assert.NoError(t, err)
		assert.True(t, wo.TotalValue.Equal(decimal.NewFromInt(2400)))
		assert.Len(t, wo.Items, 1)
		assert.True(t, wo.Items[0].LossValue.Equal(decimal.NewFromInt(2400)))
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(7), int32(-2), int32(-2))
	})

	t.Run("missing reason is rejected", func(t *testing.T) {
		reset()
		_, err := svc.Create(ctx, CreateWriteOffInput{Items: []WriteOffItemInput{{EquipmentID: 7, Quantity: 1}}})
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("insufficient stock is a conflict", func(t *testing.T) {
		reset()
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		equipmentRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(7)).Return(&domain.Equipment{
			ID: 7, TotalStock: 5, AvailableStock: 0, PurchasePrice: decimal.NewFromInt(1200),
		}, nil)

		_, err := svc.Create(ctx, CreateWriteOffInput{
			Reason: "lost",
			Items:  []WriteOffItemInput{{EquipmentID: 7, Quantity: 1}},
		})
		assert.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		writeOffRepo.AssertNotCalled(t, "CreateTx", ctx, mock.Anything, mock.Anything)
	})

	t.Run("delete restores the written-off quantities", func(t *testing.T) {
		reset()
		wo := &domain.WriteOff{ID: 3, Items: []domain.WriteOffItem{{EquipmentID: 7, Quantity: 2}}}
		tx.On("ExecTx", ctx, mock.Anything).Return(nil)
		writeOffRepo.On("GetForUpdateTx", ctx, mock.Anything, int32(3)).Return(wo, nil)
		equipmentRepo.On("AdjustStockTx", ctx, mock.Anything, int32(7), int32(2), int32(2)).Return(nil)
		writeOffRepo.On("DeleteTx", ctx, mock.Anything, int32(3)).Return(nil)

		err := svc.Delete(ctx, 3)
		assert.NoError(t, err)
		equipmentRepo.AssertCalled(t, "AdjustStockTx", ctx, mock.Anything, int32(7), int32(2), int32(2))
	})
}
