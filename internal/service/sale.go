package service

import (
	"context"
	"database/sql"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type saleService struct {
	tx            repository.Transactor
	saleRepo      repository.SaleRepository
	equipmentRepo repository.EquipmentRepository
}

func NewSaleService(
	tx repository.Transactor,
	saleRepo repository.SaleRepository,
	equipmentRepo repository.EquipmentRepository,
) SaleService {
	return &saleService{tx: tx, saleRepo: saleRepo, equipmentRepo: equipmentRepo}
}

// Create records a sale with one or more line items. Every line debits the
// equipment's total and available stock together; any failure rolls the
// whole sale back, so no partial line-item commits are possible.
func (s *saleService) Create(ctx context.Context, in CreateSaleInput) (*domain.Sale, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("sale requires at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity must be positive")
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError("unit price must not be negative")
		}
	}

	soldOn := time.Now()
	if in.SoldOn != nil {
		soldOn = *in.SoldOn
	}

	sale := &domain.Sale{
		CustomerID: in.CustomerID,
		Notes:      in.Notes,
		CreatedBy:  in.UserID,
		SoldOn:     soldOn,
	}

	err := s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		total := decimal.Zero
		items := make([]domain.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			eq, err := s.equipmentRepo.GetForUpdateTx(ctx, tx, it.EquipmentID)
			if err != nil {
				return err
			}
			if it.Quantity > eq.AvailableStock {
				return domain.NewConflictError("insufficient stock for equipment %d: requested %d, available %d", eq.ID, it.Quantity, eq.AvailableStock)
			}
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, eq.ID, -it.Quantity, -it.Quantity); err != nil {
				return err
			}

			linePrice := it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity))
			total = total.Add(linePrice)
			items = append(items, domain.SaleItem{
				EquipmentID: it.EquipmentID,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  linePrice,
			})
		}

		sale.TotalAmount = total
		if err := s.saleRepo.CreateTx(ctx, tx, sale); err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
			if err := s.saleRepo.CreateItemTx(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		sale.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("sale recorded", "sale_id", sale.ID, "items", len(sale.Items), "total_amount", sale.TotalAmount)
	return sale, nil
}

func (s *saleService) Get(ctx context.Context, id int32) (*domain.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

func (s *saleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.saleRepo.List(ctx)
}

// Delete reverses the stock debit of every line item before removing the
// sale and its items.
func (s *saleService) Delete(ctx context.Context, id int32) error {
	return s.tx.ExecTx(ctx, func(tx *sql.Tx) error {
		sale, err := s.saleRepo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, it := range sale.Items {
			if err := s.equipmentRepo.AdjustStockTx(ctx, tx, it.EquipmentID, it.Quantity, it.Quantity); err != nil {
				return err
			}
		}
		return s.saleRepo.DeleteTx(ctx, tx, id)
	})
}
