package service

import (
	"context"
	"strings"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
)

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
) OrderService {
	return &orderService{orderRepo: orderRepo, customerRepo: customerRepo, rentalRepo: rentalRepo}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if in.OrderNumber == "" {
		return nil, domain.NewValidationError("order number is required")
	}
	if _, err := s.customerRepo.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	exists, err := s.orderRepo.OrderNumberExists(ctx, in.OrderNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("order number %q already exists", in.OrderNumber)
	}

	order := &domain.Order{
		CustomerID:       in.CustomerID,
		OrderNumber:      in.OrderNumber,
		Status:           domain.OrderStatusOpen,
		EstimatedEndDate: in.EstimatedEndDate,
		Notes:            in.Notes,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("order created", "order_id", order.ID, "order_number", order.OrderNumber)
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id int32) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderService) Update(ctx context.Context, id int32, in UpdateOrderInput) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CustomerID != nil && *in.CustomerID != order.CustomerID {
		if _, err := s.customerRepo.GetByID(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
		order.CustomerID = *in.CustomerID
	}
	if in.OrderNumber != nil {
		num := strings.TrimSpace(*in.OrderNumber)
		if num == "" {
			return nil, domain.NewValidationError("order number is required")
		}
		if num != order.OrderNumber {
			exists, err := s.orderRepo.OrderNumberExists(ctx, num, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.NewValidationError("order number %q already exists", num)
			}
			order.OrderNumber = num
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case domain.OrderStatusOpen, domain.OrderStatusClosed, domain.OrderStatusCanceled:
		default:
			return nil, domain.NewValidationError("invalid order status %q", *in.Status)
		}
		if *in.Status != domain.OrderStatusOpen {
			active, err := s.rentalRepo.CountActiveByOrder(ctx, id)
			if err != nil {
				return nil, err
			}
			if active > 0 {
				return nil, domain.NewConflictError("order %d has %d unreturned rentals", id, active)
			}
		}
		order.Status = *in.Status
	}
	if in.EstimatedEndDate != nil {
		order.EstimatedEndDate = in.EstimatedEndDate
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id int32) error {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		return err
	}
	active, err := s.rentalRepo.CountActiveByOrder(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.NewConflictError("order %d has %d unreturned rentals", id, active)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("order deleted", "order_id", id)
	return nil
}
