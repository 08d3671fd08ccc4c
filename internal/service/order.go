package service

import (
	"context"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/logger"
	"dresscircle-checkout/internal/repository"
)

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error) {
	logger.EnterMethod("orderService.ListOrders", "customerID", customerID, "page", page)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := s.orderRepo.ListByCustomer(ctx, customerID, page, pageSize)
	if err != nil {
		logger.ExitMethodWithError("orderService.ListOrders", err, "customerID", customerID)
		return nil, 0, err
	}

	logger.ExitMethod("orderService.ListOrders", "customerID", customerID, "count", len(orders))
	return orders, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, customerID, orderID int32) (*domain.Order, error) {
	logger.EnterMethod("orderService.GetOrder", "customerID", customerID, "orderID", orderID)

	order, err := s.orderRepo.GetByID(ctx, customerID, orderID)
	if err != nil {
		logger.ExitMethodWithError("orderService.GetOrder", err, "customerID", customerID)
		return nil, err
	}

	logger.ExitMethod("orderService.GetOrder", "customerID", customerID, "orderID", orderID)
	return order, nil
}
