package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/payment"
)

// MockDraftRepo
type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) Create(ctx context.Context, draft *domain.DraftOrder) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
func (m *MockDraftRepo) GetByCustomer(ctx context.Context, customerID int32) (*domain.DraftOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftOrder), args.Error(1)
}
func (m *MockDraftRepo) SaveItems(ctx context.Context, draft *domain.DraftOrder) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
func (m *MockDraftRepo) BeginSubmission(ctx context.Context, draftID int32) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}
func (m *MockDraftRepo) EndSubmission(ctx context.Context, draftID int32) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}
func (m *MockDraftRepo) Delete(ctx context.Context, draftID int32) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}
func (m *MockDraftRepo) DeleteStale(ctx context.Context, updatedBefore time.Time) (int64, error) {
	args := m.Called(ctx, updatedBefore)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDraftRepo) ReleaseStuck(ctx context.Context, submittingSince time.Time) (int64, error) {
	args := m.Called(ctx, submittingSince)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, customerID, orderID int32) (*domain.Order, error) {
	args := m.Called(ctx, customerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockOrderRepo) ListDueForReminder(ctx context.Context, startsOnOrBefore string) ([]domain.Order, error) {
	args := m.Called(ctx, startsOnOrBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) MarkReminderSent(ctx context.Context, orderID int32) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ChargeDeposit(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ChargeResult), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderConfirmed(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}
func (m *MockEmailService) SendRemainingPaymentReminder(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}
