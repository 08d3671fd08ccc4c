package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"dresscircle-checkout/internal/domain"
)

func confirmedOrder() *domain.Order {
	return &domain.Order{
		OrderNumber:   "ord-1",
		CustomerID:    42,
		CustomerEmail: "a@b.c",
		CustomerName:  "Ada",
		Items: []domain.RentalItem{{
			ID: "line-1", DressID: "dress-1", Quantity: 1,
			PricePerDayCents: 8000, PurchaseType: domain.PurchaseTypeRent,
			StartDate: "2025-06-14", EndDate: "2025-06-16",
		}},
		Summary: domain.OrderSummary{
			SubtotalCents: 24000, TaxCents: 2400, ShippingCents: 0,
			TotalCents: 26400, InitialDepositCents: 13200, RemainingPaymentCents: 13200,
			Currency: "USD", RentalDays: 3,
		},
		Status:          domain.OrderStatusConfirmed,
		PaymentIntentID: "pi_1",
	}
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Denormalizes the rental start date", func(t *testing.T) {
		order := confirmedOrder()

		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(order.OrderNumber, order.CustomerID, order.CustomerEmail, order.CustomerName,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
				int64(24000), int64(2400), int64(0), int64(26400),
				int64(13200), int64(13200), "USD", int32(3),
				string(domain.OrderStatusConfirmed), "pi_1", "2025-06-14").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, order)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), order.ID)
	})
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	cols := []string{"id", "order_number", "customer_id", "customer_email", "customer_name",
		"items", "photography_items", "subtotal_cents", "tax_cents", "shipping_cents",
		"total_cents", "initial_deposit_cents", "remaining_payment_cents", "currency",
		"rental_days", "status", "payment_intent_id", "created_on", "updated_on"}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
			WithArgs(int32(11), int32(42)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(11, "ord-1", 42, "a@b.c", "Ada", []byte(`[]`), []byte(`[]`),
					24000, 2400, 0, 26400, 13200, 13200, "USD", 3, "CONFIRMED", "pi_1", now, now))

		order, err := repo.GetByID(ctx, 42, 11)
		assert.NoError(t, err)
		assert.Equal(t, "ord-1", order.OrderNumber)
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
		assert.Equal(t, int64(13200), order.Summary.InitialDepositCents)
	})

	t.Run("Wrong customer", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
			WithArgs(int32(11), int32(99)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByID(ctx, 99, 11)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Unknown order", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(domain.OrderStatusDelivered), int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 404, domain.OrderStatusDelivered)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}
