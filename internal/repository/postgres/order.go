package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, customer_id, COALESCE(customer_email, ''), COALESCE(customer_name, ''), items, photography_items,
	subtotal_cents, tax_cents, shipping_cents, total_cents,
	initial_deposit_cents, remaining_payment_cents, currency, rental_days,
	status, COALESCE(payment_intent_id, ''), created_on, updated_on`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal rental items: %w", err)
	}
	services, err := json.Marshal(order.PhotographyItems)
	if err != nil {
		return fmt.Errorf("failed to marshal photography items: %w", err)
	}

	// rental_start_date is denormalized from the first rental line so the
	// reminder job can filter without unpacking JSON.
	var rentalStart any
	if len(order.Items) > 0 && order.Items[0].StartDate != "" {
		rentalStart = order.Items[0].StartDate
	}

	query := `INSERT INTO orders (order_number, customer_id, customer_email, customer_name, items, photography_items,
	            subtotal_cents, tax_cents, shipping_cents, total_cents,
	            initial_deposit_cents, remaining_payment_cents, currency, rental_days,
	            status, payment_intent_id, rental_start_date, reminder_sent, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, FALSE, NOW(), NOW())
	          RETURNING id`
	s := order.Summary
	return r.db.QueryRowContext(ctx, query,
		order.OrderNumber, order.CustomerID, order.CustomerEmail, order.CustomerName, items, services,
		s.SubtotalCents, s.TaxCents, s.ShippingCents, s.TotalCents,
		s.InitialDepositCents, s.RemainingPaymentCents, s.Currency, s.RentalDays,
		order.Status, order.PaymentIntentID, rentalStart).Scan(&order.ID)
}

func (r *orderRepository) scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	order := &domain.Order{}
	var items, services []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(&order.ID, &order.OrderNumber, &order.CustomerID,
		&order.CustomerEmail, &order.CustomerName, &items, &services,
		&order.Summary.SubtotalCents, &order.Summary.TaxCents, &order.Summary.ShippingCents,
		&order.Summary.TotalCents, &order.Summary.InitialDepositCents,
		&order.Summary.RemainingPaymentCents, &order.Summary.Currency, &order.Summary.RentalDays,
		&order.Status, &order.PaymentIntentID, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rental items: %w", err)
		}
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &order.PhotographyItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal photography items: %w", err)
		}
	}
	order.CreatedOn = createdOn.Format("2006-01-02")
	order.UpdatedOn = updatedOn.Format("2006-01-02")
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, customerID, orderID int32) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND customer_id = $2`
	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, orderID, customerID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	return order, err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM orders WHERE customer_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_on = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListDueForReminder(ctx context.Context, startsOnOrBefore string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE status = $1 AND reminder_sent = FALSE
	            AND rental_start_date IS NOT NULL AND rental_start_date <= $2
	          ORDER BY rental_start_date`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusConfirmed, startsOnOrBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) MarkReminderSent(ctx context.Context, orderID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET reminder_sent = TRUE, updated_on = NOW() WHERE id = $1`, orderID)
	return err
}
