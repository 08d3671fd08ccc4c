package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"dresscircle-checkout/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func formatCents(cents int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))

	cur := order.Summary.Currency
	body := fmt.Sprintf("Hello %s,\n\nThank you for your order %s.\n\n"+
		"Subtotal: %s\nTax: %s\nShipping: %s\nTotal: %s\n\n"+
		"Deposit paid today: %s\nRemaining payment due: %s\n\n"+
		"Best regards,\nThe DressCircle Team",
		name, order.OrderNumber,
		formatCents(order.Summary.SubtotalCents, cur),
		formatCents(order.Summary.TaxCents, cur),
		formatCents(order.Summary.ShippingCents, cur),
		formatCents(order.Summary.TotalCents, cur),
		formatCents(order.Summary.InitialDepositCents, cur),
		formatCents(order.Summary.RemainingPaymentCents, cur))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}

func (s *emailService) SendRemainingPaymentReminder(ctx context.Context, email, name string, order *domain.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Remaining payment due for order %s", order.OrderNumber))

	body := fmt.Sprintf("Hello %s,\n\nYour rental for order %s starts soon.\n\n"+
		"Remaining payment due: %s\n\n"+
		"Best regards,\nThe DressCircle Team",
		name, order.OrderNumber,
		formatCents(order.Summary.RemainingPaymentCents, order.Summary.Currency))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payment reminder: %w", err)
	}

	return nil
}
