package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/events"
	"dresscircle-checkout/internal/logger"
	"dresscircle-checkout/internal/payment"
	"dresscircle-checkout/internal/repository"
	"dresscircle-checkout/internal/utils"
)

type checkoutService struct {
	draftRepo repository.DraftOrderRepository
	orderRepo repository.OrderRepository
	gateway   payment.Gateway
	publisher events.Publisher
	emailSvc  EmailService
	opts      utils.SummaryOptions
}

func NewCheckoutService(
	draftRepo repository.DraftOrderRepository,
	orderRepo repository.OrderRepository,
	gateway payment.Gateway,
	publisher events.Publisher,
	emailSvc EmailService,
	opts utils.SummaryOptions,
) CheckoutService {
	return &checkoutService{
		draftRepo: draftRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		publisher: publisher,
		emailSvc:  emailSvc,
		opts:      opts,
	}
}

// summarize recomputes the full summary from a draft's snapshot. Every
// mutation path below goes through this from scratch; nothing in the service
// patches a previously computed summary.
func (s *checkoutService) summarize(draft *domain.DraftOrder) *domain.OrderSummary {
	items, services := draft.Snapshot()
	summary := utils.Summarize(items, services, s.opts)
	return &summary
}

func (s *checkoutService) getOrCreateDraft(ctx context.Context, customerID int32) (*domain.DraftOrder, error) {
	draft, err := s.draftRepo.GetByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		draft = &domain.DraftOrder{
			CustomerID: customerID,
			Status:     domain.DraftStatusBuilding,
		}
		if err := s.draftRepo.Create(ctx, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}
	return draft, err
}

// ensureBuilding rejects mutations while a payment attempt is in flight.
func ensureBuilding(draft *domain.DraftOrder) error {
	if draft.Status == domain.DraftStatusSubmitting {
		return domain.ErrSubmissionInFlight
	}
	return nil
}

func validateDateRange(startDate, endDate string) error {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDateRange, err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDateRange, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", domain.ErrInvalidDateRange, endDate, startDate)
	}
	return nil
}

func (s *checkoutService) GetDraft(ctx context.Context, customerID int32) (*domain.DraftOrder, *domain.OrderSummary, error) {
	draft, err := s.getOrCreateDraft(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return draft, s.summarize(draft), nil
}

func (s *checkoutService) AddRentalItem(ctx context.Context, customerID int32, item domain.RentalItem) (*domain.DraftOrder, *domain.OrderSummary, error) {
	logger.EnterMethod("checkoutService.AddRentalItem", "customerID", customerID, "dressID", item.DressID)

	if err := validateDateRange(item.StartDate, item.EndDate); err != nil {
		logger.ExitMethodWithError("checkoutService.AddRentalItem", err, "customerID", customerID)
		return nil, nil, err
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.PurchaseType == "" {
		item.PurchaseType = domain.PurchaseTypeRent
	}

	draft, err := s.getOrCreateDraft(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureBuilding(draft); err != nil {
		return nil, nil, err
	}

	// Same variant replaces the existing line instead of duplicating it.
	replaced := false
	for i := range draft.Items {
		if draft.Items[i].SameVariant(item) {
			item.ID = draft.Items[i].ID
			draft.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		item.ID = uuid.NewString()
		draft.Items = append(draft.Items, item)
	}

	if err := s.draftRepo.SaveItems(ctx, draft); err != nil {
		logger.ExitMethodWithError("checkoutService.AddRentalItem", err, "customerID", customerID)
		return nil, nil, err
	}

	logger.ExitMethod("checkoutService.AddRentalItem", "customerID", customerID, "replaced", replaced)
	return draft, s.summarize(draft), nil
}

func (s *checkoutService) AddServiceItem(ctx context.Context, customerID int32, item domain.ServiceItem) (*domain.DraftOrder, *domain.OrderSummary, error) {
	logger.EnterMethod("checkoutService.AddServiceItem", "customerID", customerID, "serviceID", item.ServiceID)

	if item.ServiceID == "" {
		return nil, nil, fmt.Errorf("service id is required")
	}

	draft, err := s.getOrCreateDraft(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureBuilding(draft); err != nil {
		return nil, nil, err
	}

	// One booking per service per draft: adding the same service again
	// overwrites its date and location rather than creating a second line.
	replaced := false
	for i := range draft.PhotographyItems {
		if draft.PhotographyItems[i].ServiceID == item.ServiceID {
			item.ID = draft.PhotographyItems[i].ID
			draft.PhotographyItems[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		item.ID = uuid.NewString()
		draft.PhotographyItems = append(draft.PhotographyItems, item)
	}

	if err := s.draftRepo.SaveItems(ctx, draft); err != nil {
		logger.ExitMethodWithError("checkoutService.AddServiceItem", err, "customerID", customerID)
		return nil, nil, err
	}

	logger.ExitMethod("checkoutService.AddServiceItem", "customerID", customerID, "replaced", replaced)
	return draft, s.summarize(draft), nil
}

func (s *checkoutService) RemoveItem(ctx context.Context, customerID int32, itemID string) (*domain.DraftOrder, *domain.OrderSummary, error) {
	logger.EnterMethod("checkoutService.RemoveItem", "customerID", customerID, "itemID", itemID)

	draft, err := s.getOrCreateDraft(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureBuilding(draft); err != nil {
		return nil, nil, err
	}

	found := false
	for i := range draft.Items {
		if draft.Items[i].ID == itemID {
			draft.Items = append(draft.Items[:i], draft.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		for i := range draft.PhotographyItems {
			if draft.PhotographyItems[i].ID == itemID {
				draft.PhotographyItems = append(draft.PhotographyItems[:i], draft.PhotographyItems[i+1:]...)
				found = true
				break
			}
		}
	}
	if !found {
		logger.ExitMethodWithError("checkoutService.RemoveItem", domain.ErrItemNotFound, "customerID", customerID)
		return nil, nil, domain.ErrItemNotFound
	}

	if err := s.draftRepo.SaveItems(ctx, draft); err != nil {
		return nil, nil, err
	}

	logger.ExitMethod("checkoutService.RemoveItem", "customerID", customerID)
	return draft, s.summarize(draft), nil
}

func (s *checkoutService) UpdateRentalDates(ctx context.Context, customerID int32, startDate, endDate string) (*domain.DraftOrder, *domain.OrderSummary, error) {
	logger.EnterMethod("checkoutService.UpdateRentalDates", "customerID", customerID, "start", startDate, "end", endDate)

	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, nil, err
	}

	draft, err := s.getOrCreateDraft(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureBuilding(draft); err != nil {
		return nil, nil, err
	}
	if len(draft.Items) == 0 {
		return nil, nil, domain.ErrEmptyDraft
	}

	// One rental window per order: the new window applies to every line.
	for i := range draft.Items {
		draft.Items[i].StartDate = startDate
		draft.Items[i].EndDate = endDate
	}

	if err := s.draftRepo.SaveItems(ctx, draft); err != nil {
		return nil, nil, err
	}

	logger.ExitMethod("checkoutService.UpdateRentalDates", "customerID", customerID)
	return draft, s.summarize(draft), nil
}

func (s *checkoutService) Submit(ctx context.Context, customerID int32, email, name, paymentMethodID string) (*domain.Order, error) {
	logger.EnterMethod("checkoutService.Submit", "customerID", customerID)

	draft, err := s.draftRepo.GetByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrEmptyDraft
	}
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, domain.ErrEmptyDraft
	}

	// Claim the one submission slot before anything slow happens. A losing
	// concurrent attempt gets ErrSubmissionInFlight here.
	if err := s.draftRepo.BeginSubmission(ctx, draft.ID); err != nil {
		logger.ExitMethodWithError("checkoutService.Submit", err, "customerID", customerID)
		return nil, err
	}

	// Re-derive the summary from the draft as it exists right now. The
	// charged amount is always consistent with the submitted item set.
	items, services := draft.Snapshot()
	summary := utils.Summarize(items, services, s.opts)

	orderNumber := uuid.NewString()
	result, err := s.gateway.ChargeDeposit(ctx, payment.ChargeRequest{
		AmountCents:     summary.InitialDepositCents,
		Currency:        summary.Currency,
		PaymentMethodID: paymentMethodID,
		CustomerID:      customerID,
		OrderNumber:     orderNumber,
	})
	if err != nil {
		// Release the guard and leave the draft intact so the customer can
		// retry without re-entering anything.
		if endErr := s.draftRepo.EndSubmission(ctx, draft.ID); endErr != nil {
			logger.Error("Failed to release submission guard after declined payment",
				"customerID", customerID, "draftID", draft.ID, "error", endErr)
		}
		logger.ExitMethodWithError("checkoutService.Submit", err, "customerID", customerID)
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:      orderNumber,
		CustomerID:       customerID,
		CustomerEmail:    email,
		CustomerName:     name,
		Items:            items,
		PhotographyItems: services,
		Summary:          summary,
		Status:           domain.OrderStatusConfirmed,
		PaymentIntentID:  result.PaymentIntentID,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The deposit is captured but the order row failed to persist. Keep
		// the draft so support can reconcile against the payment intent.
		logger.Error("Deposit captured but order persistence failed",
			"customerID", customerID, "order_number", orderNumber,
			"payment_intent_id", result.PaymentIntentID, "error", err)
		if endErr := s.draftRepo.EndSubmission(ctx, draft.ID); endErr != nil {
			logger.Error("Failed to release submission guard", "draftID", draft.ID, "error", endErr)
		}
		return nil, err
	}

	// Clear the draft exactly once, now that payment is confirmed.
	if err := s.draftRepo.Delete(ctx, draft.ID); err != nil {
		logger.Error("Failed to clear draft after confirmed order",
			"customerID", customerID, "draftID", draft.ID, "error", err)
	}

	// Confirmation side effects are best effort; a captured payment is never
	// rolled back because an email or event failed.
	if err := s.publisher.PublishOrderConfirmed(ctx, order); err != nil {
		logger.Error("Failed to publish order confirmed event",
			"order_number", orderNumber, "error", err)
	}
	if email != "" {
		if err := s.emailSvc.SendOrderConfirmation(ctx, email, name, order); err != nil {
			logger.Error("Failed to send order confirmation email",
				"order_number", orderNumber, "error", err)
		}
	}

	logger.ExitMethod("checkoutService.Submit", "customerID", customerID,
		"order_number", orderNumber, "deposit_cents", summary.InitialDepositCents)
	return order, nil
}
