package jobs

import (
	"context"
	"time"

	"dresscircle-checkout/internal/logger"
)

// ExpireStaleDrafts deletes abandoned draft orders that have not been touched
// within the configured TTL.
func (jr *JobRunner) ExpireStaleDrafts() {
	jr.runWithRecovery("ExpireStaleDrafts", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Checkout.DraftTTLDays)

		deleted, err := jr.store.DraftOrderRepository.DeleteStale(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale drafts", "error", err)
			return
		}
		logger.Info("Expired stale drafts", "deleted", deleted, "cutoff", cutoff.Format("2006-01-02"))
	})
}

// ReleaseStuckSubmissions returns drafts stuck in SUBMITTING back to BUILDING
// after the submission timeout. This is crash recovery for the submission
// guard: a server that died mid-payment would otherwise lock its customer's
// draft forever.
func (jr *JobRunner) ReleaseStuckSubmissions() {
	jr.runWithRecovery("ReleaseStuckSubmissions", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Checkout.SubmissionTimeoutMinutes) * time.Minute)

		released, err := jr.store.DraftOrderRepository.ReleaseStuck(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to release stuck submissions", "error", err)
			return
		}
		if released > 0 {
			logger.Warn("Released stuck submissions", "released", released)
		}
	})
}

// SendRemainingPaymentReminders emails customers whose confirmed rental
// starts within the configured lead time and who still owe the remaining
// half of the total.
func (jr *JobRunner) SendRemainingPaymentReminders() {
	jr.runWithRecovery("SendRemainingPaymentReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, jr.config.Checkout.ReminderLeadDays).Format("2006-01-02")

		orders, err := jr.store.OrderRepository.ListDueForReminder(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list orders due for reminder", "error", err)
			return
		}

		sent := 0
		for _, order := range orders {
			if order.CustomerEmail == "" {
				continue
			}
			if err := jr.services.Email.SendRemainingPaymentReminder(ctx, order.CustomerEmail, order.CustomerName, &order); err != nil {
				logger.Error("Failed to send payment reminder",
					"order_number", order.OrderNumber, "error", err)
				continue
			}
			if err := jr.store.OrderRepository.MarkReminderSent(ctx, order.ID); err != nil {
				logger.Error("Failed to mark reminder sent",
					"order_number", order.OrderNumber, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent remaining payment reminders", "due", len(orders), "sent", sent)
	})
}
