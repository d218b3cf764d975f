package booking

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// Checkout creates the payment for the active session. Afterwards the
// session accepts no more seat, combo or voucher changes, and a later Start
// leaves it to the payment and creates a new one.
func (f *Flow) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Checkout, error) {
	var result *domain.Checkout
	var sessionID string

	err := f.mutateRecord(ctx, func(record domain.CachedSessionRecord) (err error) {
		sessionID = record.ID
		result, err = f.api.CreateCheckout(ctx, record.ID, req)
		if err != nil {
			return err
		}

		if result.ExpiresAt.After(record.ExpiresAt) {
			record.ExpiresAt = result.ExpiresAt
		}

		f.states.transition(record.ID, domain.FlowStateCheckoutInitiated, record.ExpiresAt, f.clock.Now())
		f.watcher.MarkHandedOver(ctx, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "checkout created",
		"session_id", sessionID,
		"order_id", result.OrderID,
	)

	return result, nil
}
