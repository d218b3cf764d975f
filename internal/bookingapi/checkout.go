package bookingapi

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// CreateCheckout is the terminal call for a session: it returns the payment
// redirect URL. No seat, combo or voucher call may follow it.
func (c *Client) CreateCheckout(ctx context.Context, sessionID string, req domain.CheckoutRequest) (*domain.Checkout, error) {
	const op = "create checkout"

	path, err := c.sessionPath(op, sessionID, "checkout")
	if err != nil {
		return nil, err
	}

	input := checkoutRequest{
		Provider:  string(req.Provider),
		ReturnURL: req.ReturnURL,
		CancelURL: req.CancelURL,
	}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp checkoutResponse

	err = c.do(ctx, call{
		op:             op,
		kind:           kindCheckout,
		method:         http.MethodPost,
		path:           path,
		body:           input,
		out:            &resp,
		idempotencyKey: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Checkout{
		OrderID:    resp.OrderID,
		PaymentURL: resp.PaymentURL,
		State:      domain.SessionState(resp.State),
		ExpiresAt:  resp.ExpiresAt,
	}, nil
}
