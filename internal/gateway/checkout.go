package gateway

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CheckoutRequest

	if !app.readInput(w, r, &input) {
		return
	}

	checkout, err := app.flow.Checkout(r.Context(), domain.CheckoutRequest{
		Provider:  domain.PaymentProvider(input.Provider),
		ReturnURL: input.ReturnUrl,
		CancelURL: input.CancelUrl,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("checkout initiated", "order_id", checkout.OrderID, "provider", input.Provider)

	resp := api.CheckoutResponse{
		OrderId:    checkout.OrderID,
		PaymentUrl: checkout.PaymentURL,
		State:      string(checkout.State),
		ExpiresAt:  checkout.ExpiresAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
