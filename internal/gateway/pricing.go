package gateway

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
)

func (app *Application) PreviewPricingHandler(w http.ResponseWriter, r *http.Request) {
	var input api.PricingPreviewRequest

	// a preview without a voucher may have no body
	if !app.readOptionalInput(w, r, &input) {
		return
	}

	preview, err := app.flow.PreviewPricing(r.Context(), input.VoucherCode)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.PricingPreviewResponse{
		SeatsSubtotal:  preview.SeatsSubtotal,
		CombosSubtotal: preview.CombosSubtotal,
		DiscountAmount: preview.DiscountAmount,
		Total:          preview.Total,
		Currency:       preview.Currency,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ApplyVoucherHandler(w http.ResponseWriter, r *http.Request) {
	var input api.VoucherRequest

	if !app.readInput(w, r, &input) {
		return
	}

	result, err := app.flow.ApplyVoucher(r.Context(), input.VoucherCode)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ApplyVoucherResponse{
		AppliedVoucher: result.AppliedVoucher,
		DiscountAmount: result.DiscountAmount,
		Pricing:        toApiPricing(result.Pricing),
		ExpiresAt:      result.ExpiresAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) SetVoucherHandler(w http.ResponseWriter, r *http.Request) {
	var input api.VoucherRequest

	if !app.readInput(w, r, &input) {
		return
	}

	code, err := app.flow.SetVoucher(r.Context(), input.VoucherCode)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.VoucherResponse{VoucherCode: code}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RemoveVoucherHandler(w http.ResponseWriter, r *http.Request) {
	err := app.flow.RemoveVoucher(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "voucher removed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
