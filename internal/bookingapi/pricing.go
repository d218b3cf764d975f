package bookingapi

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// PreviewPricing computes totals for the current selections and an optional
// hypothetical voucher. It does not change the session.
func (c *Client) PreviewPricing(ctx context.Context, sessionID string, voucherCode *string) (*domain.PricingPreview, error) {
	const op = "preview pricing"

	path, err := c.sessionPath(op, sessionID, "pricing", "preview")
	if err != nil {
		return nil, err
	}

	input := previewPricingRequest{VoucherCode: voucherCode}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp pricingPreviewResponse

	err = c.do(ctx, call{
		op:        op,
		kind:      kindVoucher,
		method:    http.MethodPost,
		path:      path,
		body:      input,
		out:       &resp,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.PricingPreview{
		SeatsSubtotal:  resp.SeatsSubtotal,
		CombosSubtotal: resp.CombosSubtotal,
		DiscountAmount: resp.DiscountAmount,
		Total:          resp.Total,
		Currency:       resp.Currency,
	}, nil
}

func (c *Client) ApplyVoucher(ctx context.Context, sessionID string, voucherCode string) (*domain.VoucherResult, error) {
	const op = "apply voucher"

	path, err := c.sessionPath(op, sessionID, "pricing", "apply-coupon")
	if err != nil {
		return nil, err
	}

	input := voucherRequest{VoucherCode: voucherCode}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp applyCouponResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindVoucher,
		method: http.MethodPost,
		path:   path,
		body:   input,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.VoucherResult{
		AppliedVoucher: resp.AppliedVoucher,
		DiscountAmount: resp.DiscountAmount,
		Pricing:        toDomainPricing(resp.Pricing),
		ExpiresAt:      resp.ExpiresAt,
	}, nil
}

// SetVoucher attaches a voucher code without returning recomputed pricing.
func (c *Client) SetVoucher(ctx context.Context, sessionID string, voucherCode string) (string, error) {
	const op = "set voucher"

	path, err := c.sessionPath(op, sessionID, "voucher")
	if err != nil {
		return "", err
	}

	input := voucherRequest{VoucherCode: voucherCode}

	err = c.validate(op, input)
	if err != nil {
		return "", err
	}

	var resp voucherResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindVoucher,
		method: http.MethodPut,
		path:   path,
		body:   input,
		out:    &resp,
	})
	if err != nil {
		return "", err
	}

	return resp.VoucherCode, nil
}

func (c *Client) RemoveVoucher(ctx context.Context, sessionID string) error {
	const op = "remove voucher"

	path, err := c.sessionPath(op, sessionID, "voucher")
	if err != nil {
		return err
	}

	return c.do(ctx, call{
		op:        op,
		kind:      kindPricing,
		method:    http.MethodDelete,
		path:      path,
		retryable: true,
	})
}
