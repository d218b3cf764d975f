package booking

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// PreviewPricing never changes the session, so it is allowed after checkout
// too.
func (f *Flow) PreviewPricing(ctx context.Context, voucherCode *string) (*domain.PricingPreview, error) {
	var result *domain.PricingPreview

	err := f.read(ctx, func(sessionID string) (err error) {
		result, err = f.api.PreviewPricing(ctx, sessionID, voucherCode)
		return err
	})

	return result, err
}

// ApplyVoucher commits a voucher. An invalid code fails with
// domain.ErrVoucherInvalid and leaves the session's pricing as it was.
func (f *Flow) ApplyVoucher(ctx context.Context, voucherCode string) (*domain.VoucherResult, error) {
	var result *domain.VoucherResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.ApplyVoucher(ctx, sessionID, voucherCode)
		return err
	})

	return result, err
}

func (f *Flow) SetVoucher(ctx context.Context, voucherCode string) (string, error) {
	var code string

	err := f.mutate(ctx, func(sessionID string) (err error) {
		code, err = f.api.SetVoucher(ctx, sessionID, voucherCode)
		return err
	})

	return code, err
}

func (f *Flow) RemoveVoucher(ctx context.Context) error {
	return f.mutate(ctx, func(sessionID string) error {
		return f.api.RemoveVoucher(ctx, sessionID)
	})
}
