package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pricing struct {
	SeatsSubtotal  decimal.Decimal
	CombosSubtotal decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Fees           decimal.Decimal
	Total          decimal.Decimal
	Currency       string
}

// PricingPreview is computed by the booking API for the current selections
// and a hypothetical voucher. It never changes the session.
type PricingPreview struct {
	SeatsSubtotal  decimal.Decimal
	CombosSubtotal decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Currency       string
}

type VoucherResult struct {
	AppliedVoucher string
	DiscountAmount decimal.Decimal
	Pricing        Pricing
	ExpiresAt      time.Time
}
