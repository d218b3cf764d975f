package domain

import "time"

type PaymentProvider string

const (
	PaymentProviderStripe PaymentProvider = "stripe"
	PaymentProviderPayPal PaymentProvider = "paypal"
	PaymentProviderVNPay  PaymentProvider = "vnpay"
	PaymentProviderMoMo   PaymentProvider = "momo"
)

type CheckoutRequest struct {
	Provider  PaymentProvider
	ReturnURL string
	CancelURL string
}

type Checkout struct {
	OrderID    string
	PaymentURL string
	State      SessionState
	ExpiresAt  time.Time
}
