// Package api holds the JSON request and response bodies of the booking
// gateway.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	Action    *string   `json:"action,omitempty"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SeatsRequest struct {
	SeatIdList []int `json:"seatIds" validate:"required,min=1,max=10,unique,dive,gt=0"`
}

type ReplaceSeatsRequest struct {
	SeatIdList []int `json:"seatIds" validate:"max=10,unique,dive,gt=0"`
}

type ComboItem struct {
	ServiceId int `json:"serviceId" validate:"gt=0"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type CombosRequest struct {
	Items []ComboItem `json:"items" validate:"required,min=1,dive"`
}

type ReplaceCombosRequest struct {
	Items []ComboItem `json:"items" validate:"dive"`
}

type PricingPreviewRequest struct {
	VoucherCode *string `json:"voucherCode,omitempty" validate:"omitnil,voucher_code"`
}

type VoucherRequest struct {
	VoucherCode string `json:"voucherCode" validate:"required,voucher_code"`
}

type CheckoutRequest struct {
	Provider  string `json:"provider" validate:"required,payment_provider"`
	ReturnUrl string `json:"returnUrl" validate:"required,url"`
	CancelUrl string `json:"cancelUrl" validate:"required,url"`
}

type Pricing struct {
	SeatsSubtotal  decimal.Decimal `json:"seatsSubtotal"`
	CombosSubtotal decimal.Decimal `json:"combosSubtotal"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Fees           decimal.Decimal `json:"fees"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

type SessionSeat struct {
	SeatId      int       `json:"seatId"`
	Label       string    `json:"label"`
	LockedUntil time.Time `json:"lockedUntil"`
}

type Combo struct {
	ServiceId int             `json:"serviceId"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type BookingSession struct {
	BookingSessionId string        `json:"bookingSessionId"`
	ShowtimeId       int           `json:"showtimeId"`
	State            string        `json:"state"`
	FlowState        string        `json:"flowState"`
	SeatIds          []int         `json:"seatIds"`
	Seats            []SessionSeat `json:"seats"`
	Combos           []Combo       `json:"combos"`
	VoucherCode      *string       `json:"voucherCode"`
	Pricing          Pricing       `json:"pricing"`
	ExpiresAt        time.Time     `json:"expiresAt"`
	RemainingSeconds int           `json:"remainingSeconds"`
	Version          int           `json:"version"`
}

type BookingSessionResponse struct {
	Session BookingSession `json:"session"`
	Reused  bool           `json:"reused"`
}

type TouchResponse struct {
	BookingSessionId    string    `json:"bookingSessionId"`
	ExpiresAt           time.Time `json:"expiresAt"`
	LockedSeatsExtended []int     `json:"lockedSeatsExtended"`
	Extended            bool      `json:"extended"`
}

type CancelResponse struct {
	BookingSessionId string `json:"bookingSessionId,omitempty"`
	ShowtimeId       int    `json:"showtimeId,omitempty"`
	ReleasedSeatIds  []int  `json:"releasedSeatIds"`
	State            string `json:"state,omitempty"`
}

type SeatLockResponse struct {
	BookingSessionId string    `json:"bookingSessionId"`
	LockedSeatIds    []int     `json:"lockedSeatIds"`
	LockedUntil      time.Time `json:"lockedUntil"`
	CurrentSeatIds   []int     `json:"currentSeatIds"`
}

type ComboListResponse struct {
	Combos        []Combo `json:"combos"`
	TotalQuantity int     `json:"totalQuantity"`
}

type ComboReplaceResponse struct {
	TotalUnits int   `json:"totalUnits"`
	ComboIds   []int `json:"comboIds"`
}

type ComboRemoveResponse struct {
	RemovedServiceId int   `json:"removedServiceId"`
	TotalUnits       int   `json:"totalUnits"`
	ComboIds         []int `json:"comboIds"`
}

type PricingPreviewResponse struct {
	SeatsSubtotal  decimal.Decimal `json:"seatsSubtotal"`
	CombosSubtotal decimal.Decimal `json:"combosSubtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

type ApplyVoucherResponse struct {
	AppliedVoucher string          `json:"appliedVoucher"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Pricing        Pricing         `json:"pricing"`
	ExpiresAt      time.Time       `json:"expiresAt"`
}

type VoucherResponse struct {
	VoucherCode string `json:"voucherCode"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CheckoutResponse struct {
	OrderId    string    `json:"orderId"`
	PaymentUrl string    `json:"paymentUrl"`
	State      string    `json:"state"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
