package bookingapi

import (
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
)

type createSessionRequest struct {
	ShowtimeID int `json:"showtimeId" validate:"gt=0"`
}

type seatsRequest struct {
	SeatIDs []int `json:"seatIds" validate:"required,min=1,max=10,unique,dive,gt=0"`
}

// Replacing with an empty list releases every seat of the session.
type replaceSeatsRequest struct {
	SeatIDs []int `json:"seatIds" validate:"max=10,unique,dive,gt=0"`
}

type comboItem struct {
	ServiceID int `json:"serviceId" validate:"gt=0"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type upsertCombosRequest struct {
	Items []comboItem `json:"items" validate:"required,min=1,dive"`
}

type replaceCombosRequest struct {
	Items []comboItem `json:"items" validate:"dive"`
}

type previewPricingRequest struct {
	VoucherCode *string `json:"voucherCode,omitempty" validate:"omitnil,voucher_code"`
}

type voucherRequest struct {
	VoucherCode string `json:"voucherCode" validate:"required,voucher_code"`
}

type checkoutRequest struct {
	Provider  string `json:"provider" validate:"required,payment_provider"`
	ReturnURL string `json:"returnUrl" validate:"required,url"`
	CancelURL string `json:"cancelUrl" validate:"required,url"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sessionResponse struct {
	BookingSessionID string          `json:"bookingSessionId"`
	ShowtimeID       int             `json:"showtimeId"`
	State            string          `json:"state"`
	Items            sessionItems    `json:"items"`
	Pricing          pricingResponse `json:"pricing"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	Version          int             `json:"version"`
}

type sessionItems struct {
	SeatIDs     []int           `json:"seatIds"`
	Seats       []seatSelection `json:"seats"`
	Combos      []comboResponse `json:"combos"`
	VoucherCode *string         `json:"voucherCode"`
}

type seatSelection struct {
	SeatID      int       `json:"seatId"`
	Label       string    `json:"label"`
	LockedUntil time.Time `json:"lockedUntil"`
}

type comboResponse struct {
	ServiceID int             `json:"serviceId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type pricingResponse struct {
	SeatsSubtotal  decimal.Decimal `json:"seatsSubtotal"`
	CombosSubtotal decimal.Decimal `json:"combosSubtotal"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Fees           decimal.Decimal `json:"fees"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

type deleteSessionResponse struct {
	BookingSessionID string `json:"bookingSessionId"`
	ShowtimeID       int    `json:"showtimeId"`
	ReleasedSeatIDs  []int  `json:"releasedSeatIds"`
	State            string `json:"state"`
}

type touchResponse struct {
	BookingSessionID    string    `json:"bookingSessionId"`
	ExpiresAt           time.Time `json:"expiresAt"`
	LockedSeatsExtended []int     `json:"lockedSeatsExtended"`
}

type seatLockResponse struct {
	BookingSessionID string    `json:"bookingSessionId"`
	LockedSeatIDs    []int     `json:"lockedSeatIds"`
	LockedUntil      time.Time `json:"lockedUntil"`
	CurrentSeatIDs   []int     `json:"currentSeatIds"`
}

type comboListResponse struct {
	Combos        []comboResponse `json:"combos"`
	TotalQuantity int             `json:"totalQuantity"`
}

type comboReplaceResponse struct {
	TotalUnits int   `json:"totalUnits"`
	ComboIDs   []int `json:"comboIds"`
}

type comboRemoveResponse struct {
	RemovedServiceID int   `json:"removedServiceId"`
	TotalUnits       int   `json:"totalUnits"`
	ComboIDs         []int `json:"comboIds"`
}

type pricingPreviewResponse struct {
	SeatsSubtotal  decimal.Decimal `json:"seatsSubtotal"`
	CombosSubtotal decimal.Decimal `json:"combosSubtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

type applyCouponResponse struct {
	AppliedVoucher string          `json:"appliedVoucher"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Pricing        pricingResponse `json:"pricing"`
	ExpiresAt      time.Time       `json:"expiresAt"`
}

type voucherResponse struct {
	VoucherCode string `json:"voucherCode"`
}

type checkoutResponse struct {
	OrderID    string    `json:"orderId"`
	PaymentURL string    `json:"paymentUrl"`
	State      string    `json:"state"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func toDomainSession(resp sessionResponse) *domain.BookingSession {
	seats := make([]domain.SeatSelection, len(resp.Items.Seats))
	for i, v := range resp.Items.Seats {
		seats[i] = domain.SeatSelection{
			SeatID:      v.SeatID,
			Label:       v.Label,
			LockedUntil: v.LockedUntil,
		}
	}

	seatIDs := resp.Items.SeatIDs
	if seatIDs == nil {
		seatIDs = make([]int, len(seats))
		for i, v := range seats {
			seatIDs[i] = v.SeatID
		}
	}

	return &domain.BookingSession{
		ID:         resp.BookingSessionID,
		ShowtimeID: resp.ShowtimeID,
		State:      domain.SessionState(resp.State),
		Items: domain.SessionItems{
			SeatIDs:     seatIDs,
			Seats:       seats,
			Combos:      toDomainCombos(resp.Items.Combos),
			VoucherCode: resp.Items.VoucherCode,
		},
		Pricing:   toDomainPricing(resp.Pricing),
		ExpiresAt: resp.ExpiresAt,
		Version:   resp.Version,
	}
}

func toDomainCombos(combos []comboResponse) []domain.ComboSelection {
	selections := make([]domain.ComboSelection, len(combos))

	for i, v := range combos {
		selections[i] = domain.ComboSelection{
			ServiceID: v.ServiceID,
			Name:      v.Name,
			Quantity:  v.Quantity,
			UnitPrice: v.UnitPrice,
			Total:     v.Total,
		}
	}

	return selections
}

func toDomainPricing(p pricingResponse) domain.Pricing {
	return domain.Pricing{
		SeatsSubtotal:  p.SeatsSubtotal,
		CombosSubtotal: p.CombosSubtotal,
		Subtotal:       p.Subtotal,
		DiscountAmount: p.DiscountAmount,
		Fees:           p.Fees,
		Total:          p.Total,
		Currency:       p.Currency,
	}
}

func toComboItems(items []domain.ComboItem) []comboItem {
	wire := make([]comboItem, len(items))

	for i, v := range items {
		wire[i] = comboItem{ServiceID: v.ServiceID, Quantity: v.Quantity}
	}

	return wire
}

func toSeatLockResult(resp seatLockResponse) *domain.SeatLockResult {
	return &domain.SeatLockResult{
		SessionID:      resp.BookingSessionID,
		LockedSeatIDs:  resp.LockedSeatIDs,
		LockedUntil:    resp.LockedUntil,
		CurrentSeatIDs: resp.CurrentSeatIDs,
	}
}
