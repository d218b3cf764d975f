package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SessionState is the lifecycle state reported by the booking API. The
// client treats it as an opaque string.
type SessionState string

type BookingSession struct {
	ID         string
	ShowtimeID int
	State      SessionState
	Items      SessionItems
	Pricing    Pricing
	ExpiresAt  time.Time
	Version    int
}

type SessionItems struct {
	SeatIDs     []int
	Seats       []SeatSelection
	Combos      []ComboSelection
	VoucherCode *string
}

type SeatSelection struct {
	SeatID      int
	Label       string
	LockedUntil time.Time
}

type ComboItem struct {
	ServiceID int
	Quantity  int
}

type ComboSelection struct {
	ServiceID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// ExpiredAt reports whether the session can no longer be mutated at t.
func (s *BookingSession) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

func (s *BookingSession) Record() CachedSessionRecord {
	return CachedSessionRecord{
		ID:         s.ID,
		ShowtimeID: s.ShowtimeID,
		ExpiresAt:  s.ExpiresAt,
	}
}

type SeatLockResult struct {
	SessionID      string
	LockedSeatIDs  []int
	LockedUntil    time.Time
	CurrentSeatIDs []int
}

type TouchResult struct {
	SessionID           string
	ExpiresAt           time.Time
	LockedSeatsExtended []int
}

type DeleteResult struct {
	SessionID       string
	ShowtimeID      int
	ReleasedSeatIDs []int
	State           SessionState
}

type ComboList struct {
	Combos        []ComboSelection
	TotalQuantity int
}

type ComboReplaceResult struct {
	TotalUnits int
	ComboIDs   []int
}

type ComboRemoveResult struct {
	RemovedServiceID int
	TotalUnits       int
	ComboIDs         []int
}

// BookingAPI is the remote service owning booking sessions, seat inventory,
// pricing and checkout.
type BookingAPI interface {
	CreateSession(ctx context.Context, showtimeID int) (*BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*BookingSession, error)
	TouchSession(ctx context.Context, sessionID string) (*TouchResult, error)
	DeleteSession(ctx context.Context, sessionID string) (*DeleteResult, error)

	LockSeats(ctx context.Context, sessionID string, seatIDs []int) (*SeatLockResult, error)
	ReleaseSeats(ctx context.Context, sessionID string, seatIDs []int) (*SeatLockResult, error)
	ReplaceSeats(ctx context.Context, sessionID string, seatIDs []int) (*SeatLockResult, error)

	ListCombos(ctx context.Context, sessionID string) (*ComboList, error)
	UpsertCombos(ctx context.Context, sessionID string, items []ComboItem) (*ComboList, error)
	ReplaceCombos(ctx context.Context, sessionID string, items []ComboItem) (*ComboReplaceResult, error)
	RemoveCombo(ctx context.Context, sessionID string, serviceID int) (*ComboRemoveResult, error)

	PreviewPricing(ctx context.Context, sessionID string, voucherCode *string) (*PricingPreview, error)
	ApplyVoucher(ctx context.Context, sessionID string, voucherCode string) (*VoucherResult, error)
	SetVoucher(ctx context.Context, sessionID string, voucherCode string) (string, error)
	RemoveVoucher(ctx context.Context, sessionID string) error

	CreateCheckout(ctx context.Context, sessionID string, req CheckoutRequest) (*Checkout, error)
}
