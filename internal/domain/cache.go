package domain

import (
	"context"
	"time"
)

// CachePurpose names a cache slot. A slot holds at most one record.
type CachePurpose string

const CachePurposeBookingSession CachePurpose = "booking_session"

// Handover is the slot marking the session of p as gone to checkout.
func (p CachePurpose) Handover() CachePurpose {
	return p + "_checkout"
}

// CachedSessionRecord is the locally persisted projection of the active
// booking session. It may be stale.
type CachedSessionRecord struct {
	ID         string    `json:"id"`
	ExpiresAt  time.Time `json:"expiresAt"`
	ShowtimeID int       `json:"showtimeId"`
}

func (r CachedSessionRecord) ExpiredAt(t time.Time) bool {
	return !t.Before(r.ExpiresAt)
}

// SessionCache stores cached session records. Get returns (nil, nil) when the
// slot is empty.
type SessionCache interface {
	Get(ctx context.Context, purpose CachePurpose) (*CachedSessionRecord, error)
	Set(ctx context.Context, purpose CachePurpose, record CachedSessionRecord) error
	Clear(ctx context.Context, purpose CachePurpose) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
