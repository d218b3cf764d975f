package booking

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// LockSeats adds seatIDs to the session's locks. A seat held by another
// session fails with domain.ErrSeatUnavailable; callers should refresh the
// seat map rather than retry.
func (f *Flow) LockSeats(ctx context.Context, seatIDs []int) (*domain.SeatLockResult, error) {
	var result *domain.SeatLockResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.LockSeats(ctx, sessionID, seatIDs)
		return err
	})

	return result, err
}

func (f *Flow) ReleaseSeats(ctx context.Context, seatIDs []int) (*domain.SeatLockResult, error) {
	var result *domain.SeatLockResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.ReleaseSeats(ctx, sessionID, seatIDs)
		return err
	})

	return result, err
}

// ReplaceSeats swaps the whole seat selection in one booking API call.
func (f *Flow) ReplaceSeats(ctx context.Context, seatIDs []int) (*domain.SeatLockResult, error) {
	var result *domain.SeatLockResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.ReplaceSeats(ctx, sessionID, seatIDs)
		return err
	})

	return result, err
}
