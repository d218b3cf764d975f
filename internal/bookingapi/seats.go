package bookingapi

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (c *Client) LockSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	return c.seatCall(ctx, "lock seats", http.MethodPost, sessionID, seatsRequest{SeatIDs: seatIDs})
}

func (c *Client) ReleaseSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	return c.seatCall(ctx, "release seats", http.MethodDelete, sessionID, seatsRequest{SeatIDs: seatIDs})
}

// ReplaceSeats swaps the session's seat locks for seatIDs in a single
// request, so there is no window in which the old seats are released and
// the new ones not yet held.
func (c *Client) ReplaceSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	if seatIDs == nil {
		seatIDs = []int{}
	}

	return c.seatCall(ctx, "replace seats", http.MethodPut, sessionID, replaceSeatsRequest{SeatIDs: seatIDs})
}

func (c *Client) seatCall(ctx context.Context, op, method, sessionID string, input any) (*domain.SeatLockResult, error) {
	path, err := c.sessionPath(op, sessionID, "seats")
	if err != nil {
		return nil, err
	}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp seatLockResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindSeats,
		method: method,
		path:   path,
		body:   input,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return toSeatLockResult(resp), nil
}
