package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

var _ domain.BookingAPI = (*Client)(nil)

// CreateSession opens a new booking session for a showtime.
func (c *Client) CreateSession(ctx context.Context, showtimeID int) (*domain.BookingSession, error) {
	const op = "create session"

	input := createSessionRequest{ShowtimeID: showtimeID}

	err := c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp sessionResponse

	err = c.do(ctx, call{
		op:             op,
		kind:           kindCreate,
		method:         http.MethodPost,
		path:           sessionsPath,
		body:           input,
		out:            &resp,
		idempotencyKey: true,
	})
	if err != nil {
		return nil, err
	}

	return toDomainSession(resp), nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	const op = "get session"

	path, err := c.sessionPath(op, sessionID)
	if err != nil {
		return nil, err
	}

	var resp sessionResponse

	err = c.do(ctx, call{
		op:        op,
		kind:      kindSession,
		method:    http.MethodGet,
		path:      path,
		out:       &resp,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}

	return toDomainSession(resp), nil
}

// TouchSession extends the session expiry and the locks of its seats.
func (c *Client) TouchSession(ctx context.Context, sessionID string) (*domain.TouchResult, error) {
	const op = "touch session"

	path, err := c.sessionPath(op, sessionID, "touch")
	if err != nil {
		return nil, err
	}

	var resp touchResponse

	err = c.do(ctx, call{
		op:        op,
		kind:      kindSession,
		method:    http.MethodPost,
		path:      path,
		out:       &resp,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.TouchResult{
		SessionID:           resp.BookingSessionID,
		ExpiresAt:           resp.ExpiresAt,
		LockedSeatsExtended: resp.LockedSeatsExtended,
	}, nil
}

// DeleteSession releases every seat held by the session. A session that is
// already gone yields an error wrapping domain.ErrSessionNotFound.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (*domain.DeleteResult, error) {
	const op = "delete session"

	path, err := c.sessionPath(op, sessionID)
	if err != nil {
		return nil, err
	}

	var resp deleteSessionResponse

	err = c.do(ctx, call{
		op:        op,
		kind:      kindSession,
		method:    http.MethodDelete,
		path:      path,
		out:       &resp,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.DeleteResult{
		SessionID:       resp.BookingSessionID,
		ShowtimeID:      resp.ShowtimeID,
		ReleasedSeatIDs: resp.ReleasedSeatIDs,
		State:           domain.SessionState(resp.State),
	}, nil
}

func (c *Client) sessionPath(op, sessionID string, suffix ...string) (string, error) {
	err := requireSessionID(op, sessionID)
	if err != nil {
		return "", err
	}

	path, err := sessionPath(sessionID, suffix...)
	if err != nil {
		return "", &APIError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrValidation, err)}
	}

	return path, nil
}
