package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrShowtimeUnavailable    = errors.New("showtime is not available for booking")
	ErrSessionNotFound        = errors.New("booking session not found")
	ErrSessionExpired         = errors.New("booking session has expired")
	ErrSeatUnavailable        = errors.New("one or more seats are held by another session")
	ErrVoucherInvalid         = errors.New("voucher is invalid or has expired")
	ErrPaymentProviderError   = errors.New("payment provider could not set up the payment")
	ErrUpstream               = errors.New("booking service is unavailable")
	ErrValidation             = errors.New("invalid input")

	ErrNoActiveSession = fmt.Errorf("%w: there is no active booking session", ErrValidation)
	ErrSessionClosed   = fmt.Errorf("%w: booking session no longer accepts changes", ErrValidation)
)
