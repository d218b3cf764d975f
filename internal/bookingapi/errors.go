package bookingapi

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// APIError is returned for every failed call to the booking API. It
// unwraps to one of the domain sentinel errors.
type APIError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("booking api %s: %v", e.Op, e.Err)
	}

	if e.Message != "" {
		return fmt.Sprintf("booking api %s: %d %s: %v", e.Op, e.Status, e.Message, e.Err)
	}

	return fmt.Sprintf("booking api %s: %d: %v", e.Op, e.Status, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// opKind tells the error classifier which family of endpoints a status code
// came from. The same status means different things on different routes.
type opKind int

const (
	kindSession opKind = iota
	kindCreate
	kindSeats
	kindCombos
	kindPricing
	kindVoucher
	kindCheckout
)

var errorCodes = map[string]error{
	"UNAUTHORIZED":            domain.ErrAuthenticationRequired,
	"AUTHENTICATION_REQUIRED": domain.ErrAuthenticationRequired,
	"SHOWTIME_UNAVAILABLE":    domain.ErrShowtimeUnavailable,
	"SHOWTIME_SOLD_OUT":       domain.ErrShowtimeUnavailable,
	"SESSION_NOT_FOUND":       domain.ErrSessionNotFound,
	"SESSION_EXPIRED":         domain.ErrSessionExpired,
	"SEAT_UNAVAILABLE":        domain.ErrSeatUnavailable,
	"SEAT_LOCKED":             domain.ErrSeatUnavailable,
	"VOUCHER_INVALID":         domain.ErrVoucherInvalid,
	"VOUCHER_EXPIRED":         domain.ErrVoucherInvalid,
	"PAYMENT_PROVIDER_ERROR":  domain.ErrPaymentProviderError,
	"VALIDATION_ERROR":        domain.ErrValidation,
}

func classify(kind opKind, status int, code string) error {
	if err, ok := errorCodes[code]; ok {
		return err
	}

	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.ErrAuthenticationRequired
	case status == http.StatusNotFound:
		if kind == kindCreate {
			return domain.ErrShowtimeUnavailable
		}
		return domain.ErrSessionNotFound
	case status == http.StatusGone:
		return domain.ErrSessionExpired
	case status == http.StatusConflict:
		switch kind {
		case kindCreate:
			return domain.ErrShowtimeUnavailable
		case kindSeats:
			return domain.ErrSeatUnavailable
		case kindCheckout:
			return domain.ErrSessionExpired
		default:
			return domain.ErrValidation
		}
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		switch kind {
		case kindCreate:
			return domain.ErrShowtimeUnavailable
		case kindVoucher:
			return domain.ErrVoucherInvalid
		default:
			return domain.ErrValidation
		}
	case status == http.StatusPaymentRequired, status == http.StatusFailedDependency:
		return domain.ErrPaymentProviderError
	case status == http.StatusBadGateway && kind == kindCheckout:
		return domain.ErrPaymentProviderError
	default:
		return domain.ErrUpstream
	}
}

var errServiceID = fmt.Errorf("%w: service id must be greater than zero", domain.ErrValidation)
