package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrMethodNotAllowed   = "The %s method is not supported for this resource"
	ErrEditConflict       = "Unable to update the booking due to a conflicting change, please try again"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrFailedValidation   = "One or more fields have invalid values"
)

const (
	actionRestartSession = "restart_session"
	actionRefreshSeatMap = "refresh_seat_map"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.errorResponseWithAction(w, r, status, message, "")
}

func (app *Application) errorResponseWithAction(w http.ResponseWriter, r *http.Request, status int, message, action string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	if action != "" {
		resp.Action = &action
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrors)),
	}

	for i, fe := range validationErrors {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		}
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse translates an error of the booking flow into a
// response in the caller's language. Errors outside the booking taxonomy are
// server errors.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		logger.Warn("booking api rejected the credentials", "error", err)
		app.errorResponse(w, r, http.StatusUnauthorized, localize(r, msgAuthenticationRequired))

	case errors.Is(err, domain.ErrNoActiveSession):
		app.errorResponseWithAction(w, r, http.StatusNotFound, localize(r, msgNoActiveSession), actionRestartSession)

	case errors.Is(err, domain.ErrSessionClosed):
		app.errorResponse(w, r, http.StatusConflict, localize(r, msgSessionClosed))

	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrSessionNotFound):
		logger.Info("booking session is no longer available", "error", err)
		app.errorResponseWithAction(w, r, http.StatusGone, localize(r, msgSessionExpired), actionRestartSession)

	case errors.Is(err, domain.ErrShowtimeUnavailable):
		app.errorResponse(w, r, http.StatusConflict, localize(r, msgShowtimeUnavailable))

	case errors.Is(err, domain.ErrSeatUnavailable):
		logger.Info("seat selection conflict", "error", err)
		app.errorResponseWithAction(w, r, http.StatusConflict, localize(r, msgSeatUnavailable), actionRefreshSeatMap)

	case errors.Is(err, domain.ErrVoucherInvalid):
		app.errorResponse(w, r, http.StatusBadRequest, localize(r, msgVoucherInvalid))

	case errors.Is(err, domain.ErrPaymentProviderError):
		logger.Warn("payment provider failed during checkout", "error", err)
		app.errorResponse(w, r, http.StatusBadGateway, localize(r, msgPaymentProvider))

	case errors.Is(err, domain.ErrValidation):
		app.errorResponse(w, r, http.StatusBadRequest, localize(r, msgValidation))

	case errors.Is(err, domain.ErrUpstream):
		logger.Error("booking api unavailable", "error", err)
		app.errorResponse(w, r, http.StatusServiceUnavailable, localize(r, msgUpstream))

	case errors.Is(err, context.Canceled):
		logger.Debug("request cancelled by client", "error", err)

	default:
		app.serverErrorResponse(w, r, err)
	}
}
