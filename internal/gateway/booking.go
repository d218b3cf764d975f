package gateway

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) StartBookingHandler(w http.ResponseWriter, r *http.Request, showtimeID int) {
	logger := app.contextGetLogger(r)

	session, reused, err := app.flow.Start(r.Context(), showtimeID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("booking started", "session_id", session.ID, "showtime_id", showtimeID, "reused", reused)

	resp := api.BookingSessionResponse{
		Session: app.toApiSession(r.Context(), session),
		Reused:  reused,
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}

	err = app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	session, err := app.flow.Current(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.BookingSessionResponse{
		Session: app.toApiSession(r.Context(), session),
		Reused:  true,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	result, err := app.flow.Cancel(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.CancelResponse{ReleasedSeatIds: []int{}}

	if result != nil {
		resp = api.CancelResponse{
			BookingSessionId: result.SessionID,
			ShowtimeId:       result.ShowtimeID,
			ReleasedSeatIds:  nonNil(result.ReleasedSeatIDs),
			State:            string(result.State),
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// TouchBookingHandler extends the session. When the booking API is only
// temporarily unreachable the previous expiry is returned with extended
// set to false and the countdown carries on.
func (app *Application) TouchBookingHandler(w http.ResponseWriter, r *http.Request) {
	result, err := app.flow.Touch(r.Context())

	extended := err == nil
	if err != nil && !(result != nil && errors.Is(err, domain.ErrUpstream)) {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.TouchResponse{
		BookingSessionId:    result.SessionID,
		ExpiresAt:           result.ExpiresAt,
		LockedSeatsExtended: nonNil(result.LockedSeatsExtended),
		Extended:            extended,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
