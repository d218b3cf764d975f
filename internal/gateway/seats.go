package gateway

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) LockSeatsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SeatsRequest

	if !app.readInput(w, r, &input) {
		return
	}

	result, err := app.flow.LockSeats(r.Context(), input.SeatIdList)
	app.seatLockResponse(w, r, result, err)
}

func (app *Application) ReplaceSeatsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ReplaceSeatsRequest

	if !app.readInput(w, r, &input) {
		return
	}

	result, err := app.flow.ReplaceSeats(r.Context(), input.SeatIdList)
	app.seatLockResponse(w, r, result, err)
}

func (app *Application) ReleaseSeatsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SeatsRequest

	if !app.readInput(w, r, &input) {
		return
	}

	result, err := app.flow.ReleaseSeats(r.Context(), input.SeatIdList)
	app.seatLockResponse(w, r, result, err)
}

func (app *Application) seatLockResponse(w http.ResponseWriter, r *http.Request, result *domain.SeatLockResult, err error) {
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiSeatLock(result), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
