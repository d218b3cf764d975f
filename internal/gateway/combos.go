package gateway

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
)

func (app *Application) ListCombosHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.flow.ListCombos(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ComboListResponse{
		Combos:        toApiCombos(list.Combos),
		TotalQuantity: list.TotalQuantity,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpsertCombosHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CombosRequest

	if !app.readInput(w, r, &input) {
		return
	}

	list, err := app.flow.UpsertCombos(r.Context(), toDomainComboItems(input.Items))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ComboListResponse{
		Combos:        toApiCombos(list.Combos),
		TotalQuantity: list.TotalQuantity,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReplaceCombosHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ReplaceCombosRequest

	if !app.readInput(w, r, &input) {
		return
	}

	result, err := app.flow.ReplaceCombos(r.Context(), toDomainComboItems(input.Items))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ComboReplaceResponse{
		TotalUnits: result.TotalUnits,
		ComboIds:   nonNil(result.ComboIDs),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RemoveComboHandler(w http.ResponseWriter, r *http.Request, serviceID int) {
	if serviceID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("service ID must be greater than zero"))
		return
	}

	result, err := app.flow.RemoveCombo(r.Context(), serviceID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ComboRemoveResponse{
		RemovedServiceId: result.RemovedServiceID,
		TotalUnits:       result.TotalUnits,
		ComboIds:         nonNil(result.ComboIDs),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
