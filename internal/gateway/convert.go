package gateway

import (
	"context"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) toApiSession(ctx context.Context, session *domain.BookingSession) api.BookingSession {
	remaining, _ := app.flow.Remaining(ctx)

	seatIDs := session.Items.SeatIDs
	if seatIDs == nil {
		seatIDs = []int{}
	}

	return api.BookingSession{
		BookingSessionId: session.ID,
		ShowtimeId:       session.ShowtimeID,
		State:            string(session.State),
		FlowState:        string(app.flow.State(ctx)),
		SeatIds:          seatIDs,
		Seats:            toApiSeats(session.Items.Seats),
		Combos:           toApiCombos(session.Items.Combos),
		VoucherCode:      session.Items.VoucherCode,
		Pricing:          toApiPricing(session.Pricing),
		ExpiresAt:        session.ExpiresAt,
		RemainingSeconds: int(remaining.Seconds()),
		Version:          session.Version,
	}
}

func toApiSeats(seats []domain.SeatSelection) []api.SessionSeat {
	apiSeats := make([]api.SessionSeat, len(seats))

	for i, v := range seats {
		apiSeats[i] = api.SessionSeat{
			SeatId:      v.SeatID,
			Label:       v.Label,
			LockedUntil: v.LockedUntil,
		}
	}

	return apiSeats
}

func toApiCombos(combos []domain.ComboSelection) []api.Combo {
	apiCombos := make([]api.Combo, len(combos))

	for i, v := range combos {
		apiCombos[i] = api.Combo{
			ServiceId: v.ServiceID,
			Name:      v.Name,
			Quantity:  v.Quantity,
			UnitPrice: v.UnitPrice,
			Total:     v.Total,
		}
	}

	return apiCombos
}

func toApiPricing(p domain.Pricing) api.Pricing {
	return api.Pricing{
		SeatsSubtotal:  p.SeatsSubtotal,
		CombosSubtotal: p.CombosSubtotal,
		Subtotal:       p.Subtotal,
		DiscountAmount: p.DiscountAmount,
		Fees:           p.Fees,
		Total:          p.Total,
		Currency:       p.Currency,
	}
}

func toApiSeatLock(result *domain.SeatLockResult) api.SeatLockResponse {
	return api.SeatLockResponse{
		BookingSessionId: result.SessionID,
		LockedSeatIds:    nonNil(result.LockedSeatIDs),
		LockedUntil:      result.LockedUntil,
		CurrentSeatIds:   nonNil(result.CurrentSeatIDs),
	}
}

func toDomainComboItems(items []api.ComboItem) []domain.ComboItem {
	domainItems := make([]domain.ComboItem, len(items))

	for i, v := range items {
		domainItems[i] = domain.ComboItem{
			ServiceID: v.ServiceId,
			Quantity:  v.Quantity,
		}
	}

	return domainItems
}

// nonNil keeps empty id lists as [] rather than null on the wire.
func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}

	return ids
}
