package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	unavailableShowtimeID = 999
	validVoucherCode      = "SUMMER10"
)

var seatPrice = decimal.RequireFromString("10.00")

// bookingAPIServer is an in-memory booking API. It owns seat locks across
// sessions the way the real service does.
type bookingAPIServer struct {
	mu         sync.Mutex
	sessions   map[string]*remoteSession
	seatOwners map[int]string
	deleted    []string
	nextID     int
	lifetime   time.Duration
}

type remoteSession struct {
	id         string
	showtimeID int
	state      string
	seats      []int
	voucher    *string
	expiresAt  time.Time
	version    int
}

func newBookingAPIServer() *bookingAPIServer {
	return &bookingAPIServer{
		sessions:   make(map[string]*remoteSession),
		seatOwners: make(map[int]string),
		lifetime:   10 * time.Minute,
	}
}

func (b *bookingAPIServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/booking/sessions", func(r chi.Router) {
		r.Post("/", b.createSession)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", b.withSession(b.getSession))
			r.Delete("/", b.withSession(b.deleteSession))
			r.Post("/touch", b.withSession(b.touchSession))

			r.Post("/seats", b.withSession(b.lockSeats))
			r.Put("/seats", b.withSession(b.replaceSeats))
			r.Delete("/seats", b.withSession(b.releaseSeats))

			r.Get("/combos", b.withSession(b.listCombos))

			r.Post("/pricing/preview", b.withSession(b.previewPricing))
			r.Post("/pricing/apply-coupon", b.withSession(b.applyCoupon))

			r.Post("/checkout", b.withSession(b.checkout))
		})
	})

	return r
}

func (b *bookingAPIServer) deletedSessions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.deleted)
}

// expire moves every session's expiry into the past.
func (b *bookingAPIServer) expire() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.sessions {
		s.expiresAt = time.Now().Add(-time.Second)
	}
}

func (b *bookingAPIServer) createSession(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ShowtimeID int `json:"showtimeId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ShowtimeID < 1 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	if input.ShowtimeID == unavailableShowtimeID {
		writeAPIError(w, http.StatusNotFound, "SHOWTIME_UNAVAILABLE")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &remoteSession{
		id:         fmt.Sprintf("bs_%d", b.nextID),
		showtimeID: input.ShowtimeID,
		state:      "ACTIVE",
		expiresAt:  time.Now().Add(b.lifetime).UTC().Truncate(time.Second),
		version:    1,
	}
	b.sessions[s.id] = s

	writeAPIJSON(w, http.StatusCreated, s.detail())
}

// withSession resolves the session of the path and holds the server lock
// while next runs.
func (b *bookingAPIServer) withSession(next func(w http.ResponseWriter, r *http.Request, s *remoteSession)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		s, ok := b.sessions[chi.URLParam(r, "sessionId")]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "SESSION_NOT_FOUND")
			return
		}

		if !time.Now().Before(s.expiresAt) && s.state == "ACTIVE" {
			writeAPIError(w, http.StatusGone, "SESSION_EXPIRED")
			return
		}

		next(w, r, s)
	}
}

func (b *bookingAPIServer) getSession(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	writeAPIJSON(w, http.StatusOK, s.detail())
}

func (b *bookingAPIServer) deleteSession(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	released := b.release(s, s.seats)

	delete(b.sessions, s.id)
	b.deleted = append(b.deleted, s.id)

	writeAPIJSON(w, http.StatusOK, map[string]any{
		"bookingSessionId": s.id,
		"showtimeId":       s.showtimeID,
		"releasedSeatIds":  released,
		"state":            "CANCELLED",
	})
}

func (b *bookingAPIServer) touchSession(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	s.expiresAt = time.Now().Add(b.lifetime).UTC().Truncate(time.Second)

	writeAPIJSON(w, http.StatusOK, map[string]any{
		"bookingSessionId":    s.id,
		"expiresAt":           s.expiresAt,
		"lockedSeatsExtended": nonNilSeats(s.seats),
	})
}

func (b *bookingAPIServer) lockSeats(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	seatIDs, ok := decodeSeatIDs(w, r)
	if !ok {
		return
	}

	if !b.available(s, seatIDs) {
		writeAPIError(w, http.StatusConflict, "SEAT_LOCKED")
		return
	}

	for _, id := range seatIDs {
		b.seatOwners[id] = s.id
		if !slices.Contains(s.seats, id) {
			s.seats = append(s.seats, id)
		}
	}
	s.version++

	b.writeSeatLock(w, s, seatIDs)
}

func (b *bookingAPIServer) replaceSeats(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	seatIDs, ok := decodeSeatIDs(w, r)
	if !ok {
		return
	}

	if !b.available(s, seatIDs) {
		writeAPIError(w, http.StatusConflict, "SEAT_LOCKED")
		return
	}

	b.release(s, s.seats)
	for _, id := range seatIDs {
		b.seatOwners[id] = s.id
	}
	s.seats = slices.Clone(seatIDs)
	s.version++

	b.writeSeatLock(w, s, seatIDs)
}

func (b *bookingAPIServer) releaseSeats(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	seatIDs, ok := decodeSeatIDs(w, r)
	if !ok {
		return
	}

	b.release(s, seatIDs)
	s.version++

	b.writeSeatLock(w, s, []int{})
}

func (b *bookingAPIServer) listCombos(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	writeAPIJSON(w, http.StatusOK, map[string]any{"combos": []any{}, "totalQuantity": 0})
}

func (b *bookingAPIServer) previewPricing(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	var input struct {
		VoucherCode *string `json:"voucherCode"`
	}
	json.NewDecoder(r.Body).Decode(&input)

	voucher := s.voucher
	if input.VoucherCode != nil {
		voucher = input.VoucherCode
	}

	p := s.pricing(voucher)
	writeAPIJSON(w, http.StatusOK, map[string]any{
		"seatsSubtotal":  p["seatsSubtotal"],
		"combosSubtotal": p["combosSubtotal"],
		"discountAmount": p["discountAmount"],
		"total":          p["total"],
		"currency":       p["currency"],
	})
}

func (b *bookingAPIServer) applyCoupon(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	var input struct {
		VoucherCode string `json:"voucherCode"`
	}
	json.NewDecoder(r.Body).Decode(&input)

	if input.VoucherCode != validVoucherCode {
		writeAPIError(w, http.StatusUnprocessableEntity, "VOUCHER_INVALID")
		return
	}

	s.voucher = &input.VoucherCode
	s.version++

	p := s.pricing(s.voucher)
	writeAPIJSON(w, http.StatusOK, map[string]any{
		"appliedVoucher": input.VoucherCode,
		"discountAmount": p["discountAmount"],
		"pricing":        p,
		"expiresAt":      s.expiresAt,
	})
}

func (b *bookingAPIServer) checkout(w http.ResponseWriter, r *http.Request, s *remoteSession) {
	if r.Header.Get("Idempotency-Key") == "" {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	s.state = "CHECKOUT_INITIATED"
	s.version++

	writeAPIJSON(w, http.StatusCreated, map[string]any{
		"orderId":    "ord_" + s.id,
		"paymentUrl": "https://pay.example.com/ord_" + s.id,
		"state":      s.state,
		"expiresAt":  s.expiresAt,
	})
}

func (b *bookingAPIServer) available(s *remoteSession, seatIDs []int) bool {
	for _, id := range seatIDs {
		if owner, ok := b.seatOwners[id]; ok && owner != s.id {
			return false
		}
	}

	return true
}

func (b *bookingAPIServer) release(s *remoteSession, seatIDs []int) []int {
	released := []int{}

	for _, id := range seatIDs {
		if b.seatOwners[id] == s.id {
			delete(b.seatOwners, id)
			released = append(released, id)
		}
	}

	s.seats = slices.DeleteFunc(s.seats, func(id int) bool {
		return slices.Contains(released, id)
	})

	return released
}

func (b *bookingAPIServer) writeSeatLock(w http.ResponseWriter, s *remoteSession, locked []int) {
	writeAPIJSON(w, http.StatusOK, map[string]any{
		"bookingSessionId": s.id,
		"lockedSeatIds":    locked,
		"lockedUntil":      s.expiresAt,
		"currentSeatIds":   nonNilSeats(s.seats),
	})
}

func (s *remoteSession) detail() map[string]any {
	seats := make([]map[string]any, len(s.seats))
	for i, id := range s.seats {
		seats[i] = map[string]any{
			"seatId":      id,
			"label":       fmt.Sprintf("A%d", id),
			"lockedUntil": s.expiresAt,
		}
	}

	return map[string]any{
		"bookingSessionId": s.id,
		"showtimeId":       s.showtimeID,
		"state":            s.state,
		"items": map[string]any{
			"seatIds":     nonNilSeats(s.seats),
			"seats":       seats,
			"combos":      []any{},
			"voucherCode": s.voucher,
		},
		"pricing":   s.pricing(s.voucher),
		"expiresAt": s.expiresAt,
		"version":   s.version,
	}
}

// pricing charges seatPrice per seat, with 10% off for the valid voucher.
func (s *remoteSession) pricing(voucher *string) map[string]any {
	subtotal := seatPrice.Mul(decimal.NewFromInt(int64(len(s.seats))))

	discount := decimal.Zero
	if voucher != nil && *voucher == validVoucherCode {
		discount = subtotal.Div(decimal.NewFromInt(10)).Round(2)
	}

	return map[string]any{
		"seatsSubtotal":  subtotal,
		"combosSubtotal": decimal.Zero,
		"subtotal":       subtotal,
		"discountAmount": discount,
		"fees":           decimal.Zero,
		"total":          subtotal.Sub(discount),
		"currency":       "USD",
	}
}

func decodeSeatIDs(w http.ResponseWriter, r *http.Request) ([]int, bool) {
	var input struct {
		SeatIDs []int `json:"seatIds"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		return nil, false
	}

	return input.SeatIDs, true
}

func nonNilSeats(ids []int) []int {
	if ids == nil {
		return []int{}
	}

	return ids
}

func writeAPIJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeAPIError(w http.ResponseWriter, status int, code string) {
	writeAPIJSON(w, status, map[string]string{"code": code, "message": http.StatusText(status)})
}
