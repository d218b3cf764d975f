package bookingapi

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

type recordedRequest struct {
	Method  string
	Pattern string
	Path    string
	Header  http.Header
	Body    []byte
}

// fakeBookingAPI serves the booking API routes and answers every request
// with respond. Requests are recorded in arrival order.
type fakeBookingAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  http.HandlerFunc
}

func newFakeBookingAPI() (*fakeBookingAPI, http.Handler) {
	f := &fakeBookingAPI{
		respond: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	}

	r := chi.NewRouter()

	r.Route("/api/booking/sessions", func(r chi.Router) {
		r.Post("/", f.serve)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", f.serve)
			r.Delete("/", f.serve)
			r.Post("/touch", f.serve)

			r.Post("/seats", f.serve)
			r.Delete("/seats", f.serve)
			r.Put("/seats", f.serve)

			r.Get("/combos", f.serve)
			r.Post("/combos", f.serve)
			r.Put("/combos", f.serve)
			r.Delete("/combos/{serviceId}", f.serve)

			r.Post("/pricing/preview", f.serve)
			r.Post("/pricing/apply-coupon", f.serve)
			r.Put("/voucher", f.serve)
			r.Delete("/voucher", f.serve)

			r.Post("/checkout", f.serve)
		})
	})

	return f, r
}

func (f *fakeBookingAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:  r.Method,
		Pattern: chi.RouteContext(r.Context()).RoutePattern(),
		Path:    r.URL.EscapedPath(),
		Header:  r.Header.Clone(),
		Body:    body,
	})
	respond := f.respond
	f.mu.Unlock()

	respond(w, r)
}

// reset clears the recorded requests. A nil respond fails every request.
func (f *fakeBookingAPI) reset(respond http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if respond == nil {
		respond = respondError(http.StatusTeapot, "")
	}

	f.requests = nil
	f.respond = respond
}

func (f *fakeBookingAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeBookingAPI) last() recordedRequest {
	calls := f.calls()
	if len(calls) == 0 {
		return recordedRequest{}
	}

	return calls[len(calls)-1]
}

func respondJSON(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func respondError(status int, code string) http.HandlerFunc {
	return respondJSON(status, errorBody{Code: code, Message: http.StatusText(status)})
}

// respondSequence answers the n-th request with handlers[n], repeating the
// last one.
func respondSequence(handlers ...http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	n := 0

	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		h := handlers[min(n, len(handlers)-1)]
		n++
		mu.Unlock()

		h(w, r)
	}
}
