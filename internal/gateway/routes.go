package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinex-booking/internal/telemetry"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(telemetry.ServiceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.ensureBrowserSession)
		r.Use(app.forwardBearerToken)

		r.Post("/showtimes/{showtimeId}/booking", app.intPathParam("showtimeId", app.StartBookingHandler))

		r.Route("/booking", func(r chi.Router) {
			r.Get("/", app.GetBookingHandler)
			r.Delete("/", app.CancelBookingHandler)
			r.Post("/touch", app.TouchBookingHandler)

			r.Post("/seats", app.LockSeatsHandler)
			r.Put("/seats", app.ReplaceSeatsHandler)
			r.Delete("/seats", app.ReleaseSeatsHandler)

			r.Get("/combos", app.ListCombosHandler)
			r.Post("/combos", app.UpsertCombosHandler)
			r.Put("/combos", app.ReplaceCombosHandler)
			r.Delete("/combos/{serviceId}", app.intPathParam("serviceId", app.RemoveComboHandler))

			r.Post("/pricing/preview", app.PreviewPricingHandler)

			r.Post("/voucher", app.ApplyVoucherHandler)
			r.Put("/voucher", app.SetVoucherHandler)
			r.Delete("/voucher", app.RemoveVoucherHandler)

			r.Post("/checkout", app.CheckoutHandler)
		})
	})

	return r
}
