package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"trade2cart/internal/auth"
	"trade2cart/internal/billing"
	"trade2cart/internal/catalog"
	"trade2cart/internal/order"
	"trade2cart/internal/vendors"
)

type Modules struct {
	Auth       *auth.Controller
	Vendor     *vendors.Controller
	VendorRepo vendors.Repository
	Catalog    *catalog.Controller
	Order      *order.Controller
	Billing    *billing.Controller
}

// NewRouter mounts the API. Auth endpoints are public; everything else
// requires a bearer token, and the trading surface additionally requires an
// approved vendor profile.
func NewRouter(m Modules, jwtSecret string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/request-code", m.Auth.HandleRequestCode)
		r.Post("/auth/verify-code", m.Auth.HandleVerifyCode)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret, logger))

			r.Post("/vendors", m.Vendor.HandleRegister)
			r.Get("/vendors/me", m.Vendor.HandleProfile)

			r.Group(func(r chi.Router) {
				r.Use(vendors.RequireApproved(m.VendorRepo, logger))

				r.Get("/catalog", m.Catalog.HandleListRates)

				r.Get("/bills", m.Billing.HandleListBills)

				r.Get("/orders", m.Order.HandleList)
				r.Get("/orders/summary", m.Order.HandleSummary)
				r.Post("/orders/{orderID}/verify", m.Billing.HandleVerifyOTP)

				r.Route("/sessions/{sessionID}", func(r chi.Router) {
					r.Get("/", m.Billing.HandleView)
					r.Delete("/", m.Billing.HandleCancel)
					r.Post("/lines", m.Billing.HandleAddLine)
					r.Put("/lines/{index}", m.Billing.HandleSetQuantity)
					r.Delete("/lines/{index}", m.Billing.HandleRemoveLine)
					r.Post("/finalize", m.Billing.HandleFinalize)
					r.Post("/edit", m.Billing.HandleEdit)
					r.Post("/commit", m.Billing.HandleCommit)
				})
			})
		})
	})

	return r
}
