package http

import (
	"net/http"

	"charlymatloc-backend/internal/config"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Tools        *ToolHandler
	Auth         *AuthHandler
	Cart         *CartHandler
	Reservations *ReservationHandler
	AuthMW       *AuthMiddleware
}

// NewRouter registers the named REST routes and wraps them with the
// request-scoped middleware chain. Route names are the keys of
// config.RouteSecurityConfig.
func NewRouter(h Handlers, cors config.CORSConfig) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet).Name("health")

	// Catalog
	router.HandleFunc("/tools", h.Tools.ListTools).Methods(http.MethodGet).Name("tools.list")
	router.HandleFunc("/tools/{id}", h.Tools.GetTool).Methods(http.MethodGet).Name("tools.get")
	router.HandleFunc("/tools/{id}/availability", h.Tools.GetAvailability).Methods(http.MethodGet).Name("tools.availability")
	router.HandleFunc("/categories", h.Tools.ListCategories).Methods(http.MethodGet).Name("categories.list")

	// Auth
	router.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost).Name("auth.register")
	router.HandleFunc("/auth/signin", h.Auth.SignIn).Methods(http.MethodPost).Name("auth.signin")
	router.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost).Name("auth.refresh")

	// Cart
	router.HandleFunc("/users/{userId}/cart", h.Cart.GetCart).Methods(http.MethodGet).Name("cart.get")
	router.HandleFunc("/users/{userId}/cart", h.Cart.ClearCart).Methods(http.MethodDelete).Name("cart.clear")
	router.HandleFunc("/users/{userId}/cart/items", h.Cart.AddItem).Methods(http.MethodPost).Name("cart.add")
	router.HandleFunc("/users/{userId}/cart/items", h.Cart.RemoveByTool).Methods(http.MethodDelete).Name("cart.remove_by_tool")
	router.HandleFunc("/users/{userId}/cart/items/{itemId}", h.Cart.RemoveItem).Methods(http.MethodDelete).Name("cart.remove")
	router.HandleFunc("/users/{userId}/cart/items/{itemId}", h.Cart.UpdateItem).Methods(http.MethodPatch).Name("cart.update")

	// Reservations
	router.HandleFunc("/users/{userId}/reservations", h.Reservations.CreateReservation).Methods(http.MethodPost).Name("reservations.create")
	router.HandleFunc("/users/{userId}/reservations", h.Reservations.ListReservations).Methods(http.MethodGet).Name("reservations.list")
	router.HandleFunc("/reservations/{reservationId}", h.Reservations.GetReservation).Methods(http.MethodGet).Name("reservations.get")
	router.HandleFunc("/reservations/{reservationId}/cancel", h.Reservations.CancelReservation).Methods(http.MethodPost).Name("reservations.cancel")

	// Payments
	router.HandleFunc("/users/{userId}/reservations/{reservationId}/payments", h.Reservations.ProcessPayment).Methods(http.MethodPost).Name("payments.process")
	router.HandleFunc("/users/{userId}/reservations/{reservationId}/payments", h.Reservations.ListPayments).Methods(http.MethodGet).Name("payments.list")

	router.Use(h.AuthMW.Handler)

	// CORS sits outside the router so preflight requests never reach the
	// method matcher
	var handler http.Handler = router
	handler = CORSMiddleware(cors)(handler)
	handler = AccessLogMiddleware(handler)
	handler = RecoveryMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
