package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gearshare-booking-engine/internal/logger"
	"gearshare-booking-engine/internal/service"
)

// NewRouter wires every handler onto a mux router.
func NewRouter(
	availability service.AvailabilityService,
	booking service.BookingService,
	ledger service.LedgerService,
	notifications service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/healthz", handleHealth).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	ah := NewAvailabilityHandler(availability)
	api.HandleFunc("/items/{itemId}/availability", ah.HandleIsAvailable).Methods("GET")
	api.HandleFunc("/items/{itemId}/next-availability", ah.HandleNextAvailability).Methods("GET")
	api.HandleFunc("/items/{itemId}/booked-days", ah.HandleBookedDays).Methods("GET")

	bh := NewBookingHandler(booking)
	api.HandleFunc("/items/{itemId}/bookings", bh.HandleAttemptBook).Methods("POST")
	api.HandleFunc("/orders/{orderId}/extend", bh.HandleExtend).Methods("POST")
	api.HandleFunc("/orders/{orderId}/return-early", bh.HandleReturnEarly).Methods("POST")

	rh := NewReservationHandler(ledger)
	api.HandleFunc("/items/{itemId}/reservations/history", rh.HandleHistory).Methods("GET")

	nh := NewNotificationHandler(notifications)
	api.HandleFunc("/users/{userId}/notifications", nh.HandleList).Methods("GET")
	api.HandleFunc("/users/{userId}/notifications/{id}/read", nh.HandleMarkRead).Methods("POST")

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Handled request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
