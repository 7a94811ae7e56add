package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"unirent-backend/internal/security"
	"unirent-backend/internal/service"
)

// Services bundles the application services the router exposes.
type Services struct {
	Auth        service.AuthService
	Vehicle     service.VehicleService
	Client      service.ClientService
	Rental      service.RentalService
	Booking     service.BookingService
	Catalog     service.CatalogService
	Maintenance service.MaintenanceService
	Expense     service.ExpenseService
}

// NewRouter builds the HTTP routing table. Everything under /api except the
// public and auth subtrees requires a valid access token.
func NewRouter(svcs Services, tokens security.TokenManager, db *sql.DB) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)

	publicHandler := NewPublicHandler(svcs.Booking, svcs.Catalog)
	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/bookings", publicHandler.CreateBooking).Methods(http.MethodPost)
	public.HandleFunc("/bookings/{reference}", publicHandler.GetBooking).Methods(http.MethodGet)
	public.HandleFunc("/cars", publicHandler.ListCars).Methods(http.MethodGet)
	// /cars/available must register before /cars/{id} so mux does not treat
	// "available" as an id.
	public.HandleFunc("/cars/available", publicHandler.ListAvailableCars).Methods(http.MethodGet)
	public.HandleFunc("/cars/{id:[0-9]+}", publicHandler.GetCar).Methods(http.MethodGet)

	admin := api.PathPrefix("").Subrouter()
	admin.Use(AuthMiddleware(tokens))

	vehicleHandler := NewVehicleHandler(svcs.Vehicle)
	admin.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/archive", vehicleHandler.Archive).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/restore", vehicleHandler.Restore).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/maintenance-status", vehicleHandler.SetMaintenanceStatus).Methods(http.MethodPost)

	clientHandler := NewClientHandler(svcs.Client)
	admin.HandleFunc("/clients", clientHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/clients", clientHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Delete).Methods(http.MethodDelete)

	rentalHandler := NewRentalHandler(svcs.Rental)
	admin.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rentals/{id:[0-9]+}/complete", rentalHandler.Complete).Methods(http.MethodPost)
	admin.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)

	bookingHandler := NewBookingHandler(svcs.Booking)
	admin.HandleFunc("/booking-requests", bookingHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/booking-requests/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/booking-requests/{id:[0-9]+}/confirm", bookingHandler.Confirm).Methods(http.MethodPost)
	admin.HandleFunc("/booking-requests/{id:[0-9]+}/reject", bookingHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/booking-requests/{id:[0-9]+}/complete", bookingHandler.Complete).Methods(http.MethodPost)

	maintenanceHandler := NewMaintenanceHandler(svcs.Maintenance)
	admin.HandleFunc("/maintenance", maintenanceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/maintenance", maintenanceHandler.List).Methods(http.MethodGet)

	expenseHandler := NewExpenseHandler(svcs.Expense)
	admin.HandleFunc("/expenses", expenseHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/expenses", expenseHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/expenses/{id:[0-9]+}", expenseHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/expenses/{id:[0-9]+}", expenseHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/expenses/{id:[0-9]+}", expenseHandler.Delete).Methods(http.MethodDelete)

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
