package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"car-rental-backend/internal/security"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         *AuthHandler
	Car          *CarHandler
	Rental       *RentalHandler
	Notification *NotificationHandler
	User         *UserHandler
	Image        *ImageHandler
	Tokens       security.TokenManager
}

// NewRouter wires all routes. Car browsing and auth are public; everything
// else requires a bearer token.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/cars", h.Car.ListAvailableCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", h.Car.GetCar).Methods(http.MethodGet)
	api.HandleFunc("/images/{key}", h.Image.ServeImage).Methods(http.MethodGet)

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(h.Tokens))
	auth.HandleFunc("/cars", h.Car.CreateCar).Methods(http.MethodPost)
	auth.HandleFunc("/cars/{id}", h.Car.DeleteCar).Methods(http.MethodDelete)
	auth.HandleFunc("/cars/{id}/image", h.Image.UploadCarImage).Methods(http.MethodPut)
	auth.HandleFunc("/rentals", h.Rental.CreateRental).Methods(http.MethodPost)
	auth.HandleFunc("/rentals", h.Rental.ListRentals).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}", h.Rental.GetRental).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}/return", h.Rental.ReturnRental).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/cancel", h.Rental.CancelRental).Methods(http.MethodPost)
	auth.HandleFunc("/users/me", h.User.Me).Methods(http.MethodGet)
	auth.HandleFunc("/notifications", h.Notification.ListNotifications).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
