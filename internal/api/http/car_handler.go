package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"car-rental-backend/internal/service"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

type createCarRequest struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	DailyPriceCents int64  `json:"daily_price_cents"`
	ImageURL        string `json:"image_url"`
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Brand == "" || req.Model == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "brand and model are required"})
		return
	}

	car, err := h.carSvc.CreateCar(r.Context(), req.Brand, req.Model, req.DailyPriceCents, req.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.carSvc.GetCar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) ListAvailableCars(w http.ResponseWriter, r *http.Request) {
	minPrice, _ := strconv.ParseInt(r.URL.Query().Get("min_price_cents"), 10, 64)
	maxPrice, _ := strconv.ParseInt(r.URL.Query().Get("max_price_cents"), 10, 64)

	cars, err := h.carSvc.ListAvailableCars(r.Context(), minPrice, maxPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cars": cars})
}

func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	if err := h.carSvc.DeleteCar(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return false
	}
	if !claims.IsAdmin {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return false
	}
	return true
}
