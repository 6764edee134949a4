package http

import (
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"car-rental-backend/internal/service"
	"car-rental-backend/internal/storage"
)

// ImageHandler serves car image uploads and downloads against the configured
// storage backend.
type ImageHandler struct {
	store  storage.StorageInterface
	carSvc service.CarService
}

func NewImageHandler(store storage.StorageInterface, carSvc service.CarService) *ImageHandler {
	return &ImageHandler{store: store, carSvc: carSvc}
}

// UploadCarImage stores the request body and points the car's image URL at it.
func (h *ImageHandler) UploadCarImage(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	contentType := r.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported content type"})
		return
	}

	carID := mux.Vars(r)["id"]
	key := carID + "-" + uuid.NewString() + ext
	if err := h.store.Save(key, r.Body); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save image"})
		return
	}

	url := h.store.URL(key)
	if err := h.carSvc.SetCarImage(r.Context(), carID, url); err != nil {
		_ = h.store.Delete(key)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

// ServeImage streams a stored image back to the client.
func (h *ImageHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	f, err := h.store.Open(key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	if ct, ok := extensionContentTypes[path.Ext(key)]; ok {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = io.Copy(w, f)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

var extensionContentTypes = map[string]string{
	".jpg": "image/jpeg",
	".png": "image/png",
	".gif": "image/gif",
}
