package devicetypes

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/types/devices", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/types/devices", h.Query).Methods(http.MethodGet)
	r.HandleFunc("/types/devices/{type}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/types/devices/{type}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/types/devices/{type}", h.PartialUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/types/devices/{type}", h.Delete).Methods(http.MethodDelete)
}
