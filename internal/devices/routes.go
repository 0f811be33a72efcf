package devices

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/devices", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/devices", h.Query).Methods(http.MethodGet)
	r.HandleFunc("/devices/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/devices/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/devices/{id}", h.PartialUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/devices/{id}", h.Delete).Methods(http.MethodDelete)
}
