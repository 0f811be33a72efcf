package bindings

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/bindings", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/bindings", h.Query).Methods(http.MethodGet)
	r.HandleFunc("/bindings/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/bindings/{id}", h.Delete).Methods(http.MethodDelete)
}
