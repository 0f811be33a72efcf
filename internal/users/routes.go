package users

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/users", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/users", h.Query).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.PartialUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", h.Delete).Methods(http.MethodDelete)
}
