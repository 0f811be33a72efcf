package bindings

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"userdevice/internal/logs"
	"userdevice/internal/models"
	"userdevice/internal/repo"
)

func NewHandler(store *repo.BindingStore) *Handler { return &Handler{store: store} }

type Handler struct {
	store *repo.BindingStore
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	id, err := h.store.Create(r.Context(), &req)
	if err != nil {
		logs.Logger.Debugf("binding create failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("binding created, id=%s", id)
	models.WriteJSON(w, http.StatusCreated, idResponse(id))
}

func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	resp, err := h.store.Query(r.Context(), q)
	if err != nil {
		logs.Logger.Debugf("binding query failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("binding query ok, size=%d total=%d", len(resp.Results), resp.Total)
	models.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b, err := h.store.Get(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("binding deleted, id=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

func idResponse(id string) map[string]string {
	return map[string]string{"binding_id": id}
}

func parseQuery(r *http.Request) (*models.BindingQuery, error) {
	vals := r.URL.Query()
	q := &models.BindingQuery{
		Sort:         vals.Get("sort"),
		UserID:       optionalID(vals, "user_id"),
		DeviceID:     optionalID(vals, "device_id"),
		AttachDevice: vals.Get("entities") == "device",
	}

	var err error
	if q.Offset, err = models.QueryInt(vals, "offset"); err != nil {
		return nil, err
	}
	if q.Limit, err = models.QueryInt(vals, "limit"); err != nil {
		return nil, err
	}
	return q, nil
}

// optionalID: нечисловые значения фильтров молча игнорируются,
// это не ошибка запроса.
func optionalID(vals url.Values, key string) *uint {
	s := vals.Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(n)
	return &u
}
